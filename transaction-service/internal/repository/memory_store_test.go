package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/salesdesk/txbrowser/shared/apperror"
	"github.com/salesdesk/txbrowser/shared/models"
	"github.com/salesdesk/txbrowser/transaction-service/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemoryStore(t *testing.T) *MemoryStore {
	t.Helper()
	jan := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	store, err := NewMemoryStore([]models.TransactionRecord{
		testRecord("T3", 300, models.OrderCompleted, "North", jan(3)),
		testRecord("T1", 100, models.OrderCompleted, "North", jan(1)),
		testRecord("T2", 200, models.OrderPending, "South", jan(2)),
		testRecord("T4", 200, models.OrderCompleted, "East", jan(2)),
	})
	require.NoError(t, err)
	return store
}

func ids(records []models.TransactionRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.TransactionID
	}
	return out
}

func TestMemoryStoreFindSortsAndPages(t *testing.T) {
	store := newTestMemoryStore(t)
	ctx := context.Background()

	desc := []filter.SortKey{{Field: filter.FieldFinalAmount, Desc: true}, {Field: filter.FieldTransactionID}}
	asc := []filter.SortKey{{Field: filter.FieldFinalAmount}, {Field: filter.FieldTransactionID}}

	got, err := store.Find(ctx, filter.MatchAll(), desc, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"T3", "T2", "T4", "T1"}, ids(got))

	got, err = store.Find(ctx, filter.MatchAll(), asc, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "T2", "T4", "T3"}, ids(got))

	got, err = store.Find(ctx, filter.MatchAll(), desc, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"T4"}, ids(got))

	got, err = store.Find(ctx, filter.MatchAll(), desc, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStoreFiltersAndCounts(t *testing.T) {
	store := newTestMemoryStore(t)
	ctx := context.Background()
	pred := filter.And{filter.Eq{Field: filter.FieldOrderStatus, Value: "Completed"}}

	got, err := store.Find(ctx, pred, []filter.SortKey{{Field: filter.FieldDate}}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "T4", "T3"}, ids(got))

	n, err := store.Count(ctx, pred)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestMemoryStoreGetByTransactionID(t *testing.T) {
	store := newTestMemoryStore(t)
	ctx := context.Background()

	rec, err := store.GetByTransactionID(ctx, "T2")
	require.NoError(t, err)
	assert.Equal(t, "South", rec.CustomerRegion)

	_, err = store.GetByTransactionID(ctx, "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestMemoryStoreRejectsDuplicateIDs(t *testing.T) {
	rec := testRecord("T1", 1, models.OrderPending, "North", time.Now())
	_, err := NewMemoryStore([]models.TransactionRecord{rec, rec})
	assert.Error(t, err)
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	store := newTestMemoryStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Count(ctx, filter.MatchAll())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadMemoryStore(t *testing.T) {
	rec := testRecord("T9", 99, models.OrderReturned, "West", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	data, err := json.Marshal([]models.TransactionRecord{rec})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	store, err := LoadMemoryStore(path)
	require.NoError(t, err)
	got, err := store.GetByTransactionID(context.Background(), "T9")
	require.NoError(t, err)
	assert.True(t, rec.FinalAmount.Equal(got.FinalAmount))
	assert.Equal(t, rec.Date, got.Date)

	_, err = LoadMemoryStore(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
