package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/salesdesk/txbrowser/shared/apperror"
	"github.com/salesdesk/txbrowser/shared/models"
	"github.com/salesdesk/txbrowser/transaction-service/internal/filter"
)

// MemoryStore serves transactions from an in-process slice. It evaluates
// predicates with their own Match methods and is read-only once built.
type MemoryStore struct {
	records []models.TransactionRecord
	byID    map[string]int
}

// NewMemoryStore indexes records by transaction id. Duplicate ids are rejected.
func NewMemoryStore(records []models.TransactionRecord) (*MemoryStore, error) {
	s := &MemoryStore{
		records: make([]models.TransactionRecord, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	copy(s.records, records)
	for i, rec := range s.records {
		if _, dup := s.byID[rec.TransactionID]; dup {
			return nil, fmt.Errorf("duplicate transaction id %q", rec.TransactionID)
		}
		s.byID[rec.TransactionID] = i
	}
	return s, nil
}

// LoadMemoryStore reads a JSON array of records from path.
func LoadMemoryStore(path string) (*MemoryStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var records []models.TransactionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return NewMemoryStore(records)
}

func (s *MemoryStore) Find(ctx context.Context, pred filter.Predicate, keys []filter.SortKey, skip, limit int) ([]models.TransactionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matched := s.matching(pred)

	// Insertion order breaks any tie the keys leave.
	sort.SliceStable(matched, func(i, j int) bool {
		for _, k := range keys {
			c := filter.Compare(k.Field, &matched[i], &matched[j])
			if c == 0 {
				continue
			}
			if k.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	if skip >= len(matched) {
		return []models.TransactionRecord{}, nil
	}
	end := len(matched)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return matched[skip:end], nil
}

func (s *MemoryStore) Count(ctx context.Context, pred filter.Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var n int64
	for i := range s.records {
		if pred.Match(&s.records[i]) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) GetByTransactionID(ctx context.Context, id string) (*models.TransactionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := s.byID[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	rec := s.records[i]
	return &rec, nil
}

func (s *MemoryStore) matching(pred filter.Predicate) []models.TransactionRecord {
	if filter.IsMatchAll(pred) {
		out := make([]models.TransactionRecord, len(s.records))
		copy(out, s.records)
		return out
	}
	var out []models.TransactionRecord
	for i := range s.records {
		if pred.Match(&s.records[i]) {
			out = append(out, s.records[i])
		}
	}
	return out
}
