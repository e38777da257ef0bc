package repository

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/salesdesk/txbrowser/transaction-service/internal/filter"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bogusPredicate struct{ filter.Eq }

func TestWhereRendersPredicates(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name         string
		pred         filter.Predicate
		expectedSQL  string
		expectedArgs []any
	}{
		{
			name:        "match all",
			pred:        filter.MatchAll(),
			expectedSQL: "TRUE",
		},
		{
			name:         "equality",
			pred:         filter.Eq{Field: filter.FieldOrderStatus, Value: "Completed"},
			expectedSQL:  "order_status = $1",
			expectedArgs: []any{"Completed"},
		},
		{
			name:         "set membership",
			pred:         filter.In{Field: filter.FieldCustomerRegion, Values: []string{"North", "South"}},
			expectedSQL:  "customer_region = ANY($1)",
			expectedArgs: []any{pq.Array([]string{"North", "South"})},
		},
		{
			name:         "closed range",
			pred:         filter.Range{Field: filter.FieldFinalAmount, Min: decimal.NewFromInt(10), Max: decimal.NewFromInt(20)},
			expectedSQL:  "(final_amount >= $1 AND final_amount <= $2)",
			expectedArgs: []any{decimal.NewFromInt(10), decimal.NewFromInt(20)},
		},
		{
			name:         "half-open range",
			pred:         filter.Range{Field: filter.FieldDate, Min: start},
			expectedSQL:  "transaction_date >= $1",
			expectedArgs: []any{start},
		},
		{
			name:         "search escapes LIKE metacharacters",
			pred:         filter.Contains{Field: filter.FieldProductName, Substring: `50%_off\`},
			expectedSQL:  `product_name ILIKE $1 ESCAPE '\'`,
			expectedArgs: []any{`%50\%\_off\\%`},
		},
		{
			name: "filters anded with search clause",
			pred: filter.And{
				filter.Eq{Field: filter.FieldOrderStatus, Value: "Completed"},
				filter.Or{
					filter.Contains{Field: filter.FieldTransactionID, Substring: "abc"},
					filter.Contains{Field: filter.FieldBrand, Substring: "abc"},
				},
			},
			expectedSQL:  `(order_status = $1 AND (transaction_id ILIKE $2 ESCAPE '\' OR brand ILIKE $3 ESCAPE '\'))`,
			expectedArgs: []any{"Completed", "%abc%", "%abc%"},
		},
		{
			name:        "empty or matches nothing",
			pred:        filter.Or{},
			expectedSQL: "FALSE",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &sqlQuery{}
			sql, err := q.where(tt.pred)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSQL, sql)
			assert.Equal(t, tt.expectedArgs, q.args)
		})
	}
}

func TestWhereRejectsUnknownPredicates(t *testing.T) {
	q := &sqlQuery{}
	_, err := q.where(bogusPredicate{})
	assert.Error(t, err)
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, "final_amount DESC, transaction_id ASC", orderBy([]filter.SortKey{
		{Field: filter.FieldFinalAmount, Desc: true},
		{Field: filter.FieldTransactionID},
	}))
}
