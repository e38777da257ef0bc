package query

import (
	"context"
	"errors"

	"github.com/salesdesk/txbrowser/shared/apperror"
	"github.com/salesdesk/txbrowser/shared/cqrs"
	"github.com/salesdesk/txbrowser/shared/models"
	"github.com/salesdesk/txbrowser/transaction-service/internal/filter"
	"golang.org/x/sync/errgroup"
)

// TransactionStore is the storage collaborator the query service reads from.
type TransactionStore interface {
	Find(ctx context.Context, pred filter.Predicate, sort []filter.SortKey, skip, limit int) ([]models.TransactionRecord, error)
	Count(ctx context.Context, pred filter.Predicate) (int64, error)
	GetByTransactionID(ctx context.Context, id string) (*models.TransactionRecord, error)
}

// TransactionQueryService serves transaction reads. It holds no per-request
// state, so one instance is shared by all handlers.
type TransactionQueryService struct {
	store   TransactionStore
	builder *filter.Builder
}

func NewTransactionQueryService(store TransactionStore, builder *filter.Builder) *TransactionQueryService {
	return &TransactionQueryService{store: store, builder: builder}
}

// ListTransactions returns one page of transactions matching the query's
// filters and search term.
func (s *TransactionQueryService) ListTransactions(ctx context.Context, q cqrs.ListTransactionsQuery) (*models.PageResult, error) {
	spec, err := s.builder.Build(q.Params)
	if err != nil {
		return nil, err
	}
	return s.page(ctx, spec)
}

// GetTransaction returns the transaction with the given business id.
func (s *TransactionQueryService) GetTransaction(ctx context.Context, q cqrs.GetTransactionQuery) (*models.TransactionRecord, error) {
	if q.TransactionID == "" {
		return nil, apperror.Invalid("id", "is required")
	}
	rec, err := s.store.GetByTransactionID(ctx, q.TransactionID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, apperror.Storage("lookup", err)
	}
	return rec, nil
}

// ListCustomerTransactions returns one page of a single customer's transactions.
func (s *TransactionQueryService) ListCustomerTransactions(ctx context.Context, q cqrs.ListCustomerTransactionsQuery) (*models.PageResult, error) {
	spec, err := s.builder.BuildCustomer(q.CustomerID, q.Params)
	if err != nil {
		return nil, err
	}
	return s.page(ctx, spec)
}

// page runs the fetch and the count concurrently against the same
// predicate and waits for both before assembling the result.
func (s *TransactionQueryService) page(ctx context.Context, spec filter.QuerySpec) (*models.PageResult, error) {
	var (
		records []models.TransactionRecord
		total   int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.store.Find(gctx, spec.Filter, spec.Sort, spec.Skip(), spec.Limit)
		return apperror.Storage("find", err)
	})
	g.Go(func() error {
		var err error
		total, err = s.store.Count(gctx, spec.Filter)
		return apperror.Storage("count", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return models.NewPageResult(records, spec.Page, spec.Limit, total), nil
}
