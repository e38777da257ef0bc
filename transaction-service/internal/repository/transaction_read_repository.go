package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"github.com/salesdesk/txbrowser/shared/apperror"
	"github.com/salesdesk/txbrowser/shared/models"
	sharedredis "github.com/salesdesk/txbrowser/shared/redis"
	"github.com/salesdesk/txbrowser/transaction-service/internal/filter"
	"github.com/sirupsen/logrus"
)

const transactionKeyPrefix = "transaction:record:"

const selectColumns = `transaction_id, transaction_date, customer_id, customer_name, phone_number,
	gender, age, customer_region, customer_type, product_id, product_name, brand,
	product_category, tags, quantity, price_per_unit, discount_percentage, total_amount,
	final_amount, payment_method, order_status, delivery_type, store_id, store_location,
	salesperson_id, employee_name`

// TransactionReadRepository reads transactions from PostgreSQL. Point
// lookups go through the Redis cache when one is configured; list pages
// and counts always hit the database.
type TransactionReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.TransactionRecord]
}

// NewTransactionReadRepository builds the repository. A nil redisClient
// disables caching.
func NewTransactionReadRepository(db *sql.DB, redisClient *goredis.Client, cacheTTL time.Duration, logger *logrus.Logger) *TransactionReadRepository {
	r := &TransactionReadRepository{db: db}
	if redisClient != nil {
		r.cache = sharedredis.NewViewCache[models.TransactionRecord](redisClient, transactionKeyPrefix, cacheTTL, logger)
	}
	return r
}

// Find returns one page of records matching pred in the given order.
func (r *TransactionReadRepository) Find(ctx context.Context, pred filter.Predicate, sort []filter.SortKey, skip, limit int) ([]models.TransactionRecord, error) {
	q := &sqlQuery{}
	where, err := q.where(pred)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM transactions WHERE %s", selectColumns, where)
	if len(sort) > 0 {
		query += " ORDER BY " + orderBy(sort)
	}
	query += fmt.Sprintf(" LIMIT %s OFFSET %s", q.bind(limit), q.bind(skip))

	rows, err := r.db.QueryContext(ctx, query, q.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var records []models.TransactionRecord
	for rows.Next() {
		rec, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return records, nil
}

// Count returns the number of records matching pred.
func (r *TransactionReadRepository) Count(ctx context.Context, pred filter.Predicate) (int64, error) {
	q := &sqlQuery{}
	where, err := q.where(pred)
	if err != nil {
		return 0, err
	}
	var total int64
	query := "SELECT count(*) FROM transactions WHERE " + where
	if err := r.db.QueryRowContext(ctx, query, q.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return total, nil
}

// GetByTransactionID returns the record with the given business id, trying
// Redis first and warming it after a database hit.
func (r *TransactionReadRepository) GetByTransactionID(ctx context.Context, id string) (*models.TransactionRecord, error) {
	if r.cache != nil {
		if rec, ok := r.cache.Get(ctx, id); ok {
			return rec, nil
		}
	}

	query := "SELECT " + selectColumns + " FROM transactions WHERE transaction_id = $1"
	rec, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, id, rec)
	}
	return rec, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*models.TransactionRecord, error) {
	var rec models.TransactionRecord
	var gender sql.NullString
	var customerType, payment, status, delivery string
	err := row.Scan(
		&rec.TransactionID, &rec.Date, &rec.CustomerID, &rec.CustomerName, &rec.PhoneNumber,
		&gender, &rec.Age, &rec.CustomerRegion, &customerType, &rec.ProductID, &rec.ProductName, &rec.Brand,
		&rec.ProductCategory, pq.Array(&rec.Tags), &rec.Quantity, &rec.PricePerUnit, &rec.DiscountPercentage, &rec.TotalAmount,
		&rec.FinalAmount, &payment, &status, &delivery, &rec.StoreID, &rec.StoreLocation,
		&rec.SalespersonID, &rec.EmployeeName,
	)
	if err != nil {
		return nil, err
	}
	rec.Date = rec.Date.UTC()
	rec.Gender = models.Gender(gender.String)
	rec.CustomerType = models.CustomerType(customerType)
	rec.PaymentMethod = models.PaymentMethod(payment)
	rec.OrderStatus = models.OrderStatus(status)
	rec.DeliveryType = models.DeliveryType(delivery)
	if rec.Tags == nil {
		rec.Tags = []string{}
	}
	return &rec, nil
}
