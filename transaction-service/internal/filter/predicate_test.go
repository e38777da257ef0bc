package filter

import (
	"testing"
	"time"

	"github.com/salesdesk/txbrowser/shared/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateWindowIsInclusive(t *testing.T) {
	spec := mustBuild(t, "startDate=2024-01-01&endDate=2024-01-31")

	tests := []struct {
		date     time.Time
		expected bool
	}{
		{day(2023, 12, 31), false},
		{day(2024, 1, 1), true},
		{day(2024, 1, 15), true},
		{day(2024, 1, 31), true},
		{day(2024, 2, 1), false},
	}
	for _, tt := range tests {
		r := models.TransactionRecord{Date: tt.date}
		assert.Equal(t, tt.expected, spec.Filter.Match(&r), tt.date.Format(dateLayout))
	}
}

func TestRangeOnDecimalAndInt(t *testing.T) {
	amount := Range{Field: FieldFinalAmount, Min: decimal.NewFromInt(100), Max: decimal.RequireFromString("200.00")}
	age := Range{Field: FieldAge, Min: 18}

	assert.True(t, amount.Match(&models.TransactionRecord{FinalAmount: decimal.NewFromInt(100)}))
	assert.True(t, amount.Match(&models.TransactionRecord{FinalAmount: decimal.RequireFromString("200")}))
	assert.False(t, amount.Match(&models.TransactionRecord{FinalAmount: decimal.RequireFromString("200.01")}))

	assert.True(t, age.Match(&models.TransactionRecord{Age: 18}))
	assert.False(t, age.Match(&models.TransactionRecord{Age: 17}))
}

func TestMismatchedValueTypesNeverMatch(t *testing.T) {
	r := &models.TransactionRecord{Age: 30}
	assert.False(t, Eq{Field: FieldAge, Value: "30"}.Match(r))
	assert.False(t, Range{Field: FieldAge, Min: decimal.NewFromInt(1)}.Match(r))
}

func TestInAndContains(t *testing.T) {
	r := &models.TransactionRecord{OrderStatus: models.OrderReturned, Brand: "NovaTech"}

	assert.True(t, In{Field: FieldOrderStatus, Values: []string{"Completed", "Returned"}}.Match(r))
	assert.False(t, In{Field: FieldOrderStatus, Values: []string{"Completed"}}.Match(r))
	assert.False(t, In{Field: FieldOrderStatus}.Match(r))

	assert.True(t, Contains{Field: FieldBrand, Substring: "novat"}.Match(r))
	assert.True(t, Contains{Field: FieldBrand, Substring: "TECH"}.Match(r))
	assert.False(t, Contains{Field: FieldBrand, Substring: "nova tech"}.Match(r))
	assert.False(t, Contains{Field: FieldAge, Substring: "0"}.Match(r))
}

func TestEmptyCompositesMatchAllOrNothing(t *testing.T) {
	r := &models.TransactionRecord{}
	assert.True(t, MatchAll().Match(r))
	assert.True(t, IsMatchAll(MatchAll()))
	assert.False(t, Or{}.Match(r))
	assert.False(t, IsMatchAll(And{Eq{Field: FieldStoreID, Value: "S1"}}))
}

func TestCompareRecordsByField(t *testing.T) {
	a := &models.TransactionRecord{FinalAmount: decimal.NewFromInt(100), Date: day(2024, 1, 2)}
	b := &models.TransactionRecord{FinalAmount: decimal.NewFromInt(200), Date: day(2024, 1, 1)}

	assert.Equal(t, -1, Compare(FieldFinalAmount, a, b))
	assert.Equal(t, 1, Compare(FieldDate, a, b))
	assert.Equal(t, 0, Compare(FieldTags, a, b))
}

func TestEveryFieldHasAColumn(t *testing.T) {
	for f := range catalogue {
		parsed, ok := ParseField(string(f))
		assert.True(t, ok)
		assert.NotEmpty(t, parsed.Column(), string(f))
	}
	_, ok := ParseField("TransactionID")
	assert.False(t, ok)
}
