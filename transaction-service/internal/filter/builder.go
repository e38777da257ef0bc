package filter

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/salesdesk/txbrowser/shared/apperror"
	"github.com/shopspring/decimal"
)

const (
	DefaultPage      = 1
	DefaultLimit     = 10
	DefaultSortField = FieldDate
	dateLayout       = "2006-01-02"
)

// multiValueFilters accept one or more values, sent as key or key[].
var multiValueFilters = []struct {
	param string
	field Field
}{
	{"status", FieldOrderStatus},
	{"category", FieldProductCategory},
	{"region", FieldCustomerRegion},
	{"customerType", FieldCustomerType},
	{"paymentMethod", FieldPaymentMethod},
	{"deliveryType", FieldDeliveryType},
	{"gender", FieldGender},
}

var exactFilters = []struct {
	param string
	field Field
}{
	{"customerId", FieldCustomerID},
	{"productId", FieldProductID},
	{"storeId", FieldStoreID},
}

// SearchFields are the fields a search term is matched against.
var SearchFields = []Field{
	FieldTransactionID,
	FieldProductID,
	FieldCustomerName,
	FieldProductName,
	FieldPhoneNumber,
	FieldBrand,
	FieldProductCategory,
	FieldStoreLocation,
	FieldEmployeeName,
}

// SortKey orders results by one field.
type SortKey struct {
	Field Field
	Desc  bool
}

// QuerySpec is the validated form of one list request.
type QuerySpec struct {
	Filter Predicate
	Sort   []SortKey
	Page   int
	Limit  int
}

// Skip is the number of matching records before the requested page.
func (q QuerySpec) Skip() int {
	return (q.Page - 1) * q.Limit
}

type Options struct {
	// MaxLimit caps the page size; 0 leaves it unbounded.
	MaxLimit int
}

// Builder converts request parameters into a QuerySpec. It is stateless
// apart from its options and safe for concurrent use.
type Builder struct {
	opts     Options
	validate *validator.Validate
}

// paging holds the parsed paging and sort parameters for validation.
type paging struct {
	Page      int    `param:"page" validate:"min=1"`
	Limit     int    `param:"limit" validate:"min=1"`
	SortOrder string `param:"sortOrder" validate:"oneof=asc desc"`
}

func NewBuilder(opts Options) *Builder {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("param")
	})
	return &Builder{opts: opts, validate: v}
}

// Build maps the general list parameters to a QuerySpec. Unrecognised
// parameters are ignored.
func (b *Builder) Build(params url.Values) (QuerySpec, error) {
	spec, err := b.pageAndSort(params)
	if err != nil {
		return QuerySpec{}, err
	}

	var preds And
	for _, f := range multiValueFilters {
		values := multiValue(params, f.param)
		switch len(values) {
		case 0:
		case 1:
			preds = append(preds, Eq{Field: f.field, Value: values[0]})
		default:
			preds = append(preds, In{Field: f.field, Values: values})
		}
	}

	dateRange, err := buildRange(params, FieldDate, "startDate", "endDate", parseDate)
	if err != nil {
		return QuerySpec{}, err
	}
	amountRange, err := buildRange(params, FieldFinalAmount, "minAmount", "maxAmount", parseDecimal)
	if err != nil {
		return QuerySpec{}, err
	}
	ageRange, err := buildRange(params, FieldAge, "minAge", "maxAge", parseInt)
	if err != nil {
		return QuerySpec{}, err
	}
	for _, r := range []*Range{dateRange, amountRange, ageRange} {
		if r != nil {
			preds = append(preds, *r)
		}
	}

	for _, f := range exactFilters {
		value, ok, err := scalar(params, f.param)
		if err != nil {
			return QuerySpec{}, err
		}
		if ok {
			preds = append(preds, Eq{Field: f.field, Value: value})
		}
	}

	if term, ok, err := scalar(params, "search"); err != nil {
		return QuerySpec{}, err
	} else if ok {
		preds = append(preds, searchClause(term))
	}

	spec.Filter = preds
	if len(preds) == 0 {
		spec.Filter = MatchAll()
	}
	return spec, nil
}

// BuildCustomer maps parameters for one customer's transactions. Only the
// paging and sort keys are read; filters and search are ignored.
func (b *Builder) BuildCustomer(customerID string, params url.Values) (QuerySpec, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return QuerySpec{}, apperror.Invalid("customerId", "is required")
	}
	spec, err := b.pageAndSort(params)
	if err != nil {
		return QuerySpec{}, err
	}
	spec.Filter = And{Eq{Field: FieldCustomerID, Value: customerID}}
	return spec, nil
}

func (b *Builder) pageAndSort(params url.Values) (QuerySpec, error) {
	p := paging{Page: DefaultPage, Limit: DefaultLimit, SortOrder: "desc"}

	if raw, ok, err := scalar(params, "page"); err != nil {
		return QuerySpec{}, err
	} else if ok {
		if p.Page, err = parseInt("page", raw); err != nil {
			return QuerySpec{}, err
		}
	}
	if raw, ok, err := scalar(params, "limit"); err != nil {
		return QuerySpec{}, err
	} else if ok {
		if p.Limit, err = parseInt("limit", raw); err != nil {
			return QuerySpec{}, err
		}
	}
	if raw, ok, err := scalar(params, "sortOrder"); err != nil {
		return QuerySpec{}, err
	} else if ok {
		p.SortOrder = strings.ToLower(raw)
	}

	if err := b.validate.Struct(p); err != nil {
		return QuerySpec{}, fromValidator(err)
	}
	if b.opts.MaxLimit > 0 && p.Limit > b.opts.MaxLimit {
		return QuerySpec{}, apperror.Invalid("limit", "must not exceed %d", b.opts.MaxLimit)
	}
	if p.Page-1 > math.MaxInt32/p.Limit {
		return QuerySpec{}, apperror.Invalid("page", "is too large")
	}

	sortField := DefaultSortField
	if raw, ok, err := scalar(params, "sortBy"); err != nil {
		return QuerySpec{}, err
	} else if ok {
		f, known := ParseField(raw)
		if !known || !f.Sortable() {
			return QuerySpec{}, apperror.Invalid("sortBy", "cannot sort by %q", raw)
		}
		sortField = f
	}

	sort := []SortKey{{Field: sortField, Desc: p.SortOrder == "desc"}}
	if sortField != FieldTransactionID {
		// transactionId is unique, so ties on the primary key still page deterministically.
		sort = append(sort, SortKey{Field: FieldTransactionID})
	}

	return QuerySpec{Sort: sort, Page: p.Page, Limit: p.Limit}, nil
}

func searchClause(term string) Or {
	clause := make(Or, 0, len(SearchFields))
	for _, f := range SearchFields {
		clause = append(clause, Contains{Field: f, Substring: term})
	}
	return clause
}

// multiValue collects key and key[] values, trimmed, without empties or duplicates.
func multiValue(params url.Values, key string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, raw := range append(params[key], params[key+"[]"]...) {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// scalar returns the single non-empty value of key. Repeating a scalar
// parameter with different values is a validation error.
func scalar(params url.Values, key string) (string, bool, error) {
	var value string
	for _, raw := range params[key] {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if value != "" && v != value {
			return "", false, apperror.Invalid(key, "must be given once")
		}
		value = v
	}
	return value, value != "", nil
}

func buildRange[T any](params url.Values, field Field, minParam, maxParam string, parse func(param, raw string) (T, error)) (*Range, error) {
	r := Range{Field: field}
	if raw, ok, err := scalar(params, minParam); err != nil {
		return nil, err
	} else if ok {
		v, err := parse(minParam, raw)
		if err != nil {
			return nil, err
		}
		r.Min = v
	}
	if raw, ok, err := scalar(params, maxParam); err != nil {
		return nil, err
	} else if ok {
		v, err := parse(maxParam, raw)
		if err != nil {
			return nil, err
		}
		r.Max = v
	}
	if r.Min == nil && r.Max == nil {
		return nil, nil
	}
	if r.Min != nil && r.Max != nil {
		if c, _ := compare(r.Min, r.Max); c > 0 {
			return nil, apperror.Invalid(minParam, "must not be greater than %s", maxParam)
		}
	}
	return &r, nil
}

func parseInt(param, raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Invalid(param, "must be an integer, got %q", raw)
	}
	return v, nil
}

func parseDecimal(param, raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, apperror.Invalid(param, "must be a decimal number, got %q", raw)
	}
	return v, nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp, both in UTC.
func parseDate(param, raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, apperror.Invalid(param, "must be a date (YYYY-MM-DD) or RFC 3339 timestamp, got %q", raw)
}

func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate paging: %w", err)
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "min":
		return apperror.Invalid(fe.Field(), "must be at least %s", fe.Param())
	case "oneof":
		return apperror.Invalid(fe.Field(), "must be one of: %s", fe.Param())
	default:
		return apperror.Invalid(fe.Field(), "is invalid")
	}
}
