package filter

import (
	"strings"
	"time"

	"github.com/salesdesk/txbrowser/shared/models"
	"github.com/shopspring/decimal"
)

// Field names a TransactionRecord attribute by its JSON name.
type Field string

const (
	FieldTransactionID      Field = "transactionId"
	FieldDate               Field = "date"
	FieldCustomerID         Field = "customerId"
	FieldCustomerName       Field = "customerName"
	FieldPhoneNumber        Field = "phoneNumber"
	FieldGender             Field = "gender"
	FieldAge                Field = "age"
	FieldCustomerRegion     Field = "customerRegion"
	FieldCustomerType       Field = "customerType"
	FieldProductID          Field = "productId"
	FieldProductName        Field = "productName"
	FieldBrand              Field = "brand"
	FieldProductCategory    Field = "productCategory"
	FieldTags               Field = "tags"
	FieldQuantity           Field = "quantity"
	FieldPricePerUnit       Field = "pricePerUnit"
	FieldDiscountPercentage Field = "discountPercentage"
	FieldTotalAmount        Field = "totalAmount"
	FieldFinalAmount        Field = "finalAmount"
	FieldPaymentMethod      Field = "paymentMethod"
	FieldOrderStatus        Field = "orderStatus"
	FieldDeliveryType       Field = "deliveryType"
	FieldStoreID            Field = "storeId"
	FieldStoreLocation      Field = "storeLocation"
	FieldSalespersonID      Field = "salespersonId"
	FieldEmployeeName       Field = "employeeName"
)

type fieldInfo struct {
	column   string
	sortable bool
	value    func(r *models.TransactionRecord) any
}

var catalogue = map[Field]fieldInfo{
	FieldTransactionID:      {"transaction_id", true, func(r *models.TransactionRecord) any { return r.TransactionID }},
	FieldDate:               {"transaction_date", true, func(r *models.TransactionRecord) any { return r.Date }},
	FieldCustomerID:         {"customer_id", true, func(r *models.TransactionRecord) any { return r.CustomerID }},
	FieldCustomerName:       {"customer_name", true, func(r *models.TransactionRecord) any { return r.CustomerName }},
	FieldPhoneNumber:        {"phone_number", true, func(r *models.TransactionRecord) any { return r.PhoneNumber }},
	FieldGender:             {"gender", true, func(r *models.TransactionRecord) any { return string(r.Gender) }},
	FieldAge:                {"age", true, func(r *models.TransactionRecord) any { return r.Age }},
	FieldCustomerRegion:     {"customer_region", true, func(r *models.TransactionRecord) any { return r.CustomerRegion }},
	FieldCustomerType:       {"customer_type", true, func(r *models.TransactionRecord) any { return string(r.CustomerType) }},
	FieldProductID:          {"product_id", true, func(r *models.TransactionRecord) any { return r.ProductID }},
	FieldProductName:        {"product_name", true, func(r *models.TransactionRecord) any { return r.ProductName }},
	FieldBrand:              {"brand", true, func(r *models.TransactionRecord) any { return r.Brand }},
	FieldProductCategory:    {"product_category", true, func(r *models.TransactionRecord) any { return r.ProductCategory }},
	FieldTags:               {"tags", false, func(r *models.TransactionRecord) any { return r.Tags }},
	FieldQuantity:           {"quantity", true, func(r *models.TransactionRecord) any { return r.Quantity }},
	FieldPricePerUnit:       {"price_per_unit", true, func(r *models.TransactionRecord) any { return r.PricePerUnit }},
	FieldDiscountPercentage: {"discount_percentage", true, func(r *models.TransactionRecord) any { return r.DiscountPercentage }},
	FieldTotalAmount:        {"total_amount", true, func(r *models.TransactionRecord) any { return r.TotalAmount }},
	FieldFinalAmount:        {"final_amount", true, func(r *models.TransactionRecord) any { return r.FinalAmount }},
	FieldPaymentMethod:      {"payment_method", true, func(r *models.TransactionRecord) any { return string(r.PaymentMethod) }},
	FieldOrderStatus:        {"order_status", true, func(r *models.TransactionRecord) any { return string(r.OrderStatus) }},
	FieldDeliveryType:       {"delivery_type", true, func(r *models.TransactionRecord) any { return string(r.DeliveryType) }},
	FieldStoreID:            {"store_id", true, func(r *models.TransactionRecord) any { return r.StoreID }},
	FieldStoreLocation:      {"store_location", true, func(r *models.TransactionRecord) any { return r.StoreLocation }},
	FieldSalespersonID:      {"salesperson_id", true, func(r *models.TransactionRecord) any { return r.SalespersonID }},
	FieldEmployeeName:       {"employee_name", true, func(r *models.TransactionRecord) any { return r.EmployeeName }},
}

// ParseField resolves a JSON field name. Matching is exact.
func ParseField(name string) (Field, bool) {
	f := Field(name)
	_, ok := catalogue[f]
	return f, ok
}

// Column is the storage column backing the field.
func (f Field) Column() string { return catalogue[f].column }

// Sortable reports whether the field has a total order usable by ORDER BY.
func (f Field) Sortable() bool { return catalogue[f].sortable }

// Value extracts the field from r.
func (f Field) Value(r *models.TransactionRecord) any {
	info, ok := catalogue[f]
	if !ok {
		return nil
	}
	return info.value(r)
}

// compare orders two field values of the same dynamic type.
// ok is false when the values are not comparable.
func compare(a, b any) (c int, ok bool) {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case int:
		bv, ok := b.(int)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		}
		return 0, true
	case decimal.Decimal:
		bv, ok := b.(decimal.Decimal)
		if !ok {
			return 0, false
		}
		return av.Cmp(bv), true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	}
	return 0, false
}

// Compare orders two records by field, for stores that sort in process.
func Compare(f Field, a, b *models.TransactionRecord) int {
	c, _ := compare(f.Value(a), f.Value(b))
	return c
}
