package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The frontend expects money fields as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type CustomerType string

const (
	CustomerNew       CustomerType = "New"
	CustomerReturning CustomerType = "Returning"
	CustomerLoyal     CustomerType = "Loyal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderCompleted OrderStatus = "Completed"
	OrderCancelled OrderStatus = "Cancelled"
	OrderReturned  OrderStatus = "Returned"
)

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "Cash"
	PaymentCreditCard PaymentMethod = "Credit Card"
	PaymentDebitCard  PaymentMethod = "Debit Card"
	PaymentUPI        PaymentMethod = "UPI"
	PaymentNetBanking PaymentMethod = "Net Banking"
	PaymentWallet     PaymentMethod = "Wallet"
)

type DeliveryType string

const (
	DeliveryStandard    DeliveryType = "Standard"
	DeliveryExpress     DeliveryType = "Express"
	DeliveryStorePickup DeliveryType = "Store Pickup"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// TransactionRecord is one row of the flat retail sales fact table.
// Records are written by ingestion only; the read services never mutate them.
type TransactionRecord struct {
	TransactionID      string          `json:"transactionId"`
	Date               time.Time       `json:"date"`
	CustomerID         string          `json:"customerId"`
	CustomerName       string          `json:"customerName"`
	PhoneNumber        string          `json:"phoneNumber"`
	Gender             Gender          `json:"gender"`
	Age                int             `json:"age"`
	CustomerRegion     string          `json:"customerRegion"`
	CustomerType       CustomerType    `json:"customerType"`
	ProductID          string          `json:"productId"`
	ProductName        string          `json:"productName"`
	Brand              string          `json:"brand"`
	ProductCategory    string          `json:"productCategory"`
	Tags               []string        `json:"tags"`
	Quantity           int             `json:"quantity"`
	PricePerUnit       decimal.Decimal `json:"pricePerUnit"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	FinalAmount        decimal.Decimal `json:"finalAmount"`
	PaymentMethod      PaymentMethod   `json:"paymentMethod"`
	OrderStatus        OrderStatus     `json:"orderStatus"`
	DeliveryType       DeliveryType    `json:"deliveryType"`
	StoreID            string          `json:"storeId"`
	StoreLocation      string          `json:"storeLocation"`
	SalespersonID      string          `json:"salespersonId"`
	EmployeeName       string          `json:"employeeName"`
}
