package repository

import (
	"time"

	"github.com/salesdesk/txbrowser/shared/models"
	"github.com/shopspring/decimal"
)

func testRecord(id string, finalAmount int64, status models.OrderStatus, region string, date time.Time) models.TransactionRecord {
	return models.TransactionRecord{
		TransactionID:      id,
		Date:               date,
		CustomerID:         "CUST-" + region,
		CustomerName:       "Customer " + id,
		PhoneNumber:        "+91 90000 0000" + id[len(id)-1:],
		Gender:             models.GenderFemale,
		Age:                30,
		CustomerRegion:     region,
		CustomerType:       models.CustomerReturning,
		ProductID:          "PROD-" + id,
		ProductName:        "Widget " + id,
		Brand:              "Acme",
		ProductCategory:    "Electronics",
		Tags:               []string{"gift"},
		Quantity:           1,
		PricePerUnit:       decimal.NewFromInt(finalAmount),
		DiscountPercentage: decimal.Zero,
		TotalAmount:        decimal.NewFromInt(finalAmount),
		FinalAmount:        decimal.NewFromInt(finalAmount),
		PaymentMethod:      models.PaymentUPI,
		OrderStatus:        status,
		DeliveryType:       models.DeliveryStandard,
		StoreID:            "ST-1",
		StoreLocation:      "Mumbai",
		SalespersonID:      "EMP-1",
		EmployeeName:       "Harsh Agarwal",
	}
}
