package order

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beyondslim/checkout-api/internal/domain"
)

func validConfirmation() domain.OrderConfirmation {
	return domain.OrderConfirmation{
		ID:                uuid.New(),
		OrderNumber:       "BYD-123456-789",
		OrderDate:         time.Now(),
		ProductName:       "Beyond Slim Slimming Oil",
		Quantity:          2,
		TotalAmount:       decimal.RequireFromString("7182.00"),
		Currency:          "INR",
		PaymentMethod:     "Online Payment",
		TransactionID:     "pay_abc",
		CustomerName:      "Asha Verma",
		CustomerEmail:     "asha.verma@example.com",
		CustomerPhone:     "9876543210",
		ShippingAddress:   "42 MG Road\nPune\nIndia",
		EstimatedDelivery: "Tuesday, 13 January 2026",
		OrderSource:       "website",
		CreatedAt:         time.Now(),
	}
}

func TestValidateConfirmation(t *testing.T) {
	ok, violations := ValidateConfirmation(validConfirmation())
	assert.True(t, ok)
	assert.Empty(t, violations)
}

func TestValidateConfirmationViolations(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*domain.OrderConfirmation)
		violation string
	}{
		{"missing order number", func(o *domain.OrderConfirmation) { o.OrderNumber = "" }, "Order number is required"},
		{"bad order number", func(o *domain.OrderConfirmation) { o.OrderNumber = "BYD-12-3" }, "Invalid order number format"},
		{"zero order date", func(o *domain.OrderConfirmation) { o.OrderDate = time.Time{} }, "Order date is required"},
		{"missing product", func(o *domain.OrderConfirmation) { o.ProductName = "" }, "Product name is required"},
		{"missing name", func(o *domain.OrderConfirmation) { o.CustomerName = "" }, "Customer name is required"},
		{"bad email", func(o *domain.OrderConfirmation) { o.CustomerEmail = "nope" }, "Invalid email format"},
		{"short phone", func(o *domain.OrderConfirmation) { o.CustomerPhone = "12345" }, "Phone number must be exactly 10 digits"},
		{"missing address", func(o *domain.OrderConfirmation) { o.ShippingAddress = "" }, "Shipping address is required"},
		{"unknown payment method", func(o *domain.OrderConfirmation) { o.PaymentMethod = "Barter" }, "Invalid payment method"},
		{"missing transaction", func(o *domain.OrderConfirmation) { o.TransactionID = "" }, "Transaction ID is required"},
		{"zero quantity", func(o *domain.OrderConfirmation) { o.Quantity = 0 }, "Valid quantity is required (minimum 1)"},
		{"negative total", func(o *domain.OrderConfirmation) { o.TotalAmount = decimal.NewFromInt(-1) }, "Valid total amount is required"},
		{"unknown source", func(o *domain.OrderConfirmation) { o.OrderSource = "carrier_pigeon" }, "Invalid order source"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := validConfirmation()
			tc.mutate(&o)

			ok, violations := ValidateConfirmation(o)
			require.False(t, ok)
			assert.Contains(t, violations, tc.violation)
		})
	}
}

func TestValidateConfirmationAggregates(t *testing.T) {
	o := validConfirmation()
	o.OrderNumber = ""
	o.CustomerEmail = ""
	o.Quantity = 0

	ok, violations := ValidateConfirmation(o)
	require.False(t, ok)
	assert.Len(t, violations, 3)
}

func TestGenerateOrderNumber(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := GenerateOrderNumber("BYD")
		assert.Regexp(t, `^BYD-[0-9]{6}-[0-9]{3}$`, n)
	}
	assert.Regexp(t, `^ACME-[0-9]{6}-[0-9]{3}$`, GenerateOrderNumber("ACME"))
}
