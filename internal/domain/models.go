package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer holds the contact details collected during checkout
type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// FullName joins first and last name for display and notification use
func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ShippingAddress holds the delivery address collected during checkout.
// State and PostalCode are required only by some checkout variants.
type ShippingAddress struct {
	AddressLine1 string
	City         string
	State        string
	PostalCode   string
	Country      string
}

// LineItem represents the single product line of a checkout session.
// Product data is static; the catalog supplies name, unit price and the
// base currency.
type LineItem struct {
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// DraftOrder is the frozen result of a successful form submission. It is
// owned by one checkout session and never shared across sessions.
type DraftOrder struct {
	Customer        Customer
	Shipping        ShippingAddress
	Item            LineItem
	PaymentMethod   PaymentMethod
	SubmittedAt     time.Time
}

// PricingBreakdown is derived from the draft on every quantity, country or
// payment-method change. Amounts are in the display currency; only Total is
// rounded to two decimal places.
type PricingBreakdown struct {
	Currency       string
	CurrencySymbol string
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	Shipping       decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
}

// PaymentOutcome is the terminal result of one payment attempt. Immutable
// once created.
type PaymentOutcome struct {
	Method        PaymentMethod
	TransactionID string
	GatewayOrderID string
	Status        PaymentStatus
	Timestamp     time.Time
}

// APIKey authenticates back-office callers of the admin endpoints
type APIKey struct {
	ID        uuid.UUID
	Name      string
	KeyHash   string
	IsActive  bool
	CreatedAt time.Time
}

// IdempotencyKey stores idempotency information for admin submissions
type IdempotencyKey struct {
	Key         string
	OrderNumber string
	RequestHash string
	CreatedAt   time.Time
}

// OrderConfirmation is the durable record produced exactly once by the
// finalizer. Treated as a value object: safe to copy, display and persist
// without further synchronization. Superseded only by a new record, never
// updated in place.
type OrderConfirmation struct {
	ID              uuid.UUID
	OrderNumber     string
	OrderDate       time.Time
	ProductName     string
	Quantity        int
	TotalAmount     decimal.Decimal
	Currency        string
	DiscountApplied decimal.Decimal
	PaymentMethod   string
	TransactionID   string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	EstimatedDelivery string
	OrderSource     string
	CreatedAt       time.Time
}
