package order

import (
	"regexp"

	"github.com/beyondslim/checkout-api/internal/domain"
)

var (
	orderNumberPattern = regexp.MustCompile(`^[A-Z]+-[0-9]{6}-[0-9]{3}$`)
	emailPattern       = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	phonePattern       = regexp.MustCompile(`^[0-9]{10}$`)
)

var validPaymentMethods = map[string]bool{
	"Online Payment":   true,
	"Cash on Delivery": true,
	"Razorpay":         true,
	"UPI":              true,
	"Card Payment":     true,
}

var validOrderSources = map[string]bool{
	"website":    true,
	"mobile_app": true,
	"phone":      true,
	"whatsapp":   true,
}

// ValidateConfirmation checks an assembled confirmation against the record
// schema: required fields, format conformance and numeric bounds. The
// finalizer uses it as a hard gate; it is also exported for diagnostics.
func ValidateConfirmation(o domain.OrderConfirmation) (bool, []string) {
	var violations []string

	if o.OrderNumber == "" {
		violations = append(violations, "Order number is required")
	} else if !orderNumberPattern.MatchString(o.OrderNumber) {
		violations = append(violations, "Invalid order number format")
	}
	if o.OrderDate.IsZero() {
		violations = append(violations, "Order date is required")
	}
	if o.ProductName == "" {
		violations = append(violations, "Product name is required")
	}
	if o.CustomerName == "" {
		violations = append(violations, "Customer name is required")
	}

	if o.CustomerEmail == "" {
		violations = append(violations, "Customer email is required")
	} else if !emailPattern.MatchString(o.CustomerEmail) {
		violations = append(violations, "Invalid email format")
	}

	if o.CustomerPhone == "" {
		violations = append(violations, "Customer phone is required")
	} else if !phonePattern.MatchString(o.CustomerPhone) {
		violations = append(violations, "Phone number must be exactly 10 digits")
	}

	if o.ShippingAddress == "" {
		violations = append(violations, "Shipping address is required")
	}

	if o.PaymentMethod == "" {
		violations = append(violations, "Payment method is required")
	} else if !validPaymentMethods[o.PaymentMethod] {
		violations = append(violations, "Invalid payment method")
	}
	if o.TransactionID == "" {
		violations = append(violations, "Transaction ID is required")
	}

	if o.Quantity < 1 {
		violations = append(violations, "Valid quantity is required (minimum 1)")
	}
	if o.TotalAmount.IsNegative() {
		violations = append(violations, "Valid total amount is required")
	}

	if o.OrderSource != "" && !validOrderSources[o.OrderSource] {
		violations = append(violations, "Invalid order source")
	}

	return len(violations) == 0, violations
}
