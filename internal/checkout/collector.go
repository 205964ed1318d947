package checkout

import (
	"regexp"
	"strings"
	"time"

	"github.com/beyondslim/checkout-api/internal/domain"
)

// ErrorMap carries per-field validation messages. An empty map means the
// draft is fully valid.
type ErrorMap map[string]string

// Field names accepted by Collector.UpdateField.
const (
	FieldFirstName  = "firstName"
	FieldLastName   = "lastName"
	FieldEmail      = "email"
	FieldPhone      = "phone"
	FieldAddress    = "address"
	FieldCity       = "city"
	FieldState      = "state"
	FieldPostalCode = "postalCode"
	FieldCountry    = "country"
)

const (
	fieldPaymentMethod = "paymentMethod"
	phoneDigits        = 10
)

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern      = regexp.MustCompile(`^[0-9]{10}$`)
	postalCodePattern = regexp.MustCompile(`^[0-9]{6}$`)
	nonDigits         = regexp.MustCompile(`[^0-9]`)
)

// Variant controls which address fields the checkout flow requires.
type Variant struct {
	RequirePostalCode bool
	RequireState      bool
}

// Collector accumulates and validates checkout input across the contact,
// shipping and payment steps. It is re-enterable: correcting one field
// never loses the others. Owned by a single checkout session.
type Collector struct {
	variant Variant
	item    domain.LineItem
	fields  map[string]string
	method  domain.PaymentMethod
	errors  ErrorMap
}

// NewCollector creates a collector for one checkout session. The line item
// comes from the static catalog; quantity starts at 1.
func NewCollector(item domain.LineItem, variant Variant) *Collector {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	return &Collector{
		variant: variant,
		item:    item,
		fields:  make(map[string]string),
		errors:  make(ErrorMap),
	}
}

// UpdateField stores a trimmed field value and optimistically clears any
// prior error on that field. Re-validation happens on submit, not on every
// keystroke. Phone input has non-digit characters stripped and is capped at
// ten digits before storage.
func (c *Collector) UpdateField(name, value string) {
	value = strings.TrimSpace(value)
	if name == FieldPhone {
		value = nonDigits.ReplaceAllString(value, "")
		if len(value) > phoneDigits {
			value = value[:phoneDigits]
		}
	}
	c.fields[name] = value
	delete(c.errors, name)
}

// Field returns the currently stored value for a field.
func (c *Collector) Field(name string) string {
	return c.fields[name]
}

// SetQuantity updates the line item quantity, clamped to a minimum of 1.
func (c *Collector) SetQuantity(quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	c.item.Quantity = quantity
}

// Quantity returns the current line item quantity.
func (c *Collector) Quantity() int {
	return c.item.Quantity
}

// Item returns the current line item.
func (c *Collector) Item() domain.LineItem {
	return c.item
}

// ChoosePaymentMethod records the payment method selection.
func (c *Collector) ChoosePaymentMethod(method domain.PaymentMethod) {
	if !method.IsValid() {
		return
	}
	c.method = method
	delete(c.errors, fieldPaymentMethod)
}

// PaymentMethod returns the selected payment method, empty if none chosen.
func (c *Collector) PaymentMethod() domain.PaymentMethod {
	return c.method
}

// Validate is a pure function of the current field values. It returns an
// empty map when the draft is submittable.
func (c *Collector) Validate() ErrorMap {
	errs := make(ErrorMap)

	if c.fields[FieldFirstName] == "" {
		errs[FieldFirstName] = "First name is required"
	}
	if c.fields[FieldLastName] == "" {
		errs[FieldLastName] = "Last name is required"
	}

	switch email := c.fields[FieldEmail]; {
	case email == "":
		errs[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(email):
		errs[FieldEmail] = "Please enter a valid email address"
	}

	switch phone := c.fields[FieldPhone]; {
	case phone == "":
		errs[FieldPhone] = "Phone number is required"
	case !phonePattern.MatchString(phone):
		errs[FieldPhone] = "Phone number must be exactly 10 digits"
	}

	if c.fields[FieldAddress] == "" {
		errs[FieldAddress] = "Address is required"
	}
	if c.fields[FieldCity] == "" {
		errs[FieldCity] = "City is required"
	}
	if c.fields[FieldCountry] == "" {
		errs[FieldCountry] = "Country is required"
	}

	if c.variant.RequireState && c.fields[FieldState] == "" {
		errs[FieldState] = "State is required"
	}
	if c.variant.RequirePostalCode {
		switch code := c.fields[FieldPostalCode]; {
		case code == "":
			errs[FieldPostalCode] = "Postal code is required"
		case !postalCodePattern.MatchString(code):
			errs[FieldPostalCode] = "Postal code must be exactly 6 digits"
		}
	}

	if c.method == "" {
		errs[fieldPaymentMethod] = "Please select a payment method"
	}

	return errs
}

// Submit runs Validate and, on success, freezes the current field values
// into a DraftOrder. On failure the error map is returned and the collector
// state is untouched so the user can correct individual fields.
func (c *Collector) Submit() (domain.DraftOrder, ErrorMap) {
	errs := c.Validate()
	if len(errs) > 0 {
		c.errors = errs
		return domain.DraftOrder{}, errs
	}

	draft := domain.DraftOrder{
		Customer: domain.Customer{
			FirstName: c.fields[FieldFirstName],
			LastName:  c.fields[FieldLastName],
			Email:     c.fields[FieldEmail],
			Phone:     c.fields[FieldPhone],
		},
		Shipping: domain.ShippingAddress{
			AddressLine1: c.fields[FieldAddress],
			City:         c.fields[FieldCity],
			State:        c.fields[FieldState],
			PostalCode:   c.fields[FieldPostalCode],
			Country:      c.fields[FieldCountry],
		},
		Item:          c.item,
		PaymentMethod: c.method,
		SubmittedAt:   time.Now(),
	}
	return draft, nil
}

// Errors returns the error map from the most recent failed submit.
func (c *Collector) Errors() ErrorMap {
	return c.errors
}
