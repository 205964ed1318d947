package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/beyondslim/checkout-api/internal/config"
	"github.com/beyondslim/checkout-api/internal/domain"
)

func testPricingConfig() config.PricingConfig {
	return config.PricingConfig{
		OnlineDiscountPct: 10,
		ShippingFlat:      0,
		TaxFlat:           0,
		BaseCurrency:      "INR",
	}
}

func TestResolveOnlineDiscount(t *testing.T) {
	r := NewResolver(testPricingConfig())
	item := domain.LineItem{UnitPrice: decimal.NewFromInt(3990), Quantity: 2}

	p := r.Resolve(item, domain.PaymentMethodOnline, "India")

	assert.Equal(t, "INR", p.Currency)
	assert.Equal(t, "7980", p.Subtotal.String())
	assert.Equal(t, "798", p.Discount.String())
	assert.Equal(t, "7182.00", p.Total.StringFixed(2))
}

func TestResolveCODNoDiscount(t *testing.T) {
	r := NewResolver(testPricingConfig())
	item := domain.LineItem{UnitPrice: decimal.NewFromInt(3990), Quantity: 1}

	p := r.Resolve(item, domain.PaymentMethodCashOnDelivery, "India")

	assert.True(t, p.Discount.IsZero())
	assert.Equal(t, "3990.00", p.Total.StringFixed(2))
}

func TestResolveCurrencyConversion(t *testing.T) {
	r := NewResolver(testPricingConfig())
	item := domain.LineItem{UnitPrice: decimal.NewFromInt(3990), Quantity: 2}

	p := r.Resolve(item, domain.PaymentMethodOnline, "United States")

	// (7980 - 798) * 0.012, rounded once at the end.
	assert.Equal(t, "USD", p.Currency)
	assert.Equal(t, "$", p.CurrencySymbol)
	assert.Equal(t, "86.18", p.Total.StringFixed(2))
}

func TestResolveUnknownCountryFallsBack(t *testing.T) {
	r := NewResolver(testPricingConfig())
	item := domain.LineItem{UnitPrice: decimal.NewFromInt(3990), Quantity: 1}

	p := r.Resolve(item, domain.PaymentMethodCashOnDelivery, "Atlantis")

	assert.Equal(t, "INR", p.Currency)
	assert.Equal(t, "3990.00", p.Total.StringFixed(2))
}

func TestResolveDeterministic(t *testing.T) {
	r := NewResolver(testPricingConfig())
	item := domain.LineItem{UnitPrice: decimal.NewFromInt(3990), Quantity: 3}

	first := r.Resolve(item, domain.PaymentMethodOnline, "United Kingdom")
	second := r.Resolve(item, domain.PaymentMethodOnline, "United Kingdom")

	assert.True(t, first.Total.Equal(second.Total))
	assert.True(t, first.Discount.Equal(second.Discount))
	assert.Equal(t, first.Currency, second.Currency)
}

func TestResolveFlatFeesConverted(t *testing.T) {
	cfg := testPricingConfig()
	cfg.ShippingFlat = 100
	cfg.TaxFlat = 50
	r := NewResolver(cfg)
	item := domain.LineItem{UnitPrice: decimal.NewFromInt(3990), Quantity: 1}

	p := r.Resolve(item, domain.PaymentMethodCashOnDelivery, "India")

	assert.Equal(t, "100", p.Shipping.String())
	assert.Equal(t, "50", p.Tax.String())
	assert.Equal(t, "4140.00", p.Total.StringFixed(2))
}

func TestResolveQuantityFloor(t *testing.T) {
	r := NewResolver(testPricingConfig())
	item := domain.LineItem{UnitPrice: decimal.NewFromInt(3990), Quantity: 0}

	p := r.Resolve(item, domain.PaymentMethodCashOnDelivery, "India")
	assert.Equal(t, "3990.00", p.Total.StringFixed(2))
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(718200), MinorUnits(decimal.RequireFromString("7182.00")))
	assert.Equal(t, int64(8618), MinorUnits(decimal.RequireFromString("86.18")))
}

func TestCurrencyForCountryKnown(t *testing.T) {
	info := CurrencyForCountry("Japan", "INR")
	assert.Equal(t, "JPY", info.Code)
	assert.Equal(t, "¥", info.Symbol)
}

func TestSymbolForCurrency(t *testing.T) {
	assert.Equal(t, "£", SymbolForCurrency("GBP"))
	assert.Equal(t, "₹", SymbolForCurrency("XXX"))
}
