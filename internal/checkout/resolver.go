package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/beyondslim/checkout-api/internal/config"
	"github.com/beyondslim/checkout-api/internal/domain"
)

// Resolver maps (line item, payment method, shipping country) to a
// PricingBreakdown. Resolution is pure: no I/O, no hidden state, safe to
// call on every input change.
type Resolver struct {
	discountRate decimal.Decimal
	shippingFlat decimal.Decimal
	taxFlat      decimal.Decimal
	baseCurrency string
}

// NewResolver builds a resolver from the configured pricing rules. The
// online discount applies only when the payment method is ONLINE.
func NewResolver(cfg config.PricingConfig) *Resolver {
	return &Resolver{
		discountRate: decimal.NewFromInt(int64(cfg.OnlineDiscountPct)).Div(decimal.NewFromInt(100)),
		shippingFlat: decimal.NewFromFloat(cfg.ShippingFlat),
		taxFlat:      decimal.NewFromFloat(cfg.TaxFlat),
		baseCurrency: cfg.BaseCurrency,
	}
}

// Resolve computes the pricing breakdown in the display currency of the
// shipping country. Conversion applies to the already-discounted subtotal
// so repeated per-line conversion cannot introduce rounding drift; only the
// final total is rounded, to two decimal places.
func (r *Resolver) Resolve(item domain.LineItem, method domain.PaymentMethod, country string) domain.PricingBreakdown {
	quantity := item.Quantity
	if quantity < 1 {
		quantity = 1
	}

	currency := CurrencyForCountry(country, r.baseCurrency)

	subtotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))

	discount := decimal.Zero
	if method == domain.PaymentMethodOnline {
		discount = subtotal.Mul(r.discountRate)
	}

	converted := subtotal.Sub(discount).Mul(currency.Rate)
	shipping := r.shippingFlat.Mul(currency.Rate)
	tax := r.taxFlat.Mul(currency.Rate)

	total := converted.Add(shipping).Add(tax).Round(2)
	if total.IsNegative() {
		total = decimal.Zero.Round(2)
	}

	return domain.PricingBreakdown{
		Currency:       currency.Code,
		CurrencySymbol: currency.Symbol,
		Subtotal:       subtotal.Mul(currency.Rate),
		Discount:       discount.Mul(currency.Rate),
		Shipping:       shipping,
		Tax:            tax,
		Total:          total,
	}
}

// MinorUnits converts a display-currency total to the smallest currency
// unit, as the payment gateway expects.
func MinorUnits(total decimal.Decimal) int64 {
	return total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
