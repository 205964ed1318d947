package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/config"
	"github.com/beyondslim/checkout-api/internal/domain"
	"github.com/beyondslim/checkout-api/internal/repository"
	"github.com/beyondslim/checkout-api/pkg/errors"
)

// Notifier delivers the confirmation message after an order is finalized.
// Delivery is best-effort: the order never waits on it.
type Notifier interface {
	NotifyOrderConfirmed(ctx context.Context, order DisplayOrder)
}

// Finalizer merges a draft order, its pricing and a terminal payment
// outcome into one immutable OrderConfirmation, validates it against the
// record schema and persists it. Runs at most once per successful checkout
// attempt.
type Finalizer struct {
	pricing  config.PricingConfig
	orders   repository.OrderRepository
	notifier Notifier
	logger   *zap.Logger
}

// NewFinalizer creates an order finalizer.
func NewFinalizer(pricing config.PricingConfig, orders repository.OrderRepository, notifier Notifier, logger *zap.Logger) *Finalizer {
	return &Finalizer{
		pricing:  pricing,
		orders:   orders,
		notifier: notifier,
		logger:   logger,
	}
}

// Assemble builds a confirmation record from the pipeline artifacts and
// validates it. Schema validation is a hard gate: a record that fails it is
// rejected, never presented to the user as a confirmed order.
func (f *Finalizer) Assemble(draft domain.DraftOrder, pricing domain.PricingBreakdown, outcome domain.PaymentOutcome) (domain.OrderConfirmation, error) {
	if outcome.Status == domain.PaymentStatusFailed {
		return domain.OrderConfirmation{}, &errors.ErrInvalidStateTransition{
			From: string(domain.PaymentStatusFailed),
			To:   "finalized",
		}
	}

	now := time.Now()
	confirmation := domain.OrderConfirmation{
		ID:              uuid.New(),
		OrderNumber:     GenerateOrderNumber(f.pricing.OrderNumberPrefix),
		OrderDate:       now,
		ProductName:     draft.Item.ProductName,
		Quantity:        draft.Item.Quantity,
		TotalAmount:     pricing.Total,
		Currency:        pricing.Currency,
		DiscountApplied: pricing.Discount,
		PaymentMethod:   outcome.Method.Label(),
		TransactionID:   outcome.TransactionID,
		CustomerName:    draft.Customer.FullName(),
		CustomerEmail:   draft.Customer.Email,
		CustomerPhone:   draft.Customer.Phone,
		ShippingAddress: formatShippingAddress(draft.Shipping),
		EstimatedDelivery: EstimatedDelivery(now, f.pricing.DeliveryBusinessDays).
			Format("Monday, 2 January 2006"),
		OrderSource: "website",
		CreatedAt:   now,
	}

	if ok, violations := ValidateConfirmation(confirmation); !ok {
		return domain.OrderConfirmation{}, &errors.ErrInvalidConfirmation{Violations: violations}
	}
	return confirmation, nil
}

// Finalize assembles, persists and announces the confirmation. The
// time+random order number is not globally unique; the store's unique index
// backstops it and a collision is retried once with a fresh number.
// Notification is fire-and-forget: the caller sees the confirmed order
// regardless of delivery outcome.
func (f *Finalizer) Finalize(ctx context.Context, draft domain.DraftOrder, pricing domain.PricingBreakdown, outcome domain.PaymentOutcome) (domain.OrderConfirmation, error) {
	confirmation, err := f.Assemble(draft, pricing, outcome)
	if err != nil {
		return domain.OrderConfirmation{}, err
	}

	if err := f.orders.Create(ctx, &confirmation); err != nil {
		if _, ok := err.(*errors.ErrDuplicateOrderNumber); !ok {
			return domain.OrderConfirmation{}, err
		}
		f.logger.Warn("Order number collision, regenerating",
			zap.String("order_number", confirmation.OrderNumber))
		confirmation.OrderNumber = GenerateOrderNumber(f.pricing.OrderNumberPrefix)
		if err := f.orders.Create(ctx, &confirmation); err != nil {
			return domain.OrderConfirmation{}, err
		}
	}

	f.logger.Info("Order finalized",
		zap.String("order_number", confirmation.OrderNumber),
		zap.String("payment_method", confirmation.PaymentMethod),
		zap.String("transaction_id", confirmation.TransactionID))

	if f.notifier != nil {
		display := FormatForDisplay(confirmation, pricing.CurrencySymbol)
		go f.notifier.NotifyOrderConfirmed(context.WithoutCancel(ctx), display)
	}

	return confirmation, nil
}

func formatShippingAddress(addr domain.ShippingAddress) string {
	lines := []string{addr.AddressLine1}

	cityLine := addr.City
	if addr.State != "" {
		cityLine += ", " + addr.State
	}
	if addr.PostalCode != "" {
		cityLine += " " + addr.PostalCode
	}
	if cityLine != "" {
		lines = append(lines, cityLine)
	}
	if addr.Country != "" {
		lines = append(lines, addr.Country)
	}
	return strings.Join(lines, "\n")
}
