package notify

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/order"
)

// Message is a rendered notification ready for delivery.
type Message struct {
	Recipient string
	Subject   string
	Body      string
}

// DeliveryStrategy is one way of getting a message out. Strategies are
// tried in order; the first success wins.
type DeliveryStrategy interface {
	Name() string
	Deliver(ctx context.Context, msg Message) error
}

// Notifier runs an ordered list of delivery strategies. Every failure is
// logged; none is ever surfaced to the end user, and a fully failed
// delivery never rolls back the confirmed order.
type Notifier struct {
	strategies []DeliveryStrategy
	logger     *zap.Logger
}

// NewNotifier creates a notifier over the given strategies.
func NewNotifier(logger *zap.Logger, strategies ...DeliveryStrategy) *Notifier {
	return &Notifier{
		strategies: strategies,
		logger:     logger,
	}
}

// Deliver attempts each strategy in order until one succeeds.
func (n *Notifier) Deliver(ctx context.Context, msg Message) error {
	var lastErr error
	for _, strategy := range n.strategies {
		err := strategy.Deliver(ctx, msg)
		if err == nil {
			n.logger.Info("Notification delivered",
				zap.String("strategy", strategy.Name()),
				zap.String("recipient", msg.Recipient))
			return nil
		}
		lastErr = err
		n.logger.Warn("Notification delivery failed, trying next channel",
			zap.String("strategy", strategy.Name()),
			zap.Error(err))
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no delivery strategies configured")
	}
	return fmt.Errorf("all notification channels failed: %w", lastErr)
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`Dear {{.CustomerName}},

Thank you for your order!

Order Details:
Order Number: {{.OrderNumber}}
Product: {{.ProductName}}
Quantity: {{.Quantity}}
Total: {{.FormattedAmount}}
Estimated Delivery: {{.EstimatedDelivery}}

Customer Information:
Name: {{.CustomerName}}
Email: {{.CustomerEmail}}
Phone: {{.CustomerPhone}}
Address: {{.ShippingAddress}}

Payment Information:
Method: {{.PaymentMethod}}
Transaction ID: {{.TransactionID}}

Your order will be processed soon. For any questions, please contact our support team.
`))

// NotifyOrderConfirmed renders and delivers the confirmation message for a
// finalized order. Satisfies the finalizer's Notifier contract.
func (n *Notifier) NotifyOrderConfirmed(ctx context.Context, o order.DisplayOrder) {
	var body bytes.Buffer
	if err := confirmationTemplate.Execute(&body, o); err != nil {
		n.logger.Error("Failed to render confirmation message",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err))
		return
	}

	msg := Message{
		Recipient: o.CustomerEmail,
		Subject:   fmt.Sprintf("Order Confirmation - %s", o.ProductName),
		Body:      body.String(),
	}
	if err := n.Deliver(ctx, msg); err != nil {
		n.logger.Error("Confirmation notification undelivered",
			zap.String("order_number", o.OrderNumber),
			zap.Error(err))
	}
}
