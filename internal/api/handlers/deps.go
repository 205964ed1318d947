package handlers

import (
	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/checkout"
	"github.com/beyondslim/checkout-api/internal/config"
	"github.com/beyondslim/checkout-api/internal/domain"
	"github.com/beyondslim/checkout-api/internal/order"
	"github.com/beyondslim/checkout-api/internal/payment"
	"github.com/beyondslim/checkout-api/internal/repository"
	"github.com/beyondslim/checkout-api/internal/session"
)

// Deps bundles everything the checkout handlers need.
type Deps struct {
	Cfg       *config.Config
	Repos     *repository.Repositories
	Sessions  *session.Store
	Resolver  *checkout.Resolver
	Finalizer *order.Finalizer
	Gateway   payment.Gateway
	Logger    *zap.Logger
}

// QuoteResponse is the pricing breakdown as the checkout page renders it.
type QuoteResponse struct {
	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currency_symbol"`
	Subtotal       string `json:"subtotal"`
	Discount       string `json:"discount"`
	Shipping       string `json:"shipping"`
	Tax            string `json:"tax"`
	Total          string `json:"total"`
}

func newQuoteResponse(p domain.PricingBreakdown) QuoteResponse {
	return QuoteResponse{
		Currency:       p.Currency,
		CurrencySymbol: p.CurrencySymbol,
		Subtotal:       p.Subtotal.String(),
		Discount:       p.Discount.String(),
		Shipping:       p.Shipping.String(),
		Tax:            p.Tax.String(),
		Total:          p.Total.StringFixed(2),
	}
}

// OrderResponse represents a confirmation record for display surfaces.
type OrderResponse struct {
	OrderNumber       string `json:"order_number"`
	OrderDate         string `json:"order_date"`
	ProductName       string `json:"product_name"`
	Quantity          int    `json:"quantity"`
	TotalAmount       string `json:"total_amount"`
	Currency          string `json:"currency"`
	DiscountApplied   string `json:"discount_applied,omitempty"`
	PaymentMethod     string `json:"payment_method"`
	TransactionID     string `json:"transaction_id"`
	CustomerName      string `json:"customer_name"`
	CustomerEmail     string `json:"customer_email"`
	CustomerPhone     string `json:"customer_phone"`
	ShippingAddress   string `json:"shipping_address"`
	EstimatedDelivery string `json:"estimated_delivery,omitempty"`
	OrderSource       string `json:"order_source,omitempty"`
	CreatedAt         string `json:"created_at"`
}

func newOrderResponse(o domain.OrderConfirmation) OrderResponse {
	return OrderResponse{
		OrderNumber:       o.OrderNumber,
		OrderDate:         o.OrderDate.Format("2006-01-02T15:04:05Z07:00"),
		ProductName:       o.ProductName,
		Quantity:          o.Quantity,
		TotalAmount:       o.TotalAmount.StringFixed(2),
		Currency:          o.Currency,
		DiscountApplied:   o.DiscountApplied.String(),
		PaymentMethod:     o.PaymentMethod,
		TransactionID:     o.TransactionID,
		CustomerName:      o.CustomerName,
		CustomerEmail:     o.CustomerEmail,
		CustomerPhone:     o.CustomerPhone,
		ShippingAddress:   o.ShippingAddress,
		EstimatedDelivery: o.EstimatedDelivery,
		OrderSource:       o.OrderSource,
		CreatedAt:         o.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
