package payment

import "context"

// GatewaySession is the hosted-checkout session the gateway hands back when
// an order is registered. Everything the checkout page needs to open the
// hosted UI.
type GatewaySession struct {
	GatewayOrderID string
	KeyID          string
	Amount         int64 // minor units
	Currency       string
	Receipt        string
}

// Callback is the payload the hosted gateway UI delivers on completion. It
// must never be trusted until the signature verifies.
type Callback struct {
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

// CustomerPrefill pre-populates the hosted UI with contact details.
type CustomerPrefill struct {
	Name    string
	Email   string
	Contact string
}

// Gateway abstracts the hosted payment gateway. CreateOrder registers a
// session keyed to the resolved total; Verify is the sole source of truth
// for online payment success. Verify returns false when the signature does
// not match and a non-nil error only for transport-level failures, which
// callers treat as retryable.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, prefill CustomerPrefill) (*GatewaySession, error)
	Verify(ctx context.Context, cb Callback) (bool, error)
}
