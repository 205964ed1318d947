package payment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/domain"
	"github.com/beyondslim/checkout-api/pkg/errors"
)

// Dispatcher drives exactly one of two payment strategies to a terminal
// PaymentOutcome for one checkout session. At most one dispatch is in
// flight at a time; dismissing the hosted gateway UI is the only
// cancellation point and rewinds the dispatcher fully to IDLE.
type Dispatcher struct {
	mu        sync.Mutex
	sessionID string
	state     domain.DispatchState
	gateway   Gateway
	logger    *zap.Logger

	gatewaySession *GatewaySession
	outcome        *domain.PaymentOutcome
	failureReason  string
}

// NewDispatcher creates an idle dispatcher for a checkout session.
func NewDispatcher(sessionID string, gateway Gateway, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		sessionID: sessionID,
		state:     domain.DispatchIdle,
		gateway:   gateway,
		logger:    logger,
	}
}

// State returns the current dispatcher state.
func (d *Dispatcher) State() domain.DispatchState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Outcome returns the terminal payment outcome, nil until one exists.
func (d *Dispatcher) Outcome() *domain.PaymentOutcome {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.outcome == nil {
		return nil
	}
	out := *d.outcome
	return &out
}

// FailureReason returns the user-facing reason recorded on FAILED.
func (d *Dispatcher) FailureReason() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.failureReason
}

// StartOnline registers a gateway order for the resolved total and moves to
// AWAITING_GATEWAY. Gateway failures (network, timeout, config) rewind to
// IDLE and are retryable.
func (d *Dispatcher) StartOnline(ctx context.Context, draft domain.DraftOrder, pricing domain.PricingBreakdown, amountMinor int64, receipt string) (*GatewaySession, error) {
	d.mu.Lock()
	if d.state.InFlight() {
		d.mu.Unlock()
		return nil, &errors.ErrDispatchInFlight{SessionID: d.sessionID}
	}
	if !d.state.CanTransitionTo(domain.DispatchAwaitingGateway) {
		from := d.state
		d.mu.Unlock()
		return nil, &errors.ErrInvalidStateTransition{From: string(from), To: string(domain.DispatchAwaitingGateway)}
	}
	d.state = domain.DispatchAwaitingGateway
	d.mu.Unlock()

	prefill := CustomerPrefill{
		Name:    draft.Customer.FullName(),
		Email:   draft.Customer.Email,
		Contact: draft.Customer.Phone,
	}

	session, err := d.gateway.CreateOrder(ctx, amountMinor, pricing.Currency, receipt, prefill)
	if err != nil {
		d.mu.Lock()
		d.state = domain.DispatchIdle
		d.gatewaySession = nil
		d.mu.Unlock()
		d.logger.Error("Failed to create gateway order",
			zap.String("session_id", d.sessionID),
			zap.Error(err))
		return nil, &errors.ErrGatewayUnavailable{Reason: err.Error()}
	}

	d.mu.Lock()
	d.gatewaySession = session
	d.mu.Unlock()

	d.logger.Info("Gateway order created",
		zap.String("session_id", d.sessionID),
		zap.String("gateway_order_id", session.GatewayOrderID),
		zap.Int64("amount_minor", session.Amount),
		zap.String("currency", session.Currency))
	return session, nil
}

// CompleteOnline handles the gateway callback. The signature is verified
// before anything is trusted; only a verified callback yields a PAID
// outcome. A signature mismatch is terminal: the charge may have gone
// through, so the failure reason tells the user to contact support instead
// of silently dropping a paid order. Transport failures during verification
// rewind to AWAITING_GATEWAY so the callback can be retried.
func (d *Dispatcher) CompleteOnline(ctx context.Context, cb Callback) (domain.PaymentOutcome, error) {
	d.mu.Lock()
	if !d.state.CanTransitionTo(domain.DispatchVerifying) {
		from := d.state
		d.mu.Unlock()
		return domain.PaymentOutcome{}, &errors.ErrInvalidStateTransition{From: string(from), To: string(domain.DispatchVerifying)}
	}
	if d.gatewaySession == nil || d.gatewaySession.GatewayOrderID != cb.GatewayOrderID {
		d.mu.Unlock()
		return domain.PaymentOutcome{}, fmt.Errorf("callback order %s does not match the session's gateway order", cb.GatewayOrderID)
	}
	d.state = domain.DispatchVerifying
	d.mu.Unlock()

	ok, err := d.gateway.Verify(ctx, cb)
	if err != nil {
		d.mu.Lock()
		d.state = domain.DispatchAwaitingGateway
		d.mu.Unlock()
		d.logger.Error("Gateway verification call failed",
			zap.String("session_id", d.sessionID),
			zap.String("gateway_order_id", cb.GatewayOrderID),
			zap.Error(err))
		return domain.PaymentOutcome{}, &errors.ErrGatewayUnavailable{Reason: err.Error()}
	}
	if !ok {
		d.mu.Lock()
		d.state = domain.DispatchFailed
		d.failureReason = "Payment successful but verification failed. Please contact support."
		d.mu.Unlock()
		d.logger.Error("Gateway signature verification failed",
			zap.String("session_id", d.sessionID),
			zap.String("gateway_order_id", cb.GatewayOrderID))
		return domain.PaymentOutcome{}, &errors.ErrVerificationFailed{GatewayOrderID: cb.GatewayOrderID}
	}

	outcome := domain.PaymentOutcome{
		Method:         domain.PaymentMethodOnline,
		TransactionID:  cb.GatewayPaymentID,
		GatewayOrderID: cb.GatewayOrderID,
		Status:         domain.PaymentStatusPaid,
		Timestamp:      time.Now(),
	}

	d.mu.Lock()
	d.state = domain.DispatchSucceeded
	d.outcome = &outcome
	d.mu.Unlock()

	d.logger.Info("Online payment verified",
		zap.String("session_id", d.sessionID),
		zap.String("transaction_id", outcome.TransactionID))
	return outcome, nil
}

// RecordCOD synthesizes a local cash-on-delivery reference and succeeds
// immediately. Cash is not yet collected, so the outcome is PENDING.
func (d *Dispatcher) RecordCOD() (domain.PaymentOutcome, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state.InFlight() {
		return domain.PaymentOutcome{}, &errors.ErrDispatchInFlight{SessionID: d.sessionID}
	}
	if !d.state.CanTransitionTo(domain.DispatchRecording) {
		return domain.PaymentOutcome{}, &errors.ErrInvalidStateTransition{From: string(d.state), To: string(domain.DispatchRecording)}
	}
	d.state = domain.DispatchRecording

	outcome := domain.PaymentOutcome{
		Method:        domain.PaymentMethodCashOnDelivery,
		TransactionID: fmt.Sprintf("COD-%d", time.Now().UnixMilli()),
		Status:        domain.PaymentStatusPending,
		Timestamp:     time.Now(),
	}

	d.state = domain.DispatchSucceeded
	d.outcome = &outcome

	d.logger.Info("COD order recorded",
		zap.String("session_id", d.sessionID),
		zap.String("transaction_id", outcome.TransactionID))
	return outcome, nil
}

// Cancel handles the user dismissing the hosted gateway UI. The dispatcher
// rewinds fully to IDLE with no residual outcome so the attempt can be
// retried without resubmitting the form. Benign: no error is surfaced to
// the user.
func (d *Dispatcher) Cancel() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.state.CanTransitionTo(domain.DispatchIdle) {
		return &errors.ErrInvalidStateTransition{From: string(d.state), To: string(domain.DispatchIdle)}
	}
	d.state = domain.DispatchIdle
	d.gatewaySession = nil
	d.outcome = nil
	d.failureReason = ""

	d.logger.Info("Gateway checkout dismissed, dispatcher reset",
		zap.String("session_id", d.sessionID))
	return nil
}
