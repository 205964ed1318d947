package payment

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/domain"
	"github.com/beyondslim/checkout-api/pkg/errors"
)

type fakeGateway struct {
	createErr   error
	verifyOK    bool
	verifyErr   error
	createCalls int
	verifyCalls int
}

func (f *fakeGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string, _ CustomerPrefill) (*GatewaySession, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &GatewaySession{
		GatewayOrderID: "order_test123",
		KeyID:          "rzp_test_key",
		Amount:         amount,
		Currency:       currency,
		Receipt:        receipt,
	}, nil
}

func (f *fakeGateway) Verify(_ context.Context, _ Callback) (bool, error) {
	f.verifyCalls++
	return f.verifyOK, f.verifyErr
}

func testDraft() domain.DraftOrder {
	return domain.DraftOrder{
		Customer: domain.Customer{
			FirstName: "Asha",
			LastName:  "Verma",
			Email:     "asha.verma@example.com",
			Phone:     "9876543210",
		},
		Shipping: domain.ShippingAddress{
			AddressLine1: "42 MG Road",
			City:         "Pune",
			Country:      "India",
		},
		Item: domain.LineItem{
			ProductName: "Beyond Slim Slimming Oil",
			UnitPrice:   decimal.NewFromInt(3990),
			Quantity:    1,
		},
		PaymentMethod: domain.PaymentMethodOnline,
	}
}

func testPricing() domain.PricingBreakdown {
	return domain.PricingBreakdown{
		Currency:       "INR",
		CurrencySymbol: "₹",
		Total:          decimal.RequireFromString("3591.00"),
	}
}

func TestRecordCOD(t *testing.T) {
	d := NewDispatcher("sess-1", &fakeGateway{}, zap.NewNop())

	outcome, err := d.RecordCOD()
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentMethodCashOnDelivery, outcome.Method)
	assert.Equal(t, domain.PaymentStatusPending, outcome.Status)
	assert.True(t, strings.HasPrefix(outcome.TransactionID, "COD-"))
	assert.Equal(t, domain.DispatchSucceeded, d.State())
	require.NotNil(t, d.Outcome())

	// A completed dispatcher refuses a second attempt.
	_, err = d.RecordCOD()
	var transition *errors.ErrInvalidStateTransition
	assert.ErrorAs(t, err, &transition)
}

func TestStartOnline(t *testing.T) {
	gw := &fakeGateway{}
	d := NewDispatcher("sess-1", gw, zap.NewNop())

	session, err := d.StartOnline(context.Background(), testDraft(), testPricing(), 359100, "BYD_order_000001")
	require.NoError(t, err)

	assert.Equal(t, "order_test123", session.GatewayOrderID)
	assert.Equal(t, int64(359100), session.Amount)
	assert.Equal(t, domain.DispatchAwaitingGateway, d.State())
	assert.Nil(t, d.Outcome())
}

func TestStartOnlineAtMostOneInFlight(t *testing.T) {
	d := NewDispatcher("sess-1", &fakeGateway{}, zap.NewNop())

	_, err := d.StartOnline(context.Background(), testDraft(), testPricing(), 359100, "r1")
	require.NoError(t, err)

	_, err = d.StartOnline(context.Background(), testDraft(), testPricing(), 359100, "r2")
	var inFlight *errors.ErrDispatchInFlight
	require.ErrorAs(t, err, &inFlight)
	assert.Equal(t, "sess-1", inFlight.SessionID)

	_, err = d.RecordCOD()
	assert.ErrorAs(t, err, &inFlight)
}

func TestStartOnlineGatewayFailureRewinds(t *testing.T) {
	gw := &fakeGateway{createErr: stderrors.New("connection refused")}
	d := NewDispatcher("sess-1", gw, zap.NewNop())

	_, err := d.StartOnline(context.Background(), testDraft(), testPricing(), 359100, "r1")
	var unavailable *errors.ErrGatewayUnavailable
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, domain.DispatchIdle, d.State())

	// The rewind leaves the dispatcher retryable.
	gw.createErr = nil
	_, err = d.StartOnline(context.Background(), testDraft(), testPricing(), 359100, "r1")
	assert.NoError(t, err)
	assert.Equal(t, 2, gw.createCalls)
}

func TestCompleteOnlineVerified(t *testing.T) {
	gw := &fakeGateway{verifyOK: true}
	d := NewDispatcher("sess-1", gw, zap.NewNop())

	_, err := d.StartOnline(context.Background(), testDraft(), testPricing(), 359100, "r1")
	require.NoError(t, err)

	outcome, err := d.CompleteOnline(context.Background(), Callback{
		GatewayOrderID:   "order_test123",
		GatewayPaymentID: "pay_abc",
		Signature:        "sig",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentMethodOnline, outcome.Method)
	assert.Equal(t, domain.PaymentStatusPaid, outcome.Status)
	assert.Equal(t, "pay_abc", outcome.TransactionID)
	assert.Equal(t, "order_test123", outcome.GatewayOrderID)
	assert.Equal(t, domain.DispatchSucceeded, d.State())
}

func TestCompleteOnlineSignatureMismatch(t *testing.T) {
	gw := &fakeGateway{verifyOK: false}
	d := NewDispatcher("sess-1", gw, zap.NewNop())

	_, err := d.StartOnline(context.Background(), testDraft(), testPricing(), 359100, "r1")
	require.NoError(t, err)

	_, err = d.CompleteOnline(context.Background(), Callback{GatewayOrderID: "order_test123"})
	var failed *errors.ErrVerificationFailed
	require.ErrorAs(t, err, &failed)

	assert.Equal(t, domain.DispatchFailed, d.State())
	assert.Nil(t, d.Outcome())
	assert.Contains(t, d.FailureReason(), "contact support")

	// FAILED is terminal.
	_, err = d.CompleteOnline(context.Background(), Callback{GatewayOrderID: "order_test123"})
	var transition *errors.ErrInvalidStateTransition
	assert.ErrorAs(t, err, &transition)
}

func TestCompleteOnlineTransportErrorRetryable(t *testing.T) {
	gw := &fakeGateway{verifyErr: stderrors.New("timeout")}
	d := NewDispatcher("sess-1", gw, zap.NewNop())

	_, err := d.StartOnline(context.Background(), testDraft(), testPricing(), 359100, "r1")
	require.NoError(t, err)

	cb := Callback{GatewayOrderID: "order_test123", GatewayPaymentID: "pay_abc"}
	_, err = d.CompleteOnline(context.Background(), cb)
	var unavailable *errors.ErrGatewayUnavailable
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, domain.DispatchAwaitingGateway, d.State())

	gw.verifyErr = nil
	gw.verifyOK = true
	outcome, err := d.CompleteOnline(context.Background(), cb)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, outcome.Status)
}

func TestCompleteOnlineMismatchedOrder(t *testing.T) {
	d := NewDispatcher("sess-1", &fakeGateway{verifyOK: true}, zap.NewNop())

	_, err := d.StartOnline(context.Background(), testDraft(), testPricing(), 359100, "r1")
	require.NoError(t, err)

	_, err = d.CompleteOnline(context.Background(), Callback{GatewayOrderID: "order_other"})
	assert.Error(t, err)
	assert.Equal(t, domain.DispatchAwaitingGateway, d.State())
}

func TestCompleteOnlineWithoutStart(t *testing.T) {
	d := NewDispatcher("sess-1", &fakeGateway{}, zap.NewNop())

	_, err := d.CompleteOnline(context.Background(), Callback{GatewayOrderID: "order_test123"})
	var transition *errors.ErrInvalidStateTransition
	assert.ErrorAs(t, err, &transition)
}

func TestCancelRewindsToIdle(t *testing.T) {
	d := NewDispatcher("sess-1", &fakeGateway{}, zap.NewNop())

	_, err := d.StartOnline(context.Background(), testDraft(), testPricing(), 359100, "r1")
	require.NoError(t, err)

	require.NoError(t, d.Cancel())
	assert.Equal(t, domain.DispatchIdle, d.State())
	assert.Nil(t, d.Outcome())
	assert.Empty(t, d.FailureReason())

	// Cancelling an idle dispatcher has nothing to rewind.
	assert.Error(t, d.Cancel())

	// A fresh attempt after cancellation works without resubmitting.
	_, err = d.StartOnline(context.Background(), testDraft(), testPricing(), 359100, "r2")
	assert.NoError(t, err)
}

func TestCancelAfterSuccessRejected(t *testing.T) {
	d := NewDispatcher("sess-1", &fakeGateway{}, zap.NewNop())

	_, err := d.RecordCOD()
	require.NoError(t, err)

	assert.Error(t, d.Cancel())
	assert.Equal(t, domain.DispatchSucceeded, d.State())
	assert.NotNil(t, d.Outcome())
}
