package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/checkout"
	"github.com/beyondslim/checkout-api/internal/domain"
	"github.com/beyondslim/checkout-api/internal/payment"
	"github.com/beyondslim/checkout-api/pkg/errors"
)

type nopGateway struct{}

func (nopGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string, _ payment.CustomerPrefill) (*payment.GatewaySession, error) {
	return &payment.GatewaySession{GatewayOrderID: "order_x", Amount: amount, Currency: currency, Receipt: receipt}, nil
}

func (nopGateway) Verify(context.Context, payment.Callback) (bool, error) { return true, nil }

func catalogItem() domain.LineItem {
	return domain.LineItem{
		ProductName: "Beyond Slim Slimming Oil",
		UnitPrice:   decimal.NewFromInt(3990),
		Quantity:    1,
	}
}

func TestStoreOpenGet(t *testing.T) {
	st := NewStore(45*time.Minute, zap.NewNop())
	defer st.Close()

	sess := st.Open(catalogItem(), checkout.Variant{}, nopGateway{})
	require.NotNil(t, sess.Collector)
	require.NotNil(t, sess.Dispatcher)
	assert.Equal(t, domain.DispatchIdle, sess.Dispatcher.State())

	got, err := st.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
}

func TestStoreGetUnknown(t *testing.T) {
	st := NewStore(45*time.Minute, zap.NewNop())
	defer st.Close()

	_, err := st.Get(uuid.New())
	var notFound *errors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "checkout session", notFound.Resource)
}

func TestStoreRemove(t *testing.T) {
	st := NewStore(45*time.Minute, zap.NewNop())
	defer st.Close()

	sess := st.Open(catalogItem(), checkout.Variant{}, nopGateway{})
	st.Remove(sess.ID)

	_, err := st.Get(sess.ID)
	assert.Error(t, err)
}

func TestStoreSessionsIsolated(t *testing.T) {
	st := NewStore(45*time.Minute, zap.NewNop())
	defer st.Close()

	a := st.Open(catalogItem(), checkout.Variant{}, nopGateway{})
	b := st.Open(catalogItem(), checkout.Variant{}, nopGateway{})

	a.Collector.UpdateField(checkout.FieldFirstName, "Asha")
	assert.Empty(t, b.Collector.Field(checkout.FieldFirstName))

	_, err := a.Dispatcher.RecordCOD()
	require.NoError(t, err)
	assert.Equal(t, domain.DispatchIdle, b.Dispatcher.State())
}
