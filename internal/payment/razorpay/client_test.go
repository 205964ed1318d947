package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/config"
	"github.com/beyondslim/checkout-api/internal/payment"
)

func testClient(baseURL string) *Client {
	return NewClient(config.GatewayConfig{
		BaseURL:   baseURL,
		KeyID:     "rzp_test_key",
		KeySecret: "secret",
	}, zap.NewNop())
}

func signCallback(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "secret", pass)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(718200), body["amount"])
		assert.Equal(t, "INR", body["currency"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"order_live1","amount":718200,"currency":"INR","receipt":"BYD_order_000001","status":"created"}`))
	}))
	defer srv.Close()

	session, err := testClient(srv.URL).CreateOrder(context.Background(), 718200, "INR", "BYD_order_000001", payment.CustomerPrefill{
		Name:    "Asha Verma",
		Email:   "asha.verma@example.com",
		Contact: "9876543210",
	})
	require.NoError(t, err)

	assert.Equal(t, "order_live1", session.GatewayOrderID)
	assert.Equal(t, "rzp_test_key", session.KeyID)
	assert.Equal(t, int64(718200), session.Amount)
	assert.Equal(t, "INR", session.Currency)
	assert.Equal(t, "BYD_order_000001", session.Receipt)
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateOrder(context.Background(), 100, "INR", "r1", payment.CustomerPrefill{})
	assert.Error(t, err)
}

func TestCreateOrderMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"created"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).CreateOrder(context.Background(), 100, "INR", "r1", payment.CustomerPrefill{})
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	c := testClient("http://gateway.invalid")

	cb := payment.Callback{
		GatewayOrderID:   "order_live1",
		GatewayPaymentID: "pay_abc",
		Signature:        signCallback("secret", "order_live1", "pay_abc"),
	}
	ok, err := c.Verify(context.Background(), cb)
	require.NoError(t, err)
	assert.True(t, ok)

	cb.Signature = signCallback("wrong-secret", "order_live1", "pay_abc")
	ok, err = c.Verify(context.Background(), cb)
	require.NoError(t, err)
	assert.False(t, ok)

	cb.Signature = ""
	ok, err = c.Verify(context.Background(), cb)
	require.NoError(t, err)
	assert.False(t, ok)
}
