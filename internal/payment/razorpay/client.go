package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/config"
	"github.com/beyondslim/checkout-api/internal/payment"
)

// Client talks to the hosted Razorpay gateway. Order registration goes over
// HTTPS with basic auth; callback verification is an HMAC check against the
// key secret, which is the gateway's documented trust contract.
type Client struct {
	keyID     string
	keySecret string
	http      *resty.Client
	logger    *zap.Logger
}

// NewClient creates a gateway client from configuration.
func NewClient(cfg config.GatewayConfig, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetBasicAuth(cfg.KeyID, cfg.KeySecret).
		SetTimeout(30 * time.Second)

	return &Client{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		http:      httpClient,
		logger:    logger,
	}
}

type orderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder registers a gateway order keyed to the resolved total in
// minor units.
func (c *Client) CreateOrder(ctx context.Context, amount int64, currency, receipt string, prefill payment.CustomerPrefill) (*payment.GatewaySession, error) {
	body := orderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Notes: map[string]string{
			"customer_name":  prefill.Name,
			"customer_email": prefill.Email,
			"contact":        prefill.Contact,
		},
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(body).
		Post("/v1/orders")
	if err != nil {
		return nil, fmt.Errorf("gateway order request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("gateway order request failed with status %d: %s", resp.StatusCode(), resp.Body())
	}

	var order orderResponse
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return nil, fmt.Errorf("failed to parse gateway order response: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("gateway order response missing order id: %s", resp.Body())
	}

	c.logger.Info("Gateway order registered",
		zap.String("gateway_order_id", order.ID),
		zap.String("receipt", receipt))

	return &payment.GatewaySession{
		GatewayOrderID: order.ID,
		KeyID:          c.keyID,
		Amount:         order.Amount,
		Currency:       order.Currency,
		Receipt:        receipt,
	}, nil
}

// Verify checks the callback signature: HMAC-SHA256 over
// "<order_id>|<payment_id>" with the key secret. No network round trip is
// needed; the secret never left the server, so a matching signature is
// proof the callback came from the gateway.
func (c *Client) Verify(_ context.Context, cb payment.Callback) (bool, error) {
	mac := hmac.New(sha256.New, []byte(c.keySecret))
	mac.Write([]byte(cb.GatewayOrderID + "|" + cb.GatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(cb.Signature)) == 1, nil
}
