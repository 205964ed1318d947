package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/beyondslim/checkout-api/internal/config"
)

// FormRelay posts the message to a hosted form-relay inbox. It is the
// fallback channel when SMTP delivery fails: the relay accepts a JSON
// payload and forwards it to the configured inbox address.
type FormRelay struct {
	inbox string
	http  *resty.Client
}

// NewFormRelay creates the form-relay delivery strategy.
func NewFormRelay(cfg config.FormRelayConfig) *FormRelay {
	return &FormRelay{
		inbox: cfg.Inbox,
		http: resty.New().
			SetBaseURL(cfg.Endpoint).
			SetTimeout(15 * time.Second),
	}
}

func (f *FormRelay) Name() string { return "form-relay" }

func (f *FormRelay) Deliver(ctx context.Context, msg Message) error {
	if f.inbox == "" {
		return fmt.Errorf("form relay inbox is not configured")
	}

	resp, err := f.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(map[string]string{
			"_subject":  msg.Subject,
			"_template": "table",
			"_captcha":  "false",
			"message":   msg.Body,
		}).
		Post("/" + f.inbox)
	if err != nil {
		return fmt.Errorf("form relay request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("form relay returned status %d", resp.StatusCode())
	}

	var result struct {
		Success string `json:"success"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return fmt.Errorf("failed to parse form relay response: %w", err)
	}
	if result.Success != "true" {
		return fmt.Errorf("form relay rejected the message")
	}
	return nil
}
