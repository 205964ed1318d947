package order

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/beyondslim/checkout-api/internal/domain"
)

func TestFormatForDisplay(t *testing.T) {
	o := domain.OrderConfirmation{
		OrderNumber:   "BYD-123456-789",
		OrderDate:     time.Date(2026, time.January, 5, 10, 30, 0, 0, time.UTC),
		TotalAmount:   decimal.RequireFromString("7182.00"),
		CustomerEmail: "asha.verma@example.com",
		CustomerPhone: "9876543210",
	}

	d := FormatForDisplay(o, "₹")

	assert.Equal(t, "₹ 7182.00", d.FormattedAmount)
	assert.Equal(t, "Monday, 5 January 2026", d.FormattedDate)
	assert.Equal(t, "as***@example.com", d.MaskedEmail)
	assert.Equal(t, "98******10", d.MaskedPhone)
}

func TestFormatForDisplayShortContact(t *testing.T) {
	o := domain.OrderConfirmation{
		TotalAmount:   decimal.Zero,
		CustomerEmail: "a@b.co",
		CustomerPhone: "12",
	}

	d := FormatForDisplay(o, "$")

	// Too short to mask; left as is.
	assert.Equal(t, "a@b.co", d.MaskedEmail)
	assert.Equal(t, "12", d.MaskedPhone)
}

func TestEstimatedDeliverySkipsWeekends(t *testing.T) {
	// Friday 2 January 2026.
	friday := time.Date(2026, time.January, 2, 12, 0, 0, 0, time.UTC)

	next := EstimatedDelivery(friday, 1)
	assert.Equal(t, time.Monday, next.Weekday())
	assert.Equal(t, 5, next.Day())

	week := EstimatedDelivery(friday, 5)
	assert.Equal(t, time.Friday, week.Weekday())
	assert.Equal(t, 9, week.Day())

	seven := EstimatedDelivery(friday, 7)
	assert.Equal(t, time.Tuesday, seven.Weekday())
	assert.Equal(t, 13, seven.Day())
}
