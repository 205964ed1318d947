package order

import (
	"fmt"
	"regexp"
	"time"

	"github.com/beyondslim/checkout-api/internal/domain"
)

// DisplayOrder is the confirmation record plus the computed presentation
// fields the confirmation page and the notification message both use.
type DisplayOrder struct {
	domain.OrderConfirmation
	FormattedAmount string
	FormattedDate   string
	MaskedEmail     string
	MaskedPhone     string
}

var (
	emailMask = regexp.MustCompile(`^(.{2})(.*)(@.*)$`)
	phoneMask = regexp.MustCompile(`^(.{2})(.*)(.{2})$`)
)

// FormatForDisplay decorates a confirmation with masked contact details and
// human-formatted amount and date.
func FormatForDisplay(o domain.OrderConfirmation, currencySymbol string) DisplayOrder {
	return DisplayOrder{
		OrderConfirmation: o,
		FormattedAmount:   fmt.Sprintf("%s %s", currencySymbol, o.TotalAmount.StringFixed(2)),
		FormattedDate:     o.OrderDate.Format("Monday, 2 January 2006"),
		MaskedEmail:       emailMask.ReplaceAllString(o.CustomerEmail, "$1***$3"),
		MaskedPhone:       phoneMask.ReplaceAllString(o.CustomerPhone, "$1******$3"),
	}
}

// EstimatedDelivery walks forward the given number of business days from
// the order date, skipping weekends.
func EstimatedDelivery(orderDate time.Time, businessDays int) time.Time {
	date := orderDate
	added := 0
	for added < businessDays {
		date = date.AddDate(0, 0, 1)
		if wd := date.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return date
}
