package view

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatPrice renders an amount in paise as rupees.
func FormatPrice(paise decimal.Decimal) string {
	return "₹" + paise.Div(hundred).StringFixed(2)
}

// FormatPhone adds the +91 country prefix unless present; empty is "N/A".
func FormatPhone(phone string) string {
	switch {
	case phone == "":
		return "N/A"
	case strings.HasPrefix(phone, "+91"):
		return phone
	default:
		return "+91-" + phone
	}
}

func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "Just now"
	}
	return t.Local().Format("Jan 2, 2006, 3:04 PM")
}
