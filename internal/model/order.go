package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Decision string

const (
	DecisionAccepted Decision = "accepted"
	DecisionRejected Decision = "rejected"
)

func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionAccepted, DecisionRejected:
		return Decision(s), nil
	}
	return "", fmt.Errorf("decision must be %q or %q, got %q", DecisionAccepted, DecisionRejected, s)
}

type OrderLineItem struct {
	MenuItemID     string          `json:"menu_item_id,omitempty"`
	Name           string          `json:"name"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Customizations string          `json:"customizations,omitempty"`
}

type CustomerOrder struct {
	ID            string          `json:"order_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Items         []OrderLineItem `json:"items"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentStatus string          `json:"payment_status,omitempty"`
	OrderStatus   string          `json:"order_status"` // pooling, accepted, rejected
	Responded     bool            `json:"responded"`
	FetchedAt     time.Time       `json:"fetched_at"`
}

type CumulativeItem struct {
	ItemName      string `json:"item_name"`
	TotalQuantity int    `json:"total_quantity"`
}

// OrderSnapshot is the result of one successful fetch. It is replaced as a
// whole; only the per-order decision fields change in between.
type OrderSnapshot struct {
	Cumulative []CumulativeItem `json:"cumulative_orders"`
	Individual []CustomerOrder  `json:"individual_orders"`
	FetchedAt  time.Time        `json:"fetched_at"`
}

// FetchResult is what the API client hands over after normalization.
// ServerCumulative is kept as sent so callers can apply the emptiness rule.
type FetchResult struct {
	ServerCumulative []CumulativeItem
	Individual       []CustomerOrder
	Dropped          int
}

type SubmitResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
