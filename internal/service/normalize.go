package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"ownerconsole/internal/model"
)

var ErrMalformedOrder = errors.New("order has neither id nor order_id")

const defaultOrderStatus = "pooling"

// flexID decodes an identifier sent either as a JSON string or a number.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type wireLineItem struct {
	MenuItemID     flexID           `json:"menu_item_id"`
	Name           string           `json:"name"`
	Quantity       *int             `json:"quantity"`
	UnitPrice      *decimal.Decimal `json:"unit_price"`
	Subtotal       *decimal.Decimal `json:"subtotal"`
	Customizations *string          `json:"customizations"`
}

// wireOrder is every shape the platform has used for a pooled order.
type wireOrder struct {
	ID            flexID           `json:"id"`
	OrderID       flexID           `json:"order_id"`
	CustomerName  *string          `json:"customer_name"`
	CustomerPhone *string          `json:"customer_phone"`
	Items         []wireLineItem   `json:"items"`
	Total         *decimal.Decimal `json:"total"`
	TotalAmount   *decimal.Decimal `json:"total_amount"`
	PaymentStatus *string          `json:"payment_status"`
	OrderStatus   *string          `json:"order_status"`
	Status        *string          `json:"status"`
	Responded     bool             `json:"responded"`
	FetchedAt     *string          `json:"fetched_at"`
}

// NormalizeOrder maps a platform order onto model.CustomerOrder. id wins
// over order_id, a non-zero total over total_amount, order_status over
// status. Orders without any identifier yield ErrMalformedOrder.
func NormalizeOrder(w wireOrder) (model.CustomerOrder, error) {
	id := strings.TrimSpace(string(w.ID))
	if id == "" {
		id = strings.TrimSpace(string(w.OrderID))
	}
	if id == "" {
		return model.CustomerOrder{}, ErrMalformedOrder
	}

	o := model.CustomerOrder{
		ID:            id,
		CustomerName:  deref(w.CustomerName),
		CustomerPhone: phone(deref(w.CustomerPhone)),
		PaymentStatus: deref(w.PaymentStatus),
		OrderStatus:   firstNonEmpty(deref(w.OrderStatus), deref(w.Status), defaultOrderStatus),
		Responded:     w.Responded,
		TotalAmount:   amount(w.Total, w.TotalAmount),
		Items:         make([]model.OrderLineItem, 0, len(w.Items)),
	}

	if w.FetchedAt != nil && *w.FetchedAt != "" {
		t, err := model.ParseTimestamp(*w.FetchedAt)
		if err != nil {
			slog.Debug("ignoring fetched_at", "order_id", id, "error", err)
		} else {
			o.FetchedAt = t
		}
	}

	for _, it := range w.Items {
		o.Items = append(o.Items, it.normalize())
	}

	return o, nil
}

func (it wireLineItem) normalize() model.OrderLineItem {
	li := model.OrderLineItem{
		MenuItemID:     string(it.MenuItemID),
		Name:           it.Name,
		Customizations: deref(it.Customizations),
	}
	if it.Quantity != nil && *it.Quantity > 0 {
		li.Quantity = *it.Quantity
	}
	if it.UnitPrice != nil {
		li.UnitPrice = *it.UnitPrice
	}
	if it.Subtotal != nil {
		li.Subtotal = *it.Subtotal
	}
	return li
}

type wireHistoryOrder struct {
	OrderID       flexID                 `json:"order_id"`
	CustomerName  *string                `json:"customer_name"`
	CustomerPhone *string                `json:"customer_phone"`
	Items         []wireLineItem         `json:"items"`
	TotalAmount   *decimal.Decimal       `json:"total_amount"`
	PaymentStatus *string                `json:"payment_status"`
	OrderStatus   *string                `json:"order_status"`
	CreatedAt     model.Timestamp        `json:"created_at"`
	Response      *model.HistoryResponse `json:"response"`
}

func (w wireHistoryOrder) normalize() model.HistoryOrder {
	h := model.HistoryOrder{
		OrderID:       string(w.OrderID),
		CustomerName:  deref(w.CustomerName),
		CustomerPhone: phone(deref(w.CustomerPhone)),
		TotalAmount:   amount(nil, w.TotalAmount),
		PaymentStatus: deref(w.PaymentStatus),
		OrderStatus:   deref(w.OrderStatus),
		CreatedAt:     w.CreatedAt,
		Response:      w.Response,
	}
	for _, it := range w.Items {
		h.Items = append(h.Items, it.normalize())
	}
	return h
}

func amount(primary, secondary *decimal.Decimal) decimal.Decimal {
	if primary != nil && !primary.IsZero() {
		return *primary
	}
	if secondary != nil {
		return *secondary
	}
	return decimal.Zero
}

// phone drops the platform's "N/A" placeholder so callers see a missing
// number as empty.
func phone(p string) string {
	p = strings.TrimSpace(p)
	if strings.EqualFold(p, "N/A") {
		return ""
	}
	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
