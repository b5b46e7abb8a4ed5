package model

import "github.com/shopspring/decimal"

type HistoryResponse struct {
	OverallStatus string    `json:"overall_status"`
	RespondedAt   Timestamp `json:"responded_at"`
}

type HistoryOrder struct {
	OrderID       string           `json:"order_id"`
	CustomerName  string           `json:"customer_name"`
	CustomerPhone string           `json:"customer_phone"`
	Items         []OrderLineItem  `json:"items"`
	TotalAmount   decimal.Decimal  `json:"total_amount"`
	PaymentStatus string           `json:"payment_status"`
	OrderStatus   string           `json:"order_status"`
	CreatedAt     Timestamp        `json:"created_at"`
	Response      *HistoryResponse `json:"response,omitempty"`
}

type OrderHistory struct {
	Orders     []HistoryOrder `json:"orders"`
	TotalCount int            `json:"total_count"`
}
