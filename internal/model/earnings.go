package model

import "github.com/shopspring/decimal"

type EarningsSummary struct {
	RestaurantID          string          `json:"restaurant_id"`
	RestaurantName        string          `json:"restaurant_name"`
	TotalLifetimeEarnings decimal.Decimal `json:"total_lifetime_earnings"`
	TotalCompletedOrders  int             `json:"total_completed_orders"`
	CommissionRate        decimal.Decimal `json:"commission_rate"`
	TotalCommissionPaid   decimal.Decimal `json:"total_commission_paid"`
	HasBankDetails        bool            `json:"has_bank_details"`
	LastSyncedAt          Timestamp       `json:"last_synced_at"`
	SyncStatus            string          `json:"sync_status"`
}

type Transaction struct {
	ID                 int             `json:"id"`
	TransactionID      string          `json:"transaction_id"`
	OrderID            string          `json:"order_id"`
	OrderDate          Timestamp       `json:"order_date"`
	CustomerName       string          `json:"customer_name,omitempty"`
	OrderTotal         decimal.Decimal `json:"order_total"`
	PlatformCommission decimal.Decimal `json:"platform_commission"`
	DeliveryFee        decimal.Decimal `json:"delivery_fee"`
	NetAmount          decimal.Decimal `json:"net_amount"`
	IsPaid             bool            `json:"is_paid"`
	PayoutReference    string          `json:"payout_reference,omitempty"`
}

type PendingEarnings struct {
	PendingAmount decimal.Decimal `json:"pending_amount"`
	PendingOrders int             `json:"pending_orders"`
}

type TransactionPage struct {
	Transactions    []Transaction   `json:"transactions"`
	TotalCount      int             `json:"total_count"`
	PendingEarnings PendingEarnings `json:"pending_earnings"`
}

type MonthlyEarnings struct {
	Month           string          `json:"month"`
	TotalOrders     int             `json:"total_orders"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	NetEarnings     decimal.Decimal `json:"net_earnings"`
}

// TransactionFilter mirrors the upstream query parameters.
type TransactionFilter struct {
	Limit  int
	Offset int
	IsPaid *bool
}
