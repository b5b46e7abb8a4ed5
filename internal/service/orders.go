package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"ownerconsole/internal/model"
)

type fetchOrdersResponse struct {
	CumulativeOrders []model.CumulativeItem `json:"cumulative_orders"`
	IndividualOrders []wireOrder            `json:"individual_orders"`
}

type submitResponseRequest struct {
	OrderID  string         `json:"order_id"`
	Decision model.Decision `json:"decision"`
}

func (c *Client) OwnerStatus(ctx context.Context) (*model.OwnerStatus, error) {
	var res model.OwnerStatus
	if err := c.do(ctx, http.MethodGet, "/owner/status", nil, &res); err != nil {
		return nil, fmt.Errorf("owner status: %w", err)
	}
	return &res, nil
}

// FetchOrders pulls the current pooling batch. Orders that normalize to
// nothing are dropped here and counted in Dropped.
func (c *Client) FetchOrders(ctx context.Context) (*model.FetchResult, error) {
	var res fetchOrdersResponse
	if err := c.do(ctx, http.MethodPost, "/owner/fetch-orders", nil, &res); err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	out := &model.FetchResult{ServerCumulative: res.CumulativeOrders}
	for i, w := range res.IndividualOrders {
		order, err := NormalizeOrder(w)
		if err != nil {
			slog.Debug("dropping order", "index", i, "error", err)
			out.Dropped++
			continue
		}
		out.Individual = append(out.Individual, order)
	}
	return out, nil
}

func (c *Client) SubmitResponse(ctx context.Context, orderID string, decision model.Decision) (*model.SubmitResult, error) {
	var res model.SubmitResult
	req := submitResponseRequest{OrderID: orderID, Decision: decision}
	if err := c.do(ctx, http.MethodPost, "/owner/submit-response", req, &res); err != nil {
		return nil, fmt.Errorf("submit response: %w", err)
	}
	return &res, nil
}

func (c *Client) OrderHistory(ctx context.Context) (*model.OrderHistory, error) {
	var res struct {
		Orders     []wireHistoryOrder `json:"orders"`
		TotalCount int                `json:"total_count"`
	}
	if err := c.do(ctx, http.MethodGet, "/owner/order-history", nil, &res); err != nil {
		return nil, fmt.Errorf("order history: %w", err)
	}

	out := &model.OrderHistory{TotalCount: res.TotalCount}
	for _, w := range res.Orders {
		out.Orders = append(out.Orders, w.normalize())
	}
	return out, nil
}
