package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"ownerconsole/internal/model"
)

func (c *Client) EarningsSummary(ctx context.Context) (*model.EarningsSummary, error) {
	var res model.EarningsSummary
	if err := c.do(ctx, http.MethodGet, "/owner/earnings-summary", nil, &res); err != nil {
		return nil, fmt.Errorf("earnings summary: %w", err)
	}
	return &res, nil
}

func (c *Client) EarningsTransactions(ctx context.Context, f model.TransactionFilter) (*model.TransactionPage, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(f.Limit))
	q.Set("offset", strconv.Itoa(f.Offset))
	if f.IsPaid != nil {
		q.Set("is_paid", strconv.FormatBool(*f.IsPaid))
	}

	var res model.TransactionPage
	if err := c.do(ctx, http.MethodGet, "/owner/earnings-transactions?"+q.Encode(), nil, &res); err != nil {
		return nil, fmt.Errorf("earnings transactions: %w", err)
	}
	return &res, nil
}

func (c *Client) MonthlyEarnings(ctx context.Context) ([]model.MonthlyEarnings, error) {
	var res []model.MonthlyEarnings
	if err := c.do(ctx, http.MethodGet, "/owner/earnings-monthly", nil, &res); err != nil {
		return nil, fmt.Errorf("monthly earnings: %w", err)
	}
	return res, nil
}
