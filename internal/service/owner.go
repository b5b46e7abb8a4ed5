package service

import (
	"context"
	"fmt"
	"net/http"

	"ownerconsole/internal/model"
)

func (c *Client) Profile(ctx context.Context) (*model.OwnerProfile, error) {
	var res model.OwnerProfile
	if err := c.do(ctx, http.MethodGet, "/owner/profile", nil, &res); err != nil {
		return nil, fmt.Errorf("owner profile: %w", err)
	}
	return &res, nil
}

func (c *Client) UpdateBankDetails(ctx context.Context, d model.BankDetails) (*model.ActionResult, error) {
	var res model.ActionResult
	if err := c.do(ctx, http.MethodPut, "/owner/update-bank-details", d, &res); err != nil {
		return nil, fmt.Errorf("update bank details: %w", err)
	}
	return &res, nil
}
