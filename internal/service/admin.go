package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"ownerconsole/internal/model"
)

type approveOwnerRequest struct {
	RestaurantUID string `json:"restaurant_uid"`
}

// AllOwners lists every registered owner regardless of approval status.
func (c *Client) AllOwners(ctx context.Context) ([]model.Owner, error) {
	var res []model.Owner
	if err := c.do(ctx, http.MethodGet, "/admin/all-owners", nil, &res); err != nil {
		return nil, fmt.Errorf("all owners: %w", err)
	}
	return res, nil
}

func (c *Client) AllRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	var res []model.Restaurant
	if err := c.do(ctx, http.MethodGet, "/admin/all-restaurants", nil, &res); err != nil {
		return nil, fmt.Errorf("all restaurants: %w", err)
	}
	return res, nil
}

// ApproveOwner approves ownerID and binds it to a restaurant. Calling it
// again with another uid reassigns the restaurant.
func (c *Client) ApproveOwner(ctx context.Context, ownerID, restaurantUID string) (*model.ActionResult, error) {
	var res model.ActionResult
	path := "/admin/approve-owner/" + url.PathEscape(ownerID)
	if err := c.do(ctx, http.MethodPut, path, approveOwnerRequest{RestaurantUID: restaurantUID}, &res); err != nil {
		return nil, fmt.Errorf("approve owner %s: %w", ownerID, err)
	}
	return &res, nil
}

func (c *Client) RejectOwner(ctx context.Context, ownerID string) (*model.ActionResult, error) {
	var res model.ActionResult
	if err := c.do(ctx, http.MethodPut, "/admin/reject-owner/"+url.PathEscape(ownerID), nil, &res); err != nil {
		return nil, fmt.Errorf("reject owner %s: %w", ownerID, err)
	}
	return &res, nil
}
