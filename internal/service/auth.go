package service

import (
	"context"
	"fmt"
	"net/http"

	"ownerconsole/internal/model"
)

func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error) {
	return c.login(ctx, "/auth/login", creds)
}

func (c *Client) AdminLogin(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error) {
	return c.login(ctx, "/admin/login", creds)
}

func (c *Client) login(ctx context.Context, path string, creds model.Credentials) (*model.AuthResponse, error) {
	var res model.AuthResponse
	if err := c.do(ctx, http.MethodPost, path, creds, &res); err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("login: platform returned no token")
	}
	return &res, nil
}

// Signup registers a restaurant owner. The account stays pending until an
// admin approves it and assigns a restaurant.
func (c *Client) Signup(ctx context.Context, req model.SignupRequest) (*model.SignupResult, error) {
	var res model.SignupResult
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &res); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	return &res, nil
}
