package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrUnauthorized = errors.New("platform session is no longer valid")

// APIError is a non-2xx answer from the platform. Detail carries the
// FastAPI "detail" field when the body has one.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("unexpected status: %d", e.Status)
}

// Session is the part of the session store the client needs.
type Session interface {
	Token() string
	Clear(ctx context.Context) error
}

type Client struct {
	baseURL string
	client  *http.Client
	session Session
}

func NewClient(baseURL string, timeout time.Duration, session Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		session: session,
	}
}

// do sends one request. in is encoded as the JSON body when non-nil and out
// receives the decoded 2xx body when non-nil. A 401 clears the session.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	slog.Debug("api request", "method", method, "path", path, "request_id", reqID)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	slog.Debug("api response", "path", path, "status", resp.StatusCode, "request_id", reqID)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if err := c.session.Clear(ctx); err != nil {
			slog.Error("failed to clear session after 401", "error", err)
		}
		return ErrUnauthorized
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	default:
		return readAPIError(resp)
	}
}

func readAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{Status: resp.StatusCode}

	var fastAPI struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &fastAPI); err == nil && len(fastAPI.Detail) > 0 {
		var s string
		if err := json.Unmarshal(fastAPI.Detail, &s); err == nil {
			apiErr.Detail = s
		} else {
			// validation errors come back as a list
			apiErr.Detail = string(fastAPI.Detail)
		}
	} else if len(raw) > 0 {
		apiErr.Detail = strings.TrimSpace(string(raw))
	}
	return apiErr
}

// Detail extracts the text worth showing to the owner from an error.
func Detail(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return err.Error()
}
