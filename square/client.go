// Package square is a thin client for the Square catalog, orders, payments,
// locations, customers and invoices APIs. Payments and locations go through
// square-go-sdk, the rest through REST calls. Every call returns (value, error);
// a rejected call's error is an *APIError carrying Square's error list.
package square

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imkonsowa/restaurants-ordering/config"
	sqclient "github.com/square/square-go-sdk/client"
)

type Client struct {
	baseURL string
	version string
	token   string
	http    *http.Client
	sdk     *sqclient.Client
	newKey  func() string
	now     func() time.Time
}

func New(cfg config.Square) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		version: cfg.Version,
		token:   cfg.AccessToken,
		http:    &http.Client{Timeout: cfg.Timeout},
		newKey:  uuid.NewString,
		now:     time.Now,
	}
	c.sdk = c.newSDK()

	return c
}

// WithToken returns a copy of the client that authenticates with token. An
// empty token keeps the configured one.
func (c *Client) WithToken(token string) *Client {
	if token == "" || token == c.token {
		return c
	}

	cp := *c
	cp.token = token
	cp.sdk = cp.newSDK()

	return &cp
}

// Error is one entry of Square's errors array.
type Error struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail,omitempty"`
	Field    string `json:"field,omitempty"`
}

type APIError struct {
	Status int
	Errors []Error
	// Message is the response body when it carried no errors array.
	Message string
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		if e.Message != "" {
			return fmt.Sprintf("square returned status %d: %s", e.Status, e.Message)
		}
		return fmt.Sprintf("square returned status %d", e.Status)
	}

	parts := make([]string, 0, len(e.Errors))
	for _, se := range e.Errors {
		s := se.Category + "/" + se.Code
		if se.Detail != "" {
			s += ": " + se.Detail
		}
		if se.Field != "" {
			s += " (" + se.Field + ")"
		}
		parts = append(parts, s)
	}

	return fmt.Sprintf("square returned status %d: %s", e.Status, strings.Join(parts, "; "))
}

// IsAPIError reports whether err is a call Square rejected, as opposed to a
// transport failure.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create square request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Square-Version", c.version)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return req, nil
}

// do sends body as JSON and returns the raw response body of a successful call.
func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal square request: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, reader, contentType)
	if err != nil {
		return nil, err
	}

	return c.send(req)
}

func (c *Client) send(req *http.Request) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call square %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read square response: %w", err)
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Errors []Error `json:"errors"`
		}
		if err := json.Unmarshal(data, &envelope); err == nil {
			apiErr.Errors = envelope.Errors
		}

		return nil, apiErr
	}

	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	}

	return data, nil
}

func (c *Client) decode(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode square response: %w", err)
	}

	return nil
}
