package square

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	sqclient "github.com/square/square-go-sdk/client"
	"github.com/square/square-go-sdk/core"
	"github.com/square/square-go-sdk/option"
)

// newSDK builds the generated Square client for the calls it covers. It shares
// the REST client's host, token and transport.
func (c *Client) newSDK() *sqclient.Client {
	opts := []option.RequestOption{
		option.WithBaseURL(strings.TrimSuffix(c.baseURL, "/v2")),
		option.WithToken(c.token),
		option.WithHTTPClient(c.http),
		option.WithMaxAttempts(1),
	}
	if c.version != "" {
		header := http.Header{}
		header.Set("Square-Version", c.version)
		opts = append(opts, option.WithHTTPHeader(header))
	}

	return sqclient.NewClient(opts...)
}

// fromSDK turns an SDK failure into an *APIError when Square answered, so
// both client paths fail the same way.
func fromSDK(err error) error {
	var sdkErr *core.APIError
	if !errors.As(err, &sdkErr) {
		return fmt.Errorf("failed to call square: %w", err)
	}

	apiErr := &APIError{Status: sdkErr.StatusCode}
	body := sdkErr.Unwrap()
	if body == nil {
		return apiErr
	}

	var envelope struct {
		Errors []Error `json:"errors"`
	}
	if err := json.Unmarshal([]byte(body.Error()), &envelope); err == nil && len(envelope.Errors) > 0 {
		apiErr.Errors = envelope.Errors
	} else {
		apiErr.Message = strings.TrimSpace(body.Error())
	}

	return apiErr
}

// rawBody re-encodes an SDK response so handlers keep returning Square's
// JSON shape.
func rawBody(resp any) (json.RawMessage, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to encode square response: %w", err)
	}

	return data, nil
}

func deref[T ~string](p *T) string {
	if p == nil {
		return ""
	}

	return string(*p)
}
