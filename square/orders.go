package square

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// StateSalesTaxPercent is applied to every order at ORDER scope.
const StateSalesTaxPercent = "10"

type LineItem struct {
	Name           string `json:"name"`
	Quantity       string `json:"quantity"`
	BasePriceMoney Money  `json:"base_price_money"`
	Note           string `json:"note,omitempty"`
}

func (c *Client) CreateOrder(ctx context.Context, locationID string, items []LineItem) (json.RawMessage, error) {
	body := map[string]any{
		"idempotency_key": c.newKey(),
		"order": map[string]any{
			"location_id":  locationID,
			"reference_id": c.newKey(),
			"line_items":   items,
			"taxes": []map[string]any{{
				"uid":        "state-sales-tax",
				"name":       "State Sales Tax",
				"percentage": StateSalesTaxPercent,
				"scope":      "ORDER",
			}},
		},
	}

	return c.do(ctx, http.MethodPost, "orders", body)
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "orders/"+url.PathEscape(orderID), nil)
}

func (c *Client) PayOrder(ctx context.Context, orderID string, paymentIDs []string) (json.RawMessage, error) {
	body := map[string]any{
		"idempotency_key": c.newKey(),
		"payment_ids":     paymentIDs,
	}

	return c.do(ctx, http.MethodPost, "orders/"+url.PathEscape(orderID)+"/pay", body)
}
