package square

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/imkonsowa/restaurants-ordering/apperrors"
)

const birthdayLayout = "2006-01-02"

type Customer struct {
	GivenName    string `json:"given_name,omitempty"`
	FamilyName   string `json:"family_name,omitempty"`
	EmailAddress string `json:"email_address,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	Birthday     string `json:"birthday,omitempty"`
	ReferenceID  string `json:"reference_id,omitempty"`
	Note         string `json:"note,omitempty"`
}

// Validate checks the fields Square would otherwise reject after a round trip.
func (c Customer) Validate() error {
	if c.GivenName == "" && c.FamilyName == "" && c.EmailAddress == "" && c.PhoneNumber == "" {
		return apperrors.Invalid("customer", "one of given_name, family_name, email_address or phone_number is required")
	}
	if c.Birthday != "" {
		if _, err := time.Parse(birthdayLayout, c.Birthday); err != nil {
			return apperrors.Invalid("birthday", "must be in YYYY-MM-DD format")
		}
	}

	return nil
}

func (c *Client) CreateCustomer(ctx context.Context, customer Customer) (json.RawMessage, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	body := struct {
		IdempotencyKey string `json:"idempotency_key"`
		Customer
	}{IdempotencyKey: c.newKey(), Customer: customer}

	return c.do(ctx, http.MethodPost, "customers", body)
}

type InvoiceRequest struct {
	LocationID  string
	OrderID     string
	CustomerID  string
	ReferenceID string
}

// CreateInvoice drafts an emailed invoice for the order balance, due today
// and scheduled for tomorrow.
func (c *Client) CreateInvoice(ctx context.Context, r InvoiceRequest) (json.RawMessage, error) {
	now := c.now().UTC()
	reference := r.ReferenceID
	if reference == "" {
		reference = c.newKey()
	}

	body := map[string]any{
		"idempotency_key": c.newKey(),
		"invoice": map[string]any{
			"location_id":       r.LocationID,
			"order_id":          r.OrderID,
			"primary_recipient": map[string]any{"customer_id": r.CustomerID},
			"payment_requests": []map[string]any{{
				"request_type":    "BALANCE",
				"due_date":        now.Format(birthdayLayout),
				"tipping_enabled": true,
			}},
			"delivery_method": "EMAIL",
			"invoice_number":  "inv-" + r.OrderID,
			"title":           "Invoice for Order " + r.OrderID,
			"description":     "Invoice for Order " + r.OrderID,
			"scheduled_at":    now.Add(24 * time.Hour).Format(time.RFC3339),
			"accepted_payment_methods": map[string]bool{
				"card":              true,
				"square_gift_card":  true,
				"bank_account":      true,
				"buy_now_pay_later": false,
				"cash_app_pay":      true,
			},
			"custom_fields": []map[string]any{{
				"label":     "Reference",
				"value":     "REF #" + reference,
				"placement": "ABOVE_LINE_ITEMS",
			}},
			"sale_or_service_date":         now.Format(birthdayLayout),
			"store_payment_method_enabled": true,
		},
	}

	return c.do(ctx, http.MethodPost, "invoices", body)
}

func (c *Client) GetInvoice(ctx context.Context, invoiceID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "invoices/"+url.PathEscape(invoiceID), nil)
}

func (c *Client) PublishInvoice(ctx context.Context, invoiceID string, version int) (json.RawMessage, error) {
	body := map[string]any{
		"version":         version,
		"idempotency_key": c.newKey(),
	}

	return c.do(ctx, http.MethodPost, "invoices/"+url.PathEscape(invoiceID)+"/publish", body)
}

func (c *Client) CancelInvoice(ctx context.Context, invoiceID string, version int) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "invoices/"+url.PathEscape(invoiceID)+"/cancel", map[string]any{"version": version})
}
