package square

import (
	"context"
	"encoding/json"

	sq "github.com/square/square-go-sdk"
)

type PaymentRequest struct {
	SourceID   string
	Amount     int64
	Tip        int64
	Currency   string
	CustomerID string
	LocationID string
}

// PaymentResult keeps the keys needed to look up or cancel the payment later.
type PaymentResult struct {
	Body           json.RawMessage `json:"body"`
	ReferenceID    string          `json:"reference_id"`
	IdempotencyKey string          `json:"idempotency"`
}

func (c *Client) CreatePayment(ctx context.Context, p PaymentRequest) (*PaymentResult, error) {
	currency := sq.Currency(p.Currency)
	if currency == "" {
		currency = sq.Currency("USD")
	}

	result := &PaymentResult{
		ReferenceID:    c.newKey(),
		IdempotencyKey: c.newKey(),
	}

	resp, err := c.sdk.Payments.Create(ctx, &sq.CreatePaymentRequest{
		SourceID:       p.SourceID,
		IdempotencyKey: result.IdempotencyKey,
		AmountMoney:    &sq.Money{Amount: sq.Int64(p.Amount), Currency: &currency},
		TipMoney:       &sq.Money{Amount: sq.Int64(p.Tip), Currency: &currency},
		Autocomplete:   sq.Bool(true),
		LocationID:     sq.String(p.LocationID),
		ReferenceID:    sq.String(result.ReferenceID),
		Note:           sq.String("Payment done for the order"),
		CustomerID:     sq.String(p.CustomerID),
	})
	if err != nil {
		return nil, fromSDK(err)
	}

	result.Body, err = rawBody(resp)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) GetPayment(ctx context.Context, paymentID string) (json.RawMessage, error) {
	resp, err := c.sdk.Payments.Get(ctx, &sq.GetPaymentsRequest{PaymentID: paymentID})
	if err != nil {
		return nil, fromSDK(err)
	}

	return rawBody(resp)
}

func (c *Client) CancelPaymentByIdempotencyKey(ctx context.Context, key string) (json.RawMessage, error) {
	resp, err := c.sdk.Payments.CancelByIdempotencyKey(ctx, &sq.CancelPaymentByIdempotencyKeyRequest{IdempotencyKey: key})
	if err != nil {
		return nil, fromSDK(err)
	}

	return rawBody(resp)
}

func (c *Client) CompletePayment(ctx context.Context, paymentID string) (json.RawMessage, error) {
	resp, err := c.sdk.Payments.Complete(ctx, &sq.CompletePaymentRequest{PaymentID: paymentID})
	if err != nil {
		return nil, fromSDK(err)
	}

	return rawBody(resp)
}
