// Package events carries order and inventory events over NATS JetStream.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	KindOrderSummarized   = "order.summarized"
	KindIngredientChanged = "ingredient.changed"
)

type Event struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

func NewEvent(kind string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", kind, err)
	}

	return &Event{
		ID:         uuid.NewString(),
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
		Payload:    data,
	}, nil
}

func Decode(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	if ev.ID == "" || ev.Kind == "" {
		return nil, errors.New("event is missing id or kind")
	}

	return &ev, nil
}

// OrderSummarized is published once a conversation's order is extracted.
type OrderSummarized struct {
	Summary    any  `json:"summary"`
	Structured bool `json:"structured"`
}

// IngredientChanged is published after every inventory write.
type IngredientChanged struct {
	Action     string `json:"action"`
	Name       string `json:"name"`
	Ingredient any    `json:"ingredient,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, kind string, payload any) error
}

// Noop drops every event. It stands in when NATS is disabled.
type Noop struct{}

func (Noop) Publish(context.Context, string, any) error { return nil }
