package events

import (
	"context"
	"encoding/json"
	"testing"
)

func TestNewEventRoundTrip(t *testing.T) {
	ev, err := NewEvent(KindOrderSummarized, OrderSummarized{
		Summary:    map[string]any{"Pizza": map[string]any{"quantity": "1"}},
		Structured: true,
	})
	if err != nil {
		t.Fatalf("NewEvent() error = %v", err)
	}
	if ev.ID == "" || ev.OccurredAt.IsZero() {
		t.Fatalf("NewEvent() = %+v", ev)
	}

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got.ID != ev.ID || got.Kind != KindOrderSummarized {
		t.Fatalf("Decode() = %+v", got)
	}

	var payload OrderSummarized
	if err := json.Unmarshal(got.Payload, &payload); err != nil {
		t.Fatalf("Unmarshal(payload) error = %v", err)
	}
	if !payload.Structured {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestDecodeRejectsIncompleteEvents(t *testing.T) {
	for _, raw := range []string{`{}`, `{"id":"x"}`, `not json`} {
		if _, err := Decode([]byte(raw)); err == nil {
			t.Fatalf("Decode(%s) error = nil", raw)
		}
	}
}

func TestNoop(t *testing.T) {
	var p Publisher = Noop{}
	if err := p.Publish(context.Background(), KindIngredientChanged, nil); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
}
