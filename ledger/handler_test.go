package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/imkonsowa/restaurants-ordering/events"
)

type fakeRecorder struct {
	subjects []string
	events   []*events.Event
	err      error
}

func (f *fakeRecorder) Record(_ context.Context, subject string, ev *events.Event) error {
	f.subjects = append(f.subjects, subject)
	f.events = append(f.events, ev)
	return f.err
}

func TestHandleEventRecords(t *testing.T) {
	ev, err := events.NewEvent(events.KindOrderSummarized, events.OrderSummarized{Summary: "one pizza"})
	if err != nil {
		t.Fatalf("NewEvent() error = %v", err)
	}
	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	store := &fakeRecorder{}
	if err := NewHandler(store).HandleEvent(context.Background(), "ordering.orders.summarized", data); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}

	if len(store.events) != 1 || store.events[0].ID != ev.ID || store.subjects[0] != "ordering.orders.summarized" {
		t.Fatalf("recorded %+v on %v", store.events, store.subjects)
	}
}

func TestHandleEventDropsGarbage(t *testing.T) {
	store := &fakeRecorder{}
	for _, data := range []string{"not json", `{"kind":"order.summarized"}`} {
		if err := NewHandler(store).HandleEvent(context.Background(), "s", []byte(data)); err != nil {
			t.Fatalf("HandleEvent(%q) error = %v", data, err)
		}
	}
	if len(store.events) != 0 {
		t.Fatalf("recorded %d garbage messages", len(store.events))
	}
}

func TestHandleEventStoreFailureNaks(t *testing.T) {
	ev, _ := events.NewEvent(events.KindIngredientChanged, events.IngredientChanged{Action: "deleted", Name: "Flour"})
	data, _ := json.Marshal(ev)

	store := &fakeRecorder{err: errors.New("connection refused")}
	if err := NewHandler(store).HandleEvent(context.Background(), "s", data); err == nil {
		t.Fatalf("HandleEvent() expected the store error")
	}
}
