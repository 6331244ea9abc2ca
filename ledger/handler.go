package main

import (
	"context"
	"log/slog"

	"github.com/imkonsowa/restaurants-ordering/events"
)

type Recorder interface {
	Record(ctx context.Context, subject string, ev *events.Event) error
}

type Handler struct {
	store Recorder
}

func NewHandler(store Recorder) *Handler {
	return &Handler{store: store}
}

// HandleEvent stores one bus message. Messages that are not events are
// dropped so they are acked instead of redelivered forever.
func (h *Handler) HandleEvent(ctx context.Context, subject string, data []byte) error {
	ev, err := events.Decode(data)
	if err != nil {
		slog.Warn("dropping undecodable message", "subject", subject, "err", err)
		return nil
	}

	if err := h.store.Record(ctx, subject, ev); err != nil {
		return err
	}
	slog.Info("recorded event", "subject", subject, "kind", ev.Kind, "id", ev.ID)

	return nil
}
