package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/imkonsowa/restaurants-ordering/config"
	"github.com/nats-io/nats.go"
)

type Client struct {
	conn     *nats.Conn
	js       nats.JetStreamContext
	subjects map[string]string
}

// Connect dials NATS and makes sure the stream holding both subjects exists.
func Connect(cfg config.Nats) (*Client, error) {
	nc, err := nats.Connect(cfg.ConnStr())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to nats: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to get jetstream context: %w", err)
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:      cfg.Stream,
		Subjects:  cfg.Subjects(),
		Storage:   nats.FileStorage,
		Retention: nats.LimitsPolicy,
		MaxAge:    time.Hour * 24 * 7,
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		nc.Close()
		return nil, fmt.Errorf("failed to create stream %s: %w", cfg.Stream, err)
	}

	return &Client{
		conn: nc,
		js:   js,
		subjects: map[string]string{
			KindOrderSummarized:   cfg.OrdersSubject,
			KindIngredientChanged: cfg.IngredientSubject,
		},
	}, nil
}

func (c *Client) Close() {
	c.conn.Close()
}

func (c *Client) Publish(ctx context.Context, kind string, payload any) error {
	subject, ok := c.subjects[kind]
	if !ok {
		return fmt.Errorf("no subject for event kind %q", kind)
	}

	ev, err := NewEvent(kind, payload)
	if err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := c.js.Publish(subject, data, nats.Context(ctx), nats.MsgId(ev.ID)); err != nil {
		return fmt.Errorf("failed to publish %s: %w", kind, err)
	}

	return nil
}

// Subscribe pulls messages from subject into pool until ctx is done.
func (c *Client) Subscribe(ctx context.Context, subject string, pool *WorkerPool) error {
	subscription, err := c.js.PullSubscribe(subject, strings.ReplaceAll(subject+".ledger", ".", "-"), nats.ManualAck())
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	for {
		select {
		case <-ctx.Done():
			if err := subscription.Unsubscribe(); err != nil {
				slog.Warn("failed to unsubscribe from subject", "subject", subject, "error", err)
			}

			return nil
		default:
			msgs, err := subscription.Fetch(4, nats.MaxWait(200*time.Millisecond))
			if err != nil && !errors.Is(err, nats.ErrTimeout) && !errors.Is(err, context.DeadlineExceeded) {
				return fmt.Errorf("failed to fetch from %s: %w", subject, err)
			}

			for _, msg := range msgs {
				if !pool.Submit(ctx, natsDelivery{msg: msg}) {
					return nil
				}
			}
		}
	}
}

type natsDelivery struct {
	msg *nats.Msg
}

func (d natsDelivery) Subject() string { return d.msg.Subject }
func (d natsDelivery) Data() []byte    { return d.msg.Data }
func (d natsDelivery) Ack() error      { return d.msg.Ack() }
func (d natsDelivery) Nak() error      { return d.msg.Nak() }
