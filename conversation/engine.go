// Package conversation takes customer orders turn by turn and extracts the
// final order from the transcript. It keeps no state between calls: the
// caller owns the history and resends it every turn.
package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/imkonsowa/restaurants-ordering/apperrors"
	"github.com/imkonsowa/restaurants-ordering/llm"
	"github.com/imkonsowa/restaurants-ordering/models"
	"github.com/imkonsowa/restaurants-ordering/prompts"
	"golang.org/x/sync/errgroup"
)

const (
	PaymentResponse = "Please pay for your order"
	StopResponse    = "STOPPING CHAT"

	// MaxHistoryTurns is the most history entries, counted as the client
	// sends them, passed to the model as is. Longer histories are first
	// collapsed into a single summary turn.
	MaxHistoryTurns = 15
)

type IngredientLister interface {
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
}

type MenuLister interface {
	ListMenu(ctx context.Context) ([]models.MenuEntry, error)
}

// Recorder receives counts of what the engine decided.
type Recorder interface {
	RecordIntent(intent string)
	RecordSummary(kind string)
}

type nopRecorder struct{}

func (nopRecorder) RecordIntent(string)  {}
func (nopRecorder) RecordSummary(string) {}

type ChatResult struct {
	Response string         `json:"response"`
	History  models.History `json:"history"`
	Stop     bool           `json:"stop"`
	Payment  bool           `json:"payment"`
}

type Engine struct {
	ingredients IngredientLister
	menu        MenuLister
	llm         llm.Completer
	recorder    Recorder
}

func NewEngine(ingredients IngredientLister, menu MenuLister, completer llm.Completer, recorder Recorder) *Engine {
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &Engine{
		ingredients: ingredients,
		menu:        menu,
		llm:         completer,
		recorder:    recorder,
	}
}

// WithMenu returns a copy of the engine reading the menu from menu, used to
// apply a per-request catalog credential.
func (e *Engine) WithMenu(menu MenuLister) *Engine {
	cp := *e
	cp.menu = menu

	return &cp
}

// Chat handles one customer message. Payment and stop requests are answered
// without the model and leave the history untouched; anything else is sent
// to the model with a fresh inventory and menu, and the exchange is appended.
func (e *Engine) Chat(ctx context.Context, message string, history models.History) (*ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperrors.Invalid("message", "is required")
	}

	intent := Classify(message)
	e.recorder.RecordIntent(intent.String())

	switch intent {
	case Payment:
		return &ChatResult{Response: PaymentResponse, History: history, Stop: true, Payment: true}, nil
	case Stop:
		return &ChatResult{Response: StopResponse, History: history, Stop: true}, nil
	}

	if history.Entries() > MaxHistoryTurns {
		summarized, err := e.summarizeHistory(ctx, history)
		if err != nil {
			return nil, err
		}
		history = summarized
	}

	ingredients, menu, err := e.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	prompt, err := prompts.Render(prompts.Ordering, map[string]string{
		"message":     message,
		"history":     history.String(),
		"menu":        menu,
		"ingredients": ingredients,
	})
	if err != nil {
		return nil, err
	}

	reply, err := e.llm.Complete(ctx, prompt)
	if err != nil {
		slog.Error("failed to chat with the LLM", "error", err)
		return nil, apperrors.Upstream("llm", "chatting with the LLM", err)
	}

	stop := EndsConversation(reply)
	history = history.Append(
		models.Turn{Speaker: models.SpeakerCustomer, Text: message},
		models.Turn{Speaker: models.SpeakerAgent, Text: reply},
	)

	return &ChatResult{Response: reply, History: history, Stop: stop, Payment: stop}, nil
}

func (e *Engine) summarizeHistory(ctx context.Context, history models.History) (models.History, error) {
	slog.Info("Summarizing history of chat", "entries", history.Entries(), "turns", len(history))

	prompt, err := prompts.Render(prompts.HistorySummary, map[string]string{"history": history.String()})
	if err != nil {
		return nil, err
	}

	summary, err := e.llm.Complete(ctx, prompt)
	if err != nil {
		slog.Error("failed to summarize history of chat", "error", err)
		return nil, apperrors.Upstream("llm", "summarizing history of chat", err)
	}

	return models.History{{Speaker: models.SpeakerSummary, Text: strings.TrimSpace(summary)}}, nil
}

// snapshot reads the inventory and the menu concurrently and renders both as
// JSON for the prompt.
func (e *Engine) snapshot(ctx context.Context) (string, string, error) {
	var (
		ingredients []models.Ingredient
		menu        []models.MenuEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ingredients, err = e.ingredients.ListIngredients(gctx)
		if err != nil {
			slog.Error("failed to read ingredients", "error", err)
			return apperrors.Upstream("postgres", "reading from Postgres", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		menu, err = e.menu.ListMenu(gctx)
		if err != nil {
			slog.Error("failed to read menu", "error", err)
			return apperrors.Upstream("square", "reading from Square", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", "", err
	}

	ingredientsJSON, err := toJSON(ingredients)
	if err != nil {
		return "", "", err
	}
	menuJSON, err := toJSON(menu)
	if err != nil {
		return "", "", err
	}

	return ingredientsJSON, menuJSON, nil
}

func toJSON[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return string(data), nil
}
