// Package llm adapts langchaingo models to the single text-completion
// contract used for chat, summarization and generation.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/imkonsowa/restaurants-ordering/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/googleai/vertex"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// Completer turns one prompt into one reply. Backends are interchangeable
// behind it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Model struct {
	model llms.Model
	opts  []llms.CallOption
}

func NewModel(model llms.Model, opts ...llms.CallOption) *Model {
	return &Model{model: model, opts: opts}
}

func (m *Model) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, m.model, prompt, m.opts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}

	return out, nil
}

// New builds the configured backend.
func New(ctx context.Context, cfg config.LLM) (*Model, error) {
	var (
		model llms.Model
		err   error
	)

	switch cfg.Provider {
	case "openai":
		opts := []openai.Option{openai.WithModel(cfg.Model)}
		if cfg.APIKey != "" {
			opts = append(opts, openai.WithToken(cfg.APIKey))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		model, err = openai.New(opts...)
	case "ollama":
		opts := []ollama.Option{ollama.WithModel(cfg.Model)}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
		}
		model, err = ollama.New(opts...)
	case "vertex":
		opts := []googleai.Option{
			googleai.WithCloudProject(cfg.Project),
			googleai.WithCloudLocation(cfg.Location),
			googleai.WithDefaultModel(cfg.Model),
		}
		if cfg.CredentialsFile != "" {
			opts = append(opts, googleai.WithCredentialsFile(cfg.CredentialsFile))
		}
		model, err = vertex.New(ctx, opts...)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s model: %w", cfg.Provider, err)
	}

	slog.Info("LLM backend ready", "provider", cfg.Provider, "model", cfg.Model)

	return NewModel(model,
		llms.WithTemperature(cfg.Temperature),
		llms.WithMaxTokens(cfg.MaxTokens),
	), nil
}

// LatencyObserver records how long a completion took.
type LatencyObserver interface {
	ObserveLLM(op string, d time.Duration, err error)
}

type timed struct {
	next     Completer
	op       string
	observer LatencyObserver
}

// Timed reports every call on next to observer under the op label.
func Timed(next Completer, op string, observer LatencyObserver) Completer {
	return &timed{next: next, op: op, observer: observer}
}

func (t *timed) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := t.next.Complete(ctx, prompt)
	t.observer.ObserveLLM(t.op, time.Since(start), err)

	return out, err
}
