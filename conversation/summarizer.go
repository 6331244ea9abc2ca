package conversation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/imkonsowa/restaurants-ordering/apperrors"
	"github.com/imkonsowa/restaurants-ordering/cleaner"
	"github.com/imkonsowa/restaurants-ordering/llm"
	"github.com/imkonsowa/restaurants-ordering/models"
	"github.com/imkonsowa/restaurants-ordering/prompts"
)

const emptyHistory = "Order History is Empty"

// Summarizer extracts the final order from a finished conversation. Missing
// fields are filled by the model following the prompt, not here.
type Summarizer struct {
	llm      llm.Completer
	recorder Recorder
}

func NewSummarizer(completer llm.Completer, recorder Recorder) *Summarizer {
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &Summarizer{llm: completer, recorder: recorder}
}

func (s *Summarizer) Summarize(ctx context.Context, history models.History) (cleaner.Result, error) {
	if len(history) == 0 {
		return nil, apperrors.Invalid("", emptyHistory)
	}

	return s.summarize(ctx, history.String())
}

// SummarizeText accepts a transcript the caller already flattened to text.
func (s *Summarizer) SummarizeText(ctx context.Context, transcript string) (cleaner.Result, error) {
	switch strings.TrimSpace(transcript) {
	case "", "[]", `""`, "null":
		return nil, apperrors.Invalid("", emptyHistory)
	}

	return s.summarize(ctx, transcript)
}

func (s *Summarizer) summarize(ctx context.Context, transcript string) (cleaner.Result, error) {
	prompt, err := prompts.Render(prompts.OrderExtraction, map[string]string{"history": transcript})
	if err != nil {
		return nil, err
	}

	raw, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		slog.Error("failed to summarize order", "error", err)
		return nil, apperrors.Upstream("llm", "summarizing order", err)
	}

	result := cleaner.Decode(raw)
	switch result.(type) {
	case cleaner.Structured:
		s.recorder.RecordSummary("structured")
	case cleaner.Raw:
		slog.Warn("order summary is not valid JSON, returning text")
		s.recorder.RecordSummary("raw")
	}

	return result, nil
}
