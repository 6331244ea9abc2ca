package conversation

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/imkonsowa/restaurants-ordering/apperrors"
	"github.com/imkonsowa/restaurants-ordering/cleaner"
	"github.com/imkonsowa/restaurants-ordering/models"
)

func TestSummarizeRejectsEmptyHistory(t *testing.T) {
	completer := &fakeCompleter{replies: []string{"{}"}}
	s := NewSummarizer(completer, nil)

	if _, err := s.Summarize(context.Background(), nil); !apperrors.IsValidation(err) || err.Error() != "Order History is Empty" {
		t.Fatalf("Summarize(nil) error = %v", err)
	}
	if _, err := s.Summarize(context.Background(), models.History{}); !apperrors.IsValidation(err) {
		t.Fatalf("Summarize(empty) error = %v", err)
	}
	for _, text := range []string{"", "  ", "[]"} {
		if _, err := s.SummarizeText(context.Background(), text); !apperrors.IsValidation(err) {
			t.Fatalf("SummarizeText(%q) error = %v", text, err)
		}
	}
	if len(completer.prompts) != 0 {
		t.Fatalf("LLM was called %d times", len(completer.prompts))
	}
}

func TestSummarizeStructured(t *testing.T) {
	rec := newCountingRecorder()
	completer := &fakeCompleter{replies: []string{"```json\n{\"Pizza\":{\"quantity\":\"1\"}}\n```"}}
	s := NewSummarizer(completer, rec)

	got, err := s.Summarize(context.Background(), pizzaHistory(t))
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	structured, ok := got.(cleaner.Structured)
	if !ok {
		t.Fatalf("Summarize() = %T, want cleaner.Structured", got)
	}
	want := map[string]any{"Pizza": map[string]any{"quantity": "1"}}
	if !reflect.DeepEqual(structured.Value, want) {
		t.Fatalf("Summarize() = %#v, want %#v", structured.Value, want)
	}
	if !strings.Contains(completer.prompts[0], `[{"Customer":"I want a pizza","Agent":"What size?"}]`) {
		t.Fatalf("prompt is missing the transcript")
	}
	if rec.summaries["structured"] != 1 {
		t.Fatalf("summaries = %v", rec.summaries)
	}
}

func TestSummarizeFallsBackToText(t *testing.T) {
	rec := newCountingRecorder()
	completer := &fakeCompleter{replies: []string{"  One large pizza with extra cheese, 20$.  "}}
	s := NewSummarizer(completer, rec)

	got, err := s.SummarizeText(context.Background(), "Customer: one large pizza")
	if err != nil {
		t.Fatalf("SummarizeText() error = %v", err)
	}

	raw, ok := got.(cleaner.Raw)
	if !ok {
		t.Fatalf("SummarizeText() = %T, want cleaner.Raw", got)
	}
	if raw.Text != "One large pizza with extra cheese, 20$." {
		t.Fatalf("SummarizeText() = %q", raw.Text)
	}
	if rec.summaries["raw"] != 1 {
		t.Fatalf("summaries = %v", rec.summaries)
	}
}

func TestSummarizeLLMFailure(t *testing.T) {
	s := NewSummarizer(&fakeCompleter{err: errors.New("timeout")}, nil)

	_, err := s.Summarize(context.Background(), pizzaHistory(t))
	if apperrors.ServiceOf(err) != "llm" {
		t.Fatalf("Summarize() error = %v, want llm upstream error", err)
	}
	if !strings.Contains(err.Error(), "summarizing order --> timeout") {
		t.Fatalf("Summarize() error = %q", err.Error())
	}
}
