package conversation

import (
	"context"
	"errors"

	"github.com/imkonsowa/restaurants-ordering/models"
)

type fakeCompleter struct {
	replies []string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", errors.New("no reply scripted")
	}

	reply := f.replies[0]
	f.replies = f.replies[1:]

	return reply, nil
}

type fakeInventory struct {
	items []models.Ingredient
	err   error
	calls int
}

func (f *fakeInventory) ListIngredients(context.Context) ([]models.Ingredient, error) {
	f.calls++
	return f.items, f.err
}

type fakeMenu struct {
	items []models.MenuEntry
	err   error
	calls int
}

func (f *fakeMenu) ListMenu(context.Context) ([]models.MenuEntry, error) {
	f.calls++
	return f.items, f.err
}

type countingRecorder struct {
	intents   map[string]int
	summaries map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{intents: map[string]int{}, summaries: map[string]int{}}
}

func (r *countingRecorder) RecordIntent(intent string) { r.intents[intent]++ }
func (r *countingRecorder) RecordSummary(kind string)  { r.summaries[kind]++ }
