package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imkonsowa/restaurants-ordering/config"
	"github.com/imkonsowa/restaurants-ordering/conversation"
	"github.com/imkonsowa/restaurants-ordering/inventory"
	"github.com/imkonsowa/restaurants-ordering/kitchen"
	"github.com/imkonsowa/restaurants-ordering/models"
	"github.com/imkonsowa/restaurants-ordering/observability"
	"github.com/imkonsowa/restaurants-ordering/square"
	"github.com/prometheus/client_golang/prometheus"
)

type fakeCompleter struct {
	mu      sync.Mutex
	replies []string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

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

func (f *fakeCompleter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.prompts)
}

type fakeInventory struct {
	items map[string]models.Ingredient
	err   error
}

func newFakeInventory(items ...models.Ingredient) *fakeInventory {
	f := &fakeInventory{items: map[string]models.Ingredient{}}
	for _, in := range items {
		f.items[in.Name] = in
	}

	return f
}

func (f *fakeInventory) ListIngredients(context.Context) ([]models.Ingredient, error) {
	if f.err != nil {
		return nil, f.err
	}

	var out []models.Ingredient
	for _, in := range f.items {
		out = append(out, in)
	}

	return out, nil
}

func (f *fakeInventory) CreateIngredient(_ context.Context, in *models.Ingredient) error {
	if err := inventory.Validate(in); err != nil {
		return err
	}
	if _, ok := f.items[in.Name]; ok {
		return fmt.Errorf("%w: %s", inventory.ErrIngredientExists, in.Name)
	}
	f.items[in.Name] = *in

	return nil
}

func (f *fakeInventory) DeleteIngredient(_ context.Context, name string) error {
	if _, ok := f.items[name]; !ok {
		return fmt.Errorf("%w: %s", inventory.ErrIngredientNotFound, name)
	}
	delete(f.items, name)

	return nil
}

func (f *fakeInventory) UpdateIngredient(_ context.Context, name string, in *models.Ingredient) error {
	if _, ok := f.items[name]; !ok {
		return fmt.Errorf("%w: %s", inventory.ErrIngredientNotFound, name)
	}
	f.items[name] = *in

	return nil
}

func (f *fakeInventory) UpdateQuantity(_ context.Context, name string, quantity float64) error {
	in, ok := f.items[name]
	if !ok {
		return fmt.Errorf("%w: %s", inventory.ErrIngredientNotFound, name)
	}
	in.Quantity = quantity
	f.items[name] = in

	return nil
}

func (f *fakeInventory) UpdateShelfLife(_ context.Context, name string, days int) error {
	in, ok := f.items[name]
	if !ok {
		return fmt.Errorf("%w: %s", inventory.ErrIngredientNotFound, name)
	}
	in.ShelfLifeDays = days
	f.items[name] = in

	return nil
}

type published struct {
	kind    string
	payload any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, kind string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, published{kind: kind, payload: payload})

	return f.err
}

type fakeEventLog struct {
	records []models.EventRecord
	kind    string
	limit   int
}

func (f *fakeEventLog) ListRecent(_ context.Context, kind string, limit int) ([]models.EventRecord, error) {
	f.kind, f.limit = kind, limit
	return f.records, nil
}

type fakeImages struct {
	url string
}

func (f *fakeImages) GenerateImage(context.Context, string) (string, error) {
	return f.url, nil
}

type testAgent struct {
	agent     *Agent
	router    *gin.Engine
	completer *fakeCompleter
	inventory *fakeInventory
	events    *fakePublisher
	eventLog  *fakeEventLog
	metrics   *observability.Metrics
}

// newTestAgent wires an agent against fakes and a Square stub served by
// squareHandler. A nil handler fails the test on any Square call.
func newTestAgent(t *testing.T, squareHandler http.HandlerFunc) *testAgent {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if squareHandler == nil {
		squareHandler = func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("unexpected square call %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusInternalServerError)
		}
	}
	srv := httptest.NewServer(squareHandler)
	t.Cleanup(srv.Close)

	completer := &fakeCompleter{}
	inv := newFakeInventory(models.Ingredient{Name: "Flour", IngredientType: "dry", Quantity: 10, Unit: "kg", UnitPrice: 1.5, ShelfLifeDays: 90})
	pub := &fakePublisher{}
	eventLog := &fakeEventLog{}
	metrics := observability.NewMetrics("test", prometheus.NewRegistry())
	client := square.New(config.Square{BaseURL: srv.URL + "/v2", Version: "2023-10-18", AccessToken: "server-token", Timeout: time.Second})

	a := &Agent{
		config:     &config.Config{},
		inventory:  inv,
		square:     client,
		engine:     conversation.NewEngine(inv, client, completer, metrics),
		summarizer: conversation.NewSummarizer(completer, metrics),
		kitchen:    kitchen.New(inv, completer, &fakeImages{url: "https://img.example/dish.png"}),
		events:     pub,
		eventLog:   eventLog,
		metrics:    metrics,
	}

	return &testAgent{
		agent:     a,
		router:    a.Router(),
		completer: completer,
		inventory: inv,
		events:    pub,
		eventLog:  eventLog,
		metrics:   metrics,
	}
}
