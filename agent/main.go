package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"log/slog"

	"github.com/gorilla/websocket"
	"github.com/imkonsowa/restaurants-ordering/config"
	"github.com/imkonsowa/restaurants-ordering/conversation"
	"github.com/imkonsowa/restaurants-ordering/database"
	"github.com/imkonsowa/restaurants-ordering/events"
	"github.com/imkonsowa/restaurants-ordering/inventory"
	"github.com/imkonsowa/restaurants-ordering/kitchen"
	"github.com/imkonsowa/restaurants-ordering/llm"
	"github.com/imkonsowa/restaurants-ordering/models"
	"github.com/imkonsowa/restaurants-ordering/observability"
	"github.com/imkonsowa/restaurants-ordering/square"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg := config.LoadConfig()
	ctx := context.Background()

	db, err := database.Open(cfg.Postgres.ConnStr())
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db, &models.Ingredient{}, &models.EventRecord{}); err != nil {
		log.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(cfg.Metrics.Namespace, reg)

	model, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		log.Fatal(err)
	}
	images := llm.NewImages(cfg.Images)

	var publisher events.Publisher = events.Noop{}
	if cfg.Nats.Enabled {
		nc, err := events.Connect(cfg.Nats)
		if err != nil {
			log.Fatal(err)
		}
		defer nc.Close()
		publisher = nc
	}

	store := inventory.NewPg(db)
	squareClient := square.New(cfg.Square)

	agent := &Agent{
		config:     cfg,
		inventory:  store,
		square:     squareClient,
		engine:     conversation.NewEngine(store, squareClient, llm.Timed(model, "chat", metrics), metrics),
		summarizer: conversation.NewSummarizer(llm.Timed(model, "summarize", metrics), metrics),
		kitchen:    kitchen.New(store, llm.Timed(model, "kitchen", metrics), images),
		events:     publisher,
		eventLog:   events.NewStore(db),
		metrics:    metrics,
		upgrader:   websocket.Upgrader{},
	}

	slog.Info("Starting agent", "address", cfg.Server.Address(), "llm", cfg.LLM.Provider, "nats", cfg.Nats.Enabled)
	if err := agent.Run(); err != nil {
		log.Fatalf("failed to run the agent: %v", err)
	}
}
