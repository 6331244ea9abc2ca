package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/imkonsowa/restaurants-ordering/config"
	"github.com/imkonsowa/restaurants-ordering/database"
	"github.com/imkonsowa/restaurants-ordering/events"
	"github.com/imkonsowa/restaurants-ordering/models"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg := config.LoadConfig()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	nc, err := events.Connect(cfg.Nats)
	if err != nil {
		log.Fatal(err)
	}
	defer nc.Close()

	db, err := database.Open(cfg.Postgres.ConnStr())
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db, &models.EventRecord{}); err != nil {
		log.Fatal(err)
	}

	handler := NewHandler(events.NewStore(db))

	slog.Info("Starting ledger", "workers", cfg.Ledger.Workers, "queueSize", cfg.Ledger.QueueSize)

	workerPools := newPools(cfg.Nats.Subjects(), cfg.Ledger.Workers, cfg.Ledger.QueueSize, handler.HandleEvent)

	worker, subCtx := errgroup.WithContext(ctx)
	errChan := make(chan error, 1)

	for subject, pool := range workerPools {
		worker.Go(func() error {
			return nc.Subscribe(subCtx, subject, pool)
		})
	}

	go func() {
		errChan <- worker.Wait()
	}()

	select {
	case <-shutdown:
		slog.Info("Shutting down")
		cancel()
		<-errChan
	case err := <-errChan:
		slog.Info("Shutting down due to error", "error", err)
		cancel()
	}

	// subscribers are done submitting, the pools can be closed
	for _, pool := range workerPools {
		pool.Stop()
	}
}
