// Command backfill republishes the whole ingredient table as
// ingredient.changed snapshot events, so a fresh ledger starts from the
// current inventory.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/imkonsowa/restaurants-ordering/config"
	"github.com/imkonsowa/restaurants-ordering/database"
	"github.com/imkonsowa/restaurants-ordering/events"
	"github.com/imkonsowa/restaurants-ordering/inventory"
)

func main() {
	cfg := config.LoadConfig()
	ctx := context.Background()

	db, err := database.Open(cfg.Postgres.ConnStr())
	if err != nil {
		log.Fatal("failed to connect to postgres:", err)
	}

	nc, err := events.Connect(cfg.Nats)
	if err != nil {
		log.Fatal("failed to connect to nats:", err)
	}
	defer nc.Close()

	ingredients, err := inventory.NewPg(db).ListIngredients(ctx)
	if err != nil {
		log.Fatal("failed to query ingredients:", err)
	}
	slog.Info("found ingredients", "count", len(ingredients))

	published := 0
	for _, in := range ingredients {
		err := nc.Publish(ctx, events.KindIngredientChanged, events.IngredientChanged{
			Action:     "snapshot",
			Name:       in.Name,
			Ingredient: in,
		})
		if err != nil {
			slog.Error("failed to publish ingredient", "name", in.Name, "err", err)
			continue
		}
		published++
	}

	slog.Info("backfill complete", "ingredients", len(ingredients), "published", published)
}
