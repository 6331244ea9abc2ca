package events

import (
	"context"
	"os"
	"testing"

	"github.com/imkonsowa/restaurants-ordering/database"
	"github.com/imkonsowa/restaurants-ordering/models"
)

func TestStoreRecordIsIdempotent(t *testing.T) {
	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.Open(connStr)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := database.Migrate(db, &models.EventRecord{}); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	store := NewStore(db)
	ctx := context.Background()

	ev, err := NewEvent(KindOrderSummarized, OrderSummarized{Summary: "one pizza"})
	if err != nil {
		t.Fatalf("NewEvent() error = %v", err)
	}
	t.Cleanup(func() { db.Delete(&models.EventRecord{}, "id = ?", ev.ID) })

	for i := 0; i < 2; i++ {
		if err := store.Record(ctx, "ordering.orders.summarized", ev); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	records, err := store.ListRecent(ctx, KindOrderSummarized, 500)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	n := 0
	for _, r := range records {
		if r.ID == ev.ID {
			n++
		}
	}
	if n != 1 {
		t.Fatalf("recorded %d copies, want 1", n)
	}
}
