package events

import (
	"context"
	"fmt"
	"time"

	"github.com/imkonsowa/restaurants-ordering/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultListLimit = 50

// Store keeps received events in Postgres.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Record saves ev once; a redelivered event with the same id is ignored.
func (s *Store) Record(ctx context.Context, subject string, ev *Event) error {
	rec := models.EventRecord{
		ID:         ev.ID,
		Kind:       ev.Kind,
		Subject:    subject,
		Payload:    string(ev.Payload),
		OccurredAt: ev.OccurredAt,
		ReceivedAt: time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to record event %s: %w", ev.ID, err)
	}

	return nil
}

// ListRecent returns the newest events of kind, newest first.
func (s *Store) ListRecent(ctx context.Context, kind string, limit int) ([]models.EventRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = defaultListLimit
	}

	var records []models.EventRecord
	err := s.db.WithContext(ctx).
		Where("kind = ?", kind).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s events: %w", kind, err)
	}

	return records, nil
}
