package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidtube/backend/internal/domain"
)

type watchEventRepository struct {
	db *gorm.DB
}

func NewWatchEventRepository(db *gorm.DB) *watchEventRepository {
	return &watchEventRepository{db: db}
}

func (r *watchEventRepository) Create(ctx context.Context, event *domain.WatchEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *watchEventRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WatchEvent, error) {
	var events []*domain.WatchEvent
	q := r.db.WithContext(ctx).
		Preload("Video").
		Preload("Video.Owner").
		Where("user_id = ?", userID).
		Order("watched_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
