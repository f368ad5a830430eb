package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidtube/backend/internal/domain"
)

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *likeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *domain.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) Delete(ctx context.Context, userID, videoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Like{}, "user_id = ? AND video_id = ?", userID, videoID).Error
}

func (r *likeRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Like{}).
		Joins("JOIN videos ON videos.id = likes.video_id").
		Where("videos.owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}
