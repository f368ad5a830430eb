package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidtube/backend/internal/domain"
)

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *videoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *domain.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error) {
	var video domain.Video
	err := r.db.WithContext(ctx).Preload("Owner").First(&video, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) Update(ctx context.Context, video *domain.Video) error {
	return r.db.WithContext(ctx).Save(video).Error
}

func (r *videoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Video{}, "id = ?", id).Error
}

func (r *videoRepository) ListPublishedByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Video, error) {
	var videos []*domain.Video
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_published = true", ownerID).
		Order("created_at DESC").
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Video, error) {
	var videos []*domain.Video
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Video{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}
