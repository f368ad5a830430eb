package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidtube/backend/internal/domain"
)

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *statsRepository {
	return &statsRepository{db: db}
}

// ChannelStats aggregates the dashboard numbers for a channel owner in a
// handful of grouped queries delegated to the database.
func (r *statsRepository) ChannelStats(ctx context.Context, ownerID uuid.UUID) (*domain.ChannelStats, error) {
	db := r.db.WithContext(ctx)
	stats := &domain.ChannelStats{}

	type videoAgg struct {
		TotalVideos int64
		TotalViews  int64
	}
	var va videoAgg
	err := db.Model(&domain.Video{}).
		Select("COUNT(*) AS total_videos, COALESCE(SUM(views), 0) AS total_views").
		Where("owner_id = ?", ownerID).
		Scan(&va).Error
	if err != nil {
		return nil, err
	}
	stats.TotalVideos = va.TotalVideos
	stats.TotalViews = va.TotalViews

	err = db.Model(&domain.Subscription{}).
		Where("channel_id = ?", ownerID).
		Count(&stats.TotalSubscribers).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&domain.Like{}).
		Joins("JOIN videos ON videos.id = likes.video_id").
		Where("videos.owner_id = ?", ownerID).
		Count(&stats.TotalLikes).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
