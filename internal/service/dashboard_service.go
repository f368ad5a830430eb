package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/repository"
)

type DashboardService struct {
	statsRepo repository.StatsRepository
	videoRepo repository.VideoRepository
}

func NewDashboardService(statsRepo repository.StatsRepository, videoRepo repository.VideoRepository) *DashboardService {
	return &DashboardService{
		statsRepo: statsRepo,
		videoRepo: videoRepo,
	}
}

func (s *DashboardService) Stats(ctx context.Context, ownerID uuid.UUID) (*domain.ChannelStats, error) {
	return s.statsRepo.ChannelStats(ctx, ownerID)
}

// Videos lists every video of the owner, published or not.
func (s *DashboardService) Videos(ctx context.Context, ownerID uuid.UUID) ([]*domain.Video, error) {
	return s.videoRepo.ListByOwner(ctx, ownerID)
}
