package service

import (
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/repository"
	"github.com/vidtube/backend/internal/token"
)

type Services struct {
	Auth      *AuthService
	User      *UserService
	Video     *VideoService
	Dashboard *DashboardService
}

func NewServices(repos *repository.Repositories, tokens *token.Manager, mediaStore media.Store, events ChannelEvents, cfg *config.Config) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User, tokens, cfg),
		User:      NewUserService(repos.User, repos.Subscription, repos.WatchEvent, mediaStore),
		Video:     NewVideoService(repos.Video, repos.WatchEvent, repos.User, mediaStore, events),
		Dashboard: NewDashboardService(repos.Stats, repos.Video),
	}
}
