package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/vidtube/backend/internal/domain"
)

// ErrStaleRefreshToken is returned by RotateRefreshToken when the stored
// refresh token no longer equals the presented one — the token was rotated,
// cleared, or reused concurrently.
var ErrStaleRefreshToken = errors.New("stored refresh token does not match")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUserName(ctx context.Context, userName string) (*domain.User, error)
	GetByEmailOrUserName(ctx context.Context, email, userName string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error

	// SetRefreshToken unconditionally overwrites the stored refresh token.
	// Passing nil clears it (logout); clearing an already-clear token is a
	// no-op success.
	SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error
	// RotateRefreshToken replaces the stored refresh token with next only if
	// it still equals current, in a single conditional UPDATE. Returns
	// ErrStaleRefreshToken when the guard fails.
	RotateRefreshToken(ctx context.Context, id uuid.UUID, current, next string) error
}

type VideoRepository interface {
	Create(ctx context.Context, video *domain.Video) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)
	Update(ctx context.Context, video *domain.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPublishedByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Video, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Video, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

type WatchEventRepository interface {
	Create(ctx context.Context, event *domain.WatchEvent) error
	// ListByUser returns the user's watch history newest first with the
	// watched video and its owner preloaded.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.WatchEvent, error)
}

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error
	CountByChannel(ctx context.Context, channelID uuid.UUID) (int64, error)
	CountBySubscriber(ctx context.Context, subscriberID uuid.UUID) (int64, error)
	Exists(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
}

type LikeRepository interface {
	Create(ctx context.Context, like *domain.Like) error
	Delete(ctx context.Context, userID, videoID uuid.UUID) error
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type StatsRepository interface {
	ChannelStats(ctx context.Context, ownerID uuid.UUID) (*domain.ChannelStats, error)
}

type Repositories struct {
	User         UserRepository
	Video        VideoRepository
	WatchEvent   WatchEventRepository
	Subscription SubscriptionRepository
	Like         LikeRepository
	Stats        StatsRepository
}
