package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/repository"
)

var ErrChannelNotFound = errors.New("channel not found")

type UserService struct {
	userRepo  repository.UserRepository
	subRepo   repository.SubscriptionRepository
	watchRepo repository.WatchEventRepository
	media     media.Store
}

func NewUserService(userRepo repository.UserRepository, subRepo repository.SubscriptionRepository, watchRepo repository.WatchEventRepository, mediaStore media.Store) *UserService {
	return &UserService{
		userRepo:  userRepo,
		subRepo:   subRepo,
		watchRepo: watchRepo,
		media:     mediaStore,
	}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

type UpdateAccountInput struct {
	FullName string
	Email    string
}

func (s *UserService) UpdateAccount(ctx context.Context, userID uuid.UUID, input UpdateAccountInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(input.Email))
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateAvatar swaps the avatar object reference and deletes the replaced
// object. Storage cleanup failure does not fail the request; the record is
// already consistent.
func (s *UserService) UpdateAvatar(ctx context.Context, userID uuid.UUID, key string) (*domain.User, error) {
	return s.swapMediaKey(ctx, userID, key, func(u *domain.User) *string { return &u.AvatarKey })
}

func (s *UserService) UpdateCover(ctx context.Context, userID uuid.UUID, key string) (*domain.User, error) {
	return s.swapMediaKey(ctx, userID, key, func(u *domain.User) *string { return &u.CoverKey })
}

func (s *UserService) swapMediaKey(ctx context.Context, userID uuid.UUID, key string, field func(*domain.User) *string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	slot := field(user)
	old := *slot
	*slot = key

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if old != "" && old != key {
		if err := s.media.Delete(ctx, old); err != nil {
			log.Printf("ERROR [UserService.swapMediaKey] delete replaced object %s: %v", old, err)
		}
	}
	return user, nil
}

// ChannelProfile resolves a channel by username with subscription
// aggregates. viewerID may be uuid.Nil for anonymous requests.
func (s *UserService) ChannelProfile(ctx context.Context, userName string, viewerID uuid.UUID) (*domain.ChannelProfile, error) {
	user, err := s.userRepo.GetByUserName(ctx, strings.ToLower(strings.TrimSpace(userName)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	subscribers, err := s.subRepo.CountByChannel(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	subscribedTo, err := s.subRepo.CountBySubscriber(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if viewerID != uuid.Nil {
		isSubscribed, err = s.subRepo.Exists(ctx, viewerID, user.ID)
		if err != nil {
			return nil, err
		}
	}

	return &domain.ChannelProfile{
		ID:              user.ID,
		UserName:        user.UserName,
		FullName:        user.FullName,
		AvatarKey:       user.AvatarKey,
		CoverKey:        user.CoverKey,
		SubscriberCount: subscribers,
		SubscribedTo:    subscribedTo,
		IsSubscribed:    isSubscribed,
	}, nil
}

const watchHistoryLimit = 100

func (s *UserService) WatchHistory(ctx context.Context, userID uuid.UUID) ([]*domain.WatchEvent, error) {
	return s.watchRepo.ListByUser(ctx, userID, watchHistoryLimit)
}
