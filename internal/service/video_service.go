package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/repository"
)

var (
	ErrVideoNotFound = errors.New("video not found")
	ErrNotVideoOwner = errors.New("only the video owner can perform this action")
	ErrMissingTitle  = errors.New("title is required")
	ErrMissingMedia  = errors.New("video and thumbnail keys are required")
)

// ChannelEvents receives dashboard events for a channel owner. Implemented
// by the ws hub; a no-op implementation is fine for tests.
type ChannelEvents interface {
	Broadcast(channelID uuid.UUID, eventType string, payload interface{})
}

type VideoService struct {
	videoRepo repository.VideoRepository
	watchRepo repository.WatchEventRepository
	userRepo  repository.UserRepository
	media     media.Store
	events    ChannelEvents
}

func NewVideoService(videoRepo repository.VideoRepository, watchRepo repository.WatchEventRepository, userRepo repository.UserRepository, mediaStore media.Store, events ChannelEvents) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		watchRepo: watchRepo,
		userRepo:  userRepo,
		media:     mediaStore,
		events:    events,
	}
}

type PublishInput struct {
	Title        string
	Description  string
	VideoKey     string
	ThumbnailKey string
	Duration     float64
	Meta         datatypes.JSON
}

func (s *VideoService) Publish(ctx context.Context, ownerID uuid.UUID, input PublishInput) (*domain.Video, error) {
	if input.Title == "" {
		return nil, ErrMissingTitle
	}
	if input.VideoKey == "" || input.ThumbnailKey == "" {
		return nil, ErrMissingMedia
	}

	video := &domain.Video{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        input.Title,
		Description:  input.Description,
		VideoKey:     input.VideoKey,
		ThumbnailKey: input.ThumbnailKey,
		Duration:     input.Duration,
		IsPublished:  true,
		Meta:         input.Meta,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, err
	}

	s.events.Broadcast(ownerID, "video_published", map[string]interface{}{
		"videoId": video.ID,
		"title":   video.Title,
	})
	return video, nil
}

// Get returns a video. Unpublished videos are visible only to their owner.
// An authenticated viewer other than the owner gets a watch-history entry
// and bumps the view counter.
func (s *VideoService) Get(ctx context.Context, id, viewerID uuid.UUID) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, ErrVideoNotFound
	}

	if viewerID != uuid.Nil && viewerID != video.OwnerID {
		s.recordView(ctx, video, viewerID)
	}
	return video, nil
}

func (s *VideoService) recordView(ctx context.Context, video *domain.Video, viewerID uuid.UUID) {
	if err := s.videoRepo.IncrementViews(ctx, video.ID); err != nil {
		log.Printf("ERROR [VideoService.recordView] increment views for %s: %v", video.ID, err)
		return
	}
	video.Views++

	event := &domain.WatchEvent{
		ID:        uuid.New(),
		UserID:    viewerID,
		VideoID:   video.ID,
		WatchedAt: time.Now(),
	}
	if err := s.watchRepo.Create(ctx, event); err != nil {
		log.Printf("ERROR [VideoService.recordView] record watch event for %s: %v", video.ID, err)
	}

	s.events.Broadcast(video.OwnerID, "video_viewed", map[string]interface{}{
		"videoId": video.ID,
		"views":   video.Views,
	})
}

type UpdateVideoInput struct {
	Title        string
	Description  string
	ThumbnailKey string
}

func (s *VideoService) Update(ctx context.Context, id, ownerID uuid.UUID, input UpdateVideoInput) (*domain.Video, error) {
	video, err := s.ownedVideo(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	oldThumbnail := ""
	if input.Title != "" {
		video.Title = input.Title
	}
	if input.Description != "" {
		video.Description = input.Description
	}
	if input.ThumbnailKey != "" && input.ThumbnailKey != video.ThumbnailKey {
		oldThumbnail = video.ThumbnailKey
		video.ThumbnailKey = input.ThumbnailKey
	}

	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}

	if oldThumbnail != "" {
		if err := s.media.Delete(ctx, oldThumbnail); err != nil {
			log.Printf("ERROR [VideoService.Update] delete replaced thumbnail %s: %v", oldThumbnail, err)
		}
	}
	return video, nil
}

func (s *VideoService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	video, err := s.ownedVideo(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if err := s.videoRepo.Delete(ctx, video.ID); err != nil {
		return err
	}

	if err := s.media.Delete(ctx, video.VideoKey, video.ThumbnailKey); err != nil {
		log.Printf("ERROR [VideoService.Delete] delete objects for %s: %v", video.ID, err)
	}
	return nil
}

func (s *VideoService) TogglePublish(ctx context.Context, id, ownerID uuid.UUID) (*domain.Video, error) {
	video, err := s.ownedVideo(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	video.IsPublished = !video.IsPublished
	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// ChannelVideos lists the published videos of a channel by username.
func (s *VideoService) ChannelVideos(ctx context.Context, userName string) ([]*domain.Video, error) {
	owner, err := s.userRepo.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}
	return s.videoRepo.ListPublishedByOwner(ctx, owner.ID)
}

func (s *VideoService) ownedVideo(ctx context.Context, id, ownerID uuid.UUID) (*domain.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if video.OwnerID != ownerID {
		return nil, ErrNotVideoOwner
	}
	return video, nil
}
