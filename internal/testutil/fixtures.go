package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vidtube/backend/internal/domain"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	userName string
	email    string
	fullName string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		userName: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		fullName: "Test User",
		password: "testpassword123",
	}
}

func (b *UserBuilder) WithUserName(name string) *UserBuilder {
	b.userName = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		UserName:     b.userName,
		Email:        b.email,
		FullName:     b.fullName,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// VideoBuilder creates test videos
type VideoBuilder struct {
	ownerID     uuid.UUID
	title       string
	isPublished bool
	views       int64
}

func NewVideoBuilder(ownerID uuid.UUID) *VideoBuilder {
	return &VideoBuilder{
		ownerID:     ownerID,
		title:       fmt.Sprintf("test video %s", uuid.New().String()[:8]),
		isPublished: true,
	}
}

func (b *VideoBuilder) WithTitle(title string) *VideoBuilder {
	b.title = title
	return b
}

func (b *VideoBuilder) Unpublished() *VideoBuilder {
	b.isPublished = false
	return b
}

func (b *VideoBuilder) WithViews(views int64) *VideoBuilder {
	b.views = views
	return b
}

func (b *VideoBuilder) Build(t *testing.T, db *gorm.DB) *domain.Video {
	t.Helper()

	video := &domain.Video{
		ID:           uuid.New(),
		OwnerID:      b.ownerID,
		Title:        b.title,
		VideoKey:     fmt.Sprintf("videos/%s.mp4", uuid.New().String()),
		ThumbnailKey: fmt.Sprintf("thumbnails/%s.png", uuid.New().String()),
		Duration:     42,
		Views:        b.views,
		IsPublished:  b.isPublished,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(video).Error; err != nil {
		t.Fatalf("failed to create video: %v", err)
	}

	return video
}

// Subscribe creates a subscription row
func Subscribe(t *testing.T, db *gorm.DB, subscriberID, channelID uuid.UUID) {
	t.Helper()

	sub := &domain.Subscription{
		ID:           uuid.New(),
		SubscriberID: subscriberID,
		ChannelID:    channelID,
		CreatedAt:    time.Now(),
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("failed to create subscription: %v", err)
	}
}

// LikeVideo creates a like row
func LikeVideo(t *testing.T, db *gorm.DB, userID, videoID uuid.UUID) {
	t.Helper()

	like := &domain.Like{
		ID:        uuid.New(),
		UserID:    userID,
		VideoID:   videoID,
		CreatedAt: time.Now(),
	}
	if err := db.Create(like).Error; err != nil {
		t.Fatalf("failed to create like: %v", err)
	}
}
