package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Video struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID      uuid.UUID      `json:"ownerId" gorm:"type:uuid;not null;index"`
	Title        string         `json:"title" gorm:"not null"`
	Description  string         `json:"description"`
	VideoKey     string         `json:"videoKey" gorm:"not null"`
	ThumbnailKey string         `json:"thumbnailKey" gorm:"not null"`
	Duration     float64        `json:"duration"`
	Views        int64          `json:"views" gorm:"not null;default:0"`
	IsPublished  bool           `json:"isPublished" gorm:"not null;default:true"`
	Meta         datatypes.JSON `json:"meta" gorm:"type:jsonb"` // encoding pipeline output: {"codec": ..., "resolutions": [...]}
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
}

// WatchEvent is one entry in a user's watch history, newest first when listed.
type WatchEvent struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	VideoID   uuid.UUID `json:"videoId" gorm:"type:uuid;not null"`
	WatchedAt time.Time `json:"watchedAt" gorm:"not null;index"`

	Video *Video `json:"video,omitempty" gorm:"foreignKey:VideoID"`
}

type Like struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_user_video_like"`
	VideoID   uuid.UUID `json:"videoId" gorm:"type:uuid;not null;uniqueIndex:idx_user_video_like"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChannelStats is the dashboard aggregation for a channel owner.
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}
