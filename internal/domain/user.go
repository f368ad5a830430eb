package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserName     string    `json:"userName" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	FullName     string    `json:"fullName" gorm:"not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	AvatarKey    string    `json:"avatarKey"`
	CoverKey     string    `json:"coverKey"`
	// CurrentRefreshToken is the single live refresh token for this user.
	// NULL means logged out; a presented refresh token that does not match
	// this value exactly is rejected.
	CurrentRefreshToken *string   `json:"-"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// ChannelProfile is the public projection of a user's channel with
// subscription aggregates for the requesting viewer.
type ChannelProfile struct {
	ID              uuid.UUID `json:"id"`
	UserName        string    `json:"userName"`
	FullName        string    `json:"fullName"`
	AvatarKey       string    `json:"avatarKey"`
	CoverKey        string    `json:"coverKey"`
	SubscriberCount int64     `json:"subscriberCount"`
	SubscribedTo    int64     `json:"subscribedToCount"`
	IsSubscribed    bool      `json:"isSubscribed"`
}

type Subscription struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SubscriberID uuid.UUID `json:"subscriberId" gorm:"type:uuid;not null;uniqueIndex:idx_subscriber_channel"`
	ChannelID    uuid.UUID `json:"channelId" gorm:"type:uuid;not null;uniqueIndex:idx_subscriber_channel"`
	CreatedAt    time.Time `json:"createdAt"`
}
