package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/repository"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Video{},
		&domain.WatchEvent{},
		&domain.Subscription{},
		&domain.Like{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:         NewUserRepository(db),
		Video:        NewVideoRepository(db),
		WatchEvent:   NewWatchEventRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Like:         NewLikeRepository(db),
		Stats:        NewStatsRepository(db),
	}
}
