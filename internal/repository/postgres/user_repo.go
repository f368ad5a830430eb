package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/repository"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "user_name = ?", userName).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmailOrUserName(ctx context.Context, email, userName string) (*domain.User, error) {
	var user domain.User
	q := r.db.WithContext(ctx)
	switch {
	case email != "" && userName != "":
		q = q.Where("email = ? OR user_name = ?", email, userName)
	case email != "":
		q = q.Where("email = ?", email)
	default:
		q = q.Where("user_name = ?", userName)
	}
	if err := q.First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

func (r *userRepository) SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("current_refresh_token", token).Error
}

// RotateRefreshToken is the compare-and-swap that makes refresh rotation
// safe under concurrent requests: the equality guard and the write happen
// in one UPDATE, so of two racing refreshes with the same token exactly one
// sees a row affected.
func (r *userRepository) RotateRefreshToken(ctx context.Context, id uuid.UUID, current, next string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ? AND current_refresh_token = ?", id, current).
		Update("current_refresh_token", next)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrStaleRefreshToken
	}
	return nil
}
