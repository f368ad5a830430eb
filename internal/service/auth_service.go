package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/repository"
	"github.com/vidtube/backend/internal/token"
)

var (
	ErrMissingIdentifier  = errors.New("username or email is required")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
	ErrInvalidOldPassword = errors.New("old password is incorrect")
	ErrUserExists         = errors.New("username or email already registered")
)

// AuthService owns the session lifecycle: credential verification, token
// pair issuance, refresh rotation, and logout invalidation. Each user has
// at most one live refresh token; logging in again evicts the previous
// session.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Manager, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		cfg:      cfg,
	}
}

type RegisterInput struct {
	UserName  string
	Email     string
	FullName  string
	Password  string
	AvatarKey string
	CoverKey  string
}

type LoginInput struct {
	UserName string
	Email    string
	Password string
}

type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	userName := strings.ToLower(strings.TrimSpace(input.UserName))
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.userRepo.GetByEmailOrUserName(ctx, email, userName)
	if err == nil && existing != nil {
		return nil, ErrUserExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		UserName:     userName,
		Email:        email,
		FullName:     input.FullName,
		PasswordHash: string(hashedPassword),
		AvatarKey:    input.AvatarKey,
		CoverKey:     input.CoverKey,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueSession(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	userName := strings.ToLower(strings.TrimSpace(input.UserName))
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if userName == "" && email == "" {
		return nil, ErrMissingIdentifier
	}

	user, err := s.userRepo.GetByEmailOrUserName(ctx, email, userName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(ctx, user)
}

// Refresh exchanges a valid, current refresh token for a new pair. The old
// token becomes permanently unusable even though it has not expired: the
// stored value is swapped to the new token in a single conditional update,
// so a reused or raced token fails with ErrInvalidRefresh.
func (s *AuthService) Refresh(ctx context.Context, presented string) (*AuthResult, error) {
	if presented == "" {
		return nil, ErrInvalidRefresh
	}

	claims, err := s.tokens.Verify(presented, token.Refresh)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	userID, err := claims.Subject()
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if user.CurrentRefreshToken == nil || *user.CurrentRefreshToken != presented {
		return nil, ErrInvalidRefresh
	}

	accessToken, err := s.tokens.Issue(user.ID, token.Access)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.Issue(user.ID, token.Refresh)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.RotateRefreshToken(ctx, user.ID, presented, refreshToken); err != nil {
		if errors.Is(err, repository.ErrStaleRefreshToken) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}

	user.CurrentRefreshToken = &refreshToken
	return &AuthResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout clears the stored refresh token. Calling it when already logged
// out is a no-op success.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.userRepo.SetRefreshToken(ctx, userID, nil)
}

// ChangePassword replaces the stored hash and invalidates the live session,
// so outstanding refresh tokens stop working immediately.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return ErrInvalidOldPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, userID, string(hashedPassword)); err != nil {
		return err
	}

	return s.userRepo.SetRefreshToken(ctx, userID, nil)
}

// VerifyAccess validates an access token and returns the user ID it carries.
func (s *AuthService) VerifyAccess(tokenStr string) (uuid.UUID, error) {
	claims, err := s.tokens.Verify(tokenStr, token.Access)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.Subject()
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*AuthResult, error) {
	accessToken, err := s.tokens.Issue(user.ID, token.Access)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.Issue(user.ID, token.Refresh)
	if err != nil {
		return nil, err
	}

	// Overwrites any previous value: a login from a second location
	// invalidates the first session.
	if err := s.userRepo.SetRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, err
	}

	user.CurrentRefreshToken = &refreshToken
	return &AuthResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
