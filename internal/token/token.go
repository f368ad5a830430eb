// Package token issues and verifies the signed access/refresh token pair.
// The two kinds are signed with distinct secrets, so a token of one kind can
// never verify as the other.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Kind string

const (
	Access  Kind = "access"
	Refresh Kind = "refresh"
)

var (
	ErrExpired          = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrMalformed        = errors.New("token malformed")
)

type Claims struct {
	UserID string `json:"uid"`
	Kind   string `json:"tkn"`
	jwt.RegisteredClaims
}

// Subject returns the user ID carried by the claims.
func (c *Claims) Subject() (uuid.UUID, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, ErrMalformed
	}
	return id, nil
}

type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*Manager, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, errors.New("token secrets are required")
	}
	if accessSecret == refreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// Issue signs a token of the given kind for the user. The only difference
// between two calls with identical inputs is the iat/exp timestamps.
func (m *Manager) Issue(userID uuid.UUID, kind Kind) (string, error) {
	secret, ttl, err := m.kindParams(kind)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		UserID: userID.String(),
		Kind:   string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify parses and validates a token of the given kind. It fails with
// ErrExpired past expiry, ErrInvalidSignature when the signature does not
// match the kind's secret, and ErrMalformed when the token cannot be parsed.
func (m *Manager) Verify(tokenStr string, kind Kind) (*Claims, error) {
	secret, _, err := m.kindParams(kind)
	if err != nil {
		return nil, err
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrMalformed
	}
	if claims.Kind != string(kind) {
		return nil, ErrInvalidSignature
	}

	return claims, nil
}

func (m *Manager) kindParams(kind Kind) ([]byte, time.Duration, error) {
	switch kind {
	case Access:
		return m.accessSecret, m.accessTTL, nil
	case Refresh:
		return m.refreshSecret, m.refreshTTL, nil
	default:
		return nil, 0, fmt.Errorf("unknown token kind %q", kind)
	}
}
