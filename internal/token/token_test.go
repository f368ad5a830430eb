package token_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidtube/backend/internal/token"
)

func newManager(t *testing.T) *token.Manager {
	t.Helper()
	m, err := token.NewManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	return m
}

func TestManager_New(t *testing.T) {
	tests := []struct {
		name          string
		accessSecret  string
		refreshSecret string
		wantErr       bool
	}{
		{
			name:          "valid secrets",
			accessSecret:  "a",
			refreshSecret: "b",
		},
		{
			name:          "missing access secret",
			accessSecret:  "",
			refreshSecret: "b",
			wantErr:       true,
		},
		{
			name:          "identical secrets",
			accessSecret:  "same",
			refreshSecret: "same",
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := token.NewManager(tt.accessSecret, tt.refreshSecret, time.Minute, time.Hour)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestManager_IssueVerifyRoundTrip(t *testing.T) {
	m := newManager(t)
	userID := uuid.New()

	for _, kind := range []token.Kind{token.Access, token.Refresh} {
		signed, err := m.Issue(userID, kind)
		require.NoError(t, err)
		assert.NotEmpty(t, signed)

		claims, err := m.Verify(signed, kind)
		require.NoError(t, err)

		got, err := claims.Subject()
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	}
}

func TestManager_Verify_Expired(t *testing.T) {
	m, err := token.NewManager("access-secret", "refresh-secret", 0, 0)
	require.NoError(t, err)

	signed, err := m.Issue(uuid.New(), token.Access)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = m.Verify(signed, token.Access)
	assert.ErrorIs(t, err, token.ErrExpired)
}

func TestManager_Verify_CrossKindRejected(t *testing.T) {
	m := newManager(t)
	userID := uuid.New()

	refreshToken, err := m.Issue(userID, token.Refresh)
	require.NoError(t, err)
	accessToken, err := m.Issue(userID, token.Access)
	require.NoError(t, err)

	_, err = m.Verify(refreshToken, token.Access)
	assert.ErrorIs(t, err, token.ErrInvalidSignature)

	_, err = m.Verify(accessToken, token.Refresh)
	assert.ErrorIs(t, err, token.ErrInvalidSignature)
}

func TestManager_Verify_WrongSecret(t *testing.T) {
	m := newManager(t)
	other, err := token.NewManager("different-access", "different-refresh", time.Minute, time.Hour)
	require.NoError(t, err)

	signed, err := other.Issue(uuid.New(), token.Refresh)
	require.NoError(t, err)

	_, err = m.Verify(signed, token.Refresh)
	assert.ErrorIs(t, err, token.ErrInvalidSignature)
}

func TestManager_Verify_Malformed(t *testing.T) {
	m := newManager(t)

	for _, input := range []string{"", "garbage", "a.b.c"} {
		_, err := m.Verify(input, token.Access)
		assert.ErrorIs(t, err, token.ErrMalformed, "input %q", input)
	}
}
