package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidtube/backend/internal/testutil"
)

type envelope struct {
	Success    bool            `json:"success"`
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
}

type authData struct {
	User struct {
		ID       string `json:"id"`
		UserName string `json:"userName"`
		Email    string `json:"email"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func postJSON(t *testing.T, url string, body interface{}, cookies ...*http.Cookie) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(http.MethodPost, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func decodeAuthData(t *testing.T, env envelope) authData {
	t.Helper()
	var data authData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

func cookieByName(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func registerUser(t *testing.T, ts *testutil.TestServer, userName, email, password string) authData {
	t.Helper()

	resp, env := postJSON(t, ts.APIURL("/auth/register"), map[string]string{
		"userName": userName,
		"email":    email,
		"fullName": "Test User",
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "register failed: %s", env.Message)
	return decodeAuthData(t, env)
}

func TestAuthEndpoints_RegisterAndLogin(t *testing.T) {
	ts := testutil.NewTestServer(t)

	registerUser(t, ts, "httpuser", "http@example.com", "password123")

	// Duplicate registration conflicts
	resp, env := postJSON(t, ts.APIURL("/auth/register"), map[string]string{
		"userName": "httpuser",
		"email":    "http@example.com",
		"fullName": "Test User",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, env.Success)

	resp, env = postJSON(t, ts.APIURL("/auth/login"), map[string]string{
		"email":    "http@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusOK, env.StatusCode)

	data := decodeAuthData(t, env)
	assert.Equal(t, "httpuser", data.User.UserName)
	assert.NotEmpty(t, data.AccessToken)
	assert.NotEmpty(t, data.RefreshToken)

	// Both session cookies are set HttpOnly
	for _, name := range []string{"accessToken", "refreshToken"} {
		cookie := cookieByName(resp, name)
		require.NotNil(t, cookie, "missing %s cookie", name)
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly)
	}
	assert.Equal(t, data.RefreshToken, cookieByName(resp, "refreshToken").Value)
}

func TestAuthEndpoints_LoginFailures(t *testing.T) {
	ts := testutil.NewTestServer(t)

	registerUser(t, ts, "failuser", "fail@example.com", "password123")

	tests := []struct {
		name       string
		body       map[string]string
		wantStatus int
	}{
		{
			name:       "missing identifier",
			body:       map[string]string{"password": "password123"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown user",
			body:       map[string]string{"email": "ghost@example.com", "password": "password123"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "wrong password",
			body:       map[string]string{"email": "fail@example.com", "password": "nope"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := postJSON(t, ts.APIURL("/auth/login"), tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantStatus, env.StatusCode)
			assert.NotEmpty(t, env.Message)
		})
	}
}

func TestAuthEndpoints_Refresh(t *testing.T) {
	ts := testutil.NewTestServer(t)

	session := registerUser(t, ts, "refreshuser", "refresh@example.com", "password123")

	time.Sleep(1100 * time.Millisecond)

	// Via cookie
	resp, env := postJSON(t, ts.APIURL("/auth/refresh-token"), nil,
		&http.Cookie{Name: "refreshToken", Value: session.RefreshToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rotated := decodeAuthData(t, env)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// The replaced token is rejected, via body this time
	resp, _ = postJSON(t, ts.APIURL("/auth/refresh-token"), map[string]string{
		"refreshToken": session.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// No token at all
	resp, _ = postJSON(t, ts.APIURL("/auth/refresh-token"), nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// The rotated token still works
	time.Sleep(1100 * time.Millisecond)
	resp, _ = postJSON(t, ts.APIURL("/auth/refresh-token"), map[string]string{
		"refreshToken": rotated.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthEndpoints_Logout(t *testing.T) {
	ts := testutil.NewTestServer(t)

	session := registerUser(t, ts, "logoutuser", "logout@example.com", "password123")
	authCookie := &http.Cookie{Name: "accessToken", Value: session.AccessToken}

	resp, env := postJSON(t, ts.APIURL("/auth/logout"), nil, authCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	// Session cookies are expired on the way out
	for _, name := range []string{"accessToken", "refreshToken"} {
		cookie := cookieByName(resp, name)
		require.NotNil(t, cookie, "missing %s cookie", name)
		assert.Less(t, cookie.MaxAge, 0)
	}

	// Logout again with the still-valid access token: same success
	resp, _ = postJSON(t, ts.APIURL("/auth/logout"), nil, authCookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The refresh token from before logout is dead
	resp, _ = postJSON(t, ts.APIURL("/auth/refresh-token"), map[string]string{
		"refreshToken": session.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// No credentials at all
	resp, _ = postJSON(t, ts.APIURL("/auth/logout"), nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthEndpoints_ChangePassword(t *testing.T) {
	ts := testutil.NewTestServer(t)

	session := registerUser(t, ts, "pwuser", "pw@example.com", "oldpassword1")
	authCookie := &http.Cookie{Name: "accessToken", Value: session.AccessToken}

	resp, env := postJSON(t, ts.APIURL("/auth/change-password"), map[string]string{
		"oldPassword": "wrong",
		"newPassword": "newpassword1",
	}, authCookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)

	resp, _ = postJSON(t, ts.APIURL("/auth/change-password"), map[string]string{
		"oldPassword": "oldpassword1",
		"newPassword": "newpassword1",
	}, authCookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Old credential rejected, new one accepted
	resp, _ = postJSON(t, ts.APIURL("/auth/login"), map[string]string{
		"email":    "pw@example.com",
		"password": "oldpassword1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = postJSON(t, ts.APIURL("/auth/login"), map[string]string{
		"email":    "pw@example.com",
		"password": "newpassword1",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The session that changed the password lost its refresh token
	resp, _ = postJSON(t, ts.APIURL("/auth/refresh-token"), map[string]string{
		"refreshToken": session.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthEndpoints_BearerHeader(t *testing.T) {
	ts := testutil.NewTestServer(t)

	session := registerUser(t, ts, "beareruser", "bearer@example.com", "password123")

	req, err := http.NewRequest(http.MethodGet, ts.APIURL("/users/me"), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req, err = http.NewRequest(http.MethodGet, ts.APIURL("/users/me"), nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not-a-token")

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
