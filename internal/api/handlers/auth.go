package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/vidtube/backend/internal/api/middleware"
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type RegisterRequest struct {
	UserName  string `json:"userName"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Password  string `json:"password"`
	AvatarKey string `json:"avatarKey"`
	CoverKey  string `json:"coverKey"`
}

type LoginRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UserName == "" || req.Email == "" || req.FullName == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "userName, email, fullName and password are required")
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		UserName:  req.UserName,
		Email:     req.Email,
		FullName:  req.FullName,
		Password:  req.Password,
		AvatarKey: req.AvatarKey,
		CoverKey:  req.CoverKey,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			writeError(w, http.StatusConflict, "username or email already registered")
			return
		}
		writeInternal(w, "AuthHandler.Register", err)
		return
	}

	h.setAuthCookies(w, result)
	writeData(w, http.StatusCreated, AuthResponse{
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingIdentifier):
			writeError(w, http.StatusBadRequest, "userName or email is required")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			writeInternal(w, "AuthHandler.Login", err)
		}
		return
	}

	h.setAuthCookies(w, result)
	writeData(w, http.StatusOK, AuthResponse{
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh reads the refresh token from the cookie first and the body as a
// fallback, and answers 401 on every verification failure.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	presented := ""
	if cookie, err := r.Cookie("refreshToken"); err == nil {
		presented = cookie.Value
	}
	if presented == "" {
		var req RefreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			presented = req.RefreshToken
		}
	}
	if presented == "" {
		writeError(w, http.StatusUnauthorized, "refresh token required")
		return
	}

	result, err := h.authService.Refresh(r.Context(), presented)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			writeError(w, http.StatusUnauthorized, "invalid refresh token")
			return
		}
		writeInternal(w, "AuthHandler.Refresh", err)
		return
	}

	h.setAuthCookies(w, result)
	writeData(w, http.StatusOK, AuthResponse{
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.authService.Logout(r.Context(), userID); err != nil {
		writeInternal(w, "AuthHandler.Logout", err)
		return
	}

	h.clearAuthCookies(w)
	writeData(w, http.StatusOK, map[string]string{"message": "logged out"})
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "oldPassword and newPassword are required")
		return
	}

	err := h.authService.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOldPassword):
			writeError(w, http.StatusBadRequest, "old password is incorrect")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			writeInternal(w, "AuthHandler.ChangePassword", err)
		}
		return
	}

	writeData(w, http.StatusOK, map[string]string{"message": "password changed"})
}

func (h *AuthHandler) setAuthCookies(w http.ResponseWriter, result *service.AuthResult) {
	http.SetCookie(w, &http.Cookie{
		Name:     "accessToken",
		Value:    result.AccessToken,
		Path:     "/",
		MaxAge:   int(h.cfg.AccessTokenTTL / time.Second),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     "refreshToken",
		Value:    result.RefreshToken,
		Path:     "/",
		MaxAge:   int(h.cfg.RefreshTokenTTL / time.Second),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{"accessToken", "refreshToken"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.cfg.CookieSecure,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
