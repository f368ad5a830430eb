package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vidtube/backend/internal/api/middleware"
	"github.com/vidtube/backend/internal/domain"
	"github.com/vidtube/backend/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeData(w, http.StatusOK, user)
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FullName == "" && req.Email == "" {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	user, err := h.userService.UpdateAccount(r.Context(), userID, service.UpdateAccountInput{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		writeInternal(w, "UserHandler.UpdateAccount", err)
		return
	}
	writeData(w, http.StatusOK, user)
}

type UpdateMediaRequest struct {
	Key string `json:"key"`
}

func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateMedia(w, r, h.userService.UpdateAvatar, "UserHandler.UpdateAvatar")
}

func (h *UserHandler) UpdateCover(w http.ResponseWriter, r *http.Request) {
	h.updateMedia(w, r, h.userService.UpdateCover, "UserHandler.UpdateCover")
}

func (h *UserHandler) updateMedia(
	w http.ResponseWriter,
	r *http.Request,
	update func(ctx context.Context, userID uuid.UUID, key string) (*domain.User, error),
	component string,
) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	user, err := update(r.Context(), userID, req.Key)
	if err != nil {
		writeInternal(w, component, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

// ChannelProfile is public; when the viewer is authenticated the response
// carries their subscription flag.
func (h *UserHandler) ChannelProfile(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "userName")
	if userName == "" {
		writeError(w, http.StatusBadRequest, "userName is required")
		return
	}

	viewerID, _ := middleware.GetUserID(r.Context())

	profile, err := h.userService.ChannelProfile(r.Context(), userName, viewerID)
	if err != nil {
		if errors.Is(err, service.ErrChannelNotFound) {
			writeError(w, http.StatusNotFound, "channel not found")
			return
		}
		writeInternal(w, "UserHandler.ChannelProfile", err)
		return
	}
	writeData(w, http.StatusOK, profile)
}

func (h *UserHandler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	history, err := h.userService.WatchHistory(r.Context(), userID)
	if err != nil {
		writeInternal(w, "UserHandler.WatchHistory", err)
		return
	}
	writeData(w, http.StatusOK, history)
}
