package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/vidtube/backend/internal/api/middleware"
	"github.com/vidtube/backend/internal/service"
)

type VideoHandler struct {
	videoService *service.VideoService
}

func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

type PublishVideoRequest struct {
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	VideoKey     string         `json:"videoKey"`
	ThumbnailKey string         `json:"thumbnailKey"`
	Duration     float64        `json:"duration"`
	Meta         datatypes.JSON `json:"meta"`
}

func (h *VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req PublishVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	video, err := h.videoService.Publish(r.Context(), userID, service.PublishInput{
		Title:        req.Title,
		Description:  req.Description,
		VideoKey:     req.VideoKey,
		ThumbnailKey: req.ThumbnailKey,
		Duration:     req.Duration,
		Meta:         req.Meta,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingTitle), errors.Is(err, service.ErrMissingMedia):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeInternal(w, "VideoHandler.Publish", err)
		}
		return
	}
	writeData(w, http.StatusCreated, video)
}

func (h *VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	videoID, ok := parseVideoID(w, r)
	if !ok {
		return
	}

	viewerID, _ := middleware.GetUserID(r.Context())

	video, err := h.videoService.Get(r.Context(), videoID, viewerID)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			writeError(w, http.StatusNotFound, "video not found")
			return
		}
		writeInternal(w, "VideoHandler.Get", err)
		return
	}
	writeData(w, http.StatusOK, video)
}

type UpdateVideoRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailKey string `json:"thumbnailKey"`
}

func (h *VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	videoID, ok := parseVideoID(w, r)
	if !ok {
		return
	}

	var req UpdateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	video, err := h.videoService.Update(r.Context(), videoID, userID, service.UpdateVideoInput{
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailKey: req.ThumbnailKey,
	})
	if err != nil {
		h.writeVideoError(w, "VideoHandler.Update", err)
		return
	}
	writeData(w, http.StatusOK, video)
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	videoID, ok := parseVideoID(w, r)
	if !ok {
		return
	}

	if err := h.videoService.Delete(r.Context(), videoID, userID); err != nil {
		h.writeVideoError(w, "VideoHandler.Delete", err)
		return
	}
	writeData(w, http.StatusOK, map[string]string{"message": "video deleted"})
}

func (h *VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	videoID, ok := parseVideoID(w, r)
	if !ok {
		return
	}

	video, err := h.videoService.TogglePublish(r.Context(), videoID, userID)
	if err != nil {
		h.writeVideoError(w, "VideoHandler.TogglePublish", err)
		return
	}
	writeData(w, http.StatusOK, video)
}

func (h *VideoHandler) ChannelVideos(w http.ResponseWriter, r *http.Request) {
	userName := chi.URLParam(r, "userName")
	if userName == "" {
		writeError(w, http.StatusBadRequest, "userName is required")
		return
	}

	videos, err := h.videoService.ChannelVideos(r.Context(), userName)
	if err != nil {
		if errors.Is(err, service.ErrChannelNotFound) {
			writeError(w, http.StatusNotFound, "channel not found")
			return
		}
		writeInternal(w, "VideoHandler.ChannelVideos", err)
		return
	}
	writeData(w, http.StatusOK, videos)
}

func (h *VideoHandler) writeVideoError(w http.ResponseWriter, component string, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		writeError(w, http.StatusNotFound, "video not found")
	case errors.Is(err, service.ErrNotVideoOwner):
		writeError(w, http.StatusForbidden, "only the video owner can perform this action")
	default:
		writeInternal(w, component, err)
	}
}

func parseVideoID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	videoID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid video id")
		return uuid.Nil, false
	}
	return videoID, true
}
