package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vidtube/backend/internal/media"
)

type MediaHandler struct {
	store media.Store
}

func NewMediaHandler(store media.Store) *MediaHandler {
	return &MediaHandler{store: store}
}

type PresignRequest struct {
	Kind        string `json:"kind"`
	ContentType string `json:"contentType"`
}

const presignTTL = 15 * time.Minute

// Presign hands the client a PUT URL so the file bytes never pass through
// this backend.
func (h *MediaHandler) Presign(w http.ResponseWriter, r *http.Request) {
	var req PresignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Kind == "" || req.ContentType == "" {
		writeError(w, http.StatusBadRequest, "kind and contentType are required")
		return
	}

	upload, err := h.store.PresignUpload(r.Context(), media.Kind(req.Kind), req.ContentType, presignTTL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeData(w, http.StatusOK, upload)
}
