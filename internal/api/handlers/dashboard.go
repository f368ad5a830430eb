package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/vidtube/backend/internal/api/middleware"
	"github.com/vidtube/backend/internal/service"
	"github.com/vidtube/backend/internal/ws"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	hub              *ws.Hub
	upgrader         websocket.Upgrader
}

func NewDashboardHandler(dashboardService *service.DashboardService, hub *ws.Hub) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		hub:              hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	stats, err := h.dashboardService.Stats(r.Context(), userID)
	if err != nil {
		writeInternal(w, "DashboardHandler.Stats", err)
		return
	}
	writeData(w, http.StatusOK, stats)
}

func (h *DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	videos, err := h.dashboardService.Videos(r.Context(), userID)
	if err != nil {
		writeInternal(w, "DashboardHandler.Videos", err)
		return
	}
	writeData(w, http.StatusOK, videos)
}

// Events upgrades to a WebSocket and streams the caller's channel events
// until the client disconnects.
func (h *DashboardHandler) Events(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR [DashboardHandler.Events] upgrade failed: %v", err)
		return
	}

	client := ws.NewClient(h.hub, conn, userID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
