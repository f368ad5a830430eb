package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/vidtube/backend/internal/api/handlers"
	"github.com/vidtube/backend/internal/api/middleware"
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/service"
	"github.com/vidtube/backend/internal/ws"
)

func NewRouter(services *service.Services, hub *ws.Hub, mediaStore media.Store, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth, cfg)
	userHandler := handlers.NewUserHandler(services.User)
	videoHandler := handlers.NewVideoHandler(services.Video)
	mediaHandler := handlers.NewMediaHandler(mediaStore)
	dashboardHandler := handlers.NewDashboardHandler(services.Dashboard, hub)

	requireAuth := middleware.Auth(services.Auth)
	optionalAuth := middleware.OptionalAuth(services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh-token", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/logout", authHandler.Logout)
				r.Post("/change-password", authHandler.ChangePassword)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", userHandler.Me)
				r.Patch("/me", userHandler.UpdateAccount)
				r.Patch("/me/avatar", userHandler.UpdateAvatar)
				r.Patch("/me/cover", userHandler.UpdateCover)
				r.Get("/me/history", userHandler.WatchHistory)
			})

			r.With(optionalAuth).Get("/c/{userName}", userHandler.ChannelProfile)
		})

		r.Route("/videos", func(r chi.Router) {
			r.With(optionalAuth).Get("/{id}", videoHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", videoHandler.Publish)
				r.Patch("/{id}", videoHandler.Update)
				r.Delete("/{id}", videoHandler.Delete)
				r.Post("/{id}/toggle", videoHandler.TogglePublish)
			})
		})

		r.Get("/channels/{userName}/videos", videoHandler.ChannelVideos)

		r.With(requireAuth).Post("/media/presign", mediaHandler.Presign)

		r.Route("/dashboard", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/stats", dashboardHandler.Stats)
			r.Get("/videos", dashboardHandler.Videos)
			r.Get("/ws", dashboardHandler.Events)
		})
	})

	return r
}
