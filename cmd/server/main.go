package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vidtube/backend/internal/api"
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/media"
	"github.com/vidtube/backend/internal/repository/postgres"
	"github.com/vidtube/backend/internal/service"
	"github.com/vidtube/backend/internal/token"
	"github.com/vidtube/backend/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Initialize token manager
	tokens, err := token.NewManager(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		log.Fatalf("failed to initialize token manager: %v", err)
	}

	// Initialize media storage
	mediaStore, err := media.NewS3Store(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to initialize media storage: %v", err)
	}

	// Initialize dashboard event hub
	hub := ws.NewHub()
	go hub.Run()

	// Initialize services
	services := service.NewServices(repos, tokens, mediaStore, hub, cfg)

	// Initialize router
	router := api.NewRouter(services, hub, mediaStore, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	hub.Stop()

	log.Println("Server stopped")
}
