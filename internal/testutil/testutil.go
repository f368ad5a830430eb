package testutil

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vidtube/backend/internal/api"
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/domain"
	repoPostgres "github.com/vidtube/backend/internal/repository/postgres"
	"github.com/vidtube/backend/internal/service"
	"github.com/vidtube/backend/internal/token"
	"github.com/vidtube/backend/internal/ws"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a connection
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_vidtube"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	err = db.AutoMigrate(
		&domain.User{},
		&domain.Video{},
		&domain.WatchEvent{},
		&domain.Subscription{},
		&domain.Like{},
	)
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		ctx := context.Background()
		tdb.Container.Terminate(ctx)
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"likes",
		"subscriptions",
		"watch_events",
		"videos",
		"users",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec("TRUNCATE TABLE " + table + " CASCADE").Error; err != nil {
			t.Fatalf("failed to truncate %s: %v", table, err)
		}
	}
}

// TestConfig returns a config suitable for tests
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		Environment:        "test",
		AccessTokenSecret:  "test-access-secret",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenSecret: "test-refresh-secret",
		RefreshTokenTTL:    7 * 24 * time.Hour,
		CookieSecure:       false,
	}
}

// TestTokens builds a token manager from the test config
func TestTokens(t *testing.T) *token.Manager {
	t.Helper()

	cfg := TestConfig()
	tokens, err := token.NewManager(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		t.Fatalf("failed to create token manager: %v", err)
	}
	return tokens
}

// TestServer wires the full HTTP stack against a testcontainer database
type TestServer struct {
	Server *httptest.Server
	DB     *TestDB
	Media  *FakeMediaStore
	Hub    *ws.Hub
	Config *config.Config
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	repos := repoPostgres.NewRepositories(testDB.DB)
	cfg := TestConfig()
	tokens := TestTokens(t)
	mediaStore := NewFakeMediaStore()

	hub := ws.NewHub()
	go hub.Run()

	services := service.NewServices(repos, tokens, mediaStore, hub, cfg)
	router := api.NewRouter(services, hub, mediaStore, cfg)

	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		hub.Stop()
	})

	return &TestServer{
		Server: server,
		DB:     testDB,
		Media:  mediaStore,
		Hub:    hub,
		Config: cfg,
	}
}

// APIURL builds a full URL for an /api/v1 path
func (ts *TestServer) APIURL(path string) string {
	return ts.Server.URL + "/api/v1" + path
}
