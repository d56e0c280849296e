package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dom/daily-diet-api/internal/api"
	"github.com/dom/daily-diet-api/internal/config"
	"github.com/dom/daily-diet-api/internal/repository"
	repoPostgres "github.com/dom/daily-diet-api/internal/repository/postgres"
	"github.com/dom/daily-diet-api/internal/service"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer, migrates it and returns a connection
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_daily_diet"),
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

	testDB := &TestDB{Container: container}
	t.Cleanup(func() {
		testDB.Cleanup()
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := repoPostgres.NewConnection(repoPostgres.Options{
		DatabaseURL: dsn,
		LogLevel:    logger.Silent,
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := repoPostgres.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB.DB = db
	testDB.DSN = dsn
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

	if err := tdb.DB.Exec("TRUNCATE TABLE meals, users CASCADE").Error; err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:            "0", // Random port
		Environment:     "test",
		ShutdownTimeout: time.Second,
		LogLevel:        "error",
		LogFormat:       "console",
		SessionTTL:      7 * 24 * time.Hour,
	}
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
}

// NewTestServer creates a complete test server with all dependencies
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	return NewTestServerWithConfig(t, TestConfig())
}

// NewTestServerWithConfig is NewTestServer with a caller supplied configuration
func NewTestServerWithConfig(t *testing.T, cfg *config.Config) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)

	repos := repoPostgres.NewRepositories(testDB.DB)
	services := service.NewServices(repos)
	router := api.NewRouter(services, cfg)

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
	})

	return ts
}

// URL returns the full URL for a given path
func (ts *TestServer) URL(path string) string {
	return fmt.Sprintf("%s%s", ts.Server.URL, path)
}

// NewSessionClient returns an HTTP client with its own cookie jar, so it
// behaves like one browser session against the test server.
func (ts *TestServer) NewSessionClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &http.Client{Jar: jar, Timeout: 10 * time.Second}
}
