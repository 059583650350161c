package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/arena-scrim/internal/config"
	"github.com/riskibarqy/arena-scrim/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:               config.EnvDev,
		HTTPAddr:             ":0",
		StorageDriver:        config.StorageMemory,
		CacheEnabled:         true,
		CacheTTL:             time.Minute,
		CORSAllowedOrigins:   []string{"*"},
		AnubisBaseURL:        "http://127.0.0.1:1",
		AnubisIntrospectPath: "/v1/auth/introspect",
		AnubisTimeout:        time.Second,
		RiotTimeout:          time.Second,
		MinRosterSize:        5,
		RosterRefreshWorkers: 2,
	}
}

func TestNewHTTPServer_MemoryStorage(t *testing.T) {
	t.Parallel()

	srv, cleanup, err := NewHTTPServer(memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	t.Cleanup(func() { _ = cleanup() })

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthz 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rankings/teams", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected empty rankings, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/me/profile", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestNewHTTPServer_RejectsUnknownStorage(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.StorageDriver = "sqlite"
	if _, _, err := NewHTTPServer(cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for unknown storage driver")
	}
}
