package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formrelay/formrelay/internal/config"
	"github.com/formrelay/formrelay/internal/mailer"
	"github.com/formrelay/formrelay/internal/ratelimit"
	"github.com/formrelay/formrelay/internal/server/handlers"
)

type noopNotifier struct{}

func (noopNotifier) Notify(ctx context.Context, n mailer.Notification) error { return nil }

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		RateLimit:    config.RateLimitConfig{Window: 10 * time.Minute, Quota: 5},
		Metrics:      config.MetricsConfig{Enabled: true},
		AllowedSites: "siteA",
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := testConfig()
	return New(cfg, Deps{
		Limiter:  ratelimit.New(cfg.RateLimit.Window, cfg.RateLimit.Quota),
		Notifier: noopNotifier{},
		Health:   handlers.NewHealthManager("test"),
	}, nil)
}

func TestServerRoutesSubmit(t *testing.T) {
	srv := newTestServer(t)

	body := `{"name":"Jane","email":"jane@example.com","message":"Test","site":"siteA"}`
	req := httptest.NewRequest(http.MethodPost, "/api/submit", strings.NewReader(body))
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestServerRoutesHealthAndVersion(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/version"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "GET %s", path)
	}
}

func TestServerMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServerMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = false
	srv := New(cfg, Deps{
		Limiter:  ratelimit.New(time.Minute, 1),
		Notifier: noopNotifier{},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServerNotFoundIsJSON(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, false, resp["ok"])
	assert.Equal(t, "not_found", resp["error"])
}

func TestServerMethodNotAllowedIsJSON(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/submit", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "method_not_allowed", resp["error"])
}
