package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidleathers/demo-call-gateway/internal/infrastructure/config"
)

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()

	srv, err := NewServer(cfg, testLogger(), nil)
	require.NoError(t, err)
	return srv
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			Port:            0,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		RateLimit: config.RateLimitConfig{
			PerMinute:          2,
			PerNumberPerMinute: 10,
		},
		Provider: config.ProviderConfig{
			Mode: config.ProviderModeMock,
		},
	}
}

func serveRequest(srv *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_TransportLimitAppliesToStartCallOnly(t *testing.T) {
	srv := newTestServer(t, testConfig())

	// Distinct numbers so the per-number throttle stays out of the way.
	for i := 0; i < 2; i++ {
		body := startCallBody(t, map[string]interface{}{
			"phone": fmt.Sprintf("+1555123456%d", i),
		})
		rec := serveRequest(srv, http.MethodPost, "/api/start-call", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	body := startCallBody(t, map[string]interface{}{"phone": "+15551234569"})
	rec := serveRequest(srv, http.MethodPost, "/api/start-call", body)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	// Exhausting the intake budget must not take down health checks,
	// metrics scrapes, or the provider's voice-script fetch.
	rec = serveRequest(srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.True(t, health.OK)

	rec = serveRequest(srv, http.MethodGet, "/twiml?industryName=Banking&useCaseName=Collections&requestId=req-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serveRequest(srv, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_HealthUnlimited(t *testing.T) {
	srv := newTestServer(t, testConfig())

	for i := 0; i < 20; i++ {
		rec := serveRequest(srv, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, rec.Code, "health request %d", i+1)
	}
}
