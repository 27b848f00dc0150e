package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/capitolworks/congressd/internal/congress"
	mcpserver "github.com/capitolworks/congressd/internal/mcp"
)

func newTestHTTPServer(t *testing.T, promRegistry *prometheus.Registry) *Server {
	t.Helper()

	client, err := congress.NewClient(congress.Config{
		APIKey:   "test-key",
		CacheTTL: time.Minute,
	})
	require.NoError(t, err)

	registry := mcpserver.NewToolRegistry()
	registry.Register(&mcpserver.ToolMetadata{
		Name:        "search_bills",
		Description: "Search bills and resolutions",
		Category:    mcpserver.CategoryBills,
	})

	s, err := NewServer(client, registry, promRegistry, zap.NewNop(), nil)
	require.NoError(t, err)
	return s
}

func do(s *Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestNewServerValidation(t *testing.T) {
	_, err := NewServer(nil, nil, nil, zap.NewNop(), nil)
	assert.Error(t, err)

	client, err := congress.NewClient(congress.Config{APIKey: "test-key"})
	require.NoError(t, err)
	_, err = NewServer(client, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestHTTPServer(t, nil)

	rec := do(s, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
}

func TestCacheStatsEndpoint(t *testing.T) {
	s := newTestHTTPServer(t, nil)

	rec := do(s, http.MethodGet, "/api/v1/cache/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var body CacheStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Size)
	assert.Equal(t, "1m0s", body.TTL)
}

func TestCacheClearEndpoint(t *testing.T) {
	s := newTestHTTPServer(t, nil)

	rec := do(s, http.MethodDelete, "/api/v1/cache")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestToolsEndpoint(t *testing.T) {
	s := newTestHTTPServer(t, nil)

	rec := do(s, http.MethodGet, "/api/v1/tools")
	require.Equal(t, http.StatusOK, rec.Code)

	var body ToolsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
}

func TestToolsSearchQuery(t *testing.T) {
	s := newTestHTTPServer(t, nil)

	rec := do(s, http.MethodGet, "/api/v1/tools?q=bills")
	require.Equal(t, http.StatusOK, rec.Code)

	var body ToolsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)

	rec = do(s, http.MethodGet, "/api/v1/tools?q=zzz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 0, body.Count)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestHTTPServer(t, prometheus.NewRegistry())

	rec := do(s, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpointDisabled(t *testing.T) {
	s := newTestHTTPServer(t, nil)

	rec := do(s, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
