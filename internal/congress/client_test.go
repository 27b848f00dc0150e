package congress

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, cacheTTL time.Duration) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{
		BaseURL:  srv.URL,
		APIKey:   "test-key",
		CacheTTL: cacheTTL,
		Logger:   zap.NewNop(),
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, srv
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestGetInjectsKeyAndDefaults(t *testing.T) {
	var gotQuery atomic.Value
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.Query())
		w.Write([]byte(`{"bills": []}`))
	}, 0)

	body, err := c.Get(context.Background(), "/bill/119/hr", map[string]string{"offset": "40"})
	require.NoError(t, err)
	assert.Contains(t, body, "bills")

	q := gotQuery.Load().(url.Values)
	assert.Equal(t, "test-key", q["api_key"][0])
	assert.Equal(t, "json", q["format"][0])
	assert.Equal(t, "20", q["limit"][0], "default limit merged under caller params")
	assert.Equal(t, "40", q["offset"][0])
}

func TestGetCallerParamsOverrideDefaults(t *testing.T) {
	var gotLimit atomic.Value
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotLimit.Store(r.URL.Query().Get("limit"))
		w.Write([]byte(`{}`))
	}, 0)

	_, err := c.Get(context.Background(), "/bill", map[string]string{"limit": "100"})
	require.NoError(t, err)
	assert.Equal(t, "100", gotLimit.Load())
}

func TestGetStatusError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such bill", http.StatusNotFound)
	}, 0)

	_, err := c.Get(context.Background(), "/bill/119/hr/999999", nil)
	require.Error(t, err)

	se, isStatus := err.(*StatusError)
	require.True(t, isStatus)
	assert.Equal(t, 404, se.Code)
	assert.True(t, se.Definitive())
	assert.Contains(t, se.Body, "no such bill")
	assert.Greater(t, se.RequestTime, time.Duration(0))
}

func TestStatusErrorDefinitive(t *testing.T) {
	for code, definitive := range map[int]bool{
		400: true, 401: true, 403: true, 404: true,
		429: false, 500: false, 502: false, 503: false,
	} {
		se := &StatusError{Code: code}
		assert.Equal(t, definitive, se.Definitive(), "status %d", code)
	}
}

func TestGetDecodeErrorOnHTMLBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}, 0)

	_, err := c.Get(context.Background(), "/bill", nil)
	require.Error(t, err)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
}

func TestGetCacheShortCircuits(t *testing.T) {
	var calls atomic.Int64
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"bills": [{"number": "1"}]}`))
	}, time.Minute)

	ctx := context.Background()
	_, err := c.Get(ctx, "/bill/119/hr", map[string]string{"limit": "20"})
	require.NoError(t, err)

	// Same logical request with differently-shaped params map hits cache.
	_, err = c.Get(ctx, "/bill/119/hr", map[string]string{"limit": "20", "format": "json"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, uint64(1), c.CacheStats().Hits)
}

func TestGetErrorNotCached(t *testing.T) {
	var calls atomic.Int64
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}, time.Minute)

	ctx := context.Background()
	c.Get(ctx, "/bill", nil)
	c.Get(ctx, "/bill", nil)
	assert.Equal(t, int64(2), calls.Load(), "failures must not be served from cache")
}

func TestRequestCount(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}, 0)

	ctx := context.Background()
	c.Get(ctx, "/bill", nil)
	c.Get(ctx, "/treaty", nil)
	assert.Equal(t, uint64(2), c.RequestCount())
}
