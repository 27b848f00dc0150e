package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	c := New(5 * time.Minute)

	body := map[string]any{"bills": []any{}}
	c.Set("k", body)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, body, got)
}

func TestGetMiss(t *testing.T) {
	c := New(5 * time.Minute)
	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestExpiredEntryRemoved(t *testing.T) {
	c := New(50 * time.Millisecond)
	c.Set("k", map[string]any{"n": 1})

	_, ok := c.Get("k")
	require.True(t, ok, "fresh entry is a hit")
	assert.Equal(t, 1, c.GetStats().Size)

	time.Sleep(80 * time.Millisecond)

	_, ok = c.Get("k")
	assert.False(t, ok, "expired entry is a miss")
	assert.Equal(t, 0, c.GetStats().Size, "expired entry deleted on read")
}

func TestSetRestartsTTL(t *testing.T) {
	c := New(80 * time.Millisecond)
	c.Set("k", map[string]any{"v": 1})
	time.Sleep(50 * time.Millisecond)
	c.Set("k", map[string]any{"v": 2})
	time.Sleep(50 * time.Millisecond)

	got, ok := c.Get("k")
	require.True(t, ok, "overwrite restarted the clock")
	assert.Equal(t, 2, got["v"])
}

func TestClear(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", map[string]any{})
	c.Set("b", map[string]any{})
	c.Clear()
	assert.Equal(t, 0, c.GetStats().Size)
}

func TestStats(t *testing.T) {
	c := New(time.Minute)

	s := c.GetStats()
	assert.Zero(t, s.HitRatio, "no accesses yet")

	c.Set("k", map[string]any{})
	c.Get("k")
	c.Get("k")
	c.Get("missing")

	s = c.GetStats()
	assert.Equal(t, uint64(2), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
	assert.InDelta(t, 2.0/3.0, s.HitRatio, 1e-9)
	assert.Equal(t, time.Minute, s.TTL)
}

func TestKeyOrderIndependent(t *testing.T) {
	a := Key("/bill/119", map[string]string{"a": "1", "b": "2"})
	b := Key("/bill/119", map[string]string{"b": "2", "a": "1"})
	assert.Equal(t, a, b)
	assert.Equal(t, "/bill/119?a=1&b=2", a)
}

func TestKeyExcludesAPIKey(t *testing.T) {
	k := Key("/bill/119", map[string]string{"api_key": "secret", "limit": "20"})
	assert.NotContains(t, k, "secret")
	assert.Equal(t, "/bill/119?limit=20", k)
}

func TestKeyNoParams(t *testing.T) {
	assert.Equal(t, "/congress", Key("/congress", nil))
}

func TestConcurrentAccess(t *testing.T) {
	c := New(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%8)
				c.Set(key, map[string]any{"n": n})
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	s := c.GetStats()
	assert.Equal(t, 8, s.Size)
}
