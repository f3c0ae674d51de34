package httpmiddleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func hit(handler http.Handler, remoteAddr string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestRateLimit_UnderLimit(t *testing.T) {
	handler := RateLimit(RateLimitConfig{Max: 5, Window: time.Minute})(okHandler())

	for i := range 5 {
		w := hit(handler, "192.168.1.1:12345", nil)
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	}
}

func TestRateLimit_OverLimit(t *testing.T) {
	handler := RateLimit(RateLimitConfig{Max: 2, Window: time.Minute})(okHandler())

	for range 2 {
		w := hit(handler, "10.0.0.1:9999", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := hit(handler, "10.0.0.1:9999", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "rate limit exceeded", body["error"])
}

func TestRateLimit_BucketsPerIP(t *testing.T) {
	handler := RateLimit(RateLimitConfig{Max: 1, Window: time.Minute})(okHandler())

	assert.Equal(t, http.StatusOK, hit(handler, "10.0.0.1:1234", nil).Code)
	assert.Equal(t, http.StatusOK, hit(handler, "10.0.0.2:1234", nil).Code)

	// Same client on a new port is still the same bucket.
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "10.0.0.1:5678", nil).Code)
}

func TestRateLimit_CustomKeyFunc(t *testing.T) {
	handler := RateLimit(RateLimitConfig{
		Max:    1,
		Window: time.Minute,
		KeyFunc: func(r *http.Request) string {
			return r.Header.Get("X-API-Key")
		},
	})(okHandler())

	keyA := http.Header{"X-Api-Key": {"key-a"}}
	keyB := http.Header{"X-Api-Key": {"key-b"}}

	assert.Equal(t, http.StatusOK, hit(handler, "1.1.1.1:1", keyA).Code)
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "2.2.2.2:2", keyA).Code)
	assert.Equal(t, http.StatusOK, hit(handler, "1.1.1.1:1", keyB).Code)
}

func TestRateLimit_XForwardedFor(t *testing.T) {
	handler := RateLimit(RateLimitConfig{Max: 1, Window: time.Minute})(okHandler())

	fwd := http.Header{"X-Forwarded-For": {"203.0.113.50, 70.41.3.18"}}

	assert.Equal(t, http.StatusOK, hit(handler, "192.168.1.1:4444", fwd).Code)

	// Same forwarded client behind a different proxy hop is limited.
	assert.Equal(t, http.StatusTooManyRequests, hit(handler, "192.168.1.2:5555", fwd).Code)
}

func TestRateLimiter_Evict(t *testing.T) {
	rl := newRateLimiter(RateLimitConfig{Max: 1, Window: time.Minute})
	now := time.Now()

	_, _, ok := rl.allow("stale", now.Add(-3*time.Minute))
	require.True(t, ok)
	_, _, ok = rl.allow("fresh", now)
	require.True(t, ok)

	rl.evict(now)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.buckets, "stale")
	assert.Contains(t, rl.buckets, "fresh")
}
