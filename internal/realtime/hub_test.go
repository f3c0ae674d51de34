package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ketabino/bookshop/pkg/httpmiddleware"
)

func dialHub(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestBroadcastReachesSubscribers(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()

	srv := httptest.NewServer(hub)
	defer srv.Close()

	first := dialHub(t, srv)
	second := dialHub(t, srv)

	// Registration races the dial returning; give the hub a beat.
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.clients) == 2
	}, time.Second, 5*time.Millisecond)

	hub.Broadcast("orders")

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)

		var event struct {
			Event string `json:"event"`
			Table string `json:"table"`
			At    string `json:"at"`
		}
		require.NoError(t, json.Unmarshal(msg, &event))
		assert.Equal(t, "change", event.Event)
		assert.Equal(t, "orders", event.Table)
		assert.NotEmpty(t, event.At)
	}
}

func TestBroadcastThroughMiddlewareStack(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()

	// Same chain the server mounts in front of the mux, so upgrades are
	// exercised through every wrapper that touches the ResponseWriter.
	mux := http.NewServeMux()
	mux.Handle("GET /api/ws", hub)
	handler := httpmiddleware.Wrap(mux,
		httpmiddleware.Recovery(),
		httpmiddleware.CORS(httpmiddleware.CORSConfig{AllowOrigins: []string{"*"}}),
		httpmiddleware.RateLimitWithCleanup(t.Context(), httpmiddleware.RateLimitConfig{Max: 100, Window: time.Minute}),
		httpmiddleware.RequestID(),
		httpmiddleware.InjectLogger(zap.NewNop()),
		httpmiddleware.LogRequests(),
	)

	srv := httptest.NewServer(handler)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.clients) == 1
	}, time.Second, 5*time.Millisecond)

	hub.Broadcast("orders")

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Event string `json:"event"`
		Table string `json:"table"`
	}
	require.NoError(t, json.Unmarshal(msg, &event))
	assert.Equal(t, "change", event.Event)
	assert.Equal(t, "orders", event.Table)
}

func TestBroadcastWithoutSubscribers(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()

	hub.Broadcast("books")
}

func TestCloseDisconnectsSubscribers(t *testing.T) {
	hub := NewHub(nil)

	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dialHub(t, srv)
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.clients) == 1
	}, time.Second, 5*time.Millisecond)

	hub.Close()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	hub.mu.Lock()
	defer hub.mu.Unlock()
	assert.Empty(t, hub.clients)
}

func TestEncodeChange(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	got := encodeChange("coupons", at)

	assert.JSONEq(t, `{"event":"change","table":"coupons","at":"2025-06-01T12:00:00Z"}`, string(got))
}
