package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/factsheet/internal/common"
	"github.com/ternarybob/factsheet/internal/site"
)

func testLogger() arbor.ILogger {
	return arbor.NewLogger()
}

func dialHub(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestReloadHub_Broadcast(t *testing.T) {
	hub := newReloadHub(time.Millisecond, testLogger())
	srv := httptest.NewServer(http.HandlerFunc(hub.handleConnection))
	defer srv.Close()

	conn := dialHub(t, srv.URL)

	// Registration happens before handleConnection returns, but give the
	// read pump a moment to start.
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 1
	}, time.Second, 5*time.Millisecond)

	hub.broadcastReload()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "reload", string(msg))
}

func TestReloadHub_Throttle(t *testing.T) {
	hub := newReloadHub(time.Hour, testLogger())
	srv := httptest.NewServer(http.HandlerFunc(hub.handleConnection))
	defer srv.Close()

	conn := dialHub(t, srv.URL)
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 1
	}, time.Second, 5*time.Millisecond)

	hub.broadcastReload() // consumes the single token
	hub.broadcastReload() // throttled, no second message

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	require.NoError(t, err)

	conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}

func TestReloadHub_RemoveOnDisconnect(t *testing.T) {
	hub := newReloadHub(time.Millisecond, testLogger())
	srv := httptest.NewServer(http.HandlerFunc(hub.handleConnection))
	defer srv.Close()

	conn := dialHub(t, srv.URL)
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 1
	}, time.Second, 5*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestReloadHub_CloseAll(t *testing.T) {
	hub := newReloadHub(time.Millisecond, testLogger())
	srv := httptest.NewServer(http.HandlerFunc(hub.handleConnection))
	defer srv.Close()

	dialHub(t, srv.URL)
	dialHub(t, srv.URL)
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients) == 2
	}, time.Second, 5*time.Millisecond)

	hub.closeAll()

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	assert.Empty(t, hub.clients)
	assert.Empty(t, hub.clientMutex)
}

func TestServerRoutes(t *testing.T) {
	config := common.NewDefaultConfig()
	config.Site.DataDir = t.TempDir()
	config.Site.OutputDir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(config.Site.OutputDir, "index.html"), []byte("<h1>listing</h1>"), 0644))

	generator, err := site.New(config, testLogger())
	require.NoError(t, err)

	s, err := New(config, generator, testLogger())
	require.NoError(t, err)
	defer s.watcher.stop()

	srv := httptest.NewServer(s.withMiddleware(s.routes()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	conn := dialHub(t, srv.URL+"/ws")
	require.Eventually(t, func() bool {
		s.hub.mu.RLock()
		defer s.hub.mu.RUnlock()
		return len(s.hub.clients) == 1
	}, time.Second, 5*time.Millisecond)
	conn.Close()
}

func watcherConfig(t *testing.T) *common.Config {
	t.Helper()
	config := common.NewDefaultConfig()
	config.Site.DataDir = t.TempDir()
	config.Watch.Debounce = "20ms"
	return config
}

func TestWatcher_PropertyFor(t *testing.T) {
	config := watcherConfig(t)
	w, err := newWatcher(config, func(string) {}, testLogger())
	require.NoError(t, err)
	defer w.stop()

	tests := []struct {
		path string
		want string
	}{
		{filepath.Join(config.Site.DataDir, "123-main-street", "sales_1.json"), "123-main-street"},
		{filepath.Join(config.Site.DataDir, "123-main-street", "images", "front.jpg"), "123-main-street"},
		{filepath.Join(config.Site.DataDir, "loose-file.json"), ""},
		{filepath.Join(t.TempDir(), "outside", "file.json"), ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, w.propertyFor(tt.path), tt.path)
	}
}

func TestWatcher_DebouncedChange(t *testing.T) {
	config := watcherConfig(t)
	propertyDir := filepath.Join(config.Site.DataDir, "prop")
	require.NoError(t, os.MkdirAll(propertyDir, 0755))

	var mu sync.Mutex
	var changed []string
	w, err := newWatcher(config, func(id string) {
		mu.Lock()
		changed = append(changed, id)
		mu.Unlock()
	}, testLogger())
	require.NoError(t, err)
	w.start()
	defer w.stop()

	// A burst of writes collapses into one rebuild.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(propertyDir, "sales_1.json"), []byte(`{}`), 0644))
		time.Sleep(2 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changed) >= 1
	}, 2*time.Second, 10*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"prop"}, changed)
}

func TestWatcher_NewPropertyDirectory(t *testing.T) {
	config := watcherConfig(t)

	var mu sync.Mutex
	var changed []string
	w, err := newWatcher(config, func(id string) {
		mu.Lock()
		changed = append(changed, id)
		mu.Unlock()
	}, testLogger())
	require.NoError(t, err)
	w.start()
	defer w.stop()

	// Directories created after startup get watched too.
	newDir := filepath.Join(config.Site.DataDir, "later")
	require.NoError(t, os.MkdirAll(newDir, 0755))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(newDir, "building.json"), []byte(`{}`), 0644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, id := range changed {
			if id == "later" {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}
