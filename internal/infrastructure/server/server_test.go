package server

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/deskshell/internal/infrastructure/config"
	"github.com/GriffinCanCode/deskshell/internal/shared/types"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.App.DataDir = filepath.Join(t.TempDir(), "app")
	cfg.Logging.Development = true
	cfg.Server.Port = "0"
	return cfg
}

func startServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()
	s, err := NewServer(cfg, nil)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, command, body string, header http.Header) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/invoke/"+command, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := ts.Client().Transport.RoundTrip(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestNewServerCreatesRoot(t *testing.T) {
	cfg := testConfig(t)
	_, err := NewServer(cfg, nil)
	require.NoError(t, err)

	assert.DirExists(t, cfg.App.DataDir)
}

func TestRoutes(t *testing.T) {
	ts := startServer(t, testConfig(t))

	for _, path := range []string{"/", "/health", "/commands", "/metrics"} {
		resp, err := ts.Client().Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestSecurityHeadersToggle(t *testing.T) {
	cfg := testConfig(t)
	ts := startServer(t, cfg)
	resp := post(t, ts, "get_os", "", nil)
	assert.Equal(t, "same-origin", resp.Header.Get("Cross-Origin-Opener-Policy"))

	cfg = testConfig(t)
	cfg.Security.HeadersEnabled = false
	ts = startServer(t, cfg)
	resp = post(t, ts, "get_os", "", nil)
	assert.Empty(t, resp.Header.Get("Cross-Origin-Opener-Policy"))
}

func TestGzipCompression(t *testing.T) {
	ts := startServer(t, testConfig(t))

	contents := strings.Repeat("compressible text ", 512)
	body, err := json.Marshal(map[string]string{"path": "big.txt", "contents": contents})
	require.NoError(t, err)
	resp := post(t, ts, "write_file", string(body), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = post(t, ts, "read_file", `{"path":"big.txt"}`, http.Header{"Accept-Encoding": {"gzip"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

	zr, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	raw, err := io.ReadAll(zr)
	require.NoError(t, err)

	var result types.Result
	require.NoError(t, json.Unmarshal(raw, &result))
	assert.Equal(t, contents, result.Value)
}

func TestWebSocketThroughCompression(t *testing.T) {
	ts := startServer(t, testConfig(t))

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ipc"
	header := http.Header{"Accept-Encoding": {"gzip"}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	defer conn.Close()

	var welcome types.WSResponse
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, "system", welcome.Type)

	require.NoError(t, conn.WriteJSON(types.WSMessage{ID: "1", Command: "get_os"}))
	var frame types.WSResponse
	require.NoError(t, conn.ReadJSON(&frame))
	assert.True(t, frame.Success)
}

func TestEscapeForbidden(t *testing.T) {
	ts := startServer(t, testConfig(t))

	resp := post(t, ts, "write_file", `{"path":"../../escape.txt","contents":"x"}`, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s, err := NewServer(testConfig(t), nil)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
