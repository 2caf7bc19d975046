package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/roots-trade/pagesmith/internal/config"
	"github.com/roots-trade/pagesmith/internal/livereload"
	"github.com/roots-trade/pagesmith/internal/router"
)

func newTestRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"index.html":                      "<html><body>home</body></html>",
		"about.html":                      "<html><body>about</body></html>",
		"404.html":                        "<html><body>not found</body></html>",
		"main.js":                         "console.log(1)",
		"assets/main.abc123.js":           "console.log(2)",
		"assets/logo-header-new.7f3a.png": "png",
	}
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func newTestServer(t *testing.T, mode Mode, hub *livereload.Hub) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	return New(Config{
		Root:      newTestRoot(t),
		Mode:      mode,
		AllowAll:  true,
		AssetExts: cfg.Build.AssetExtensions,
	}, router.New(cfg.Server), hub)
}

func do(t *testing.T, srv *Server, method, target string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	body, err := io.ReadAll(w.Result().Body)
	if err != nil {
		t.Fatal(err)
	}
	return w, string(body)
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, Preview, nil)

	w, body := do(t, srv, "GET", "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
	if resp["mode"] != "preview" {
		t.Errorf("expected mode 'preview', got %q", resp["mode"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, Dev, nil)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestPrettyURLs(t *testing.T) {
	for _, mode := range []Mode{Dev, Preview} {
		t.Run(string(mode), func(t *testing.T) {
			srv := newTestServer(t, mode, nil)

			w, body := do(t, srv, "GET", "/about/")
			if w.Code != http.StatusOK || !strings.Contains(body, "about") {
				t.Errorf("/about/: status=%d body=%q", w.Code, body)
			}

			w, body = do(t, srv, "GET", "/404")
			if w.Code != http.StatusNotFound || !strings.Contains(body, "not found") {
				t.Errorf("/404: status=%d body=%q", w.Code, body)
			}

			w, body = do(t, srv, "GET", "/no/such/page")
			if w.Code != http.StatusNotFound || !strings.Contains(body, "not found") {
				t.Errorf("/no/such/page: status=%d body=%q", w.Code, body)
			}

			w, body = do(t, srv, "GET", "/main.js")
			if w.Code != http.StatusOK || body != "console.log(1)" {
				t.Errorf("/main.js: status=%d body=%q", w.Code, body)
			}
		})
	}
}

func TestDevModeHeadersAndInjection(t *testing.T) {
	srv := newTestServer(t, Dev, livereload.NewHub())

	w, body := do(t, srv, "GET", "/about")
	if got := w.Header().Get("Cache-Control"); got != "no-cache, no-store, must-revalidate" {
		t.Errorf("Cache-Control = %q", got)
	}
	if !strings.Contains(body, livereload.Path) {
		t.Error("live reload client not injected")
	}

	_, body = do(t, srv, "GET", "/main.js")
	if strings.Contains(body, livereload.Path) {
		t.Error("client injected into a script")
	}
}

func TestPreviewModeCaching(t *testing.T) {
	srv := newTestServer(t, Preview, livereload.NewHub())

	w, body := do(t, srv, "GET", "/assets/main.abc123.js")
	if got := w.Header().Get("Cache-Control"); got != "public, max-age=31536000, immutable" {
		t.Errorf("hashed asset Cache-Control = %q", got)
	}
	if body != "console.log(2)" {
		t.Errorf("body = %q", body)
	}

	w, body = do(t, srv, "GET", "/about")
	if got := w.Header().Get("Cache-Control"); got != "" {
		t.Errorf("page Cache-Control = %q, want none", got)
	}
	if strings.Contains(body, livereload.Path) {
		t.Error("preview pages must not carry the live reload client")
	}

	w, _ = do(t, srv, "GET", livereload.Path)
	if w.Code != http.StatusNotFound {
		t.Errorf("live reload endpoint in preview: status %d, want 404", w.Code)
	}
}

func TestLiveReloadEndpoint(t *testing.T) {
	srv := newTestServer(t, Dev, livereload.NewHub())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + livereload.Path
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	defer conn.Close()

	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
}
