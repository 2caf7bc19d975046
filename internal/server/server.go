package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/exec"
	"path"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/roots-trade/pagesmith/internal/assets"
	"github.com/roots-trade/pagesmith/internal/livereload"
	"github.com/roots-trade/pagesmith/internal/router"
)

// Mode selects what the server serves.
type Mode string

const (
	// Dev serves the generator output with live reload.
	Dev Mode = "dev"
	// Preview serves the rewritten build output as it will be deployed.
	Preview Mode = "preview"
)

// Config holds server configuration.
type Config struct {
	Port      int
	Root      string // directory served
	Mode      Mode
	AllowAll  bool     // allow all CORS origins
	AssetExts []string // hashed assets with these extensions are cached long in preview
}

// Server is the dev/preview HTTP server.
type Server struct {
	cfg        Config
	routes     *router.Router
	hub        *livereload.Hub
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. hub may be nil, in which case dev mode has no live
// reload.
func New(cfg Config, routes *router.Router, hub *livereload.Hub) *Server {
	if cfg.Mode == "" {
		cfg.Mode = Dev
	}
	s := &Server{
		cfg:    cfg,
		routes: routes,
		hub:    hub,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
		corsOpts.AllowCredentials = false
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","mode":"` + string(s.cfg.Mode) + `"}`))
	})

	if s.cfg.Mode == Dev && s.hub != nil {
		r.Get(livereload.Path, s.hub.ServeHTTP)
	}

	// Everything else is the site.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		if s.cfg.Mode == Dev {
			r.Use(noCache)
			if s.hub != nil {
				r.Use(livereload.Inject)
			}
		} else {
			r.Use(s.cacheHashed)
		}
		if s.routes != nil {
			r.Use(s.routes.Middleware(s.cfg.Root))
		}
		r.Handle("/*", http.FileServer(http.Dir(s.cfg.Root)))
	})

	return r
}

// noCache sets headers that keep browsers from caching dev responses.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

// cacheHashed marks content-hashed bundler output as immutable.
func (s *Server) cacheHashed(next http.Handler) http.Handler {
	exts := append([]string{"js", "css"}, s.cfg.AssetExts...)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if assets.IsHashed(path.Base(r.URL.Path), exts) {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		}
		next.ServeHTTP(w, r)
	})
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// URL is the address the server is reachable at locally.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.cfg.Port)
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("pagesmith %s server listening on %s, serving %s", s.cfg.Mode, addr, s.cfg.Root)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.hub != nil {
		s.hub.Close()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// OpenBrowser opens url in the default browser.
func OpenBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("could not open browser: %v", err)
	}
}
