// Package router maps pretty URLs to generated HTML files for the dev and
// preview servers.
package router

import (
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/roots-trade/pagesmith/internal/config"
	"github.com/roots-trade/pagesmith/internal/output"
)

// Kind classifies a request path.
type Kind int

const (
	// Skip: tooling or static file, served as is.
	Skip Kind = iota
	// Root: the site index.
	Root
	// Mapped: a route-map key; the request path is rewritten.
	Mapped
	// NotFound: answered with the not-found page.
	NotFound
	// Pass: anything else, served as is.
	Pass
)

func (k Kind) String() string {
	switch k {
	case Skip:
		return "skip"
	case Root:
		return "root"
	case Mapped:
		return "mapped"
	case NotFound:
		return "not-found"
	case Pass:
		return "pass"
	}
	return "unknown"
}

// Decision is the outcome for one request path. Status is 0 when the
// downstream handler picks the status itself.
type Decision struct {
	Kind   Kind
	Path   string
	Status int
}

// Router holds the route table and the static-path rules.
type Router struct {
	Routes           map[string]string
	NotFoundRoute    string
	NotFoundPage     string
	StaticExtensions []string
	StaticPatterns   []string
	ToolingPrefixes  []string

	Log output.Logger
}

// New builds a Router from the server configuration.
func New(cfg config.ServerConfig) *Router {
	routes := make(map[string]string, len(cfg.Routes))
	for k, v := range cfg.Routes {
		routes[k] = v
	}
	return &Router{
		Routes:           routes,
		NotFoundRoute:    cfg.NotFoundRoute,
		NotFoundPage:     cfg.NotFoundPage,
		StaticExtensions: cfg.StaticExtensions,
		StaticPatterns:   cfg.StaticPatterns,
		ToolingPrefixes:  cfg.ToolingPrefixes,
		Log:              output.Discard,
	}
}

// Decide classifies a request path. It does not touch the filesystem.
func (rt *Router) Decide(p string) Decision {
	if p == "" {
		p = "/"
	}

	if rt.isTooling(p) || rt.isStatic(p) {
		return Decision{Kind: Skip, Path: p}
	}

	if p == "/" || p == "/index.html" {
		return Decision{Kind: Root, Path: p}
	}

	trimmed := strings.TrimSuffix(p, "/")
	for _, key := range []string{p, trimmed} {
		target, ok := rt.Routes[key]
		if !ok {
			continue
		}
		d := Decision{Kind: Mapped, Path: target}
		if key == rt.NotFoundRoute {
			d.Status = http.StatusNotFound
		}
		return d
	}

	if !strings.HasSuffix(p, ".html") {
		return Decision{Kind: NotFound, Path: rt.NotFoundPage, Status: http.StatusNotFound}
	}

	return Decision{Kind: Pass, Path: p}
}

func (rt *Router) isTooling(p string) bool {
	for _, prefix := range rt.ToolingPrefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

func (rt *Router) isStatic(p string) bool {
	for _, ext := range rt.StaticExtensions {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	for _, pattern := range rt.StaticPatterns {
		if matched, err := doublestar.Match(pattern, p); err == nil && matched {
			return true
		}
	}
	return false
}

// Table returns the route table as sorted "from -> to" pairs.
func (rt *Router) Table() [][2]string {
	keys := make([]string, 0, len(rt.Routes))
	for k := range rt.Routes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][2]string, len(keys))
	for i, k := range keys {
		out[i] = [2]string{k, rt.Routes[k]}
	}
	return out
}

// Middleware rewrites mapped request paths and answers not-found decisions
// directly with the not-found page from root, so the status is set before
// any body is written.
func (rt *Router) Middleware(root string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := rt.Decide(r.URL.Path)

			if d.Status == http.StatusNotFound {
				rt.log().Info("Route not found: %s, serving %s", r.URL.Path, rt.NotFoundPage)
				rt.serveNotFound(w, r, root)
				return
			}

			if d.Kind != Mapped {
				next.ServeHTTP(w, r)
				return
			}

			rt.log().Info("Rewriting %s to %s", r.URL.Path, d.Path)
			r2 := new(http.Request)
			*r2 = *r
			r2.URL = new(url.URL)
			*r2.URL = *r.URL
			r2.URL.Path = d.Path
			r2.URL.RawPath = ""
			next.ServeHTTP(w, r2)
		})
	}
}

func (rt *Router) serveNotFound(w http.ResponseWriter, r *http.Request, root string) {
	name := strings.TrimPrefix(path.Clean("/"+rt.NotFoundPage), "/")
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if r.Method != http.MethodHead {
		w.Write(data)
	}
}

func (rt *Router) log() output.Logger {
	if rt.Log == nil {
		return output.Discard
	}
	return rt.Log
}
