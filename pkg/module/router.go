package module

import (
	"net/http"
	"strings"
)

// Router routes by first path segment: a mounted module claims its prefix,
// everything else (health and readiness probes) falls through to a plain
// ServeMux.
type Router struct {
	mounts map[string]*Module
	root   *http.ServeMux
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		mounts: make(map[string]*Module),
		root:   http.NewServeMux(),
	}
}

// Mount claims the module's prefix. Mounting a second module on the same
// prefix replaces the first.
func (r *Router) Mount(m *Module) {
	r.mounts[m.prefix] = m
}

// HandleNative registers a pattern on the fallback mux.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.root.HandleFunc(pattern, handler)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// A trailing slash must hit the same handler as the bare path.
	if p := req.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
		req.URL.Path = strings.TrimSuffix(p, "/")
	}

	if m, ok := r.mounts[firstSegment(req.URL.Path)]; ok {
		m.Serve(w, req)
		return
	}

	r.root.ServeHTTP(w, req)
}

func firstSegment(path string) string {
	rest := strings.TrimPrefix(path, "/")
	if i := strings.Index(rest, "/"); i >= 0 {
		rest = rest[:i]
	}
	return "/" + rest
}
