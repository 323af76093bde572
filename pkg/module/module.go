// Package module mounts sub-routers under single-level path prefixes.
// The API surface lives in one module ("/api") whose middleware applies to
// every domain route but not to the operational endpoints on the root mux.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pulse-works/pulse/pkg/middleware"
)

// Module serves every request under its prefix through an inner router,
// with the prefix stripped so the router's patterns stay prefix-agnostic.
type Module struct {
	prefix string
	inner  http.Handler
	stack  middleware.Stack
}

// New creates a Module for the given prefix. The prefix must be a
// single-level sub-path with a leading slash ("/api"); anything else is a
// programming error and panics at construction.
func New(prefix string, inner http.Handler) *Module {
	if err := checkPrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{prefix: prefix, inner: inner}
}

// Use adds middleware around the module's router.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.stack.Use(mw)
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Serve dispatches req to the inner router with the module prefix removed
// from the path. The request is shallow-cloned so the rewrite never leaks
// to other handlers.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	m.stack.Wrap(m.inner).ServeHTTP(w, stripPrefix(req, m.prefix))
}

func stripPrefix(req *http.Request, prefix string) *http.Request {
	rest := req.URL.Path[len(prefix):]
	if rest == "" {
		rest = "/"
	}

	clone := new(http.Request)
	*clone = *req
	clone.URL = new(url.URL)
	*clone.URL = *req.URL
	clone.URL.Path = rest
	clone.URL.RawPath = ""
	return clone
}

func checkPrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("module prefix cannot be empty")
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	case strings.Count(prefix, "/") != 1:
		return fmt.Errorf("module prefix must be single-level: %s", prefix)
	}
	return nil
}
