package routes

import "net/http"

// Route binds one HTTP method and path pattern to its handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// pattern renders the Go 1.22 "METHOD /prefix/path" mux pattern.
func (r Route) pattern(prefix string) string {
	return r.Method + " " + prefix + r.Pattern
}
