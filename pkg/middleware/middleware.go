// Package middleware provides the HTTP middleware stack: CORS handling and
// the per-request log line.
package middleware

import "net/http"

// Stack composes HTTP middleware in registration order: the first Use call
// wraps outermost and sees the request first.
type Stack struct {
	wrappers []func(http.Handler) http.Handler
}

// Use appends a middleware to the stack.
func (s *Stack) Use(mw func(http.Handler) http.Handler) {
	s.wrappers = append(s.wrappers, mw)
}

// Wrap applies the stack around handler.
func (s *Stack) Wrap(handler http.Handler) http.Handler {
	for i := len(s.wrappers) - 1; i >= 0; i-- {
		handler = s.wrappers[i](handler)
	}
	return handler
}
