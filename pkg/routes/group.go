// Package routes registers handler route groups on a ServeMux. Each domain
// handler declares one Group and the api module registers them together.
package routes

import "net/http"

// Group collects the routes of one handler under a shared prefix.
type Group struct {
	Prefix string
	Routes []Route
}

// Register adds every route of every group to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		for _, r := range g.Routes {
			mux.HandleFunc(r.pattern(g.Prefix), r.Handler)
		}
	}
}
