// Package routes declares HTTP routes as nested groups and registers them on
// a ServeMux using method-qualified patterns.
package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler. Pattern is relative to
// the enclosing group's prefix and may be empty.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group organizes routes under a common prefix. Children inherit the prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux and returns the
// registered patterns in registration order.
func Register(mux *http.ServeMux, groups ...Group) []string {
	var patterns []string
	for _, group := range groups {
		walk("", group, func(pattern string, h http.HandlerFunc) {
			mux.HandleFunc(pattern, h)
			patterns = append(patterns, pattern)
		})
	}
	return patterns
}

func walk(parent string, group Group, visit func(pattern string, h http.HandlerFunc)) {
	prefix := parent + group.Prefix
	for _, route := range group.Routes {
		visit(route.Method+" "+prefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		walk(prefix, child, visit)
	}
}
