package router

import "strings"

// HandlerFunc handles one command message. It receives the full original
// message so handlers can parse their own arguments.
type HandlerFunc func(message string) error

type route struct {
	prefix  string
	handler HandlerFunc
}

// Router matches slash commands by prefix, in registration order, first
// match wins. Registration order is therefore significant: register the
// more specific prefix ("/agent on") before the general one ("/agent").
type Router struct {
	routes []route
}

func New() *Router {
	return &Router{}
}

// Handle registers a handler for a command prefix.
func (r *Router) Handle(prefix string, handler HandlerFunc) {
	r.routes = append(r.routes, route{prefix: prefix, handler: handler})
}

// Dispatch routes a message to the first handler whose prefix matches.
// It returns false when no prefix matches, leaving the message to the
// caller's free-form path.
func (r *Router) Dispatch(message string) (bool, error) {
	trimmed := strings.TrimSpace(message)
	for _, rt := range r.routes {
		if strings.HasPrefix(trimmed, rt.prefix) {
			return true, rt.handler(trimmed)
		}
	}
	return false, nil
}
