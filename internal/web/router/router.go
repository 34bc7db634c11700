package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/conduit-lang/hypermedia/internal/web/middleware"
	"github.com/conduit-lang/hypermedia/pkg/hypermedia"
)

// Router manages HTTP routing using chi framework
type Router struct {
	mux chi.Router

	// For introspection and URL building
	registeredRoutes []*RouteInfo
	named            map[string]*RouteInfo
}

// RouteInfo provides metadata about a route for introspection
type RouteInfo struct {
	Pattern    string
	Method     string
	Name       string
	Parameters []string
}

// Route is returned by the registration methods to attach metadata
type Route struct {
	router *Router
	info   *RouteInfo
}

// NewRouter creates a new Router instance
func NewRouter() *Router {
	return &Router{
		mux:   chi.NewRouter(),
		named: make(map[string]*RouteInfo),
	}
}

// ServeHTTP implements http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Use adds middleware. It must be called before any route is registered.
func (r *Router) Use(middlewares ...middleware.Middleware) {
	for _, m := range middlewares {
		r.mux.Use(m)
	}
}

// Get registers a GET route
func (r *Router) Get(pattern string, handler http.HandlerFunc) *Route {
	return r.addRoute(http.MethodGet, pattern, handler)
}

// Post registers a POST route
func (r *Router) Post(pattern string, handler http.HandlerFunc) *Route {
	return r.addRoute(http.MethodPost, pattern, handler)
}

// Put registers a PUT route
func (r *Router) Put(pattern string, handler http.HandlerFunc) *Route {
	return r.addRoute(http.MethodPut, pattern, handler)
}

// Patch registers a PATCH route
func (r *Router) Patch(pattern string, handler http.HandlerFunc) *Route {
	return r.addRoute(http.MethodPatch, pattern, handler)
}

// Delete registers a DELETE route
func (r *Router) Delete(pattern string, handler http.HandlerFunc) *Route {
	return r.addRoute(http.MethodDelete, pattern, handler)
}

func (r *Router) addRoute(method, pattern string, handler http.HandlerFunc) *Route {
	r.mux.Method(method, pattern, handler)

	info := &RouteInfo{
		Pattern:    pattern,
		Method:     method,
		Parameters: extractParameters(pattern),
	}
	r.registeredRoutes = append(r.registeredRoutes, info)

	return &Route{router: r, info: info}
}

// Named sets a name for the route, used by URL
func (route *Route) Named(name string) *Route {
	route.info.Name = name
	route.router.named[name] = route.info
	return route
}

// GetRoutes returns all registered routes in registration order
func (r *Router) GetRoutes() []*RouteInfo {
	return r.registeredRoutes
}

// Pattern returns the pattern of a named route
func (r *Router) Pattern(name string) (string, error) {
	info, ok := r.named[name]
	if !ok {
		return "", fmt.Errorf("route not found: %s", name)
	}
	return info.Pattern, nil
}

// URL builds the path of a named route, filling its path parameters
func (r *Router) URL(name string, params map[string]string) (string, error) {
	info, ok := r.named[name]
	if !ok {
		return "", fmt.Errorf("route not found: %s", name)
	}
	for _, p := range info.Parameters {
		if params[p] == "" {
			return "", fmt.Errorf("route %s: missing path parameter %s", name, p)
		}
	}
	return hypermedia.Link{Href: info.Pattern}.Expand(params)
}

// NotFound sets the handler for 404 Not Found
func (r *Router) NotFound(handler http.HandlerFunc) {
	r.mux.NotFound(handler)
}

// MethodNotAllowed sets the handler for 405 Method Not Allowed
func (r *Router) MethodNotAllowed(handler http.HandlerFunc) {
	r.mux.MethodNotAllowed(handler)
}

// extractParameters extracts the path parameter names of a route pattern
func extractParameters(pattern string) []string {
	var params []string
	for _, part := range strings.Split(pattern, "/") {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			params = append(params, strings.Trim(part, "{}"))
		}
	}
	return params
}
