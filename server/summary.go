package server

import (
	"sort"
	"strings"
)

// probePaths are the operational endpoints listed after the API routes.
var probePaths = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/alive":   true,
	"/version": true,
}

// Route is a registered HTTP route.
type Route struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Handler string `json:"handler"`
}

// Routes returns the registered routes, API routes first, each group ordered
// by path then method.
func (s *Server) Routes() []Route {
	ginRoutes := s.engine.Routes()
	sort.Slice(ginRoutes, func(i, j int) bool {
		iProbe, jProbe := probePaths[ginRoutes[i].Path], probePaths[ginRoutes[j].Path]
		if iProbe != jProbe {
			return !iProbe
		}
		if ginRoutes[i].Path != ginRoutes[j].Path {
			return ginRoutes[i].Path < ginRoutes[j].Path
		}
		return methodOrder(ginRoutes[i].Method) < methodOrder(ginRoutes[j].Method)
	})

	routes := make([]Route, 0, len(ginRoutes))
	for _, r := range ginRoutes {
		routes = append(routes, Route{
			Method:  r.Method,
			Path:    r.Path,
			Handler: formatHandlerName(r.Handler),
		})
	}
	return routes
}

// LogRoutes logs every registered route at info level.
func (s *Server) LogRoutes() {
	for _, r := range s.Routes() {
		s.log.Info("Route registered", map[string]interface{}{
			"method":  r.Method,
			"path":    r.Path,
			"handler": r.Handler,
		})
	}
}

// formatHandlerName extracts a short handler name from Gin's full handler
// path, e.g. "github.com/kbukum/infiniter/server/endpoint.Sequence.func1"
// becomes "endpoint.Sequence".
func formatHandlerName(fullPath string) string {
	name := strings.TrimSuffix(fullPath, "-fm")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.ReplaceAll(name, "(*", "")
	name = strings.ReplaceAll(name, ")", "")

	// drop closure suffixes: ".func1", ".func1.2"
	parts := strings.Split(name, ".")
	for len(parts) > 1 {
		last := strings.TrimPrefix(parts[len(parts)-1], "func")
		if strings.Trim(last, "0123456789") != "" {
			break
		}
		parts = parts[:len(parts)-1]
	}
	return strings.Join(parts, ".")
}

// methodOrder returns a sort key for HTTP methods (GET first, DELETE last).
func methodOrder(method string) int {
	switch method {
	case "GET":
		return 0
	case "POST":
		return 1
	case "PUT":
		return 2
	case "PATCH":
		return 3
	case "DELETE":
		return 4
	default:
		return 5
	}
}
