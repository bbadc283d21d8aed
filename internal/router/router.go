package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/filmes-api/internal/handler"
	"github.com/iliyamo/filmes-api/internal/middleware"
)

// WriteRoles may create, modify or delete movies when the write guard is on.
var WriteRoles = []string{"EDITOR", "ADMIN"}

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterMovies mounts the /filme resource.  mws run on every movie route
// (cache, rate limiting).  When jwtSecret is non-empty, POST, PUT, PATCH and
// DELETE additionally need a valid access token carrying one of WriteRoles;
// reads stay public.
func RegisterMovies(e *echo.Echo, h *handler.MovieHandler, jwtSecret string, mws ...echo.MiddlewareFunc) {
	g := e.Group("/filme", mws...)
	if jwtSecret != "" {
		auth := middleware.JWTAuth(jwtSecret)
		role := middleware.RequireRole(WriteRoles...)
		g.Use(middleware.WritesOnly(func(next echo.HandlerFunc) echo.HandlerFunc {
			return auth(role(next))
		}))
	}

	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Replace)
	g.PATCH("/:id", h.Patch)
	g.DELETE("/:id", h.Delete)
}
