package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/signin/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	s.E.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/login")
	})

	s.E.GET("/login", s.loginHandler.LoginGet)
	s.E.POST("/login", s.loginHandler.LoginPost, middleware.RateLimiter(middleware.SubmitsPerMinute))

	s.E.GET("/static/*", s.assets.Handler())

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})
}
