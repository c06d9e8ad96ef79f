package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// SubmitsPerMinute is the default budget for sign-in submissions per client IP.
const SubmitsPerMinute = 10

// RateLimiter limits requests to perMinute per client IP, allowing a burst of
// the whole budget. The in-memory store suits a single instance.
func RateLimiter(perMinute int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			FromContext(c.Request().Context()).Warn("Sign-in rate limit exceeded", "client", identifier)
			return c.String(http.StatusTooManyRequests, "Too many sign-in attempts. Please try again later.")
		},
	})
}
