package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/openenergydashboard/oed-server/internal/errs"
	"github.com/openenergydashboard/oed-server/internal/server"
	"golang.org/x/time/rate"
)

// RateLimitHitEvent is the New Relic custom event recorded on every denial.
const RateLimitHitEvent = "RateLimitHit"

// RateLimitMiddleware limits requests per client IP using an in-memory
// token bucket per identifier.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{server: s}
}

// Limit returns the enforcing middleware. With a zero rate configured it
// passes every request through.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.Server.RateLimit
	if cfg.Rate <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.Rate),
		Burst:     cfg.Burst,
		ExpiresIn: time.Duration(cfg.ExpiresIn) * time.Second,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewForbiddenError("Unable to identify client", false)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("identifier", identifier).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError("Too many requests, slow down")
		},
	})
}

// RecordRateLimitHit records a RateLimitHit event when New Relic is enabled.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if app := r.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent(RateLimitHitEvent, map[string]any{
			"endpoint": endpoint,
		})
	}
}
