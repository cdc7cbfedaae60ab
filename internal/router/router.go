// Package router builds the echo instance: global middleware, the error
// handler, system routes and the API route groups.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/openenergydashboard/oed-server/internal/handler"
	"github.com/openenergydashboard/oed-server/internal/middleware"
	"github.com/openenergydashboard/oed-server/internal/server"
)

// NewRouter wires the middleware chain in order: tracing first so the
// transaction exists for everything below, then request id and the
// request-scoped logger, then logging, recovery and limits.
func NewRouter(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.HidePort = true

	r.HTTPErrorHandler = m.Global.GlobalErrorHandler

	r.Use(
		m.Tracing.NewRelicMiddleware(),
		middleware.RequestID(),
		m.Tracing.EnhanceTracing(),
		m.ContextEnhancer.EnhanceContext(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
		m.Global.CORS(),
		m.Global.Secure(),
		m.Global.BodyLimit(),
		m.RateLimit.Limit(),
	)

	registerSystemRoutes(r, h)
	registerUserRoutes(r, h)

	return r
}
