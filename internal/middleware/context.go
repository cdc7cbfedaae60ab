package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/openenergydashboard/oed-server/internal/logger"
	"github.com/openenergydashboard/oed-server/internal/server"
	"github.com/rs/zerolog"
)

// LoggerKey stores the request-scoped logger in the echo context.
const LoggerKey = "logger"

type loggerCtxKey struct{}

// ContextEnhancer attaches a request-scoped logger carrying the request id,
// route, client ip and, when New Relic is active, the trace ids.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext stores the logger both in the echo context and in the
// request's context.Context, so layers below the handler can reach it
// through LoggerFromContext.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			contextLogger := ce.server.Logger.With().
				Str("request_id", GetRequestID(c)).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(c.Request().Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			c.Set(LoggerKey, &contextLogger)
			c.SetRequest(c.Request().WithContext(WithLogger(c.Request().Context(), &contextLogger)))

			return next(c)
		}
	}
}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, l)
}

// LoggerFromContext returns the request logger stored by EnhanceContext,
// or a no-op logger.
func LoggerFromContext(ctx context.Context) *zerolog.Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*zerolog.Logger); ok {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}

// GetLogger retrieves the request-scoped logger from the echo context, or a
// no-op logger if EnhanceContext has not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}
	return LoggerFromContext(c.Request().Context())
}
