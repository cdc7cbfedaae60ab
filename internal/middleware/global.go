package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/openenergydashboard/oed-server/internal/errs"
	"github.com/openenergydashboard/oed-server/internal/server"
	"github.com/openenergydashboard/oed-server/internal/sqlerr"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware applied to every route and the
// global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{server: s}
}

// CORS allows the configured dashboard origins.
func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  global.server.Config.Server.CORSAllowedOrigins,
		ExposeHeaders: []string{RequestIDHeader},
	})
}

// statusOf derives the status the error handler will write for err.
func statusOf(err error, fallback int) int {
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	case err != nil:
		return http.StatusInternalServerError
	}
	return fallback
}

// RequestLogger writes one "API" line per request with zerolog. Severity
// follows the final status; when the handler returned an error the status
// is taken from the error, since the error handler has not written it yet.
// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			statusCode := statusOf(v.Error, v.Status)

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

// Recover turns panics into errors for the global error handler.
func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			GetLogger(c).Error().Err(err).Bytes("stack", stack).Msg("recovered from panic")
			return err
		},
	})
}

// Secure adds the standard security headers.
func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// BodyLimit caps request bodies; user payloads are tiny.
func (global *GlobalMiddlewares) BodyLimit() echo.MiddlewareFunc {
	return middleware.BodyLimit("64K")
}

// toHTTPError converts any error into the client-facing shape. Database
// and unknown errors go through sqlerr so raw driver text never leaks.
func toHTTPError(err error) *errs.HTTPError {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusNotFound {
			return errs.NewNotFoundError("Route not found", false, nil)
		}

		message := http.StatusText(echoErr.Code)
		if msg, ok := echoErr.Message.(string); ok && echoErr.Code < 500 {
			message = msg
		}
		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: message,
			Status:  echoErr.Code,
		}
	}

	if errors.As(sqlerr.HandleError(err), &httpErr) {
		return httpErr
	}
	return errs.NewInternalServerError()
}

// GlobalErrorHandler is the single place errors become responses. It logs
// the original error with the request logger and writes the sanitized JSON
// error unless a response was already committed.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	httpErr := toHTTPError(err)

	logger := GetLogger(c)
	var e *zerolog.Event
	if httpErr.Status >= 500 {
		e = logger.Error().Stack()
	} else {
		e = logger.Warn()
	}
	e.Err(err).
		Int("status", httpErr.Status).
		Str("error_code", httpErr.Code).
		Msg(httpErr.Message)

	if c.Response().Committed {
		return
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(httpErr.Status)
	} else {
		writeErr = c.JSON(httpErr.Status, httpErr)
	}
	if writeErr != nil {
		logger.Error().Err(writeErr).Msg("failed to write error response")
	}
}
