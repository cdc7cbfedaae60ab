package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/openenergydashboard/oed-server/internal/middleware"
	"github.com/openenergydashboard/oed-server/internal/server"
	"github.com/openenergydashboard/oed-server/internal/validation"
)

// Handler is the base handler type that holds shared application dependencies.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// requestTimeout is the per-request deadline, or zero for none.
func (h Handler) requestTimeout() time.Duration {
	if h.server == nil || h.server.Config == nil {
		return 0
	}
	return time.Duration(h.server.Config.Server.RequestTimeout) * time.Second
}

// HandlerFunc is a typed endpoint: it receives a bound, validated request
// and returns a response body or an error.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// Request is satisfied by *T when *T is Validatable. It lets Handle
// allocate a fresh request value for every call.
type Request[T any] interface {
	*T
	validation.Validatable
}

// ResponseHandler defines how a successful result is written and traced.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error

	// GetOperation names the handler kind in structured logs.
	GetOperation() string

	AddAttributes(txn *newrelic.Transaction, result any)
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result any) {
	// http.status_code is already set by tracing middleware (EnhanceTracing).
}

// handleRequest is the shared execution pipeline for all handlers:
// deadline, bind + validate, logging, New Relic attributes and the response.
//
// Errors are returned untouched so the global error handler writes the
// single error response.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	timeout time.Duration,
	handler func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	method := c.Request().Method
	route := c.Path()

	if timeout > 0 {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()
		c.SetRequest(c.Request().WithContext(ctx))
	}

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
		responseHandler.AddAttributes(txn, nil)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", method).
		Str("route", route).
		Logger()

	logger.Info().Msg("handling request")

	// Validation phase
	validationStart := time.Now()
	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}
		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	logger.Debug().
		Dur("validation_duration", validationDuration).
		Msg("request validation successful")

	// Handler execution phase
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)
	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler with the request pipeline and returns an
// echo.HandlerFunc. A new request value is allocated per call.
//
//	e.POST("/users/", handler.Handle(h.Handler, h.CreateUser, http.StatusCreated))
func Handle[T any, Req Request[T], Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
) echo.HandlerFunc {
	timeout := h.requestTimeout()
	return func(c echo.Context) error {
		return handleRequest(c, Req(new(T)), timeout, func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}
