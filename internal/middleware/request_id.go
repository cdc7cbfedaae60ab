package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader carries the request correlation ID in both directions.
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey stores the ID in the echo context.
	RequestIDKey = "request_id"
)

// RequestID ensures each request has an ID and echoes it in the response.
//
// An incoming X-Request-ID is reused only when it parses as a UUID; anything
// else is replaced so that arbitrary client input never reaches the logs.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(RequestIDHeader)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.New().String()
			}

			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)

			return next(c)
		}
	}
}

// GetRequestID returns the request ID, or "" if RequestID has not run.
func GetRequestID(c echo.Context) string {
	if requestID, ok := c.Get(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
