package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/openenergydashboard/oed-server/internal/config"
	"github.com/openenergydashboard/oed-server/internal/errs"
	"github.com/openenergydashboard/oed-server/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(buf *bytes.Buffer) *server.Server {
	logger := zerolog.New(buf)
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
			},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		reuse    bool
	}{
		{"generated", "", false},
		{"valid uuid reused", "3f2504e0-4f89-11d3-9a0c-0305e82c3301", true},
		{"garbage replaced", "evil\nheader", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen string
			err := RequestID()(func(c echo.Context) error {
				seen = GetRequestID(c)
				return nil
			})(c)
			require.NoError(t, err)

			got := rec.Header().Get(RequestIDHeader)
			assert.Equal(t, seen, got)
			if tt.reuse {
				assert.Equal(t, tt.incoming, got)
				return
			}
			_, parseErr := uuid.Parse(got)
			assert.NoError(t, parseErr)
			assert.NotEqual(t, tt.incoming, got)
		})
	}
}

func TestEnhanceContext(t *testing.T) {
	var buf bytes.Buffer
	s := testServer(&buf)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users/1", nil), httptest.NewRecorder())
	c.Set(RequestIDKey, "req-1")

	err := NewContextEnhancer(s).EnhanceContext()(func(c echo.Context) error {
		GetLogger(c).Info().Msg("from echo")
		LoggerFromContext(c.Request().Context()).Info().Msg("from ctx")
		return nil
	})(c)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		assert.Equal(t, "req-1", entry["request_id"])
		assert.Equal(t, "GET", entry["method"])
	}
}

func TestLoggerFromContext_Default(t *testing.T) {
	l := LoggerFromContext(context.Background())
	require.NotNil(t, l)
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}

func runErrorHandler(t *testing.T, err error) (*httptest.ResponseRecorder, errs.HTTPError) {
	t.Helper()
	var buf bytes.Buffer
	global := NewGlobalMiddlewares(testServer(&buf))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	global.GlobalErrorHandler(err, c)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "app error passes through",
			err:         errs.NewNotFoundError("User not found", true, nil),
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "User not found",
		},
		{
			name:        "echo route not found",
			err:         echo.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "Route not found",
		},
		{
			name:        "echo method not allowed",
			err:         echo.ErrMethodNotAllowed,
			wantStatus:  http.StatusMethodNotAllowed,
			wantCode:    "METHOD_NOT_ALLOWED",
			wantMessage: "Method Not Allowed",
		},
		{
			name:        "unknown error sanitized",
			err:         errors.New("dial tcp 10.0.0.3:5432: secret"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_SERVER_ERROR",
			wantMessage: "Internal Server Error",
		},
		{
			name:        "timeout",
			err:         context.DeadlineExceeded,
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_SERVER_ERROR",
			wantMessage: "Request timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := runErrorHandler(t, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.NotContains(t, rec.Body.String(), "secret")
		})
	}
}

func TestGlobalErrorHandler_Committed(t *testing.T) {
	var buf bytes.Buffer
	global := NewGlobalMiddlewares(testServer(&buf))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	global.GlobalErrorHandler(errors.New("late"), c)

	assert.Equal(t, "done", rec.Body.String())
}

func TestRateLimit(t *testing.T) {
	var buf bytes.Buffer
	s := testServer(&buf)
	s.Config.Server.RateLimit = config.RateLimitConfig{Rate: 1, Burst: 2, ExpiresIn: 60}

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.Use(NewRateLimitMiddleware(s).Limit())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for range 3 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_Disabled(t *testing.T) {
	var buf bytes.Buffer
	s := testServer(&buf)

	e := echo.New()
	e.Use(NewRateLimitMiddleware(s).Limit())
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	for range 20 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	}
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusOK, statusOf(nil, http.StatusOK))
	assert.Equal(t, http.StatusTeapot, statusOf(echo.NewHTTPError(http.StatusTeapot), http.StatusOK))
	assert.Equal(t, http.StatusBadRequest, statusOf(errs.NewBadRequestError("x", false, nil, nil, nil), http.StatusOK))
	assert.Equal(t, http.StatusInternalServerError, statusOf(errors.New("x"), http.StatusOK))
}
