package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/openenergydashboard/oed-server/internal/middleware"
	"github.com/openenergydashboard/oed-server/internal/server"
)

// HealthCheckErrorEvent is the New Relic custom event recorded for each failed check.
const HealthCheckErrorEvent = "HealthCheckError"

// Checker probes one dependency.
type Checker func(ctx context.Context) error

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	checks map[string]Checker
}

// NewHealthHandler registers a checker for every dependency enabled in
// the observability config.
func NewHealthHandler(s *server.Server) *HealthHandler {
	checks := make(map[string]Checker)
	obs := s.Config.Observability

	if obs.HealthCheckEnabled("database") && s.DB != nil {
		checks["database"] = func(ctx context.Context) error {
			return s.DB.Pool.Ping(ctx)
		}
	}
	if obs.HealthCheckEnabled("redis") && s.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}
	}

	return &HealthHandler{
		Handler: NewHandler(s),
		checks:  checks,
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

func (h *HealthHandler) checkTimeout() time.Duration {
	if timeout := h.server.Config.Observability.HealthChecks.Timeout; timeout > 0 {
		return timeout
	}
	return 5 * time.Second
}

// CheckHealth runs every registered check. It answers 200 when all pass
// and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult, len(h.checks)),
	}

	for name, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.checkTimeout())
		checkStart := time.Now()
		err := check(ctx)
		elapsed := time.Since(checkStart)
		cancel()

		if err != nil {
			response.Status = "unhealthy"
			response.Checks[name] = checkResult{
				Status:       "unhealthy",
				ResponseTime: elapsed.String(),
				Error:        err.Error(),
			}

			logger.Error().Err(err).Str("check", name).Dur("response_time", elapsed).Msg("health check failed")

			if app := h.server.LoggerService.GetApplication(); app != nil {
				app.RecordCustomEvent(HealthCheckErrorEvent, map[string]any{
					"check_type":       name,
					"operation":        "health_check",
					"response_time_ms": elapsed.Milliseconds(),
					"error_message":    err.Error(),
				})
			}
			continue
		}

		response.Checks[name] = checkResult{
			Status:       "healthy",
			ResponseTime: elapsed.String(),
		}
		logger.Debug().Str("check", name).Dur("response_time", elapsed).Msg("health check passed")
	}

	status := http.StatusOK
	if response.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	logger.Info().
		Str("status", response.Status).
		Dur("total_duration", time.Since(start)).
		Msg("health check completed")

	return c.JSON(status, response)
}
