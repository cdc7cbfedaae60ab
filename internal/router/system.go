package router

import (
	"github.com/labstack/echo/v4"
	"github.com/openenergydashboard/oed-server/internal/handler"
	"github.com/openenergydashboard/oed-server/static"
)

// registerSystemRoutes mounts health, the docs UI and the embedded static
// assets (openapi.json among them).
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.StaticFS("/static", static.FS)
}
