package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/openenergydashboard/oed-server/internal/server"
)

// OpenAPIHandler serves the API reference UI.
type OpenAPIHandler struct {
	Handler
	assets fs.FS
}

// NewOpenAPIHandler serves openapi.html from assets.
func NewOpenAPIHandler(s *server.Server, assets fs.FS) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		assets:  assets,
	}
}

// ServeOpenAPIUI writes openapi.html uncached so doc edits show up immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := fs.ReadFile(h.assets, "openapi.html")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, page)
}
