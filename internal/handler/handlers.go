package handler

import (
	"github.com/openenergydashboard/oed-server/internal/server"
	"github.com/openenergydashboard/oed-server/internal/service"
	"github.com/openenergydashboard/oed-server/static"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	User    *UserHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s, static.FS),
		User:    NewUserHandler(s, services.User),
	}
}
