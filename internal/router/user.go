package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/openenergydashboard/oed-server/internal/handler"
)

// registerUserRoutes mounts the /users group. Routes are registered with
// and without the trailing slash on the collection.
func registerUserRoutes(r *echo.Echo, h *handler.Handlers) {
	users := r.Group("/users")

	list := handler.Handle(h.User.Handler, h.User.ListUsers, http.StatusOK)
	create := handler.Handle(h.User.Handler, h.User.CreateUser, http.StatusCreated)

	users.GET("", list)
	users.GET("/", list)
	users.POST("", create)
	users.POST("/", create)
	users.GET("/:user_id", handler.Handle(h.User.Handler, h.User.GetUser, http.StatusOK))
}
