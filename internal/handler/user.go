package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/openenergydashboard/oed-server/internal/errs"
	"github.com/openenergydashboard/oed-server/internal/model/user"
	"github.com/openenergydashboard/oed-server/internal/server"
)

// UserService is what the user routes need from the service layer.
type UserService interface {
	ListUsers(ctx context.Context) ([]user.PublicUser, error)
	GetUser(ctx context.Context, id int64) (*user.PublicUser, error)
	CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.PublicUser, error)
}

// UserHandler serves the /users routes.
type UserHandler struct {
	Handler
	users UserService
}

func NewUserHandler(s *server.Server, users UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

// ListUsers handles GET /users/.
func (h *UserHandler) ListUsers(c echo.Context, _ *user.ListUsersRequest) ([]user.PublicUser, error) {
	return h.users.ListUsers(c.Request().Context())
}

// GetUser handles GET /users/:user_id.
func (h *UserHandler) GetUser(c echo.Context, req *user.GetUserRequest) (*user.PublicUser, error) {
	id, err := req.ID()
	if err != nil {
		// Digits only but out of int64 range: no such user can exist.
		return nil, errUserNotFound()
	}
	return h.users.GetUser(c.Request().Context(), id)
}

// CreateUser handles POST /users/.
func (h *UserHandler) CreateUser(c echo.Context, req *user.CreateUserRequest) (*user.PublicUser, error) {
	return h.users.CreateUser(c.Request().Context(), req)
}

func errUserNotFound() error {
	return errs.NewNotFoundError("User not found", true, nil)
}
