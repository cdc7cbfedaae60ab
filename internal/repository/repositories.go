package repository

import (
	"time"

	"github.com/openenergydashboard/oed-server/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users *UserRepository
}

// NewRepositories builds every repository on the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	queryTimeout := time.Duration(s.Config.Database.QueryTimeout) * time.Second

	return &Repositories{
		Users: NewUserRepository(s.DB.Pool, queryTimeout),
	}
}
