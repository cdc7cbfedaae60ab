package service

import (
	"github.com/openenergydashboard/oed-server/internal/lib/job"
	"github.com/openenergydashboard/oed-server/internal/lib/password"
	"github.com/openenergydashboard/oed-server/internal/repository"
	"github.com/openenergydashboard/oed-server/internal/server"
)

// Services is a container for all services.
type Services struct {
	User *UserService
	Job  *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	hasher := password.NewHasher(s.Config.Auth.BcryptCost)

	var welcome WelcomeEnqueuer
	if s.Job != nil {
		welcome = s.Job
	}

	return &Services{
		User: NewUserService(repos.Users, hasher, welcome),
		Job:  s.Job,
	}, nil
}
