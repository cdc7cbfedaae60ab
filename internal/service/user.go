package service

import (
	"context"
	"fmt"

	"github.com/openenergydashboard/oed-server/internal/middleware"
	"github.com/openenergydashboard/oed-server/internal/model/user"
)

// UserStore is the persistence the user service needs.
type UserStore interface {
	GetAll(ctx context.Context) ([]user.User, error)
	GetByID(ctx context.Context, id int64) (*user.User, error)
	Insert(ctx context.Context, u *user.User) (*user.User, error)
}

// PasswordHasher turns a plaintext password into a storable hash.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
}

// WelcomeEnqueuer schedules the welcome email for a new user.
type WelcomeEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, userID int64, to, role string) error
}

// UserService implements listing, lookup and creation of users.
type UserService struct {
	store   UserStore
	hasher  PasswordHasher
	welcome WelcomeEnqueuer
}

// NewUserService wires the service. welcome may be nil to disable the
// welcome email.
func NewUserService(store UserStore, hasher PasswordHasher, welcome WelcomeEnqueuer) *UserService {
	return &UserService{
		store:   store,
		hasher:  hasher,
		welcome: welcome,
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]user.PublicUser, error) {
	users, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return user.PublicUsers(users), nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*user.PublicUser, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	public := u.Public()
	return &public, nil
}

// CreateUser hashes the password, maps the role key and stores the user.
//
// req must already be validated. The welcome email is best effort: an
// enqueue failure is logged and does not fail the creation.
func (s *UserService) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.PublicUser, error) {
	role, err := user.ParseRoleKey(req.Role)
	if err != nil {
		return nil, fmt.Errorf("mapping role: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	created, err := s.store.Insert(ctx, &user.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	logger := middleware.LoggerFromContext(ctx)
	logger.Info().Int64("user_id", created.ID).Str("role", role.Key()).Msg("user created")

	if s.welcome != nil {
		if err := s.welcome.EnqueueWelcomeEmail(ctx, created.ID, created.Email, role.Key()); err != nil {
			logger.Warn().Err(err).Int64("user_id", created.ID).Msg("failed to enqueue welcome email")
		}
	}

	public := created.Public()
	return &public, nil
}
