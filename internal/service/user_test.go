package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/openenergydashboard/oed-server/internal/lib/password"
	"github.com/openenergydashboard/oed-server/internal/model/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetAll(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]user.User)
	return users, args.Error(1)
}

func (m *mockStore) GetByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *mockStore) Insert(ctx context.Context, u *user.User) (*user.User, error) {
	args := m.Called(ctx, u)
	if fn, ok := args.Get(0).(func(context.Context, *user.User) (*user.User, error)); ok {
		return fn(ctx, u)
	}
	created, _ := args.Get(0).(*user.User)
	return created, args.Error(1)
}

type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	args := m.Called(ctx, plaintext)
	return args.String(0), args.Error(1)
}

type mockWelcome struct {
	mock.Mock
}

func (m *mockWelcome) EnqueueWelcomeEmail(ctx context.Context, userID int64, to, role string) error {
	return m.Called(ctx, userID, to, role).Error(0)
}

// insertAssigning returns a store that echoes the inserted user with id.
func insertAssigning(store *mockStore, id int64) *mock.Call {
	return store.On("Insert", mock.Anything, mock.AnythingOfType("*user.User")).
		Return(func(_ context.Context, u *user.User) (*user.User, error) {
			created := *u
			created.ID = id
			return &created, nil
		})
}

func TestCreateUser_StoresHashAndMappedRole(t *testing.T) {
	store := new(mockStore)
	welcome := new(mockWelcome)
	hasher := password.NewHasher(bcrypt.MinCost)

	var stored *user.User
	store.On("Insert", mock.Anything, mock.AnythingOfType("*user.User")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*user.User) }).
		Return(&user.User{ID: 9, Email: "a@b.io", PasswordHash: "ignored", Role: user.RoleObvius}, nil)
	welcome.On("EnqueueWelcomeEmail", mock.Anything, int64(9), "a@b.io", "OBVIUS").Return(nil)

	svc := NewUserService(store, hasher, welcome)
	got, err := svc.CreateUser(context.Background(), user.NewCreateUserRequest("a@b.io", "password123", "OBVIUS"))
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, user.RoleObvius, stored.Role)
	assert.Equal(t, "obvius", stored.Role.StoreValue())
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, hasher.Verify(stored.PasswordHash, "password123"))

	assert.Equal(t, &user.PublicUser{ID: 9, Email: "a@b.io", Role: user.RoleObvius}, got)
	welcome.AssertExpectations(t)
}

func TestCreateUser_EveryRole(t *testing.T) {
	for _, role := range user.Roles() {
		t.Run(role.Key(), func(t *testing.T) {
			store := new(mockStore)
			hasher := new(mockHasher)
			hasher.On("Hash", mock.Anything, "password123").Return("$2a$hash", nil)
			insertAssigning(store, 1)

			got, err := NewUserService(store, hasher, nil).
				CreateUser(context.Background(), user.NewCreateUserRequest("a@b.io", "password123", role.Key()))
			require.NoError(t, err)
			assert.Equal(t, role, got.Role)

			stored := store.Calls[0].Arguments.Get(1).(*user.User)
			assert.Equal(t, role, stored.Role)
			assert.Equal(t, "$2a$hash", stored.PasswordHash)
		})
	}
}

func TestCreateUser_HashFailureSkipsInsert(t *testing.T) {
	store := new(mockStore)
	hasher := new(mockHasher)
	hasher.On("Hash", mock.Anything, mock.Anything).Return("", context.DeadlineExceeded)

	_, err := NewUserService(store, hasher, nil).
		CreateUser(context.Background(), user.NewCreateUserRequest("a@b.io", "password123", "ADMIN"))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateUser_UnknownRole(t *testing.T) {
	store := new(mockStore)
	hasher := new(mockHasher)

	_, err := NewUserService(store, hasher, nil).
		CreateUser(context.Background(), user.NewCreateUserRequest("a@b.io", "password123", "ROOT"))

	require.Error(t, err)
	hasher.AssertNotCalled(t, "Hash", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateUser_InsertFailure(t *testing.T) {
	store := new(mockStore)
	hasher := new(mockHasher)
	welcome := new(mockWelcome)
	insertErr := errors.New("duplicate key")

	hasher.On("Hash", mock.Anything, mock.Anything).Return("$2a$hash", nil)
	store.On("Insert", mock.Anything, mock.Anything).Return(nil, insertErr)

	_, err := NewUserService(store, hasher, welcome).
		CreateUser(context.Background(), user.NewCreateUserRequest("a@b.io", "password123", "CSV"))

	assert.ErrorIs(t, err, insertErr)
	welcome.AssertNotCalled(t, "EnqueueWelcomeEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateUser_EnqueueFailureIsNotFatal(t *testing.T) {
	store := new(mockStore)
	hasher := new(mockHasher)
	welcome := new(mockWelcome)

	hasher.On("Hash", mock.Anything, mock.Anything).Return("$2a$hash", nil)
	insertAssigning(store, 4)
	welcome.On("EnqueueWelcomeEmail", mock.Anything, int64(4), "a@b.io", "CSV").Return(errors.New("redis down"))

	got, err := NewUserService(store, hasher, welcome).
		CreateUser(context.Background(), user.NewCreateUserRequest("a@b.io", "password123", "CSV"))

	require.NoError(t, err)
	assert.Equal(t, int64(4), got.ID)
	welcome.AssertExpectations(t)
}

func TestListUsers(t *testing.T) {
	store := new(mockStore)
	store.On("GetAll", mock.Anything).Return([]user.User{
		{ID: 1, Email: "a@b.io", PasswordHash: "h1", Role: user.RoleAdmin},
		{ID: 2, Email: "c@d.io", PasswordHash: "h2", Role: user.RoleCSV},
	}, nil)

	got, err := NewUserService(store, nil, nil).ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []user.PublicUser{
		{ID: 1, Email: "a@b.io", Role: user.RoleAdmin},
		{ID: 2, Email: "c@d.io", Role: user.RoleCSV},
	}, got)
}

func TestListUsers_Error(t *testing.T) {
	store := new(mockStore)
	store.On("GetAll", mock.Anything).Return(nil, errors.New("boom"))

	_, err := NewUserService(store, nil, nil).ListUsers(context.Background())
	assert.EqualError(t, err, "boom")
}

func TestGetUser(t *testing.T) {
	store := new(mockStore)
	store.On("GetByID", mock.Anything, int64(3)).Return(&user.User{ID: 3, Email: "a@b.io", Role: user.RoleAdmin}, nil)
	store.On("GetByID", mock.Anything, int64(4)).Return(nil, fmt.Errorf("table:users: %w", pgx.ErrNoRows))

	svc := NewUserService(store, nil, nil)

	got, err := svc.GetUser(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, &user.PublicUser{ID: 3, Email: "a@b.io", Role: user.RoleAdmin}, got)

	_, err = svc.GetUser(context.Background(), 4)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}
