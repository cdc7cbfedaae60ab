package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openenergydashboard/oed-server/internal/model/user"
	"github.com/openenergydashboard/oed-server/internal/sqlerr"
)

// UserRepository reads and writes the users table.
type UserRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewUserRepository returns a repository whose calls are each bounded by timeout.
// A non-positive timeout leaves the caller's deadline as the only bound.
func NewUserRepository(pool *pgxpool.Pool, timeout time.Duration) *UserRepository {
	return &UserRepository{pool: pool, timeout: timeout}
}

// notFound marks err so that sqlerr reports "User not found".
func notFound(err error) error {
	return fmt.Errorf("%susers: %w", sqlerr.TableMarker, err)
}

// withConn acquires a pooled connection under the query timeout and releases
// it on every exit path.
func (r *UserRepository) withConn(ctx context.Context, fn func(ctx context.Context, conn *pgxpool.Conn) error) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring connection: %w", err)
	}
	defer conn.Release()

	return fn(ctx, conn)
}

type userRow struct {
	ID           int64  `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
}

func (row userRow) toUser() (user.User, error) {
	role, err := user.ParseStoreValue(row.Role)
	if err != nil {
		return user.User{}, err
	}
	return user.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         role,
	}, nil
}

const selectUsers = `SELECT id, email, password_hash, role::text AS role FROM users`

// GetAll returns every user ordered by id.
func (r *UserRepository) GetAll(ctx context.Context) ([]user.User, error) {
	var users []user.User

	err := r.withConn(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, selectUsers+` ORDER BY id`)
		if err != nil {
			return err
		}

		collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[userRow])
		if err != nil {
			return err
		}

		users = make([]user.User, 0, len(collected))
		for _, row := range collected {
			u, err := row.toUser()
			if err != nil {
				return err
			}
			users = append(users, u)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return users, nil
}

// GetByID returns the user with id. A missing row yields an error wrapping
// pgx.ErrNoRows.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var u user.User

	err := r.withConn(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, selectUsers+` WHERE id = $1`, id)
		if err != nil {
			return err
		}

		row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[userRow])
		if err != nil {
			return err
		}

		u, err = row.toUser()
		return err
	})
	if err != nil {
		if sqlerr.IsNoRows(err) {
			return nil, notFound(err)
		}
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}

	return &u, nil
}

// Insert stores u and returns it with the id assigned by the database.
// u.PasswordHash must already be a hash.
func (r *UserRepository) Insert(ctx context.Context, u *user.User) (*user.User, error) {
	created := *u

	err := r.withConn(ctx, func(ctx context.Context, conn *pgxpool.Conn) error {
		return conn.QueryRow(ctx,
			`INSERT INTO users (email, password_hash, role) VALUES ($1, $2, $3::user_type) RETURNING id`,
			u.Email, u.PasswordHash, u.Role.StoreValue(),
		).Scan(&created.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	return &created, nil
}
