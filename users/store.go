package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/scribe-go/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// Store is the identity store contract: usernames are unique and each maps
// to exactly one user row.
type Store interface {
	// FindByUsername returns the user with the given username, or a
	// NotFoundError if no such user exists.
	FindByUsername(ctx context.Context, username string) (*User, error)
	// Insert creates a new user with the default role. A username collision
	// is reported as a ConflictError.
	Insert(ctx context.Context, username, passwordHash string) (*User, error)
}

// PGStore is the pgx-backed Store implementation.
type PGStore struct {
	db *pgxpool.Pool
}

// NewPGStore creates a PGStore on top of the shared connection pool.
func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// FindByUsername implements Store.
func (s *PGStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	const query = `SELECT id, username, password_hash, role, created_at FROM users WHERE username = $1`

	var user User
	err := s.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user %q not found", username), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user by username", err)
	}
	return &user, nil
}

// Insert implements Store.
func (s *PGStore) Insert(ctx context.Context, username, passwordHash string) (*User, error) {
	const query = `INSERT INTO users (username, password_hash)
	               VALUES ($1, $2)
	               RETURNING id, username, password_hash, role, created_at`

	var user User
	err := s.db.QueryRow(ctx, query, username, passwordHash).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, "username") {
			return nil, apperror.NewConflictError("username already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return &user, nil
}
