package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careeros/backend/pkg/pg"
)

// Storage persists user accounts.
type Storage interface {
	CreateUser(ctx context.Context, user User) error
	GetUserByID(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

// PostgresStorage implements Storage on a pgx connection pool.
type PostgresStorage struct {
	pool *pgxpool.Pool
}

func NewPostgresStorage(pool *pgxpool.Pool) *PostgresStorage {
	return &PostgresStorage{pool: pool}
}

// CreateUser inserts a new account. A unique violation on the email
// column maps to ErrEmailAlreadyExists; the index is the final arbiter
// under concurrent signups.
func (s *PostgresStorage) CreateUser(ctx context.Context, user User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *PostgresStorage) GetUserByID(ctx context.Context, id string) (User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return s.getUser(ctx, "email", email)
}

func (s *PostgresStorage) getUser(ctx context.Context, column, value string) (User, error) {
	var user User
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, name, password_hash, created_at, updated_at
		 FROM users WHERE `+column+` = $1`,
		value,
	).Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return User{}, ErrUserNotFound
		}
		return User{}, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return user, nil
}
