package repository

import (
	"context"
	"database/sql"
	"fmt"

	"snowrent/internal/domain"
	"snowrent/internal/errors"
	"snowrent/internal/infrastructure/database"
)

type SQLRepository struct {
	db *sql.DB
}

func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, username, email, password, created_at, updated_at FROM users WHERE email = ?`

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by email: %w", err)
	}

	return &u, nil
}

// Create inserts u and fills in its id. A taken username or email is a
// conflict.
func (r *SQLRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (username, email, password) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, u.Username, u.Email, u.PasswordHash)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return errors.NewConflictError("username or email already registered")
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting inserted user id: %w", err)
	}
	u.ID = uint(id)

	return nil
}
