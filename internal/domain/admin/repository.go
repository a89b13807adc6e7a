package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines admin credential access
type Repository interface {
	Create(ctx context.Context, a *Admin) error
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	UpdatePassword(ctx context.Context, username, hash string) (int64, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates admin repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Admin) error {
	query := `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, a.Username, a.PasswordHash).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// GetByUsername returns nil, nil when no record matches exactly.
func (r *repository) GetByUsername(ctx context.Context, username string) (*Admin, error) {
	var a Admin
	err := r.db.GetContext(ctx, &a, `SELECT id, username, password_hash, created_at FROM admins WHERE username = $1`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}

func (r *repository) UpdatePassword(ctx context.Context, username, hash string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE admins SET password_hash = $2 WHERE username = $1`, username, hash)
	if err != nil {
		return 0, fmt.Errorf("update admin password: %w", err)
	}
	return res.RowsAffected()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
