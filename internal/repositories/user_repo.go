package repositories

import (
	"context"
	"database/sql"
	"errors"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
)

type UserRepo struct {
	DB *sql.DB
}

func (r UserRepo) Insert(ctx context.Context, u models.User) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash)
		VALUES (?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash)
	return err
}

func (r UserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, password_hash, created_at
		FROM users WHERE email = ?`, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

func (r UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&n)
	return n > 0, err
}
