package repositories

import (
	"context"
	"database/sql"
	"errors"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
)

const profileColumns = `id, username, phone_number, address, preferred_language, role, created_at, updated_at`

type ProfileRepo struct {
	DB *sql.DB
}

func (r ProfileRepo) Insert(ctx context.Context, p models.Profile) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO profiles (id, username, phone_number, address, preferred_language, role)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Username, p.PhoneNumber, p.Address, p.PreferredLanguage, p.Role)
	return err
}

func (r ProfileRepo) GetByID(ctx context.Context, id string) (models.Profile, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, domain.NotFoundError{Resource: "profile"}
	}
	return p, err
}

// Update writes the owner-editable fields.
func (r ProfileRepo) Update(ctx context.Context, id string, in models.ProfileInput) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE profiles
		SET username=?, phone_number=?, address=?, preferred_language=?
		WHERE id=?`,
		in.Username, in.PhoneNumber, in.Address, in.PreferredLanguage, id)
	return err
}

// List returns all profiles newest first, for the users management screen.
func (r ProfileRepo) List(ctx context.Context) ([]models.Profile, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r ProfileRepo) UpdateRole(ctx context.Context, id, role string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		`UPDATE profiles SET role = ? WHERE id = ?`, role, id)
	return err
}

// IsAdmin is the per-request role check behind the admin gate.
func (r ProfileRepo) IsAdmin(ctx context.Context, id string) (bool, error) {
	var role string
	err := r.DB.QueryRowContext(ctx,
		`SELECT role FROM profiles WHERE id = ?`, id).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return role == models.RoleAdmin, nil
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var p models.Profile
	err := row.Scan(
		&p.ID,
		&p.Username,
		&p.PhoneNumber,
		&p.Address,
		&p.PreferredLanguage,
		&p.Role,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
