package repositories

import (
	"context"
	"database/sql"
	"errors"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"

	"github.com/google/uuid"
)

const companyColumns = `id, name, description, contact_email, contact_phone, COALESCE(logo_url, ''), created_at, updated_at`

type CompanyRepo struct {
	DB *sql.DB
}

// List returns all companies sorted by name.
func (r CompanyRepo) List(ctx context.Context) ([]models.BusCompany, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+companyColumns+` FROM bus_companies ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BusCompany{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r CompanyRepo) GetByID(ctx context.Context, id string) (models.BusCompany, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM bus_companies WHERE id = ?`, id)
	c, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BusCompany{}, domain.NotFoundError{Resource: "bus company"}
	}
	return c, err
}

func (r CompanyRepo) Create(ctx context.Context, in models.BusCompanyInput) (models.BusCompany, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO bus_companies (id, name, description, contact_email, contact_phone, logo_url)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, in.Name, in.Description, in.ContactEmail, in.ContactPhone, nullIfEmpty(in.LogoURL))
	if err != nil {
		return models.BusCompany{}, err
	}
	return r.GetByID(ctx, id)
}

func (r CompanyRepo) Update(ctx context.Context, id string, in models.BusCompanyInput) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE bus_companies
		SET name=?, description=?, contact_email=?, contact_phone=?, logo_url=?
		WHERE id=?`,
		in.Name, in.Description, in.ContactEmail, in.ContactPhone, nullIfEmpty(in.LogoURL), id)
	return err
}

func (r CompanyRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM bus_companies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "bus company"}
	}
	return nil
}

func scanCompany(row rowScanner) (models.BusCompany, error) {
	var c models.BusCompany
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.ContactEmail,
		&c.ContactPhone,
		&c.LogoURL,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

// nullIfEmpty stores optional strings as NULL instead of empty text.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
