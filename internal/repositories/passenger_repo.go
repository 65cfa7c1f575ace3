package repositories

import (
	"context"
	"database/sql"

	"busbooking/internal/domain/models"

	"github.com/google/uuid"
)

type PassengerRepo struct {
	DB *sql.DB
}

func (r PassengerRepo) Insert(ctx context.Context, bookingID, firstName, lastName string) (models.Passenger, error) {
	p := models.Passenger{
		ID:        uuid.NewString(),
		BookingID: bookingID,
		FirstName: firstName,
		LastName:  lastName,
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO passengers (id, booking_id, first_name, last_name)
		VALUES (?, ?, ?, ?)`,
		p.ID, p.BookingID, p.FirstName, p.LastName)
	return p, err
}

func (r PassengerRepo) ListByBooking(ctx context.Context, bookingID string) ([]models.Passenger, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, booking_id, first_name, last_name, created_at
		FROM passengers WHERE booking_id = ? ORDER BY created_at ASC, id ASC`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Passenger{}
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.ID, &p.BookingID, &p.FirstName, &p.LastName, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
