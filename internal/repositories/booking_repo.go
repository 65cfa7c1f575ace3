package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/utils"
)

type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) Insert(ctx context.Context, b models.Booking) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO bookings (id, trip_id, user_id, passenger_count, total_price, status, contact_phone)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.TripID, b.UserID, b.PassengerCount, b.TotalPrice, b.Status, b.ContactPhone)
	return err
}

func (r BookingRepo) GetByID(ctx context.Context, id string) (models.Booking, error) {
	var b models.Booking
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, trip_id, user_id, passenger_count, total_price, status, contact_phone, created_at, updated_at
		FROM bookings WHERE id = ?`, id).Scan(
		&b.ID, &b.TripID, &b.UserID, &b.PassengerCount, &b.TotalPrice,
		&b.Status, &b.ContactPhone, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return b, err
}

// ListByUser is the profile screen's booking history, newest first.
func (r BookingRepo) ListByUser(ctx context.Context, userID string) ([]models.BookingWithTrip, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT b.id, b.trip_id, b.user_id, b.passenger_count, b.total_price, b.status, b.contact_phone,
		       b.created_at, b.updated_at,
		       t.departure_city, t.arrival_city, t.departure_time
		FROM bookings b
		JOIN bus_trips t ON t.id = b.trip_id
		WHERE b.user_id = ?
		ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookingRows(rows, false)
}

// BookingFilter narrows the admin booking list. Status empty means all; Day
// nil skips the creation-date filter.
type BookingFilter struct {
	Status string
	Day    *time.Time
}

// ListAdmin returns all bookings with route and booker username for the
// management screen, newest first.
func (r BookingRepo) ListAdmin(ctx context.Context, f BookingFilter) ([]models.BookingWithTrip, error) {
	where := []string{"1=1"}
	args := []any{}
	if s := strings.TrimSpace(f.Status); s != "" {
		where = append(where, "b.status = ?")
		args = append(args, s)
	}
	if f.Day != nil {
		start, end := utils.DayInterval(*f.Day)
		where = append(where, "b.created_at >= ?", "b.created_at < ?")
		args = append(args, start, end)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT b.id, b.trip_id, b.user_id, b.passenger_count, b.total_price, b.status, b.contact_phone,
		       b.created_at, b.updated_at,
		       t.departure_city, t.arrival_city, t.departure_time,
		       COALESCE(p.username, '')
		FROM bookings b
		JOIN bus_trips t ON t.id = b.trip_id
		JOIN profiles p ON p.id = b.user_id
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY b.created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookingRows(rows, true)
}

func (r BookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	return err
}

func collectBookingRows(rows *sql.Rows, withUsername bool) ([]models.BookingWithTrip, error) {
	out := []models.BookingWithTrip{}
	for rows.Next() {
		var b models.BookingWithTrip
		dest := []any{
			&b.ID, &b.TripID, &b.UserID, &b.PassengerCount, &b.TotalPrice,
			&b.Status, &b.ContactPhone, &b.CreatedAt, &b.UpdatedAt,
			&b.DepartureCity, &b.ArrivalCity, &b.DepartureTime,
		}
		if withUsername {
			dest = append(dest, &b.Username)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
