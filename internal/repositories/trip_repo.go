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

	"github.com/google/uuid"
)

const tripColumns = `id, departure_city, arrival_city, departure_time, arrival_time, price, available_seats, created_at, updated_at`

type TripRepo struct {
	DB *sql.DB
}

// TripSearch carries the public search filters. Empty city strings match
// every trip; a nil Date skips the day filter.
type TripSearch struct {
	Departure string
	Arrival   string
	Date      *time.Time
	Sort      string // price (default), duration, departure
}

func (r TripRepo) Search(ctx context.Context, q TripSearch) ([]models.Trip, error) {
	where := []string{
		"LOWER(departure_city) LIKE ?",
		"LOWER(arrival_city) LIKE ?",
	}
	args := []any{
		"%" + strings.ToLower(strings.TrimSpace(q.Departure)) + "%",
		"%" + strings.ToLower(strings.TrimSpace(q.Arrival)) + "%",
	}

	if q.Date != nil {
		start, end := utils.DayInterval(*q.Date)
		where = append(where, "departure_time >= ?", "departure_time < ?")
		args = append(args, start, end)
	}

	order := "price ASC"
	switch q.Sort {
	case "departure":
		order = "departure_time ASC"
	case "duration":
		order = "TIMESTAMPDIFF(SECOND, departure_time, arrival_time) ASC"
	}

	query := `SELECT ` + tripColumns + ` FROM bus_trips WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY ` + order

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// List returns all trips sorted by departure time, for the admin screen.
func (r TripRepo) List(ctx context.Context) ([]models.Trip, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+tripColumns+` FROM bus_trips ORDER BY departure_time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepo) GetByID(ctx context.Context, id string) (models.Trip, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+tripColumns+` FROM bus_trips WHERE id = ?`, id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, domain.NotFoundError{Resource: "trip"}
	}
	return t, err
}

func (r TripRepo) Create(ctx context.Context, in models.TripInput) (models.Trip, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO bus_trips (id, departure_city, arrival_city, departure_time, arrival_time, price, available_seats)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, in.DepartureCity, in.ArrivalCity, in.DepartureTime, in.ArrivalTime, in.Price, in.AvailableSeats)
	if err != nil {
		return models.Trip{}, err
	}
	return r.GetByID(ctx, id)
}

func (r TripRepo) Update(ctx context.Context, id string, in models.TripInput) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx, `
		UPDATE bus_trips
		SET departure_city=?, arrival_city=?, departure_time=?, arrival_time=?, price=?, available_seats=?
		WHERE id=?`,
		in.DepartureCity, in.ArrivalCity, in.DepartureTime, in.ArrivalTime, in.Price, in.AvailableSeats, id)
	return err
}

func (r TripRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM bus_trips WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (models.Trip, error) {
	var t models.Trip
	err := row.Scan(
		&t.ID,
		&t.DepartureCity,
		&t.ArrivalCity,
		&t.DepartureTime,
		&t.ArrivalTime,
		&t.Price,
		&t.AvailableSeats,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}
