package repositories

import (
	"context"
	"database/sql"

	"busbooking/internal/domain/models"
)

type StatsRepo struct {
	DB *sql.DB
}

// AdminStats computes the dashboard aggregate. Booking counters cover the
// last 30 days; revenue sums confirmed bookings all-time.
func (r StatsRepo) AdminStats(ctx context.Context) (models.AdminStats, error) {
	var s models.AdminStats

	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(status = 'confirmed'), 0),
		       COALESCE(SUM(status = 'pending'), 0),
		       COALESCE(SUM(status = 'cancelled'), 0)
		FROM bookings
		WHERE created_at >= NOW() - INTERVAL 30 DAY`).Scan(
		&s.TotalBookings, &s.ConfirmedBookings, &s.PendingBookings, &s.CancelledBookings)
	if err != nil {
		return s, err
	}

	err = r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_price), 0)
		FROM bookings WHERE status = 'confirmed'`).Scan(&s.TotalRevenue)
	if err != nil {
		return s, err
	}

	err = r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM passengers`).Scan(&s.TotalPassengers)
	if err != nil {
		return s, err
	}

	err = r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(role = 'admin'), 0),
		       COALESCE(SUM(created_at >= NOW() - INTERVAL 7 DAY), 0)
		FROM profiles`).Scan(&s.TotalUsers, &s.AdminUsers, &s.NewUsersLastWeek)
	if err != nil {
		return s, err
	}

	err = r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(AVG(rating), 0)
		FROM reviews`).Scan(&s.TotalReviews, &s.AverageRating)
	if err != nil {
		return s, err
	}

	err = r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(departure_time > NOW()), 0),
		       COALESCE(SUM(available_seats = 0), 0)
		FROM bus_trips`).Scan(&s.TotalTrips, &s.UpcomingTrips, &s.SoldOutTrips)
	return s, err
}

// PaymentStats computes the payment dashboard aggregate.
func (r StatsRepo) PaymentStats(ctx context.Context) (models.PaymentStats, error) {
	var s models.PaymentStats
	err := r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN status = 'completed' THEN amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = 'pending' THEN amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = 'completed' THEN amount ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = 'failed' THEN amount ELSE 0 END), 0),
		       COALESCE(SUM(payment_method = 'cash'), 0),
		       COALESCE(SUM(payment_method = 'card'), 0),
		       COALESCE(SUM(payment_method = 'transfer'), 0)
		FROM payments`).Scan(
		&s.TotalRevenue, &s.PendingAmount, &s.CompletedAmount, &s.FailedAmount,
		&s.CashPaymentsCount, &s.CardPaymentsCount, &s.TransferPaymentsCount)
	return s, err
}
