package repositories

import (
	"context"
	"database/sql"

	"busbooking/internal/domain/models"

	"github.com/google/uuid"
)

type PaymentRepo struct {
	DB *sql.DB
}

func (r PaymentRepo) Insert(ctx context.Context, p models.Payment) (models.Payment, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO payments (id, booking_id, amount, status, payment_method, transaction_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.BookingID, p.Amount, p.Status, p.PaymentMethod, nullIfEmpty(p.TransactionID))
	return p, err
}

// ListAdmin returns all payments with booking contact and username context,
// newest first.
func (r PaymentRepo) ListAdmin(ctx context.Context) ([]models.PaymentWithBooking, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT pm.id, pm.booking_id, pm.amount, pm.status, pm.payment_method,
		       COALESCE(pm.transaction_id, ''), pm.created_at, pm.updated_at,
		       b.contact_phone, COALESCE(p.username, '')
		FROM payments pm
		JOIN bookings b ON b.id = pm.booking_id
		JOIN profiles p ON p.id = b.user_id
		ORDER BY pm.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.PaymentWithBooking{}
	for rows.Next() {
		var pw models.PaymentWithBooking
		if err := rows.Scan(
			&pw.ID, &pw.BookingID, &pw.Amount, &pw.Status, &pw.PaymentMethod,
			&pw.TransactionID, &pw.CreatedAt, &pw.UpdatedAt,
			&pw.ContactPhone, &pw.Username,
		); err != nil {
			return nil, err
		}
		out = append(out, pw)
	}
	return out, rows.Err()
}
