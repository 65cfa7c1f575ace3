package repositories

import (
	"context"
	"database/sql"
	"errors"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"

	"github.com/google/uuid"
)

const notificationColumns = "id, user_id, title, message, type, `read`, created_at"

type NotificationRepo struct {
	DB *sql.DB
}

func (r NotificationRepo) Insert(ctx context.Context, n models.Notification) (models.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, title, message, type)
		VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.UserID, n.Title, n.Message, n.Type)
	return n, err
}

// ListByUser returns the caller's latest notifications, newest first,
// capped at limit (the popover shows 10).
func (r NotificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotifications(rows)
}

// ListAdmin returns every notification, newest first.
func (r NotificationRepo) ListAdmin(ctx context.Context) ([]models.Notification, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectNotifications(rows)
}

// MarkRead sets the read flag for one of the owner's notifications.
// Marking an already-read notification is a no-op, not an error.
func (r NotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	var read bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT `read` FROM notifications WHERE id = ? AND user_id = ?", id, userID).Scan(&read)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError{Resource: "notification"}
	}
	if err != nil {
		return err
	}
	if read {
		return nil
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE notifications SET `read` = 1 WHERE id = ?", id)
	return err
}

func (r NotificationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM notifications WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "notification"}
	}
	return nil
}

func collectNotifications(rows *sql.Rows) ([]models.Notification, error) {
	out := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
