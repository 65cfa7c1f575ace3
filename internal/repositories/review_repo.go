package repositories

import (
	"context"
	"database/sql"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"

	"github.com/google/uuid"
)

type ReviewRepo struct {
	DB *sql.DB
}

func (r ReviewRepo) Insert(ctx context.Context, userID, tripID string, rating int, comment string) (models.Review, error) {
	rev := models.Review{
		ID:      uuid.NewString(),
		UserID:  userID,
		TripID:  tripID,
		Rating:  rating,
		Comment: comment,
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO reviews (id, user_id, trip_id, rating, comment)
		VALUES (?, ?, ?, ?, ?)`,
		rev.ID, rev.UserID, rev.TripID, rev.Rating, rev.Comment)
	return rev, err
}

// ListAdmin returns all reviews with reviewer and route context, newest first.
func (r ReviewRepo) ListAdmin(ctx context.Context) ([]models.ReviewWithContext, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT rv.id, rv.user_id, rv.trip_id, rv.rating, rv.comment, rv.created_at,
		       COALESCE(p.username, ''), t.departure_city, t.arrival_city
		FROM reviews rv
		JOIN profiles p ON p.id = rv.user_id
		JOIN bus_trips t ON t.id = rv.trip_id
		ORDER BY rv.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ReviewWithContext{}
	for rows.Next() {
		var rc models.ReviewWithContext
		if err := rows.Scan(
			&rc.ID, &rc.UserID, &rc.TripID, &rc.Rating, &rc.Comment, &rc.CreatedAt,
			&rc.Username, &rc.DepartureCity, &rc.ArrivalCity,
		); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

func (r ReviewRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "review"}
	}
	return nil
}
