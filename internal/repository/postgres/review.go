package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	query := `INSERT INTO reviews (reservation_id, user_id, rating, comment, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, rv.ReservationID, rv.UserID, rv.Rating, rv.Comment, time.Now()).Scan(&rv.ID)
}

func (r *reviewRepository) ExistsForReservation(ctx context.Context, reservationID int32) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM reviews WHERE reservation_id = $1`, reservationID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
