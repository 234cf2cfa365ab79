package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/repository"
)

type loyaltyRepository struct {
	db *sql.DB
}

func NewLoyaltyRepository(db *sql.DB) repository.LoyaltyRepository {
	return &loyaltyRepository{db: db}
}

func (r *loyaltyRepository) Append(ctx context.Context, adj *domain.LoyaltyAdjustment) error {
	query := `INSERT INTO loyalty_adjustments (user_id, type, points, reservation_id, payment_id, description, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, adj.UserID, adj.Kind, adj.Points, adj.ReservationID, adj.PaymentID, adj.Description, time.Now()).Scan(&adj.ID)
}

func (r *loyaltyRepository) Balance(ctx context.Context, userID int32) (int64, error) {
	var balance int64
	query := `SELECT COALESCE(SUM(points), 0) FROM loyalty_adjustments WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&balance)
	return balance, err
}

func (r *loyaltyRepository) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LoyaltyAdjustment, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM loyalty_adjustments WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, user_id, type, points, reservation_id, payment_id, COALESCE(description, ''), created_on
	          FROM loyalty_adjustments WHERE user_id = $1 ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var adjustments []domain.LoyaltyAdjustment
	for rows.Next() {
		var a domain.LoyaltyAdjustment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Kind, &a.Points, &a.ReservationID, &a.PaymentID, &a.Description, &a.CreatedOn); err != nil {
			return nil, 0, err
		}
		adjustments = append(adjustments, a)
	}
	return adjustments, count, rows.Err()
}

func (r *loyaltyRepository) SumEarnedByPayment(ctx context.Context, paymentID int32) (int64, error) {
	var sum int64
	query := `SELECT COALESCE(SUM(points), 0) FROM loyalty_adjustments WHERE payment_id = $1 AND type = $2`
	err := r.db.QueryRowContext(ctx, query, paymentID, domain.AdjustmentKindEarn).Scan(&sum)
	return sum, err
}

func (r *loyaltyRepository) HasReversalForPayment(ctx context.Context, paymentID int32) (bool, error) {
	var count int
	query := `SELECT count(*) FROM loyalty_adjustments WHERE payment_id = $1 AND type = $2 AND points < 0`
	err := r.db.QueryRowContext(ctx, query, paymentID, domain.AdjustmentKindManual).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
