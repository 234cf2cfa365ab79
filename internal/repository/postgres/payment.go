package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, reservation_id, user_id, amount_cents, payment_method, payment_channel, status,
	refund_amount_cents, refund_date, COALESCE(gateway_intent_ref, ''), COALESCE(gateway_charge_ref, ''), created_on, updated_on`

func scanPayment(row rowScanner) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := row.Scan(&p.ID, &p.ReservationID, &p.UserID, &p.AmountCents, &p.Method, &p.Channel, &p.Status,
		&p.RefundCents, &p.RefundDate, &p.GatewayIntent, &p.GatewayCharge, &p.CreatedOn, &p.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (reservation_id, user_id, amount_cents, payment_method, payment_channel, status, gateway_intent_ref, gateway_charge_ref, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, p.ReservationID, p.UserID, p.AmountCents, p.Method, p.Channel, p.Status, p.GatewayIntent, p.GatewayCharge, now, now).Scan(&p.ID)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.E(domain.KindNotFound, "payment %d not found", id)
	}
	return p, err
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `UPDATE payments SET status=$1, refund_amount_cents=$2, refund_date=$3, gateway_intent_ref=$4, gateway_charge_ref=$5, updated_on=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, p.Status, p.RefundCents, p.RefundDate, p.GatewayIntent, p.GatewayCharge, time.Now(), p.ID)
	return err
}

func (r *paymentRepository) ListByReservation(ctx context.Context, reservationID int32) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE reservation_id = $1 ORDER BY created_on`
	rows, err := r.db.QueryContext(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}
