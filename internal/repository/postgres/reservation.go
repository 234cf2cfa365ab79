package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/repository"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, reservation_code, user_id, vehicle_id, start_date, end_date, days_count,
	daily_rate_cents, insurance_daily_cents, extras, extras_total_cents, subtotal_cents, insurance_total_cents,
	COALESCE(coupon_code, ''), discount_amount_cents, total_amount_cents, payment_status, status,
	checkin_date, checkout_date, deposit_required, deposit_amount_cents, preauth_status, preauth_expires_at,
	COALESCE(preauth_reference, ''), created_on, updated_on`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	rsv := &domain.Reservation{}
	var extras []byte
	err := row.Scan(&rsv.ID, &rsv.Code, &rsv.UserID, &rsv.VehicleID, &rsv.StartDate, &rsv.EndDate, &rsv.DaysCount,
		&rsv.DailyRateCents, &rsv.InsuranceDaily, &extras, &rsv.ExtrasTotal, &rsv.Subtotal, &rsv.InsuranceTotal,
		&rsv.CouponCode, &rsv.DiscountAmount, &rsv.TotalAmount, &rsv.PaymentState, &rsv.Status,
		&rsv.CheckinDate, &rsv.CheckoutDate, &rsv.DepositRequired, &rsv.DepositAmount, &rsv.PreauthStatus, &rsv.PreauthExpires,
		&rsv.PreauthRef, &rsv.CreatedOn, &rsv.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if len(extras) > 0 {
		if err := json.Unmarshal(extras, &rsv.Extras); err != nil {
			return nil, err
		}
	}
	return rsv, nil
}

const conflictCountQuery = `SELECT count(*) FROM reservations
	WHERE vehicle_id = $1 AND id <> $2 AND status IN ('CONFIRMED', 'ACTIVE')
	  AND start_date < $3 AND end_date > $4`

func (r *reservationRepository) Create(ctx context.Context, rsv *domain.Reservation, guardStart, guardEnd time.Time) error {
	extras, err := json.Marshal(rsv.Extras)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Serialize concurrent bookings of the same vehicle, then re-check the
	// widened window before inserting.
	if _, err := tx.ExecContext(ctx, `SELECT id FROM vehicles WHERE id = $1 FOR UPDATE`, rsv.VehicleID); err != nil {
		return err
	}

	var conflicts int
	if err := tx.QueryRowContext(ctx, conflictCountQuery, rsv.VehicleID, int32(0), guardEnd, guardStart).Scan(&conflicts); err != nil {
		return err
	}
	if conflicts > 0 {
		return domain.E(domain.KindVehicleUnavailable, "vehicle %d is no longer available for the requested dates", rsv.VehicleID)
	}

	query := `INSERT INTO reservations (reservation_code, user_id, vehicle_id, start_date, end_date, days_count,
		daily_rate_cents, insurance_daily_cents, extras, extras_total_cents, subtotal_cents, insurance_total_cents,
		coupon_code, discount_amount_cents, total_amount_cents, payment_status, status,
		deposit_required, deposit_amount_cents, preauth_status, created_on, updated_on)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	RETURNING id`
	now := time.Now()
	if err := tx.QueryRowContext(ctx, query, rsv.Code, rsv.UserID, rsv.VehicleID, rsv.StartDate, rsv.EndDate, rsv.DaysCount,
		rsv.DailyRateCents, rsv.InsuranceDaily, extras, rsv.ExtrasTotal, rsv.Subtotal, rsv.InsuranceTotal,
		rsv.CouponCode, rsv.DiscountAmount, rsv.TotalAmount, rsv.PaymentState, rsv.Status,
		rsv.DepositRequired, rsv.DepositAmount, rsv.PreauthStatus, now, now).Scan(&rsv.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, "reservation_code") {
			return repository.ErrDuplicateCode
		}
		return err
	}

	return tx.Commit()
}

func (r *reservationRepository) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	rsv, err := scanReservation(r.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.E(domain.KindNotFound, "reservation %d not found", id)
	}
	return rsv, err
}

func (r *reservationRepository) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	rsv, err := scanReservation(r.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE reservation_code = $1`, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.E(domain.KindNotFound, "reservation %s not found", code)
	}
	return rsv, err
}

const reservationUpdateQuery = `UPDATE reservations SET end_date=$1, days_count=$2, extras=$3, extras_total_cents=$4,
	subtotal_cents=$5, insurance_total_cents=$6, discount_amount_cents=$7, total_amount_cents=$8,
	payment_status=$9, status=$10, checkin_date=$11, checkout_date=$12,
	preauth_status=$13, preauth_expires_at=$14, preauth_reference=$15, updated_on=$16
	WHERE id=$17`

func (r *reservationRepository) Update(ctx context.Context, rsv *domain.Reservation) error {
	extras, err := json.Marshal(rsv.Extras)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, reservationUpdateQuery, rsv.EndDate, rsv.DaysCount, extras, rsv.ExtrasTotal,
		rsv.Subtotal, rsv.InsuranceTotal, rsv.DiscountAmount, rsv.TotalAmount,
		rsv.PaymentState, rsv.Status, rsv.CheckinDate, rsv.CheckoutDate,
		rsv.PreauthStatus, rsv.PreauthExpires, rsv.PreauthRef, time.Now(), rsv.ID)
	return err
}

func (r *reservationRepository) UpdateWithConflictGuard(ctx context.Context, rsv *domain.Reservation, guardStart, guardEnd time.Time) error {
	extras, err := json.Marshal(rsv.Extras)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT id FROM vehicles WHERE id = $1 FOR UPDATE`, rsv.VehicleID); err != nil {
		return err
	}

	var conflicts int
	if err := tx.QueryRowContext(ctx, conflictCountQuery, rsv.VehicleID, rsv.ID, guardEnd, guardStart).Scan(&conflicts); err != nil {
		return err
	}
	if conflicts > 0 {
		return domain.E(domain.KindVehicleUnavailable, "requested window collides with another reservation of vehicle %d", rsv.VehicleID)
	}

	if _, err := tx.ExecContext(ctx, reservationUpdateQuery, rsv.EndDate, rsv.DaysCount, extras, rsv.ExtrasTotal,
		rsv.Subtotal, rsv.InsuranceTotal, rsv.DiscountAmount, rsv.TotalAmount,
		rsv.PaymentState, rsv.Status, rsv.CheckinDate, rsv.CheckoutDate,
		rsv.PreauthStatus, rsv.PreauthExpires, rsv.PreauthRef, time.Now(), rsv.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *reservationRepository) ListConflicting(ctx context.Context, vehicleID int32, start, end time.Time) ([]domain.Window, error) {
	query := `SELECT id, start_date, end_date FROM reservations
	          WHERE vehicle_id = $1 AND status IN ('CONFIRMED', 'ACTIVE')
	            AND start_date < $2 AND end_date > $3
	          ORDER BY start_date`
	rows, err := r.db.QueryContext(ctx, query, vehicleID, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var windows []domain.Window
	for rows.Next() {
		var w domain.Window
		if err := rows.Scan(&w.ReservationID, &w.Start, &w.End); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Reservation, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM reservations WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE user_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		rsv, err := scanReservation(rows)
		if err != nil {
			return nil, 0, err
		}
		reservations = append(reservations, *rsv)
	}
	return reservations, count, rows.Err()
}

func (r *reservationRepository) ListExpiredHolds(ctx context.Context, now time.Time) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations
	          WHERE preauth_status = 'HELD' AND preauth_expires_at < $1
	          ORDER BY preauth_expires_at`
	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		rsv, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *rsv)
	}
	return reservations, rows.Err()
}
