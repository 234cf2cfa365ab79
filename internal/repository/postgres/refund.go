package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/repository"
)

type refundRepository struct {
	db *sql.DB
}

func NewRefundRepository(db *sql.DB) repository.RefundRepository {
	return &refundRepository{db: db}
}

const refundColumns = `id, user_id, reservation_id, payment_id, reason, status, COALESCE(reply_message, ''), created_on, updated_on`

func scanRefundRequest(row rowScanner) (*domain.RefundRequest, error) {
	rq := &domain.RefundRequest{}
	err := row.Scan(&rq.ID, &rq.UserID, &rq.ReservationID, &rq.PaymentID, &rq.Reason, &rq.Status, &rq.ReplyMessage, &rq.CreatedOn, &rq.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return rq, nil
}

func (r *refundRepository) CreateRequest(ctx context.Context, rq *domain.RefundRequest) error {
	query := `INSERT INTO refund_requests (user_id, reservation_id, payment_id, reason, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, rq.UserID, rq.ReservationID, rq.PaymentID, rq.Reason, rq.Status, now, now).Scan(&rq.ID)
}

func (r *refundRepository) GetRequestByID(ctx context.Context, id int32) (*domain.RefundRequest, error) {
	rq, err := scanRefundRequest(r.db.QueryRowContext(ctx, `SELECT `+refundColumns+` FROM refund_requests WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.E(domain.KindNotFound, "refund request %d not found", id)
	}
	return rq, err
}

func (r *refundRepository) UpdateRequest(ctx context.Context, rq *domain.RefundRequest) error {
	query := `UPDATE refund_requests SET status=$1, reply_message=$2, updated_on=$3 WHERE id=$4`
	_, err := r.db.ExecContext(ctx, query, rq.Status, rq.ReplyMessage, time.Now(), rq.ID)
	return err
}

func (r *refundRepository) listRequests(ctx context.Context, where string, arg any, page, pageSize int32) ([]domain.RefundRequest, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM refund_requests WHERE `+where, arg).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + refundColumns + ` FROM refund_requests WHERE ` + where + ` ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, arg, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []domain.RefundRequest
	for rows.Next() {
		rq, err := scanRefundRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, *rq)
	}
	return requests, count, rows.Err()
}

func (r *refundRepository) ListRequestsByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.RefundRequest, int32, error) {
	return r.listRequests(ctx, "user_id = $1", userID, page, pageSize)
}

func (r *refundRepository) ListRequestsByStatus(ctx context.Context, status domain.RefundStatus, page, pageSize int32) ([]domain.RefundRequest, int32, error) {
	return r.listRequests(ctx, "status = $1", status, page, pageSize)
}

func (r *refundRepository) AppendAudit(ctx context.Context, entry *domain.RefundAuditLog) error {
	query := `INSERT INTO refund_audit_logs (refund_request_id, actor_user_id, action, message, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, entry.RefundRequestID, entry.ActorUserID, entry.Action, entry.Message, time.Now()).Scan(&entry.ID)
}

func (r *refundRepository) ListAudit(ctx context.Context, refundRequestID int32) ([]domain.RefundAuditLog, error) {
	query := `SELECT id, refund_request_id, actor_user_id, action, COALESCE(message, ''), created_on
	          FROM refund_audit_logs WHERE refund_request_id = $1 ORDER BY created_on, id`
	rows, err := r.db.QueryContext(ctx, query, refundRequestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.RefundAuditLog
	for rows.Next() {
		var e domain.RefundAuditLog
		if err := rows.Scan(&e.ID, &e.RefundRequestID, &e.ActorUserID, &e.Action, &e.Message, &e.CreatedOn); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
