package service

import (
	"context"
	"time"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
)

// CreateReservationInput is the validated request body for a new booking.
type CreateReservationInput struct {
	UserID     int32     `json:"user_id"`
	VehicleID  int32     `json:"vehicle_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	ExtraIDs   []string  `json:"extra_ids,omitempty"`
	CouponCode string    `json:"coupon_code,omitempty"`
}

// CreatePaymentInput opens a charge attempt for a reservation.
type CreatePaymentInput struct {
	ReservationID int32                 `json:"reservation_id"`
	UserID        int32                 `json:"user_id"`
	AmountCents   int64                 `json:"amount_cents"`
	Method        string                `json:"payment_method"`
	Channel       domain.PaymentChannel `json:"payment_channel"`
}

// CreateRefundInput is a customer refund request.
type CreateRefundInput struct {
	UserID        int32  `json:"user_id"`
	ReservationID *int32 `json:"reservation_id,omitempty"`
	PaymentID     *int32 `json:"payment_id,omitempty"`
	Reason        string `json:"reason"`
}

type ReservationService interface {
	CheckAvailability(ctx context.Context, vehicleID int32, start, end time.Time) (bool, []domain.Window, error)
	Create(ctx context.Context, in CreateReservationInput) (*domain.Reservation, error)
	Extend(ctx context.Context, userID, reservationID int32, newEndDate time.Time) (*domain.Reservation, error)
	Cancel(ctx context.Context, userID, reservationID int32) (*domain.Reservation, error)
	CheckIn(ctx context.Context, reservationID int32) (*domain.Reservation, error)
	CheckOut(ctx context.Context, reservationID int32, captureDeposit bool) (*domain.Reservation, error)
	// ExpireHold moves HELD past-expiry preauths to EXPIRED. The periodic
	// sweep is an external collaborator; only the transition lives here.
	ExpireHold(ctx context.Context, reservationID int32) error
	AddReview(ctx context.Context, userID, reservationID, rating int32, comment string) (*domain.Review, error)
	Get(ctx context.Context, userID, reservationID int32) (*domain.Reservation, error)
	GetByCode(ctx context.Context, userID int32, code string) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID, page, pageSize int32) ([]domain.Reservation, int32, error)
}

type PaymentService interface {
	CreatePayment(ctx context.Context, in CreatePaymentInput) (*domain.Payment, error)
	// ConfirmPayment marks the payment succeeded, confirms the pending
	// reservation under the window conflict guard, credits loyalty points
	// and invalidates the price cache.
	ConfirmPayment(ctx context.Context, paymentID int32) (*domain.Payment, error)
	FailPayment(ctx context.Context, paymentID int32) (*domain.Payment, error)
	ListForReservation(ctx context.Context, userID, reservationID int32) ([]domain.Payment, error)
}

type RefundService interface {
	CreateRequest(ctx context.Context, in CreateRefundInput) (*domain.RefundRequest, error)
	// Transition moves the request along the workflow, auditing the change.
	// refundAmountCents overrides the settled amount when processing; nil
	// refunds the full payment.
	Transition(ctx context.Context, requestID int32, to domain.RefundStatus, actorUserID int32, message string, refundAmountCents *int64) (*domain.RefundRequest, error)
	ListByUser(ctx context.Context, userID, page, pageSize int32) ([]domain.RefundRequest, int32, error)
	ListByStatus(ctx context.Context, status domain.RefundStatus, page, pageSize int32) ([]domain.RefundRequest, int32, error)
	Audit(ctx context.Context, requestID int32) ([]domain.RefundAuditLog, error)
}

type LoyaltyService interface {
	Redeem(ctx context.Context, userID int32, points int64, description string) (*domain.LoyaltyAdjustment, error)
	Summary(ctx context.Context, userID int32) (*domain.LoyaltySummary, error)
	// EarnForPayment credits floor(amount/100) points for a succeeded
	// payment. One point per currency unit, never negative.
	EarnForPayment(ctx context.Context, p *domain.Payment) error
	// ReverseForPayment writes a single negative MANUAL adjustment undoing
	// the payment's earns. Idempotent: recomputed from the ledger, guarded
	// by a prior-reversal check, never a stored flag.
	ReverseForPayment(ctx context.Context, p *domain.Payment) error
}

type PriceCacheService interface {
	GroupMinimums(ctx context.Context) ([]domain.GroupMinimum, time.Time, error)
	Refresh(ctx context.Context) error
	Invalidate(ctx context.Context)
}
