package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
)

// ErrDuplicateCode reports a reservation insert that lost the race on the
// unique reservation_code index. Callers retry with a fresh code.
var ErrDuplicateCode = errors.New("reservation code already exists")

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, id int32) error
	ListByGroup(ctx context.Context, groupID int32, page, pageSize int32) ([]domain.Vehicle, int32, error)
	// GroupMinimums scans available vehicles and returns the lowest daily
	// rate per group. Source query for the group-minimum cache.
	GroupMinimums(ctx context.Context) ([]domain.GroupMinimum, error)
}

type VehicleGroupRepository interface {
	Create(ctx context.Context, g *domain.VehicleGroup) error
	GetByID(ctx context.Context, id int32) (*domain.VehicleGroup, error)
	List(ctx context.Context) ([]domain.VehicleGroup, error)
	Update(ctx context.Context, g *domain.VehicleGroup) error
	Delete(ctx context.Context, id int32) error
}

type PriceRuleRepository interface {
	Create(ctx context.Context, r *domain.PriceRule) error
	GetByID(ctx context.Context, id int32) (*domain.PriceRule, error)
	Update(ctx context.Context, r *domain.PriceRule) error
	Delete(ctx context.Context, id int32) error
	ListActive(ctx context.Context) ([]domain.PriceRule, error)
}

type CouponRepository interface {
	Create(ctx context.Context, c *domain.Coupon) error
	GetByID(ctx context.Context, id int32) (*domain.Coupon, error)
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	Update(ctx context.Context, c *domain.Coupon) error
	Delete(ctx context.Context, id int32) error
}

type ReservationRepository interface {
	// Create inserts the reservation inside a transaction that re-checks
	// for conflicting CONFIRMED/ACTIVE reservations on [guardStart,
	// guardEnd) under a row lock. Returns a VEHICLE_UNAVAILABLE error when
	// the re-check finds a conflict.
	Create(ctx context.Context, r *domain.Reservation, guardStart, guardEnd time.Time) error
	GetByID(ctx context.Context, id int32) (*domain.Reservation, error)
	GetByCode(ctx context.Context, code string) (*domain.Reservation, error)
	Update(ctx context.Context, r *domain.Reservation) error
	// UpdateWithConflictGuard updates the reservation inside a transaction
	// that re-checks [guardStart, guardEnd) against every other
	// CONFIRMED/ACTIVE reservation of the same vehicle, returning a
	// VEHICLE_UNAVAILABLE error on a collision. Used by Extend and by
	// payment confirmation.
	UpdateWithConflictGuard(ctx context.Context, r *domain.Reservation, guardStart, guardEnd time.Time) error
	// ListConflicting returns the occupied windows of CONFIRMED/ACTIVE
	// reservations of the vehicle intersecting [start, end).
	ListConflicting(ctx context.Context, vehicleID int32, start, end time.Time) ([]domain.Window, error)
	ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Reservation, int32, error)
	// ListExpiredHolds returns reservations whose preauth is HELD past its
	// expiry. Consumed by the sweep job.
	ListExpiredHolds(ctx context.Context, now time.Time) ([]domain.Reservation, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	ExistsForReservation(ctx context.Context, reservationID int32) (bool, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) error
	ListByReservation(ctx context.Context, reservationID int32) ([]domain.Payment, error)
}

type RefundRepository interface {
	CreateRequest(ctx context.Context, r *domain.RefundRequest) error
	GetRequestByID(ctx context.Context, id int32) (*domain.RefundRequest, error)
	UpdateRequest(ctx context.Context, r *domain.RefundRequest) error
	ListRequestsByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.RefundRequest, int32, error)
	ListRequestsByStatus(ctx context.Context, status domain.RefundStatus, page, pageSize int32) ([]domain.RefundRequest, int32, error)
	AppendAudit(ctx context.Context, entry *domain.RefundAuditLog) error
	ListAudit(ctx context.Context, refundRequestID int32) ([]domain.RefundAuditLog, error)
}

type LoyaltyRepository interface {
	Append(ctx context.Context, adj *domain.LoyaltyAdjustment) error
	// Balance is the sum of all adjustments, never a stored counter.
	Balance(ctx context.Context, userID int32) (int64, error)
	ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LoyaltyAdjustment, int32, error)
	// SumEarnedByPayment sums EARN adjustments linked to the payment.
	SumEarnedByPayment(ctx context.Context, paymentID int32) (int64, error)
	// HasReversalForPayment reports whether a negative MANUAL adjustment
	// linked to the payment already exists. The idempotency guard for
	// refund processing.
	HasReversalForPayment(ctx context.Context, paymentID int32) (bool, error)
}
