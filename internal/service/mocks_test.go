package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
)

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockVehicleRepo) ListByGroup(ctx context.Context, groupID int32, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	args := m.Called(ctx, groupID, page, pageSize)
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int32), args.Error(2)
}
func (m *MockVehicleRepo) GroupMinimums(ctx context.Context) ([]domain.GroupMinimum, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroupMinimum), args.Error(1)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) Create(ctx context.Context, r *domain.Reservation, guardStart, guardEnd time.Time) error {
	args := m.Called(ctx, r, guardStart, guardEnd)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) Update(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepo) UpdateWithConflictGuard(ctx context.Context, r *domain.Reservation, guardStart, guardEnd time.Time) error {
	args := m.Called(ctx, r, guardStart, guardEnd)
	return args.Error(0)
}
func (m *MockReservationRepo) ListConflicting(ctx context.Context, vehicleID int32, start, end time.Time) ([]domain.Window, error) {
	args := m.Called(ctx, vehicleID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Window), args.Error(1)
}
func (m *MockReservationRepo) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}
func (m *MockReservationRepo) ListExpiredHolds(ctx context.Context, now time.Time) ([]domain.Reservation, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

// MockPriceRuleRepo
type MockPriceRuleRepo struct {
	mock.Mock
}

func (m *MockPriceRuleRepo) Create(ctx context.Context, r *domain.PriceRule) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockPriceRuleRepo) GetByID(ctx context.Context, id int32) (*domain.PriceRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceRule), args.Error(1)
}
func (m *MockPriceRuleRepo) Update(ctx context.Context, r *domain.PriceRule) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockPriceRuleRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPriceRuleRepo) ListActive(ctx context.Context) ([]domain.PriceRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriceRule), args.Error(1)
}

// MockCouponRepo
type MockCouponRepo struct {
	mock.Mock
}

func (m *MockCouponRepo) Create(ctx context.Context, c *domain.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCouponRepo) GetByID(ctx context.Context, id int32) (*domain.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}
func (m *MockCouponRepo) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}
func (m *MockCouponRepo) Update(ctx context.Context, c *domain.Coupon) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCouponRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}
func (m *MockReviewRepo) ExistsForReservation(ctx context.Context, reservationID int32) (bool, error) {
	args := m.Called(ctx, reservationID)
	return args.Bool(0), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Update(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPaymentRepo) ListByReservation(ctx context.Context, reservationID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, reservationID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// MockRefundRepo
type MockRefundRepo struct {
	mock.Mock
}

func (m *MockRefundRepo) CreateRequest(ctx context.Context, r *domain.RefundRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRefundRepo) GetRequestByID(ctx context.Context, id int32) (*domain.RefundRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefundRequest), args.Error(1)
}
func (m *MockRefundRepo) UpdateRequest(ctx context.Context, r *domain.RefundRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockRefundRepo) ListRequestsByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.RefundRequest, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.RefundRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockRefundRepo) ListRequestsByStatus(ctx context.Context, status domain.RefundStatus, page, pageSize int32) ([]domain.RefundRequest, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.RefundRequest), args.Get(1).(int32), args.Error(2)
}
func (m *MockRefundRepo) AppendAudit(ctx context.Context, entry *domain.RefundAuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockRefundRepo) ListAudit(ctx context.Context, refundRequestID int32) ([]domain.RefundAuditLog, error) {
	args := m.Called(ctx, refundRequestID)
	return args.Get(0).([]domain.RefundAuditLog), args.Error(1)
}

// MockLoyaltyRepo
type MockLoyaltyRepo struct {
	mock.Mock
}

func (m *MockLoyaltyRepo) Append(ctx context.Context, adj *domain.LoyaltyAdjustment) error {
	args := m.Called(ctx, adj)
	return args.Error(0)
}
func (m *MockLoyaltyRepo) Balance(ctx context.Context, userID int32) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockLoyaltyRepo) ListByUser(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LoyaltyAdjustment, int32, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]domain.LoyaltyAdjustment), args.Get(1).(int32), args.Error(2)
}
func (m *MockLoyaltyRepo) SumEarnedByPayment(ctx context.Context, paymentID int32) (int64, error) {
	args := m.Called(ctx, paymentID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockLoyaltyRepo) HasReversalForPayment(ctx context.Context, paymentID int32) (bool, error) {
	args := m.Called(ctx, paymentID)
	return args.Bool(0), args.Error(1)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateIntent(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (string, error) {
	args := m.Called(ctx, amountCents, currency, metadata)
	return args.String(0), args.Error(1)
}
func (m *MockGateway) CreateHold(ctx context.Context, amountCents int64, currency string, metadata map[string]string) (string, error) {
	args := m.Called(ctx, amountCents, currency, metadata)
	return args.String(0), args.Error(1)
}
func (m *MockGateway) CaptureHold(ctx context.Context, holdRef string) error {
	args := m.Called(ctx, holdRef)
	return args.Error(0)
}
func (m *MockGateway) ReleaseHold(ctx context.Context, holdRef string) error {
	args := m.Called(ctx, holdRef)
	return args.Error(0)
}
func (m *MockGateway) Refund(ctx context.Context, chargeRef string, amountCents int64) error {
	args := m.Called(ctx, chargeRef, amountCents)
	return args.Error(0)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, event string, payload map[string]any) error {
	args := m.Called(ctx, event, payload)
	return args.Error(0)
}

// MockPriceCache
type MockPriceCache struct {
	mock.Mock
}

func (m *MockPriceCache) GroupMinimums(ctx context.Context) ([]domain.GroupMinimum, time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.GroupMinimum), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockPriceCache) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPriceCache) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

// MockLoyaltyService
type MockLoyaltyService struct {
	mock.Mock
}

func (m *MockLoyaltyService) Redeem(ctx context.Context, userID int32, points int64, description string) (*domain.LoyaltyAdjustment, error) {
	args := m.Called(ctx, userID, points, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoyaltyAdjustment), args.Error(1)
}
func (m *MockLoyaltyService) Summary(ctx context.Context, userID int32) (*domain.LoyaltySummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoyaltySummary), args.Error(1)
}
func (m *MockLoyaltyService) EarnForPayment(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockLoyaltyService) ReverseForPayment(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
