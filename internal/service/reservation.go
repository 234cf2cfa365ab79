package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Alceujrab/sisloc-sub000/internal/config"
	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/gateway"
	"github.com/Alceujrab/sisloc-sub000/internal/logger"
	"github.com/Alceujrab/sisloc-sub000/internal/notifier"
	"github.com/Alceujrab/sisloc-sub000/internal/pricing"
	"github.com/Alceujrab/sisloc-sub000/internal/repository"
)

type reservationService struct {
	vehicles     repository.VehicleRepository
	reservations repository.ReservationRepository
	rules        repository.PriceRuleRepository
	reviews      repository.ReviewRepository
	checker      *AvailabilityChecker
	coupons      *CouponResolver
	deposits     *DepositManager
	gateway      gateway.PaymentGateway
	notify       notifier.Notifier
	cache        PriceCacheService
	clock        Clock
	extras       map[string]config.ExtraConfig
	currency     string
	cancelLead   time.Duration
}

func NewReservationService(
	vehicles repository.VehicleRepository,
	reservations repository.ReservationRepository,
	rules repository.PriceRuleRepository,
	reviews repository.ReviewRepository,
	checker *AvailabilityChecker,
	coupons *CouponResolver,
	deposits *DepositManager,
	gw gateway.PaymentGateway,
	notify notifier.Notifier,
	cache PriceCacheService,
	clock Clock,
	cfg *config.Config,
) ReservationService {
	extras := make(map[string]config.ExtraConfig, len(cfg.Extras))
	for _, e := range cfg.Extras {
		extras[e.ID] = e
	}
	return &reservationService{
		vehicles:     vehicles,
		reservations: reservations,
		rules:        rules,
		reviews:      reviews,
		checker:      checker,
		coupons:      coupons,
		deposits:     deposits,
		gateway:      gw,
		notify:       notify,
		cache:        cache,
		clock:        clock,
		extras:       extras,
		currency:     cfg.Stripe.Currency,
		cancelLead:   time.Duration(cfg.Reservation.CancellationLeadHours) * time.Hour,
	}
}

// dayStart truncates to UTC midnight. Reservations run on whole days
// [start, end); the buffer applies only to conflict checks.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// codeRetries bounds regeneration attempts when an insert collides on the
// unique reservation code.
const codeRetries = 3

func newReservationCode() string {
	return "RES-" + strings.ToUpper(uuid.NewString()[:8])
}

func (s *reservationService) emit(ctx context.Context, event string, rsv *domain.Reservation) {
	err := s.notify.Notify(ctx, event, map[string]any{
		"reservation_id":   rsv.ID,
		"reservation_code": rsv.Code,
		"user_id":          rsv.UserID,
		"vehicle_id":       rsv.VehicleID,
		"status":           rsv.Status,
		"total_cents":      rsv.TotalAmount,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Notification delivery failed", "event", event, "reservation_id", rsv.ID, "error", err)
	}
}

func (s *reservationService) CheckAvailability(ctx context.Context, vehicleID int32, start, end time.Time) (bool, []domain.Window, error) {
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		return false, nil, err
	}
	start, end = dayStart(start), dayStart(end)
	if !start.Before(end) {
		return false, nil, domain.E(domain.KindValidation, "start date must be before end date")
	}
	return s.checker.Check(ctx, vehicleID, start, end)
}

func (s *reservationService) Create(ctx context.Context, in CreateReservationInput) (*domain.Reservation, error) {
	start, end := dayStart(in.StartDate), dayStart(in.EndDate)
	if !start.Before(end) {
		return nil, domain.E(domain.KindValidation, "start date must be before end date")
	}
	if start.Before(dayStart(s.clock.Now())) {
		return nil, domain.E(domain.KindValidation, "start date is in the past")
	}

	vehicle, err := s.vehicles.GetByID(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != domain.VehicleStatusAvailable {
		return nil, domain.E(domain.KindVehicleUnavailable, "vehicle %d is %s", vehicle.ID, vehicle.Status)
	}

	available, _, err := s.checker.Check(ctx, vehicle.ID, start, end)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.E(domain.KindVehicleUnavailable, "vehicle %d is already booked in the requested period", vehicle.ID)
	}

	rules, err := s.rules.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	scope := pricing.VehicleScope{GroupID: vehicle.GroupID, Location: vehicle.Location}
	subtotal := pricing.RangeSubtotal(vehicle.DailyRateCents, start, end, scope, rules)
	days := pricing.DaysBetween(start, end)
	insuranceTotal := vehicle.InsuranceDailyCents * int64(days)

	var extras []domain.ReservationExtra
	var extrasTotal int64
	for _, id := range in.ExtraIDs {
		e, ok := s.extras[id]
		if !ok {
			return nil, domain.E(domain.KindValidation, "unknown extra %q", id)
		}
		total := e.DailyPriceCents * int64(days)
		extras = append(extras, domain.ReservationExtra{
			ID:              e.ID,
			Name:            e.Name,
			DailyPriceCents: e.DailyPriceCents,
			TotalCents:      total,
		})
		extrasTotal += total
	}

	base := subtotal + insuranceTotal + extrasTotal
	discount, err := s.coupons.Resolve(ctx, in.CouponCode, days, base)
	if err != nil {
		return nil, err
	}
	total := base - discount

	required, depositAmount := s.deposits.Calculate(total)

	rsv := &domain.Reservation{
		Code:            newReservationCode(),
		UserID:          in.UserID,
		VehicleID:       vehicle.ID,
		StartDate:       start,
		EndDate:         end,
		DaysCount:       days,
		DailyRateCents:  vehicle.DailyRateCents,
		InsuranceDaily:  vehicle.InsuranceDailyCents,
		Extras:          extras,
		ExtrasTotal:     extrasTotal,
		Subtotal:        subtotal,
		InsuranceTotal:  insuranceTotal,
		CouponCode:      in.CouponCode,
		DiscountAmount:  discount,
		TotalAmount:     total,
		PaymentState:    domain.PaymentStatePending,
		Status:          domain.ReservationStatusPending,
		DepositRequired: required,
		DepositAmount:   depositAmount,
		PreauthStatus:   domain.PreauthStatusNone,
	}

	guardStart, guardEnd := s.checker.Widen(start, end)
	for attempt := 0; ; attempt++ {
		err = s.reservations.Create(ctx, rsv, guardStart, guardEnd)
		if !errors.Is(err, repository.ErrDuplicateCode) || attempt >= codeRetries {
			break
		}
		rsv.Code = newReservationCode()
	}
	if err != nil {
		return nil, err
	}

	s.emit(ctx, notifier.EventReservationCreated, rsv)
	return rsv, nil
}

func (s *reservationService) Extend(ctx context.Context, userID, reservationID int32, newEndDate time.Time) (*domain.Reservation, error) {
	rsv, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if rsv.UserID != userID {
		return nil, domain.E(domain.KindNotFound, "reservation %d not found", reservationID)
	}
	switch rsv.Status {
	case domain.ReservationStatusPending, domain.ReservationStatusConfirmed, domain.ReservationStatusActive:
	default:
		return nil, domain.E(domain.KindValidation, "reservation in status %s cannot be extended", rsv.Status)
	}

	newEnd := dayStart(newEndDate)
	if !newEnd.After(rsv.EndDate) {
		return nil, domain.E(domain.KindValidation, "new end date must be after the current end date")
	}

	// Only the additional window is validated and priced; already-billed
	// days are never recomputed.
	available, _, err := s.checker.Check(ctx, rsv.VehicleID, rsv.EndDate, newEnd)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.E(domain.KindExtensionConflict, "requested extension collides with another reservation")
	}

	vehicle, err := s.vehicles.GetByID(ctx, rsv.VehicleID)
	if err != nil {
		return nil, err
	}
	rules, err := s.rules.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	scope := pricing.VehicleScope{GroupID: vehicle.GroupID, Location: vehicle.Location}
	addedSubtotal := pricing.RangeSubtotal(rsv.DailyRateCents, rsv.EndDate, newEnd, scope, rules)
	addedDays := pricing.DaysBetween(rsv.EndDate, newEnd)
	addedInsurance := rsv.InsuranceDaily * int64(addedDays)

	guardStart, guardEnd := s.checker.Widen(rsv.EndDate, newEnd)

	rsv.EndDate = newEnd
	rsv.DaysCount += addedDays
	rsv.Subtotal += addedSubtotal
	rsv.InsuranceTotal += addedInsurance
	rsv.TotalAmount = rsv.Subtotal + rsv.InsuranceTotal + rsv.ExtrasTotal - rsv.DiscountAmount

	if err := s.reservations.UpdateWithConflictGuard(ctx, rsv, guardStart, guardEnd); err != nil {
		if domain.IsKind(err, domain.KindVehicleUnavailable) {
			return nil, domain.E(domain.KindExtensionConflict, "requested extension collides with another reservation")
		}
		return nil, err
	}

	s.emit(ctx, notifier.EventReservationExtended, rsv)
	return rsv, nil
}

func (s *reservationService) Cancel(ctx context.Context, userID, reservationID int32) (*domain.Reservation, error) {
	rsv, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if rsv.UserID != userID {
		return nil, domain.E(domain.KindNotFound, "reservation %d not found", reservationID)
	}
	if rsv.Status != domain.ReservationStatusPending && rsv.Status != domain.ReservationStatusConfirmed {
		return nil, domain.E(domain.KindValidation, "reservation in status %s cannot be cancelled", rsv.Status)
	}
	if !s.clock.Now().Add(s.cancelLead).Before(rsv.StartDate) {
		return nil, domain.E(domain.KindCancellationWindow, "cancellation requires at least %s before the start date", s.cancelLead)
	}

	wasConfirmed := rsv.Status == domain.ReservationStatusConfirmed
	rsv.Status = domain.ReservationStatusCancelled
	if err := s.reservations.Update(ctx, rsv); err != nil {
		return nil, err
	}

	if wasConfirmed {
		s.releaseVehicle(ctx, rsv.VehicleID)
	}

	s.emit(ctx, notifier.EventReservationCancelled, rsv)
	return rsv, nil
}

func (s *reservationService) CheckIn(ctx context.Context, reservationID int32) (*domain.Reservation, error) {
	rsv, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if rsv.Status != domain.ReservationStatusConfirmed {
		return nil, domain.E(domain.KindIllegalTransition, "check-in requires a confirmed reservation, got %s", rsv.Status)
	}

	now := s.clock.Now()
	rsv.CheckinDate = &now
	rsv.Status = domain.ReservationStatusActive

	if rsv.DepositRequired {
		ref, err := s.placeHold(ctx, rsv)
		if err != nil {
			return nil, domain.Wrap(domain.KindGateway, err, "failed to place deposit hold")
		}
		expires := now.AddDate(0, 0, s.deposits.HoldDays())
		rsv.PreauthStatus = domain.PreauthStatusHeld
		rsv.PreauthExpires = &expires
		rsv.PreauthRef = ref
	}

	if err := s.reservations.Update(ctx, rsv); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.emit(ctx, notifier.EventReservationCheckedIn, rsv)
	return rsv, nil
}

func (s *reservationService) placeHold(ctx context.Context, rsv *domain.Reservation) (string, error) {
	if s.gateway == nil {
		// No gateway configured: track the hold locally with an opaque ref.
		return "hold_" + uuid.NewString(), nil
	}
	return s.gateway.CreateHold(ctx, rsv.DepositAmount, s.currency, map[string]string{
		"reservation_code": rsv.Code,
	})
}

func (s *reservationService) CheckOut(ctx context.Context, reservationID int32, captureDeposit bool) (*domain.Reservation, error) {
	rsv, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if rsv.Status != domain.ReservationStatusActive {
		return nil, domain.E(domain.KindIllegalTransition, "check-out requires an active reservation, got %s", rsv.Status)
	}

	now := s.clock.Now()
	rsv.CheckoutDate = &now
	rsv.Status = domain.ReservationStatusCompleted

	if rsv.PreauthStatus == domain.PreauthStatusHeld {
		// The hold is resolved best-effort: a gateway outage must not trap
		// the returned vehicle in ACTIVE. Failures are retried out-of-band.
		if captureDeposit {
			rsv.PreauthStatus = domain.PreauthStatusCaptured
			if s.gateway != nil {
				if err := s.gateway.CaptureHold(ctx, rsv.PreauthRef); err != nil {
					logger.ErrorContext(ctx, "Deposit capture failed at gateway", "reservation_id", rsv.ID, "hold_ref", rsv.PreauthRef, "error", err)
				}
			}
		} else {
			rsv.PreauthStatus = domain.PreauthStatusReleased
			if s.gateway != nil {
				if err := s.gateway.ReleaseHold(ctx, rsv.PreauthRef); err != nil {
					logger.ErrorContext(ctx, "Deposit release failed at gateway", "reservation_id", rsv.ID, "hold_ref", rsv.PreauthRef, "error", err)
				}
			}
		}
	}

	if err := s.reservations.Update(ctx, rsv); err != nil {
		return nil, err
	}

	s.releaseVehicle(ctx, rsv.VehicleID)
	s.emit(ctx, notifier.EventReservationCompleted, rsv)
	return rsv, nil
}

// releaseVehicle flips the vehicle back to AVAILABLE and invalidates the
// group-minimum cache.
func (s *reservationService) releaseVehicle(ctx context.Context, vehicleID int32) {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load vehicle for release", "vehicle_id", vehicleID, "error", err)
		return
	}
	vehicle.Status = domain.VehicleStatusAvailable
	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		logger.ErrorContext(ctx, "Failed to release vehicle", "vehicle_id", vehicleID, "error", err)
		return
	}
	s.cache.Invalidate(ctx)
}

func (s *reservationService) ExpireHold(ctx context.Context, reservationID int32) error {
	rsv, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if rsv.PreauthStatus != domain.PreauthStatusHeld {
		return domain.E(domain.KindIllegalTransition, "preauth in status %s cannot expire", rsv.PreauthStatus)
	}
	if rsv.PreauthExpires == nil || s.clock.Now().Before(*rsv.PreauthExpires) {
		return domain.E(domain.KindValidation, "hold on reservation %d has not expired yet", rsv.ID)
	}

	rsv.PreauthStatus = domain.PreauthStatusExpired
	return s.reservations.Update(ctx, rsv)
}

func (s *reservationService) AddReview(ctx context.Context, userID, reservationID, rating int32, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.E(domain.KindValidation, "rating must be between 1 and 5")
	}

	rsv, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if rsv.UserID != userID {
		return nil, domain.E(domain.KindNotFound, "reservation %d not found", reservationID)
	}
	if rsv.Status != domain.ReservationStatusCompleted {
		return nil, domain.E(domain.KindValidation, "only completed reservations can be reviewed")
	}

	exists, err := s.reviews.ExistsForReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.E(domain.KindValidation, "reservation %d has already been reviewed", reservationID)
	}

	review := &domain.Review{
		ReservationID: reservationID,
		UserID:        userID,
		Rating:        rating,
		Comment:       comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reservationService) Get(ctx context.Context, userID, reservationID int32) (*domain.Reservation, error) {
	rsv, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if rsv.UserID != userID {
		return nil, domain.E(domain.KindNotFound, "reservation %d not found", reservationID)
	}
	return rsv, nil
}

func (s *reservationService) GetByCode(ctx context.Context, userID int32, code string) (*domain.Reservation, error) {
	rsv, err := s.reservations.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if rsv.UserID != userID {
		return nil, domain.E(domain.KindNotFound, "reservation %s not found", code)
	}
	return rsv, nil
}

func (s *reservationService) ListByUser(ctx context.Context, userID, page, pageSize int32) ([]domain.Reservation, int32, error) {
	return s.reservations.ListByUser(ctx, userID, page, pageSize)
}
