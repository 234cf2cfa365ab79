package service

import (
	"context"

	"github.com/Alceujrab/sisloc-sub000/internal/config"
	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/gateway"
	"github.com/Alceujrab/sisloc-sub000/internal/logger"
	"github.com/Alceujrab/sisloc-sub000/internal/notifier"
	"github.com/Alceujrab/sisloc-sub000/internal/repository"
)

type paymentService struct {
	payments     repository.PaymentRepository
	reservations repository.ReservationRepository
	vehicles     repository.VehicleRepository
	loyalty      LoyaltyService
	checker      *AvailabilityChecker
	gateway      gateway.PaymentGateway
	notify       notifier.Notifier
	cache        PriceCacheService
	currency     string
}

func NewPaymentService(
	payments repository.PaymentRepository,
	reservations repository.ReservationRepository,
	vehicles repository.VehicleRepository,
	loyalty LoyaltyService,
	checker *AvailabilityChecker,
	gw gateway.PaymentGateway,
	notify notifier.Notifier,
	cache PriceCacheService,
	cfg *config.Config,
) PaymentService {
	return &paymentService{
		payments:     payments,
		reservations: reservations,
		vehicles:     vehicles,
		loyalty:      loyalty,
		checker:      checker,
		gateway:      gw,
		notify:       notify,
		cache:        cache,
		currency:     cfg.Stripe.Currency,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, in CreatePaymentInput) (*domain.Payment, error) {
	if in.AmountCents <= 0 {
		return nil, domain.E(domain.KindValidation, "payment amount must be positive")
	}

	rsv, err := s.reservations.GetByID(ctx, in.ReservationID)
	if err != nil {
		return nil, err
	}
	if rsv.UserID != in.UserID {
		return nil, domain.E(domain.KindNotFound, "reservation %d not found", in.ReservationID)
	}
	if rsv.Status != domain.ReservationStatusPending {
		return nil, domain.E(domain.KindValidation, "reservation in status %s does not accept payments", rsv.Status)
	}

	payment := &domain.Payment{
		ReservationID: rsv.ID,
		UserID:        in.UserID,
		AmountCents:   in.AmountCents,
		Method:        in.Method,
		Channel:       in.Channel,
		Status:        domain.PaymentStatusPending,
	}

	if in.Channel == domain.PaymentChannelOnline && s.gateway != nil {
		intentRef, err := s.gateway.CreateIntent(ctx, in.AmountCents, s.currency, map[string]string{
			"reservation_code": rsv.Code,
		})
		if err != nil {
			return nil, domain.Wrap(domain.KindGateway, err, "failed to open payment intent")
		}
		payment.GatewayIntent = intentRef
		payment.Status = domain.PaymentStatusProcessing
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) ConfirmPayment(ctx context.Context, paymentID int32) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	switch payment.Status {
	case domain.PaymentStatusPending, domain.PaymentStatusProcessing:
	default:
		return nil, domain.E(domain.KindIllegalTransition, "payment in status %s cannot be confirmed", payment.Status)
	}

	rsv, err := s.reservations.GetByID(ctx, payment.ReservationID)
	if err != nil {
		return nil, err
	}

	// Confirm the reservation before touching the payment. Two pending
	// reservations on the same vehicle may overlap; the guard makes sure
	// only the first confirmation wins the window.
	wasPending := rsv.Status == domain.ReservationStatusPending
	if wasPending {
		rsv.Status = domain.ReservationStatusConfirmed
		rsv.PaymentState = domain.PaymentStatePaid
		guardStart, guardEnd := s.checker.Widen(rsv.StartDate, rsv.EndDate)
		if err := s.reservations.UpdateWithConflictGuard(ctx, rsv, guardStart, guardEnd); err != nil {
			return nil, err
		}
	}

	payment.Status = domain.PaymentStatusSucceeded
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, err
	}

	if wasPending {
		s.occupyVehicle(ctx, rsv.VehicleID)
		s.emit(ctx, notifier.EventReservationConfirmed, rsv, payment)
	}

	if err := s.loyalty.EarnForPayment(ctx, payment); err != nil {
		logger.ErrorContext(ctx, "Failed to credit loyalty points", "payment_id", payment.ID, "error", err)
	}

	return payment, nil
}

func (s *paymentService) FailPayment(ctx context.Context, paymentID int32) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	switch payment.Status {
	case domain.PaymentStatusPending, domain.PaymentStatusProcessing:
	default:
		return nil, domain.E(domain.KindIllegalTransition, "payment in status %s cannot fail", payment.Status)
	}

	payment.Status = domain.PaymentStatusFailed
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, err
	}

	rsv, err := s.reservations.GetByID(ctx, payment.ReservationID)
	if err == nil && rsv.Status == domain.ReservationStatusPending {
		rsv.PaymentState = domain.PaymentStateFailed
		if err := s.reservations.Update(ctx, rsv); err != nil {
			logger.ErrorContext(ctx, "Failed to record payment failure on reservation", "reservation_id", rsv.ID, "error", err)
		}
	}

	return payment, nil
}

func (s *paymentService) ListForReservation(ctx context.Context, userID, reservationID int32) ([]domain.Payment, error) {
	rsv, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if rsv.UserID != userID {
		return nil, domain.E(domain.KindNotFound, "reservation %d not found", reservationID)
	}
	return s.payments.ListByReservation(ctx, reservationID)
}

// occupyVehicle flips the vehicle to RENTED and invalidates the
// group-minimum cache, which no longer includes it.
func (s *paymentService) occupyVehicle(ctx context.Context, vehicleID int32) {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load vehicle for occupation", "vehicle_id", vehicleID, "error", err)
		return
	}
	vehicle.Status = domain.VehicleStatusRented
	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		logger.ErrorContext(ctx, "Failed to mark vehicle rented", "vehicle_id", vehicleID, "error", err)
		return
	}
	s.cache.Invalidate(ctx)
}

func (s *paymentService) emit(ctx context.Context, event string, rsv *domain.Reservation, payment *domain.Payment) {
	err := s.notify.Notify(ctx, event, map[string]any{
		"reservation_id":   rsv.ID,
		"reservation_code": rsv.Code,
		"user_id":          rsv.UserID,
		"payment_id":       payment.ID,
		"amount_cents":     payment.AmountCents,
		"status":           rsv.Status,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Notification delivery failed", "event", event, "reservation_id", rsv.ID, "error", err)
	}
}
