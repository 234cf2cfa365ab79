package service

import (
	"context"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/gateway"
	"github.com/Alceujrab/sisloc-sub000/internal/logger"
	"github.com/Alceujrab/sisloc-sub000/internal/notifier"
	"github.com/Alceujrab/sisloc-sub000/internal/repository"
)

type refundService struct {
	refunds      repository.RefundRepository
	payments     repository.PaymentRepository
	reservations repository.ReservationRepository
	loyalty      LoyaltyService
	gateway      gateway.PaymentGateway
	notify       notifier.Notifier
	clock        Clock
}

func NewRefundService(
	refunds repository.RefundRepository,
	payments repository.PaymentRepository,
	reservations repository.ReservationRepository,
	loyalty LoyaltyService,
	gw gateway.PaymentGateway,
	notify notifier.Notifier,
	clock Clock,
) RefundService {
	return &refundService{
		refunds:      refunds,
		payments:     payments,
		reservations: reservations,
		loyalty:      loyalty,
		gateway:      gw,
		notify:       notify,
		clock:        clock,
	}
}

var refundActionByStatus = map[domain.RefundStatus]domain.RefundAction{
	domain.RefundStatusApproved:  domain.RefundActionApproved,
	domain.RefundStatusRejected:  domain.RefundActionRejected,
	domain.RefundStatusProcessed: domain.RefundActionProcessed,
}

func (s *refundService) CreateRequest(ctx context.Context, in CreateRefundInput) (*domain.RefundRequest, error) {
	if in.Reason == "" {
		return nil, domain.E(domain.KindValidation, "refund reason is required")
	}
	if in.ReservationID == nil && in.PaymentID == nil {
		return nil, domain.E(domain.KindValidation, "a refund request must reference a reservation or a payment")
	}

	if in.ReservationID != nil {
		rsv, err := s.reservations.GetByID(ctx, *in.ReservationID)
		if err != nil {
			return nil, err
		}
		if rsv.UserID != in.UserID {
			return nil, domain.E(domain.KindNotFound, "reservation %d not found", *in.ReservationID)
		}
	}
	if in.PaymentID != nil {
		payment, err := s.payments.GetByID(ctx, *in.PaymentID)
		if err != nil {
			return nil, err
		}
		if payment.UserID != in.UserID {
			return nil, domain.E(domain.KindNotFound, "payment %d not found", *in.PaymentID)
		}
	}

	req := &domain.RefundRequest{
		UserID:        in.UserID,
		ReservationID: in.ReservationID,
		PaymentID:     in.PaymentID,
		Reason:        in.Reason,
		Status:        domain.RefundStatusPending,
	}
	if err := s.refunds.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	audit := &domain.RefundAuditLog{
		RefundRequestID: req.ID,
		ActorUserID:     in.UserID,
		Action:          domain.RefundActionCreated,
		Message:         in.Reason,
	}
	if err := s.refunds.AppendAudit(ctx, audit); err != nil {
		logger.ErrorContext(ctx, "Failed to append refund audit entry", "refund_request_id", req.ID, "error", err)
	}

	return req, nil
}

func (s *refundService) Transition(ctx context.Context, requestID int32, to domain.RefundStatus, actorUserID int32, message string, refundAmountCents *int64) (*domain.RefundRequest, error) {
	req, err := s.refunds.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionRefund(req.Status, to) {
		return nil, domain.E(domain.KindIllegalRefundChange, "refund request cannot move from %s to %s", req.Status, to)
	}
	if refundAmountCents != nil {
		if to != domain.RefundStatusProcessed {
			return nil, domain.E(domain.KindValidation, "refund amount can only be set when processing")
		}
		if *refundAmountCents <= 0 {
			return nil, domain.E(domain.KindValidation, "refund amount must be positive")
		}
		if req.PaymentID != nil {
			payment, err := s.payments.GetByID(ctx, *req.PaymentID)
			if err != nil {
				return nil, err
			}
			if *refundAmountCents > payment.AmountCents {
				return nil, domain.E(domain.KindValidation, "refund amount exceeds the original charge of %d", payment.AmountCents)
			}
		}
	}

	req.Status = to
	if message != "" {
		req.ReplyMessage = message
	}
	if err := s.refunds.UpdateRequest(ctx, req); err != nil {
		return nil, err
	}

	audit := &domain.RefundAuditLog{
		RefundRequestID: req.ID,
		ActorUserID:     actorUserID,
		Action:          refundActionByStatus[to],
		Message:         message,
	}
	if err := s.refunds.AppendAudit(ctx, audit); err != nil {
		logger.ErrorContext(ctx, "Failed to append refund audit entry", "refund_request_id", req.ID, "error", err)
	}

	if to == domain.RefundStatusProcessed {
		s.settle(ctx, req, refundAmountCents)
	}

	err = s.notify.Notify(ctx, notifier.EventRefundTransitioned, map[string]any{
		"refund_request_id": req.ID,
		"user_id":           req.UserID,
		"status":            req.Status,
		"actor_user_id":     actorUserID,
	})
	if err != nil {
		logger.ErrorContext(ctx, "Notification delivery failed", "event", notifier.EventRefundTransitioned, "refund_request_id", req.ID, "error", err)
	}

	return req, nil
}

// settle performs the money and ledger side effects of a processed refund.
// The administrative record has already transitioned; a gateway outage here
// is logged and retried by hand, it never rolls the request back.
func (s *refundService) settle(ctx context.Context, req *domain.RefundRequest, refundAmountCents *int64) {
	if req.PaymentID == nil {
		return
	}
	payment, err := s.payments.GetByID(ctx, *req.PaymentID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load payment for refund settlement", "payment_id", *req.PaymentID, "error", err)
		return
	}
	if payment.Status != domain.PaymentStatusSucceeded {
		logger.Warn("Skipping refund settlement for non-succeeded payment", "payment_id", payment.ID, "status", payment.Status)
		return
	}

	now := s.clock.Now()
	payment.Status = domain.PaymentStatusRefunded
	switch {
	case refundAmountCents != nil:
		payment.RefundCents = *refundAmountCents
	case payment.RefundCents == 0:
		payment.RefundCents = payment.AmountCents
	}
	payment.RefundDate = &now
	if err := s.payments.Update(ctx, payment); err != nil {
		logger.ErrorContext(ctx, "Failed to mark payment refunded", "payment_id", payment.ID, "error", err)
		return
	}

	if s.gateway != nil && payment.GatewayIntent != "" {
		if err := s.gateway.Refund(ctx, payment.GatewayIntent, payment.RefundCents); err != nil {
			logger.ErrorContext(ctx, "Gateway refund failed, requires manual settlement", "payment_id", payment.ID, "intent_ref", payment.GatewayIntent, "error", err)
		}
	}

	if err := s.loyalty.ReverseForPayment(ctx, payment); err != nil {
		logger.ErrorContext(ctx, "Failed to reverse loyalty points", "payment_id", payment.ID, "error", err)
	}
}

func (s *refundService) ListByUser(ctx context.Context, userID, page, pageSize int32) ([]domain.RefundRequest, int32, error) {
	return s.refunds.ListRequestsByUser(ctx, userID, page, pageSize)
}

func (s *refundService) ListByStatus(ctx context.Context, status domain.RefundStatus, page, pageSize int32) ([]domain.RefundRequest, int32, error) {
	return s.refunds.ListRequestsByStatus(ctx, status, page, pageSize)
}

func (s *refundService) Audit(ctx context.Context, requestID int32) ([]domain.RefundAuditLog, error) {
	return s.refunds.ListAudit(ctx, requestID)
}
