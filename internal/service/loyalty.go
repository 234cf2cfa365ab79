package service

import (
	"context"
	"fmt"

	"github.com/Alceujrab/sisloc-sub000/internal/config"
	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/repository"
)

// recentAdjustments is how many ledger entries the summary includes.
const recentAdjustments = 10

type loyaltyService struct {
	ledger        repository.LoyaltyRepository
	minRedemption int64
	thresholds    domain.TierThresholds
}

func NewLoyaltyService(ledger repository.LoyaltyRepository, cfg *config.Config) LoyaltyService {
	return &loyaltyService{
		ledger:        ledger,
		minRedemption: cfg.Loyalty.MinRedemption,
		thresholds: domain.TierThresholds{
			Prata:   cfg.Loyalty.PrataThreshold,
			Ouro:    cfg.Loyalty.OuroThreshold,
			Platina: cfg.Loyalty.PlatinaThreshold,
		},
	}
}

func (s *loyaltyService) Redeem(ctx context.Context, userID int32, points int64, description string) (*domain.LoyaltyAdjustment, error) {
	if points <= 0 {
		return nil, domain.E(domain.KindValidation, "redemption points must be positive")
	}
	if points < s.minRedemption {
		return nil, domain.E(domain.KindInsufficientPoints, "redemption requires at least %d points", s.minRedemption)
	}

	balance, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance < points {
		return nil, domain.E(domain.KindInsufficientPoints, "balance %d is below the requested %d points", balance, points)
	}

	adj := &domain.LoyaltyAdjustment{
		UserID:      userID,
		Kind:        domain.AdjustmentKindRedeem,
		Points:      -points,
		Description: description,
	}
	if err := s.ledger.Append(ctx, adj); err != nil {
		return nil, err
	}
	return adj, nil
}

func (s *loyaltyService) Summary(ctx context.Context, userID int32) (*domain.LoyaltySummary, error) {
	balance, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	recent, _, err := s.ledger.ListByUser(ctx, userID, 1, recentAdjustments)
	if err != nil {
		return nil, err
	}
	return &domain.LoyaltySummary{
		UserID:  userID,
		Balance: balance,
		Tier:    domain.TierForBalance(balance, s.thresholds),
		Recent:  recent,
	}, nil
}

func (s *loyaltyService) EarnForPayment(ctx context.Context, p *domain.Payment) error {
	points := p.AmountCents / 100
	if points <= 0 {
		return nil
	}
	adj := &domain.LoyaltyAdjustment{
		UserID:        p.UserID,
		Kind:          domain.AdjustmentKindEarn,
		Points:        points,
		ReservationID: &p.ReservationID,
		PaymentID:     &p.ID,
		Description:   fmt.Sprintf("Points earned on payment %d", p.ID),
	}
	return s.ledger.Append(ctx, adj)
}

func (s *loyaltyService) ReverseForPayment(ctx context.Context, p *domain.Payment) error {
	done, err := s.ledger.HasReversalForPayment(ctx, p.ID)
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	earned, err := s.ledger.SumEarnedByPayment(ctx, p.ID)
	if err != nil {
		return err
	}
	if earned <= 0 {
		return nil
	}

	adj := &domain.LoyaltyAdjustment{
		UserID:        p.UserID,
		Kind:          domain.AdjustmentKindManual,
		Points:        -earned,
		ReservationID: &p.ReservationID,
		PaymentID:     &p.ID,
		Description:   fmt.Sprintf("Reversal of points earned on refunded payment %d", p.ID),
	}
	return s.ledger.Append(ctx, adj)
}
