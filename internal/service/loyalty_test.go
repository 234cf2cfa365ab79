package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
)

func TestLoyaltyService_Redeem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		ledger := new(MockLoyaltyRepo)
		svc := NewLoyaltyService(ledger, testConfig())
		ledger.On("Balance", ctx, int32(1)).Return(int64(500), nil)
		ledger.On("Append", ctx, mock.MatchedBy(func(a *domain.LoyaltyAdjustment) bool {
			return a.Kind == domain.AdjustmentKindRedeem && a.Points == -200
		})).Return(nil)

		adj, err := svc.Redeem(ctx, 1, 200, "Free day upgrade")
		assert.NoError(t, err)
		assert.Equal(t, int64(-200), adj.Points)
	})

	t.Run("Below Minimum Redemption", func(t *testing.T) {
		ledger := new(MockLoyaltyRepo)
		svc := NewLoyaltyService(ledger, testConfig())

		adj, err := svc.Redeem(ctx, 1, 50, "")
		assert.Error(t, err)
		assert.Nil(t, adj)
		assert.True(t, domain.IsKind(err, domain.KindInsufficientPoints))
		ledger.AssertNotCalled(t, "Append", ctx, mock.Anything)
	})

	t.Run("Insufficient Balance", func(t *testing.T) {
		ledger := new(MockLoyaltyRepo)
		svc := NewLoyaltyService(ledger, testConfig())
		ledger.On("Balance", ctx, int32(1)).Return(int64(150), nil)

		adj, err := svc.Redeem(ctx, 1, 200, "")
		assert.Error(t, err)
		assert.Nil(t, adj)
		assert.True(t, domain.IsKind(err, domain.KindInsufficientPoints))
	})
}

func TestLoyaltyService_Summary(t *testing.T) {
	ctx := context.Background()

	tiers := []struct {
		balance int64
		tier    domain.LoyaltyTier
	}{
		{0, domain.LoyaltyTierAzul},
		{999, domain.LoyaltyTierAzul},
		{1000, domain.LoyaltyTierPrata},
		{4999, domain.LoyaltyTierPrata},
		{5000, domain.LoyaltyTierOuro},
		{19999, domain.LoyaltyTierOuro},
		{20000, domain.LoyaltyTierPlatina},
	}
	for _, tc := range tiers {
		ledger := new(MockLoyaltyRepo)
		svc := NewLoyaltyService(ledger, testConfig())
		ledger.On("Balance", ctx, int32(1)).Return(tc.balance, nil)
		ledger.On("ListByUser", ctx, int32(1), int32(1), int32(10)).Return([]domain.LoyaltyAdjustment{}, int32(0), nil)

		summary, err := svc.Summary(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, tc.tier, summary.Tier, "balance %d", tc.balance)
	}
}

func TestLoyaltyService_EarnForPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("One Point Per Currency Unit", func(t *testing.T) {
		ledger := new(MockLoyaltyRepo)
		svc := NewLoyaltyService(ledger, testConfig())
		ledger.On("Append", ctx, mock.MatchedBy(func(a *domain.LoyaltyAdjustment) bool {
			return a.Kind == domain.AdjustmentKindEarn && a.Points == 382
		})).Return(nil)

		err := svc.EarnForPayment(ctx, &domain.Payment{ID: 5, ReservationID: 3, UserID: 1, AmountCents: 38250})
		assert.NoError(t, err)
		ledger.AssertExpectations(t)
	})

	t.Run("Sub Unit Amounts Earn Nothing", func(t *testing.T) {
		ledger := new(MockLoyaltyRepo)
		svc := NewLoyaltyService(ledger, testConfig())

		err := svc.EarnForPayment(ctx, &domain.Payment{ID: 5, UserID: 1, AmountCents: 99})
		assert.NoError(t, err)
		ledger.AssertNotCalled(t, "Append", ctx, mock.Anything)
	})
}

func TestLoyaltyService_ReverseForPayment(t *testing.T) {
	ctx := context.Background()
	payment := &domain.Payment{ID: 5, ReservationID: 3, UserID: 1, AmountCents: 3000}

	t.Run("Writes Negative Adjustment For Earned Sum", func(t *testing.T) {
		ledger := new(MockLoyaltyRepo)
		svc := NewLoyaltyService(ledger, testConfig())
		ledger.On("HasReversalForPayment", ctx, int32(5)).Return(false, nil)
		ledger.On("SumEarnedByPayment", ctx, int32(5)).Return(int64(30), nil)
		ledger.On("Append", ctx, mock.MatchedBy(func(a *domain.LoyaltyAdjustment) bool {
			return a.Kind == domain.AdjustmentKindManual && a.Points == -30
		})).Return(nil)

		assert.NoError(t, svc.ReverseForPayment(ctx, payment))
		ledger.AssertExpectations(t)
	})

	t.Run("Second Reversal Is A No Op", func(t *testing.T) {
		ledger := new(MockLoyaltyRepo)
		svc := NewLoyaltyService(ledger, testConfig())
		ledger.On("HasReversalForPayment", ctx, int32(5)).Return(true, nil)

		assert.NoError(t, svc.ReverseForPayment(ctx, payment))
		ledger.AssertNotCalled(t, "Append", ctx, mock.Anything)
	})

	t.Run("Nothing Earned Nothing Reversed", func(t *testing.T) {
		ledger := new(MockLoyaltyRepo)
		svc := NewLoyaltyService(ledger, testConfig())
		ledger.On("HasReversalForPayment", ctx, int32(5)).Return(false, nil)
		ledger.On("SumEarnedByPayment", ctx, int32(5)).Return(int64(0), nil)

		assert.NoError(t, svc.ReverseForPayment(ctx, payment))
		ledger.AssertNotCalled(t, "Append", ctx, mock.Anything)
	})
}
