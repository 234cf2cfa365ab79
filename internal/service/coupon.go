package service

import (
	"context"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/pricing"
	"github.com/Alceujrab/sisloc-sub000/internal/repository"
)

// CouponResolver validates a code against its time window and day-count
// constraints and computes a discount bounded by the base amount.
type CouponResolver struct {
	coupons repository.CouponRepository
	clock   Clock
}

func NewCouponResolver(coupons repository.CouponRepository, clock Clock) *CouponResolver {
	return &CouponResolver{coupons: coupons, clock: clock}
}

// Resolve returns the discount in cents for the given code. An empty code is
// the valid "no discount" path, not an error.
func (r *CouponResolver) Resolve(ctx context.Context, code string, daysCount int32, baseCents int64) (int64, error) {
	if code == "" {
		return 0, nil
	}

	coupon, err := r.coupons.GetByCode(ctx, code)
	if err != nil {
		return 0, err
	}
	if !coupon.IsActive {
		return 0, domain.E(domain.KindInvalidCoupon, "coupon %q is no longer active", code)
	}

	now := r.clock.Now()
	if coupon.ValidFrom != nil && now.Before(*coupon.ValidFrom) {
		return 0, domain.E(domain.KindInvalidCoupon, "coupon %q is not yet valid", code)
	}
	if coupon.ValidUntil != nil && now.After(*coupon.ValidUntil) {
		return 0, domain.E(domain.KindInvalidCoupon, "coupon %q has expired", code)
	}

	if coupon.MinDays != nil && daysCount < *coupon.MinDays {
		return 0, domain.E(domain.KindCouponConstraint, "coupon %q requires at least %d days", code, *coupon.MinDays)
	}
	if coupon.MaxDays != nil && daysCount > *coupon.MaxDays {
		return 0, domain.E(domain.KindCouponConstraint, "coupon %q allows at most %d days", code, *coupon.MaxDays)
	}

	var discount int64
	switch coupon.DiscountType {
	case domain.DiscountTypePercent:
		discount = pricing.PercentOf(baseCents, coupon.DiscountValue)
	case domain.DiscountTypeAmount:
		discount = pricing.RoundHalfUpCents(coupon.DiscountValue)
	}

	return pricing.ClampCents(discount, 0, baseCents), nil
}
