package domain

import "time"

type DiscountType string

const (
	DiscountTypePercent DiscountType = "PERCENT"
	DiscountTypeAmount  DiscountType = "AMOUNT"
)

// Coupon is a redeemable discount code. DiscountValue is percent points for
// PERCENT coupons and cents for AMOUNT coupons.
type Coupon struct {
	ID            int32        `json:"id"`
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discount_type"`
	DiscountValue float64      `json:"discount_value"`
	MinDays       *int32       `json:"min_days,omitempty"`
	MaxDays       *int32       `json:"max_days,omitempty"`
	ValidFrom     *time.Time   `json:"valid_from,omitempty"`
	ValidUntil    *time.Time   `json:"valid_until,omitempty"`
	IsPublic      bool         `json:"is_public"`
	IsActive      bool         `json:"is_active"`
	CreatedOn     time.Time    `json:"created_on"`
	UpdatedOn     time.Time    `json:"updated_on"`
}
