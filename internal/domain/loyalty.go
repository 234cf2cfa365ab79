package domain

import "time"

type AdjustmentKind string

const (
	AdjustmentKindEarn   AdjustmentKind = "EARN"
	AdjustmentKindRedeem AdjustmentKind = "REDEEM"
	AdjustmentKindExpire AdjustmentKind = "EXPIRE"
	AdjustmentKindManual AdjustmentKind = "MANUAL"
)

// LoyaltyAdjustment is one entry of the append-only point ledger. Points are
// signed: positive for earns, negative for redemptions, expiries and
// reversals. A user's balance is always the sum of their adjustments.
type LoyaltyAdjustment struct {
	ID            int32          `json:"id"`
	UserID        int32          `json:"user_id"`
	Kind          AdjustmentKind `json:"type"`
	Points        int64          `json:"points"`
	ReservationID *int32         `json:"reservation_id,omitempty"`
	PaymentID     *int32         `json:"payment_id,omitempty"`
	Description   string         `json:"description"`
	CreatedOn     time.Time      `json:"created_on"`
}

type LoyaltyTier string

const (
	LoyaltyTierAzul    LoyaltyTier = "AZUL"
	LoyaltyTierPrata   LoyaltyTier = "PRATA"
	LoyaltyTierOuro    LoyaltyTier = "OURO"
	LoyaltyTierPlatina LoyaltyTier = "PLATINA"
)

// TierThresholds holds the minimum balance for each tier above the base.
type TierThresholds struct {
	Prata   int64
	Ouro    int64
	Platina int64
}

// TierForBalance derives the tier from a balance. Tiers are never stored.
func TierForBalance(balance int64, t TierThresholds) LoyaltyTier {
	switch {
	case balance >= t.Platina:
		return LoyaltyTierPlatina
	case balance >= t.Ouro:
		return LoyaltyTierOuro
	case balance >= t.Prata:
		return LoyaltyTierPrata
	default:
		return LoyaltyTierAzul
	}
}

// LoyaltySummary is the derived view returned to customers.
type LoyaltySummary struct {
	UserID  int32               `json:"user_id"`
	Balance int64               `json:"balance"`
	Tier    LoyaltyTier         `json:"tier"`
	Recent  []LoyaltyAdjustment `json:"recent,omitempty"`
}
