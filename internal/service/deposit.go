package service

import (
	"github.com/Alceujrab/sisloc-sub000/internal/config"
	"github.com/Alceujrab/sisloc-sub000/internal/pricing"
)

// DepositManager computes the pre-authorization amount from policy. The hold
// itself is placed at check-in and resolved at checkout by the reservation
// lifecycle; expiry sweeps are an external collaborator's job.
type DepositManager struct {
	policy config.DepositConfig
}

func NewDepositManager(policy config.DepositConfig) *DepositManager {
	return &DepositManager{policy: policy}
}

// Calculate returns whether a deposit is required for the given total and the
// amount to hold: percent of total clamped to [min, max]. Computed once at
// reservation creation; extensions never recompute it.
func (m *DepositManager) Calculate(totalCents int64) (bool, int64) {
	if !m.policy.RequiredByDefault || totalCents <= 0 {
		return false, 0
	}
	amount := pricing.PercentOf(totalCents, float64(m.policy.Percent))
	return true, pricing.ClampCents(amount, m.policy.MinCents, m.policy.MaxCents)
}

// HoldDays returns how long a placed hold stays valid.
func (m *DepositManager) HoldDays() int {
	return m.policy.HoldDays
}
