package pricing

import (
	"sort"
	"time"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
)

// VehicleScope is the subset of vehicle attributes price rules filter on.
type VehicleScope struct {
	GroupID  *int32
	Location string
}

// DailyRate computes the adjusted rate for one calendar day. Matching rules
// apply cumulatively in priority-descending order (ties by rule id
// ascending): percent rules multiply the running rate, amount rules add a
// flat cent value. The result is clamped to zero and rounded half-up to the
// cent after each multiplicative step.
func DailyRate(baseCents int64, date time.Time, scope VehicleScope, rules []domain.PriceRule) int64 {
	matched := make([]domain.PriceRule, 0, len(rules))
	for _, r := range rules {
		if !r.IsActive {
			continue
		}
		if r.AppliesTo(scope.GroupID, scope.Location, date) {
			matched = append(matched, r)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Priority != matched[j].Priority {
			return matched[i].Priority > matched[j].Priority
		}
		return matched[i].ID < matched[j].ID
	})

	rate := baseCents
	for _, r := range matched {
		switch r.AdjustmentType {
		case domain.AdjustmentTypePercent:
			rate = ApplyPercent(rate, r.AdjustmentValue)
		case domain.AdjustmentTypeAmount:
			rate += RoundHalfUpCents(r.AdjustmentValue)
		}
	}

	if rate < 0 {
		rate = 0
	}
	return rate
}

// RangeSubtotal sums the adjusted rate over every day in [start, end).
// A multi-day stay can carry a different effective rate per day; only the
// aggregate is stored on the reservation.
func RangeSubtotal(baseCents int64, start, end time.Time, scope VehicleScope, rules []domain.PriceRule) int64 {
	var subtotal int64
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		subtotal += DailyRate(baseCents, d, scope, rules)
	}
	return subtotal
}

// DaysBetween counts whole days in [start, end).
func DaysBetween(start, end time.Time) int32 {
	days := int32(0)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}
