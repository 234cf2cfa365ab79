package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weekendRule(id int32, percent float64) domain.PriceRule {
	return domain.PriceRule{
		ID:              id,
		Name:            "Weekend uplift",
		Weekdays:        []time.Weekday{time.Saturday, time.Sunday},
		AdjustmentType:  domain.AdjustmentTypePercent,
		AdjustmentValue: percent,
		IsActive:        true,
	}
}

func TestDailyRate(t *testing.T) {
	scope := VehicleScope{Location: "GRU"}

	t.Run("No Matching Rules", func(t *testing.T) {
		rate := DailyRate(10000, day(2026, time.June, 5), scope, nil)
		assert.Equal(t, int64(10000), rate)
	})

	t.Run("Percent Rule On Matching Weekday", func(t *testing.T) {
		rules := []domain.PriceRule{weekendRule(1, 10)}
		// 2026-06-06 is a Saturday
		assert.Equal(t, int64(11000), DailyRate(10000, day(2026, time.June, 6), scope, rules))
		// 2026-06-05 is a Friday, rule does not match
		assert.Equal(t, int64(10000), DailyRate(10000, day(2026, time.June, 5), scope, rules))
	})

	t.Run("Amount Rule", func(t *testing.T) {
		rules := []domain.PriceRule{{
			ID:              2,
			AdjustmentType:  domain.AdjustmentTypeAmount,
			AdjustmentValue: -1500,
			IsActive:        true,
		}}
		assert.Equal(t, int64(8500), DailyRate(10000, day(2026, time.June, 5), scope, rules))
	})

	t.Run("Inactive Rule Is Skipped", func(t *testing.T) {
		rule := weekendRule(1, 10)
		rule.IsActive = false
		assert.Equal(t, int64(10000), DailyRate(10000, day(2026, time.June, 6), scope, []domain.PriceRule{rule}))
	})

	t.Run("Rules Compound In Priority Order", func(t *testing.T) {
		high := domain.PriceRule{
			ID:              1,
			AdjustmentType:  domain.AdjustmentTypePercent,
			AdjustmentValue: 50,
			Priority:        10,
			IsActive:        true,
		}
		low := domain.PriceRule{
			ID:              2,
			AdjustmentType:  domain.AdjustmentTypeAmount,
			AdjustmentValue: 1000,
			Priority:        1,
			IsActive:        true,
		}
		// 10000 * 1.5 = 15000, then +1000 = 16000. The amount rule is not
		// scaled because it applies after the percent rule.
		assert.Equal(t, int64(16000), DailyRate(10000, day(2026, time.June, 5), scope, []domain.PriceRule{low, high}))
	})

	t.Run("Group Scoped Rule", func(t *testing.T) {
		groupA := int32(1)
		groupB := int32(2)
		rule := domain.PriceRule{
			ID:              3,
			GroupID:         &groupA,
			AdjustmentType:  domain.AdjustmentTypePercent,
			AdjustmentValue: 20,
			IsActive:        true,
		}
		rules := []domain.PriceRule{rule}
		assert.Equal(t, int64(12000), DailyRate(10000, day(2026, time.June, 5), VehicleScope{GroupID: &groupA}, rules))
		assert.Equal(t, int64(10000), DailyRate(10000, day(2026, time.June, 5), VehicleScope{GroupID: &groupB}, rules))
		assert.Equal(t, int64(10000), DailyRate(10000, day(2026, time.June, 5), VehicleScope{}, rules))
	})

	t.Run("Never Negative", func(t *testing.T) {
		rules := []domain.PriceRule{{
			ID:              4,
			AdjustmentType:  domain.AdjustmentTypeAmount,
			AdjustmentValue: -99999,
			IsActive:        true,
		}}
		assert.Equal(t, int64(0), DailyRate(10000, day(2026, time.June, 5), scope, rules))
	})
}

func TestRangeSubtotal(t *testing.T) {
	scope := VehicleScope{}

	t.Run("Weekend Uplift Across Stay", func(t *testing.T) {
		// Friday 2026-06-05 through Monday 2026-06-08 exclusive: Fri at the
		// base rate, Sat and Sun at +10%.
		rules := []domain.PriceRule{weekendRule(1, 10)}
		subtotal := RangeSubtotal(10000, day(2026, time.June, 5), day(2026, time.June, 8), scope, rules)
		assert.Equal(t, int64(32000), subtotal)
	})

	t.Run("Flat Rate", func(t *testing.T) {
		subtotal := RangeSubtotal(10000, day(2026, time.June, 1), day(2026, time.June, 4), scope, nil)
		assert.Equal(t, int64(30000), subtotal)
	})
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, int32(3), DaysBetween(day(2026, time.June, 5), day(2026, time.June, 8)))
	assert.Equal(t, int32(1), DaysBetween(day(2026, time.June, 5), day(2026, time.June, 6)))
	assert.Equal(t, int32(0), DaysBetween(day(2026, time.June, 5), day(2026, time.June, 5)))
}
