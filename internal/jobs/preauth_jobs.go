package jobs

import (
	"context"

	"github.com/Alceujrab/sisloc-sub000/internal/logger"
)

// SweepExpiredHolds moves deposit pre-authorizations that are HELD past
// their expiry timestamp to EXPIRED.
func (jr *JobRunner) SweepExpiredHolds() {
	jr.runWithRecovery("SweepExpiredHolds", func() {
		ctx := context.Background()
		now := jr.clock.Now()

		expired, err := jr.store.ReservationRepository.ListExpiredHolds(ctx, now)
		if err != nil {
			logger.Error("Failed to list expired deposit holds", "error", err)
			return
		}

		count := 0
		for _, rsv := range expired {
			if err := jr.services.Reservation.ExpireHold(ctx, rsv.ID); err != nil {
				logger.Error("Failed to expire deposit hold", "reservation_id", rsv.ID, "error", err)
				continue
			}
			count++
		}

		logger.Info("Expired deposit holds", "count", count, "candidates", len(expired))
	})
}
