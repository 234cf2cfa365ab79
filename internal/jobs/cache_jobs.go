package jobs

import (
	"context"

	"github.com/Alceujrab/sisloc-sub000/internal/logger"
)

// WarmGroupMinimums recomputes the group-minimum price snapshot so the first
// morning read does not pay the recompute.
func (jr *JobRunner) WarmGroupMinimums() {
	jr.runWithRecovery("WarmGroupMinimums", func() {
		ctx := context.Background()
		if err := jr.services.PriceCache.Refresh(ctx); err != nil {
			logger.Error("Failed to warm group-minimum cache", "error", err)
			return
		}
		logger.Info("Group-minimum cache warmed")
	})
}
