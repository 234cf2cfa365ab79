package cache

import (
	"context"
	"time"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
)

// Snapshot is the cached "cheapest available rate per vehicle group" view.
type Snapshot struct {
	Data       []domain.GroupMinimum `json:"data"`
	ComputedAt time.Time             `json:"computed_at"`
}

// GroupMinimumCache stores at most one snapshot. Get returns ok=false on a
// miss (absent or older than the TTL); the caller recomputes and Sets.
// Concurrent readers may observe different snapshots within the TTL window.
type GroupMinimumCache interface {
	Get(ctx context.Context) (*Snapshot, bool, error)
	Set(ctx context.Context, snap *Snapshot) error
	Invalidate(ctx context.Context) error
}
