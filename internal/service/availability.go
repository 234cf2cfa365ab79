package service

import (
	"context"
	"time"

	"github.com/Alceujrab/sisloc-sub000/internal/domain"
	"github.com/Alceujrab/sisloc-sub000/internal/repository"
)

// AvailabilityChecker decides whether a vehicle is free over a date range.
// The turnaround buffer pads both sides of the requested window to leave
// prep and inspection time between back-to-back bookings.
type AvailabilityChecker struct {
	reservations repository.ReservationRepository
	buffer       time.Duration
}

func NewAvailabilityChecker(reservations repository.ReservationRepository, bufferHours int) *AvailabilityChecker {
	return &AvailabilityChecker{
		reservations: reservations,
		buffer:       time.Duration(bufferHours) * time.Hour,
	}
}

// Widen returns [start, end) padded by the buffer on both ends.
func (c *AvailabilityChecker) Widen(start, end time.Time) (time.Time, time.Time) {
	return start.Add(-c.buffer), end.Add(c.buffer)
}

// Check reports whether the vehicle is free over [start, end) and returns
// the conflicting windows when it is not. Pure read, no side effects;
// vehicle existence is the caller's concern.
func (c *AvailabilityChecker) Check(ctx context.Context, vehicleID int32, start, end time.Time) (bool, []domain.Window, error) {
	widenedStart, widenedEnd := c.Widen(start, end)
	conflicts, err := c.reservations.ListConflicting(ctx, vehicleID, widenedStart, widenedEnd)
	if err != nil {
		return false, nil, err
	}
	return len(conflicts) == 0, conflicts, nil
}
