package notifier

import "context"

// Notifier delivers reservation lifecycle events to the outside world. The
// contract is fire-and-forget: callers log a returned error and continue,
// never propagate it.
type Notifier interface {
	Notify(ctx context.Context, event string, payload map[string]any) error
}

// Event names emitted by the engine.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCheckedIn = "reservation.checked_in"
	EventReservationCompleted = "reservation.completed"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationExtended  = "reservation.extended"
	EventRefundTransitioned   = "refund.transitioned"
)
