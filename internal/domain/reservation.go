package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusActive    ReservationStatus = "ACTIVE"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

type PaymentState string

const (
	PaymentStatePending  PaymentState = "PENDING"
	PaymentStatePaid     PaymentState = "PAID"
	PaymentStatePartial  PaymentState = "PARTIAL"
	PaymentStateRefunded PaymentState = "REFUNDED"
	PaymentStateFailed   PaymentState = "FAILED"
)

type PreauthStatus string

const (
	PreauthStatusNone     PreauthStatus = "NONE"
	PreauthStatusHeld     PreauthStatus = "HELD"
	PreauthStatusReleased PreauthStatus = "RELEASED"
	PreauthStatusCaptured PreauthStatus = "CAPTURED"
	PreauthStatusExpired  PreauthStatus = "EXPIRED"
	PreauthStatusFailed   PreauthStatus = "FAILED"
)

// ReservationExtra is a booked add-on, snapshotted from the extras catalog at
// creation time.
type ReservationExtra struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DailyPriceCents int64  `json:"daily_price_cents"`
	TotalCents      int64  `json:"total_cents"`
}

// Reservation is the financial record of a booking. Money fields are
// snapshots taken at creation (or extension) time; later rate or rule edits
// never reprice billed days.
type Reservation struct {
	ID              int32             `json:"id"`
	Code            string            `json:"reservation_code"`
	UserID          int32             `json:"user_id"`
	VehicleID       int32             `json:"vehicle_id"`
	StartDate       time.Time         `json:"start_date"`
	EndDate         time.Time         `json:"end_date"`
	DaysCount       int32             `json:"days_count"`
	DailyRateCents  int64             `json:"daily_rate_cents"`
	InsuranceDaily  int64             `json:"insurance_daily_cents"`
	Extras          []ReservationExtra `json:"extras,omitempty"`
	ExtrasTotal     int64             `json:"extras_total_cents"`
	Subtotal        int64             `json:"subtotal_cents"`
	InsuranceTotal  int64             `json:"insurance_total_cents"`
	CouponCode      string            `json:"coupon_code,omitempty"`
	DiscountAmount  int64             `json:"discount_amount_cents"`
	TotalAmount     int64             `json:"total_amount_cents"`
	PaymentState    PaymentState      `json:"payment_status"`
	Status          ReservationStatus `json:"status"`
	CheckinDate     *time.Time        `json:"checkin_date,omitempty"`
	CheckoutDate    *time.Time        `json:"checkout_date,omitempty"`
	DepositRequired bool              `json:"deposit_required"`
	DepositAmount   int64             `json:"deposit_amount_cents"`
	PreauthStatus   PreauthStatus     `json:"preauth_status"`
	PreauthExpires  *time.Time        `json:"preauth_expires_at,omitempty"`
	PreauthRef      string            `json:"preauth_reference,omitempty"`
	CreatedOn       time.Time         `json:"created_on"`
	UpdatedOn       time.Time         `json:"updated_on"`
}

// Window is a reservation's occupied date range, returned to callers when a
// requested booking conflicts.
type Window struct {
	ReservationID int32     `json:"reservation_id"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
}

// Overlaps reports whether [w.Start, w.End) intersects [start, end).
func (w Window) Overlaps(start, end time.Time) bool {
	return w.Start.Before(end) && w.End.After(start)
}

// Review is the single post-completion rating a renter may leave.
type Review struct {
	ID            int32     `json:"id"`
	ReservationID int32     `json:"reservation_id"`
	UserID        int32     `json:"user_id"`
	Rating        int32     `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedOn     time.Time `json:"created_on"`
}
