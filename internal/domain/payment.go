package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusSucceeded  PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
)

type PaymentChannel string

const (
	PaymentChannelOnline PaymentChannel = "ONLINE"
	PaymentChannelManual PaymentChannel = "MANUAL"
)

// Payment records one charge attempt against a reservation. A reservation may
// accumulate several (retries, partials, manual top-ups).
type Payment struct {
	ID            int32          `json:"id"`
	ReservationID int32          `json:"reservation_id"`
	UserID        int32          `json:"user_id"`
	AmountCents   int64          `json:"amount_cents"`
	Method        string         `json:"payment_method"`
	Channel       PaymentChannel `json:"payment_channel"`
	Status        PaymentStatus  `json:"status"`
	RefundCents   int64          `json:"refund_amount_cents"`
	RefundDate    *time.Time     `json:"refund_date,omitempty"`
	GatewayIntent string         `json:"gateway_intent_ref,omitempty"`
	GatewayCharge string         `json:"gateway_charge_ref,omitempty"`
	CreatedOn     time.Time      `json:"created_on"`
	UpdatedOn     time.Time      `json:"updated_on"`
}
