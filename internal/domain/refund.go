package domain

import "time"

type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "PENDING"
	RefundStatusApproved  RefundStatus = "APPROVED"
	RefundStatusRejected  RefundStatus = "REJECTED"
	RefundStatusProcessed RefundStatus = "PROCESSED"
)

// refundTransitions is the legal state graph. REJECTED and PROCESSED are
// terminal.
var refundTransitions = map[RefundStatus][]RefundStatus{
	RefundStatusPending:  {RefundStatusApproved, RefundStatusRejected},
	RefundStatusApproved: {RefundStatusProcessed},
}

// CanTransitionRefund reports whether from → to is a legal refund transition.
func CanTransitionRefund(from, to RefundStatus) bool {
	for _, next := range refundTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RefundRequest is a customer-initiated request; only admins transition it.
type RefundRequest struct {
	ID            int32        `json:"id"`
	UserID        int32        `json:"user_id"`
	ReservationID *int32       `json:"reservation_id,omitempty"`
	PaymentID     *int32       `json:"payment_id,omitempty"`
	Reason        string       `json:"reason"`
	Status        RefundStatus `json:"status"`
	ReplyMessage  string       `json:"reply_message,omitempty"`
	CreatedOn     time.Time    `json:"created_on"`
	UpdatedOn     time.Time    `json:"updated_on"`
}

type RefundAction string

const (
	RefundActionCreated   RefundAction = "CREATED"
	RefundActionApproved  RefundAction = "APPROVED"
	RefundActionRejected  RefundAction = "REJECTED"
	RefundActionProcessed RefundAction = "PROCESSED"
)

// RefundAuditLog is append-only: one row per transition, never updated.
type RefundAuditLog struct {
	ID              int32        `json:"id"`
	RefundRequestID int32        `json:"refund_request_id"`
	ActorUserID     int32        `json:"actor_user_id"`
	Action          RefundAction `json:"action"`
	Message         string       `json:"message"`
	CreatedOn       time.Time    `json:"created_on"`
}
