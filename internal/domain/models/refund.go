package models

import "time"

// Refund statuses.
const (
	RefundPending   = "pending"
	RefundApproved  = "approved"
	RefundRejected  = "rejected"
	RefundProcessed = "processed"
)

// Refund actions accepted by the processing endpoint.
const (
	RefundActionApprove = "approve"
	RefundActionReject  = "reject"
	RefundActionProcess = "process"
)

// Refund is a post-cancellation monetary reversal tied to a booking's payment.
type Refund struct {
	ID          int64      `json:"id"`
	BookingID   int64      `json:"booking_id"`
	PaymentID   int64      `json:"payment_id"`
	AmountCents int64      `json:"amount_cents"`
	Reason      string     `json:"reason"`
	Status      string     `json:"status"`
	AdminNotes  string     `json:"admin_notes,omitempty"`
	RequestedAt time.Time  `json:"requested_at"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

// RefundFilter narrows refund listings.
type RefundFilter struct {
	UserID int64
	Status string
}
