package models

import "time"

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Payment records a booking's payment attempt.
type Payment struct {
	ID            int64     `json:"id"`
	BookingID     int64     `json:"booking_id"`
	Method        string    `json:"method"`
	AmountCents   int64     `json:"amount_cents"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	Status string
	Method string
	Date   string
}
