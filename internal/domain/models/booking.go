package models

import "time"

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Booking is a customer's reservation of seats on a route for a date/time.
type Booking struct {
	ID             int64     `json:"id"`
	Reference      string    `json:"reference"`
	RouteID        int64     `json:"route_id"`
	VesselID       int64     `json:"vessel_id"`
	UserID         int64     `json:"user_id"`
	TravelDate     string    `json:"travel_date"`
	DepartureTime  string    `json:"departure_time"`
	Passengers     int       `json:"passengers"`
	TotalCents     int64     `json:"total_cents"`
	Status         string    `json:"status"`
	SpecialRequest string    `json:"special_requirements,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Route   *Route   `json:"route,omitempty"`
	Payment *Payment `json:"payment,omitempty"`
	Refund  *Refund  `json:"refund,omitempty"`
}

// CreateBookingInput is the validated creation payload.
type CreateBookingInput struct {
	RouteID        int64  `json:"route_id"`
	TravelDate     string `json:"travel_date"`
	DepartureTime  string `json:"departure_time"`
	Passengers     int    `json:"passengers"`
	SpecialRequest string `json:"special_requirements"`
	PaymentMethod  string `json:"payment_method"`
}

// BookingFilter narrows booking listings.
type BookingFilter struct {
	UserID     int64
	RouteID    int64
	Status     string
	TravelDate string
}

// CapacityResult is a read-only view of remaining seats for a
// route/date/time combination and a requested passenger count.
type CapacityResult struct {
	VesselCapacity int  `json:"vessel_capacity"`
	BookedSeats    int  `json:"booked_seats"`
	AvailableSeats int  `json:"available_seats"`
	Available      bool `json:"available"`
}
