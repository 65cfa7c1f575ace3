package models

import "time"

const (
	BookingConfirmed = "confirmed"
	BookingPending   = "pending"
	BookingCancelled = "cancelled"
)

// ValidBookingStatus reports whether s is one of the known booking states.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingConfirmed, BookingPending, BookingCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID             string    `json:"id"`
	TripID         string    `json:"trip_id"`
	UserID         string    `json:"user_id"`
	PassengerCount int       `json:"passenger_count"`
	TotalPrice     int64     `json:"total_price"`
	Status         string    `json:"status"`
	ContactPhone   string    `json:"contact_phone"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BookingWithTrip is the booking-history / admin-list row: the booking plus
// the joined route summary and, for admin screens, the booker's username.
type BookingWithTrip struct {
	Booking
	DepartureCity string    `json:"departure_city"`
	ArrivalCity   string    `json:"arrival_city"`
	DepartureTime time.Time `json:"departure_time"`
	Username      string    `json:"username,omitempty"`
}

type Passenger struct {
	ID        string    `json:"id"`
	BookingID string    `json:"booking_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}
