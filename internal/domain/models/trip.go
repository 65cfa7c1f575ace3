package models

import "time"

// Trip is a scheduled bus departure/arrival pair with price and seat inventory.
// Price is stored in euro cents to keep total computation exact.
type Trip struct {
	ID             string    `json:"id"`
	DepartureCity  string    `json:"departure_city"`
	ArrivalCity    string    `json:"arrival_city"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	Price          int64     `json:"price"`
	AvailableSeats int       `json:"available_seats"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Duration is the scheduled travel time, used as a search sort key.
func (t Trip) Duration() time.Duration {
	return t.ArrivalTime.Sub(t.DepartureTime)
}

// TripInput carries create/update fields for admin trip management.
type TripInput struct {
	DepartureCity  string    `json:"departure_city"`
	ArrivalCity    string    `json:"arrival_city"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	Price          int64     `json:"price"`
	AvailableSeats int       `json:"available_seats"`
}
