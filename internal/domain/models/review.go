package models

import "time"

type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TripID    string    `json:"trip_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewWithContext is the admin list row: review plus reviewer username and
// the reviewed route.
type ReviewWithContext struct {
	Review
	Username      string `json:"username"`
	DepartureCity string `json:"departure_city"`
	ArrivalCity   string `json:"arrival_city"`
}
