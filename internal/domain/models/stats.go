package models

// AdminStats mirrors the dashboard aggregate. Booking counters cover the last
// 30 days; totals cover the whole table.
type AdminStats struct {
	TotalBookings     int     `json:"total_bookings"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	PendingBookings   int     `json:"pending_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	TotalRevenue      int64   `json:"total_revenue"`
	TotalPassengers   int     `json:"total_passengers"`
	TotalUsers        int     `json:"total_users"`
	AdminUsers        int     `json:"admin_users"`
	NewUsersLastWeek  int     `json:"new_users_last_week"`
	TotalReviews      int     `json:"total_reviews"`
	AverageRating     float64 `json:"average_rating"`
	TotalTrips        int     `json:"total_trips"`
	UpcomingTrips     int     `json:"upcoming_trips"`
	SoldOutTrips      int     `json:"sold_out_trips"`
}

type PaymentStats struct {
	TotalRevenue          int64 `json:"total_revenue"`
	PendingAmount         int64 `json:"pending_amount"`
	CompletedAmount       int64 `json:"completed_amount"`
	FailedAmount          int64 `json:"failed_amount"`
	CashPaymentsCount     int   `json:"cash_payments_count"`
	CardPaymentsCount     int   `json:"card_payments_count"`
	TransferPaymentsCount int   `json:"transfer_payments_count"`
}
