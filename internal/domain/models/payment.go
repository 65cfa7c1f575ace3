package models

import "time"

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

const (
	PayByCash     = "cash"
	PayByCard     = "card"
	PayByTransfer = "transfer"
)

func ValidPaymentMethod(m string) bool {
	switch m {
	case PayByCash, PayByCard, PayByTransfer:
		return true
	}
	return false
}

type Payment struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"booking_id"`
	Amount        int64     `json:"amount"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	TransactionID string    `json:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PaymentWithBooking is the admin list row joining the paying booking's
// contact phone and username.
type PaymentWithBooking struct {
	Payment
	ContactPhone string `json:"contact_phone"`
	Username     string `json:"username"`
}
