package services

import (
	"context"
	"fmt"
	"strings"

	"busbooking/internal/domain"
	"busbooking/internal/domain/models"
	"busbooking/internal/realtime"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"github.com/google/uuid"
)

// BookingService creates a booking and its passenger rows. The two writes are
// sequential and not wrapped in a transaction: a failure after the booking
// insert leaves the booking behind, matching the behavior this service
// replaces. Callers see the error and may retry manually.
type BookingService struct {
	Trips         repositories.TripRepo
	Bookings      repositories.BookingRepo
	Passengers    repositories.PassengerRepo
	Notifications repositories.NotificationRepo
	Payments      repositories.PaymentRepo
	Broker        *realtime.Broker
	RequestID     string
}

type PassengerName struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CreateBookingInput struct {
	TripID         string          `json:"trip_id"`
	PassengerCount int             `json:"passenger_count"`
	ContactPhone   string          `json:"contact_phone"`
	PaymentMethod  string          `json:"payment_method"`
	Passengers     []PassengerName `json:"passengers"`
}

func (s BookingService) Create(ctx context.Context, userID string, in CreateBookingInput) (models.Booking, error) {
	if strings.TrimSpace(in.ContactPhone) == "" {
		return models.Booking{}, domain.ValidationError{Field: "contact_phone", Msg: "required"}
	}
	if in.PassengerCount < 1 {
		return models.Booking{}, domain.ValidationError{Field: "passenger_count", Msg: "must be at least 1"}
	}
	if len(in.Passengers) != in.PassengerCount {
		return models.Booking{}, domain.ValidationError{Field: "passengers", Msg: "one entry per passenger required"}
	}
	for _, p := range in.Passengers {
		if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
			return models.Booking{}, domain.ValidationError{Field: "passengers", Msg: "first and last name required"}
		}
	}
	if in.PaymentMethod == "" {
		in.PaymentMethod = models.PayByCard
	}
	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return models.Booking{}, domain.ValidationError{Field: "payment_method", Msg: "must be one of cash, card, transfer"}
	}

	trip, err := s.Trips.GetByID(ctx, in.TripID)
	if err != nil {
		return models.Booking{}, err
	}
	if in.PassengerCount > trip.AvailableSeats {
		return models.Booking{}, domain.ValidationError{
			Field: "passenger_count",
			Msg:   fmt.Sprintf("only %d seats available", trip.AvailableSeats),
		}
	}

	booking := models.Booking{
		ID:             uuid.NewString(),
		TripID:         trip.ID,
		UserID:         userID,
		PassengerCount: in.PassengerCount,
		TotalPrice:     trip.Price * int64(in.PassengerCount),
		Status:         models.BookingConfirmed,
		ContactPhone:   strings.TrimSpace(in.ContactPhone),
	}

	if err := s.Bookings.Insert(ctx, booking); err != nil {
		return models.Booking{}, err
	}
	s.publish(realtime.Event{Table: "bookings", Type: realtime.EventInsert, RowID: booking.ID, UserID: userID})

	for _, p := range in.Passengers {
		row, err := s.Passengers.Insert(ctx, booking.ID, strings.TrimSpace(p.FirstName), strings.TrimSpace(p.LastName))
		if err != nil {
			// no compensation: the booking row stays, the caller sees the error
			return models.Booking{}, fmt.Errorf("save passengers: %w", err)
		}
		s.publish(realtime.Event{Table: "passengers", Type: realtime.EventInsert, RowID: row.ID})
	}

	s.recordPayment(ctx, booking, in.PaymentMethod)
	s.notifyBooked(ctx, userID, trip)

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("booking_id=%s trip_id=%s passengers=%d total=%s",
			booking.ID, trip.ID, booking.PassengerCount, utils.FormatEuro(booking.TotalPrice)))
	return booking, nil
}

// recordPayment writes the payment row for a confirmed booking. The charge
// happens at booking time, so the row lands as completed. Failures are logged,
// never fatal to the booking.
func (s BookingService) recordPayment(ctx context.Context, b models.Booking, method string) {
	p := models.Payment{
		BookingID:     b.ID,
		Amount:        b.TotalPrice,
		Status:        models.PaymentCompleted,
		PaymentMethod: method,
	}
	saved, err := s.Payments.Insert(ctx, p)
	if err != nil {
		utils.LogEvent(s.RequestID, "booking", "payment", "payment insert failed: "+err.Error())
		return
	}
	s.publish(realtime.Event{Table: "payments", Type: realtime.EventInsert, RowID: saved.ID, UserID: b.UserID})
}

// notifyBooked drops a booking notification for the traveler. Failures are
// logged, never fatal to the booking.
func (s BookingService) notifyBooked(ctx context.Context, userID string, trip models.Trip) {
	n := models.Notification{
		UserID:  userID,
		Title:   "Booking confirmed",
		Message: fmt.Sprintf("Your trip %s to %s on %s is confirmed.", trip.DepartureCity, trip.ArrivalCity, utils.FormatDate(trip.DepartureTime)),
		Type:    models.NotificationBooking,
	}
	saved, err := s.Notifications.Insert(ctx, n)
	if err != nil {
		utils.LogEvent(s.RequestID, "booking", "notify", "notification insert failed: "+err.Error())
		return
	}
	s.publish(realtime.Event{Table: "notifications", Type: realtime.EventInsert, RowID: saved.ID, UserID: userID})
}

func (s BookingService) publish(ev realtime.Event) {
	if s.Broker != nil {
		s.Broker.Publish(ev)
	}
}
