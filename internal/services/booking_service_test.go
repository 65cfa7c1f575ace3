package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/realtime"
	"busbooking/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func newBookingService(t *testing.T) (BookingService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	svc := BookingService{
		Trips:         repositories.TripRepo{DB: db},
		Bookings:      repositories.BookingRepo{DB: db},
		Passengers:    repositories.PassengerRepo{DB: db},
		Notifications: repositories.NotificationRepo{DB: db},
		Payments:      repositories.PaymentRepo{DB: db},
		Broker:        realtime.NewBroker(),
	}
	return svc, mock, func() { db.Close() }
}

func expectTripLookup(mock sqlmock.Sqlmock, price int64, seats int) {
	now := time.Now()
	mock.ExpectQuery("SELECT .+ FROM bus_trips WHERE id = \\?").
		WithArgs("trip-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "departure_city", "arrival_city", "departure_time", "arrival_time",
			"price", "available_seats", "created_at", "updated_at",
		}).AddRow("trip-1", "Paris", "Lyon", now.Add(24*time.Hour), now.Add(29*time.Hour), price, seats, now, now))
}

func TestCreateBooking_TotalIsPriceTimesCount(t *testing.T) {
	svc, mock, cleanup := newBookingService(t)
	defer cleanup()

	sub := svc.Broker.Subscribe("bookings")
	defer sub.Close()

	expectTripLookup(mock, 3550, 10)

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(sqlmock.AnyArg(), "trip-1", "user-1", 3, int64(10650), "confirmed", "+33600000000").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO passengers").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO passengers").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO passengers").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), int64(10650), "completed", "card", nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO notifications").WillReturnResult(sqlmock.NewResult(0, 1))

	b, err := svc.Create(context.Background(), "user-1", CreateBookingInput{
		TripID:         "trip-1",
		PassengerCount: 3,
		ContactPhone:   "+33600000000",
		Passengers: []PassengerName{
			{FirstName: "Ana", LastName: "Martin"},
			{FirstName: "Paul", LastName: "Martin"},
			{FirstName: "Zoe", LastName: "Martin"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.TotalPrice != 3*3550 {
		t.Fatalf("total price %d, want %d", b.TotalPrice, 3*3550)
	}
	if b.Status != "confirmed" {
		t.Fatalf("status %q, want confirmed", b.Status)
	}

	select {
	case ev := <-sub.C:
		if ev.RowID != b.ID || ev.Type != realtime.EventInsert {
			t.Fatalf("unexpected event %#v", ev)
		}
	default:
		t.Fatalf("no booking event published")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBooking_RejectsMoreThanAvailableSeats(t *testing.T) {
	svc, mock, cleanup := newBookingService(t)
	defer cleanup()

	expectTripLookup(mock, 2000, 2)

	_, err := svc.Create(context.Background(), "user-1", CreateBookingInput{
		TripID:         "trip-1",
		PassengerCount: 3,
		ContactPhone:   "+33600000000",
		Passengers: []PassengerName{
			{FirstName: "Ana", LastName: "Martin"},
			{FirstName: "Paul", LastName: "Martin"},
			{FirstName: "Zoe", LastName: "Martin"},
		},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	// no INSERT must have been attempted
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBooking_PassengerFailureLeavesBookingRow(t *testing.T) {
	svc, mock, cleanup := newBookingService(t)
	defer cleanup()

	expectTripLookup(mock, 2000, 10)

	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO passengers").WillReturnError(errors.New("db gone"))

	_, err := svc.Create(context.Background(), "user-1", CreateBookingInput{
		TripID:         "trip-1",
		PassengerCount: 1,
		ContactPhone:   "+33600000000",
		Passengers:     []PassengerName{{FirstName: "Ana", LastName: "Martin"}},
	})
	if err == nil {
		t.Fatalf("expected error from passenger insert")
	}
	// the booking INSERT ran and nothing deleted it afterwards
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBooking_ValidatesPassengerList(t *testing.T) {
	svc, _, cleanup := newBookingService(t)
	defer cleanup()

	_, err := svc.Create(context.Background(), "user-1", CreateBookingInput{
		TripID:         "trip-1",
		PassengerCount: 2,
		ContactPhone:   "+33600000000",
		Passengers:     []PassengerName{{FirstName: "Ana", LastName: "Martin"}},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
