package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// TicketService renders a PDF e-ticket for a booking.
type TicketService struct {
	Bookings   repositories.BookingRepo
	Trips      repositories.TripRepo
	Passengers repositories.PassengerRepo
	RequestID  string
	Loader     func(ctx context.Context, bookingID string) (ticketData, error)
}

type ticketPassenger struct {
	FirstName string
	LastName  string
}

type ticketData struct {
	BookingID     string
	Status        string
	ContactPhone  string
	DepartureCity string
	ArrivalCity   string
	Departure     string
	Arrival       string
	TotalPrice    int64
	Passengers    []ticketPassenger
}

func (s TicketService) GenerateETicket(ctx context.Context, bookingID string) ([]byte, string, error) {
	data, err := s.loadTicketData(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "ticket", "generate_eticket", "booking_id="+bookingID)
	return buildETicketPDF(data)
}

func (s TicketService) loadTicketData(ctx context.Context, bookingID string) (ticketData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, bookingID)
	}

	var out ticketData
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return out, err
	}
	trip, err := s.Trips.GetByID(ctx, booking.TripID)
	if err != nil {
		return out, err
	}

	out.BookingID = booking.ID
	out.Status = booking.Status
	out.ContactPhone = booking.ContactPhone
	out.DepartureCity = trip.DepartureCity
	out.ArrivalCity = trip.ArrivalCity
	out.Departure = trip.DepartureTime.Format("2006-01-02 15:04")
	out.Arrival = trip.ArrivalTime.Format("2006-01-02 15:04")
	out.TotalPrice = booking.TotalPrice

	passengers, err := s.Passengers.ListByBooking(ctx, booking.ID)
	if err != nil {
		return out, err
	}
	for _, p := range passengers {
		out.Passengers = append(out.Passengers, ticketPassenger{FirstName: p.FirstName, LastName: p.LastName})
	}
	return out, nil
}

func buildETicketPDF(d ticketData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking     : #%s", shortID(d.BookingID)),
		fmt.Sprintf("Status      : %s", safe(d.Status, "-")),
		fmt.Sprintf("Route       : %s -> %s", safe(d.DepartureCity, "-"), safe(d.ArrivalCity, "-")),
		fmt.Sprintf("Departure   : %s", safe(d.Departure, "-")),
		fmt.Sprintf("Arrival     : %s", safe(d.Arrival, "-")),
		fmt.Sprintf("Contact     : %s", safe(d.ContactPhone, "-")),
		fmt.Sprintf("Total       : %s", utils.FormatEuro(d.TotalPrice)),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Passengers:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for i, p := range d.Passengers {
		pdf.Cell(0, 6, fmt.Sprintf("%d) %s %s", i+1, p.FirstName, p.LastName))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "This e-ticket covers every passenger listed above. Please present it at boarding.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", shortID(d.BookingID))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

// shortID keeps filenames readable; the first uuid segment is enough.
func shortID(id string) string {
	if i := strings.Index(id, "-"); i > 0 {
		return id[:i]
	}
	return id
}
