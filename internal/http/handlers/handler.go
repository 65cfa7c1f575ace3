package handlers

import (
	"database/sql"
	"net/http"

	"busbooking/internal/config"
	"busbooking/internal/http/middleware"
	"busbooking/internal/realtime"
	"busbooking/internal/repositories"
	"busbooking/internal/services"

	"busbooking/internal/domain"

	"github.com/gin-gonic/gin"
)

// Handler bundles the injected dependencies for every route. Constructed once
// in main; per-request services are derived from it so log lines carry the
// request id.
type Handler struct {
	DB  *sql.DB
	Env config.Env

	Users         repositories.UserRepo
	Profiles      repositories.ProfileRepo
	Trips         repositories.TripRepo
	Bookings      repositories.BookingRepo
	Passengers    repositories.PassengerRepo
	Reviews       repositories.ReviewRepo
	Notifications repositories.NotificationRepo
	Companies     repositories.CompanyRepo
	Payments      repositories.PaymentRepo

	Stats  *services.StatsService
	Broker *realtime.Broker
}

func (h *Handler) bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Trips:         h.Trips,
		Bookings:      h.Bookings,
		Passengers:    h.Passengers,
		Notifications: h.Notifications,
		Payments:      h.Payments,
		Broker:        h.Broker,
		RequestID:     middleware.GetRequestID(c),
	}
}

func (h *Handler) ticketService(c *gin.Context) services.TicketService {
	return services.TicketService{
		Bookings:   h.Bookings,
		Trips:      h.Trips,
		Passengers: h.Passengers,
		RequestID:  middleware.GetRequestID(c),
	}
}

// RespondError sends the standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"error":      message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["details"] = err.Error()
	}
	c.JSON(status, payload)
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error(), nil)
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, err.Error(), nil)
	case domain.IsUnauthorized(err):
		RespondError(c, http.StatusForbidden, err.Error(), nil)
	default:
		RespondError(c, http.StatusInternalServerError, "something went wrong", err)
	}
}

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
