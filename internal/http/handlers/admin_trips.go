package handlers

import (
	"net/http"
	"strings"

	"busbooking/internal/domain/models"
	"busbooking/internal/realtime"

	"github.com/gin-gonic/gin"
)

func validateTripInput(in models.TripInput) (string, bool) {
	switch {
	case strings.TrimSpace(in.DepartureCity) == "":
		return "departure_city is required", false
	case strings.TrimSpace(in.ArrivalCity) == "":
		return "arrival_city is required", false
	case in.DepartureTime.IsZero() || in.ArrivalTime.IsZero():
		return "departure_time and arrival_time are required", false
	case !in.ArrivalTime.After(in.DepartureTime):
		return "arrival_time must be after departure_time", false
	case in.Price < 0:
		return "price must not be negative", false
	case in.AvailableSeats < 0:
		return "available_seats must not be negative", false
	}
	return "", true
}

// GET /api/admin/trips
func (h *Handler) AdminListTrips(c *gin.Context) {
	trips, err := h.Trips.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// POST /api/admin/trips
func (h *Handler) AdminCreateTrip(c *gin.Context) {
	var in models.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if msg, ok := validateTripInput(in); !ok {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	trip, err := h.Trips.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Broker.Publish(realtime.Event{Table: "bus_trips", Type: realtime.EventInsert, RowID: trip.ID})
	c.JSON(http.StatusCreated, trip)
}

// PUT /api/admin/trips/:id
func (h *Handler) AdminUpdateTrip(c *gin.Context) {
	var in models.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if msg, ok := validateTripInput(in); !ok {
		RespondError(c, http.StatusBadRequest, msg, nil)
		return
	}

	id := c.Param("id")
	if err := h.Trips.Update(c.Request.Context(), id, in); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Broker.Publish(realtime.Event{Table: "bus_trips", Type: realtime.EventUpdate, RowID: id})
	c.JSON(http.StatusOK, gin.H{"message": "trip updated"})
}

// DELETE /api/admin/trips/:id
func (h *Handler) AdminDeleteTrip(c *gin.Context) {
	id := c.Param("id")
	if err := h.Trips.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Broker.Publish(realtime.Event{Table: "bus_trips", Type: realtime.EventDelete, RowID: id})
	c.JSON(http.StatusOK, gin.H{"message": "trip deleted"})
}
