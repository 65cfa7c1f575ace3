package handlers

import (
	"net/http"
	"strings"

	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/trips/search?departure=&arrival=&date=&sort=
//
// City filters are case-insensitive partial matches; empty strings match
// everything. A date narrows results to that calendar day. An empty result
// is a 200 with an empty list, never an error.
func (h *Handler) SearchTrips(c *gin.Context) {
	q := repositories.TripSearch{
		Departure: c.Query("departure"),
		Arrival:   c.Query("arrival"),
		Sort:      c.Query("sort"),
	}

	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		day, err := utils.ParseDate(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
			return
		}
		q.Date = &day
	}

	switch q.Sort {
	case "", "departure", "price", "duration":
	default:
		RespondError(c, http.StatusBadRequest, "sort must be one of departure, price, duration", nil)
		return
	}

	trips, err := h.Trips.Search(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// GET /api/trips/:id
func (h *Handler) GetTrip(c *gin.Context) {
	trip, err := h.Trips.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}
