package handlers

import (
	"net/http"
	"strings"

	"busbooking/internal/domain/models"
	"busbooking/internal/realtime"
	"busbooking/internal/repositories"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/bookings?status=&date=
func (h *Handler) AdminListBookings(c *gin.Context) {
	f := repositories.BookingFilter{Status: c.Query("status")}

	if f.Status != "" && !models.ValidBookingStatus(f.Status) {
		RespondError(c, http.StatusBadRequest, "status must be confirmed, pending or cancelled", nil)
		return
	}
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		day, err := utils.ParseDate(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "date must be YYYY-MM-DD", nil)
			return
		}
		f.Day = &day
	}

	bookings, err := h.Bookings.ListAdmin(c.Request.Context(), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

type updateBookingStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/admin/bookings/:id/status
func (h *Handler) AdminUpdateBookingStatus(c *gin.Context) {
	var req updateBookingStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !models.ValidBookingStatus(req.Status) {
		RespondError(c, http.StatusBadRequest, "status must be confirmed, pending or cancelled", nil)
		return
	}

	id := c.Param("id")
	if err := h.Bookings.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Broker.Publish(realtime.Event{Table: "bookings", Type: realtime.EventUpdate, RowID: id})
	c.JSON(http.StatusOK, gin.H{"message": "booking status updated"})
}
