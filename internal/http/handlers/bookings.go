package handlers

import (
	"fmt"
	"net/http"

	"busbooking/internal/http/middleware"
	"busbooking/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var in services.CreateBookingInput
	if !BindJSONOrError(c, &in) {
		return
	}

	booking, err := h.bookingService(c).Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GET /api/bookings (the caller's booking history)
func (h *Handler) ListMyBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GET /api/bookings/:id/e-ticket (PDF, owner or admin only)
func (h *Handler) GetBookingETicket(c *gin.Context) {
	ctx := c.Request.Context()
	booking, err := h.Bookings.GetByID(ctx, c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if booking.UserID != middleware.UserID(c) {
		// admin status comes from the profiles row, not the token claim,
		// so a demoted admin loses cross-user access immediately
		isAdmin, err := h.Profiles.IsAdmin(ctx, middleware.UserID(c))
		if err != nil || !isAdmin {
			RespondError(c, http.StatusForbidden, "not your booking", nil)
			return
		}
	}

	pdf, filename, err := h.ticketService(c).GenerateETicket(ctx, booking.ID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to build e-ticket", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
