package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/stats (served from the scheduler-refreshed snapshot)
func (h *Handler) AdminStats(c *gin.Context) {
	stats, err := h.Stats.AdminStats(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/admin/stats/payments
func (h *Handler) AdminPaymentStats(c *gin.Context) {
	stats, err := h.Stats.PaymentStats(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
