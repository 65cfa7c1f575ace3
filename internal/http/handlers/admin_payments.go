package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/payments
func (h *Handler) AdminListPayments(c *gin.Context) {
	payments, err := h.Payments.ListAdmin(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
