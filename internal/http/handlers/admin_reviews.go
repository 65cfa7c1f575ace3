package handlers

import (
	"net/http"

	"busbooking/internal/realtime"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/reviews
func (h *Handler) AdminListReviews(c *gin.Context) {
	reviews, err := h.Reviews.ListAdmin(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// DELETE /api/admin/reviews/:id
func (h *Handler) AdminDeleteReview(c *gin.Context) {
	id := c.Param("id")
	if err := h.Reviews.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Broker.Publish(realtime.Event{Table: "reviews", Type: realtime.EventDelete, RowID: id})
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}
