package handlers

import (
	"net/http"

	"busbooking/internal/http/middleware"
	"busbooking/internal/realtime"

	"github.com/gin-gonic/gin"
)

// notificationFeedLimit matches the popover, which shows the latest 10.
const notificationFeedLimit = 10

// GET /api/notifications (the caller's feed)
func (h *Handler) ListMyNotifications(c *gin.Context) {
	items, err := h.Notifications.ListByUser(c.Request.Context(), middleware.UserID(c), notificationFeedLimit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

// PUT /api/notifications/:id/read (idempotent; re-marking stays read)
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id := c.Param("id")
	userID := middleware.UserID(c)
	if err := h.Notifications.MarkRead(c.Request.Context(), id, userID); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Broker.Publish(realtime.Event{Table: "notifications", Type: realtime.EventUpdate, RowID: id, UserID: userID})
	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}
