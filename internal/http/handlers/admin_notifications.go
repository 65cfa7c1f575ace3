package handlers

import (
	"net/http"
	"strings"

	"busbooking/internal/domain/models"
	"busbooking/internal/realtime"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/notifications
func (h *Handler) AdminListNotifications(c *gin.Context) {
	items, err := h.Notifications.ListAdmin(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

type createNotificationRequest struct {
	UserID  string `json:"user_id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// POST /api/admin/notifications
func (h *Handler) AdminCreateNotification(c *gin.Context) {
	var req createNotificationRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	switch {
	case strings.TrimSpace(req.UserID) == "":
		RespondError(c, http.StatusBadRequest, "user_id is required", nil)
		return
	case strings.TrimSpace(req.Title) == "":
		RespondError(c, http.StatusBadRequest, "title is required", nil)
		return
	case strings.TrimSpace(req.Message) == "":
		RespondError(c, http.StatusBadRequest, "message is required", nil)
		return
	case !models.ValidNotificationType(req.Type):
		RespondError(c, http.StatusBadRequest, "type must be booking, system or update", nil)
		return
	}

	n, err := h.Notifications.Insert(c.Request.Context(), models.Notification{
		UserID:  req.UserID,
		Title:   strings.TrimSpace(req.Title),
		Message: strings.TrimSpace(req.Message),
		Type:    req.Type,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Broker.Publish(realtime.Event{Table: "notifications", Type: realtime.EventInsert, RowID: n.ID, UserID: n.UserID})
	c.JSON(http.StatusCreated, n)
}

// DELETE /api/admin/notifications/:id
func (h *Handler) AdminDeleteNotification(c *gin.Context) {
	id := c.Param("id")
	if err := h.Notifications.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Broker.Publish(realtime.Event{Table: "notifications", Type: realtime.EventDelete, RowID: id})
	c.JSON(http.StatusOK, gin.H{"message": "notification deleted"})
}
