package handlers

import (
	"net/http"

	"busbooking/internal/domain/models"
	"busbooking/internal/realtime"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/users
func (h *Handler) AdminListUsers(c *gin.Context) {
	profiles, err := h.Profiles.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": profiles})
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// PUT /api/admin/users/:id/role
func (h *Handler) AdminUpdateUserRole(c *gin.Context) {
	var req updateRoleRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		RespondError(c, http.StatusBadRequest, "role must be user or admin", nil)
		return
	}

	id := c.Param("id")
	if err := h.Profiles.UpdateRole(c.Request.Context(), id, req.Role); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Broker.Publish(realtime.Event{Table: "profiles", Type: realtime.EventUpdate, RowID: id})
	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}
