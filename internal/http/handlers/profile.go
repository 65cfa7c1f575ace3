package handlers

import (
	"net/http"

	"busbooking/internal/domain/models"
	"busbooking/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// GET /api/profile
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.Profiles.GetByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PUT /api/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var in models.ProfileInput
	if !BindJSONOrError(c, &in) {
		return
	}
	if in.PreferredLanguage == "" {
		in.PreferredLanguage = "fr"
	}

	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	if err := h.Profiles.Update(ctx, userID, in); err != nil {
		RespondDomainError(c, err)
		return
	}

	profile, err := h.Profiles.GetByID(ctx, userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
