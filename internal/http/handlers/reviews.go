package handlers

import (
	"net/http"
	"strings"

	"busbooking/internal/http/middleware"
	"busbooking/internal/realtime"

	"github.com/gin-gonic/gin"
)

type createReviewRequest struct {
	TripID  string `json:"trip_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// POST /api/reviews
func (h *Handler) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		RespondError(c, http.StatusBadRequest, "rating must be between 1 and 5", nil)
		return
	}
	if strings.TrimSpace(req.Comment) == "" {
		RespondError(c, http.StatusBadRequest, "comment is required", nil)
		return
	}

	ctx := c.Request.Context()
	// reject reviews of unknown trips up front
	if _, err := h.Trips.GetByID(ctx, req.TripID); err != nil {
		RespondDomainError(c, err)
		return
	}

	review, err := h.Reviews.Insert(ctx, middleware.UserID(c), req.TripID, req.Rating, strings.TrimSpace(req.Comment))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Broker.Publish(realtime.Event{Table: "reviews", Type: realtime.EventInsert, RowID: review.ID})
	c.JSON(http.StatusCreated, review)
}
