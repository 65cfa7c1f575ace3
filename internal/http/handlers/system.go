package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) DBCheck(c *gin.Context) {
	if err := h.DB.PingContext(c.Request.Context()); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "database unreachable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"database": "ok"})
}
