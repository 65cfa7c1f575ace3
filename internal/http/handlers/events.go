package handlers

import (
	"io"
	"net/http"
	"time"

	"busbooking/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// streamableTables maps subscribable tables to whether the stream is
// restricted to admins. Trip changes are visible to any signed-in user so the
// search page can refresh; notifications are filtered to the caller's rows.
var streamableTables = map[string]bool{
	"bus_trips":     false,
	"bookings":      true,
	"passengers":    true,
	"profiles":      true,
	"reviews":       true,
	"payments":      true,
	"bus_companies": true,
	"notifications": false,
}

// GET /api/events?table=...
//
// SSE stream of change events for one table. Each open page holds its own
// subscription and tears it down on disconnect; clients re-run their list
// query when an event arrives.
func (h *Handler) StreamEvents(c *gin.Context) {
	table := c.Query("table")
	adminOnly, ok := streamableTables[table]
	if !ok {
		RespondError(c, http.StatusBadRequest, "unknown table", nil)
		return
	}

	userID := middleware.UserID(c)
	if adminOnly {
		isAdmin, err := h.Profiles.IsAdmin(c.Request.Context(), userID)
		if err != nil || !isAdmin {
			RespondError(c, http.StatusForbidden, "admin role required", nil)
			return
		}
	}

	// the stream stays open far longer than the server's WriteTimeout;
	// clear this response's write deadline or the first write after the
	// timeout kills the subscription
	if err := http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{}); err != nil {
		RespondError(c, http.StatusInternalServerError, "streaming unsupported", err)
		return
	}

	sub := h.Broker.Subscribe(table)
	defer sub.Close()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(_ io.Writer) bool {
		select {
		case ev, open := <-sub.C:
			if !open {
				return false
			}
			if table == "notifications" && ev.UserID != userID {
				return true
			}
			c.SSEvent("change", ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
