package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forexalert/internal/service"
)

type HealthHandler struct {
	Poller *service.Poller
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/readyz", h.ready)
}

func (h *HealthHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ready reports the pipeline snapshot: a process that has never completed a
// poll is alive but not yet ready.
func (h *HealthHandler) ready(c *gin.Context) {
	st := h.Poller.Status()
	if st.LastPollAt == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "no_poll_yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":             "ready",
		"last_poll_at":       st.LastPollAt,
		"last_poll_error":    st.LastPollError,
		"total_scheduled":    st.TotalScheduled,
		"pending_tasks":      st.PendingTasks,
		"indexed_identities": st.IndexedIdentities,
	})
}
