package handlers

import (
	"net/http"

	"klarfix/internal/database"
	"klarfix/internal/logger"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	*BaseHandler
}

func NewHealthHandler(base *BaseHandler) *HealthHandler {
	return &HealthHandler{BaseHandler: base}
}

func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/health", h.Health)
}

// Health reports liveness and whether the database answers a ping.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := database.Ping(h.GetDB(c)); err != nil {
		logger.CtxWithError(c.Request.Context(), "health check failed", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
