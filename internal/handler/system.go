package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/willtroppe/callrep/pkg/config"
	"github.com/willtroppe/callrep/pkg/response"
)

var startedAt = time.Now()

// HealthCheck health check endpoint
func (h *Handlers) HealthCheck(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database connection failed"})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database ping failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// SystemStatus reports runtime information for the ops dashboard.
func (h *Handlers) SystemStatus(c *gin.Context) {
	response.Success(c, "OK", gin.H{
		"server":          config.GlobalConfig.ServerName,
		"db_driver":       config.GlobalConfig.DBDriver,
		"uptime_seconds":  int(time.Since(startedAt).Seconds()),
		"active_sessions": h.sessions.Len(),
		"civic_directory": h.civic.Enabled(),
	})
}
