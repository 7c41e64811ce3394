package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seaferry/internal/config"
)

// GET /api/health
func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/db-check
func (a *API) DBCheck(c *gin.Context) {
	if err := config.EnsureDB(); err != nil {
		RespondError(c, http.StatusServiceUnavailable, "database unreachable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"database": "ok"})
}
