package api

import (
	"net/http"

	"github.com/soltgard/battleforge/internal/version"

	"github.com/gin-gonic/gin"
)

// Version identifies the service and its build metadata. The healthcheck
// probes this route, so it must stay dependency-free and always succeed.
func Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": version.Service,
		"version": version.Version,
		"commit":  version.Commit,
		"date":    version.Date,
	})
}
