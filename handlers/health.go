package handlers

import (
	"net/http"

	"decorhub/utils"

	"github.com/gin-gonic/gin"
)

// Health reports liveness together with the last dependency snapshot.
func Health(c *gin.Context) {
	status := utils.GetHealthStatus()
	healthy := status.Mongo
	for _, ok := range status.Redis {
		healthy = healthy && ok
	}
	state := "ok"
	if !healthy {
		state = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": state, "dependencies": status})
}
