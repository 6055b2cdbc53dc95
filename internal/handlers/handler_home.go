package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHome reports service liveness.
func getHome(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
