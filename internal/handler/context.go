package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// currentUserID pulls the authenticated user's ID set by the auth
// middleware, replying 401 itself when it is missing.
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	userID, ok := value.(uint)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return 0, false
	}
	return userID, true
}
