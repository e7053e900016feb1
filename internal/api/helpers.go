package api

import "github.com/gin-gonic/gin"

// abortWithError sends a consistent JSON error payload and stops the
// handler chain.
func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
