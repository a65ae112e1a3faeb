package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminKey gates the simulation endpoints behind a shared header key. With
// no key configured (the demo default) every request passes through.
func AdminKey(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if required == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-Admin-Key") != required {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid admin key"})
			return
		}
		c.Next()
	}
}
