package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// GetUserIDFromContext returns the authenticated user's opaque id, set by
// the JWT middleware.
func GetUserIDFromContext(c *gin.Context) (string, error) {
	v, ok := c.Get("userID")
	if !ok {
		return "", errors.New("no user in context")
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", errors.New("no user in context")
	}
	return id, nil
}
