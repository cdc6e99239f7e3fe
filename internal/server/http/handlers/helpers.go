package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/omarsel/flashmart/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) (int64, bool) {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0, false
	}
	id, ok := val.(int64)
	return id, ok
}

func formatSeconds(seconds int64) string {
	return strconv.FormatInt(seconds, 10)
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
