package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/portal-api/internal/constants"
	apierrors "github.com/yukikurage/portal-api/internal/errors"
)

// RequireID parses the numeric path parameter param and stores it in the context.
// Handlers read it back with GetID.
func RequireID(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err != nil || id == 0 {
			apierrors.BadRequest(c, "Invalid "+param)
			return
		}
		c.Set(constants.ContextKeyID+":"+param, id)
		c.Next()
	}
}

// GetID returns the id stored by RequireID(param)
func GetID(c *gin.Context, param string) (uint64, bool) {
	v, exists := c.Get(constants.ContextKeyID + ":" + param)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}
