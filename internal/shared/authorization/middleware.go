package authorization

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-print/inkwell/internal/shared/constants"
)

// RequireAdmin rejects requests whose authenticated role is not admin or developer.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := UserRole(c.GetString(constants.ContextKeyUserRole))
		if !role.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"type": "forbidden", "message": "admin access required"},
			})
			return
		}
		c.Next()
	}
}

// ActorFromContext builds the Actor placed on the request by the auth middleware.
// Unauthenticated requests yield an anonymous customer actor.
func ActorFromContext(c *gin.Context) Actor {
	actor := Actor{
		Role:      RoleCustomer,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if v, ok := c.Get(constants.ContextKeyUserID); ok {
		if id, ok := v.(uint); ok {
			actor.UserID = &id
		}
	}
	actor.Username = c.GetString(constants.ContextKeyUsername)
	if role := c.GetString(constants.ContextKeyUserRole); role != "" {
		actor.Role = UserRole(role)
	}
	return actor
}
