package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell-print/inkwell/internal/shared/constants"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
	"github.com/inkwell-print/inkwell/internal/shared/utils"
)

type PolicyEnforcer interface {
	Enforce(role, path, method string) (bool, error)
}

type PermissionMiddleware struct {
	enforcer PolicyEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer PolicyEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePolicy checks the caller's role against the casbin policy for the
// request path and method. Must run after RequireAuth.
func (m *PermissionMiddleware) RequirePolicy() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(constants.ContextKeyUserRole)
		if role == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		path := c.Request.URL.Path
		allowed, err := m.enforcer.Enforce(role, path, c.Request.Method)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "role", role, "path", path)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			userID, _ := c.Get(constants.ContextKeyUserID)
			m.logger.Warnw("permission denied", "user_id", userID, "role", role, "path", path, "method", c.Request.Method)
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
