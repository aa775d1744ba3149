package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/utils"
)

// PolicyEnforcer decides whether a subject may perform act on obj.
type PolicyEnforcer interface {
	Enforce(userID, obj, act string) (bool, error)
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

// RequireRoutePermission checks the route pattern and method against the
// policy store. It must run after RequireAuth.
func (m *PermissionMiddleware) RequireRoutePermission() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
			c.Abort()
			return
		}

		obj := c.Request.URL.Path
		act := c.Request.Method

		allowed, err := m.enforcer.Enforce(userID, obj, act)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "user_id", userID, "path", obj, "method", act)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "user_id", userID, "path", obj, "method", act)
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
