package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/traduflow-api/internal/constants"
	apierrors "github.com/yukikurage/traduflow-api/internal/errors"
	"github.com/yukikurage/traduflow-api/internal/models"
	"github.com/yukikurage/traduflow-api/internal/utils"
)

// RequireAuth verifies the Bearer token and stores the caller identity
// in the request context. The check is stateless: no session store, no
// revocation list.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			apierrors.Unauthenticated(c, "Missing authorization token")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1], secret)
		if err != nil {
			apierrors.Unauthenticated(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserRole, claims.Role)
		c.Next()
	}
}

// RequireRole requires an exact role match on an already authenticated
// request.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerRole, exists := GetUserRole(c)
		if !exists || callerRole != role {
			apierrors.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	if !ok {
		return 0, false
	}
	return id, true
}

// GetUserRole retrieves the current user role from context
func GetUserRole(c *gin.Context) (models.UserRole, bool) {
	role, exists := c.Get(constants.ContextKeyUserRole)
	if !exists {
		return "", false
	}

	r, ok := role.(models.UserRole)
	if !ok {
		return "", false
	}
	return r, true
}
