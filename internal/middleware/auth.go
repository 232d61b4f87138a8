package middleware

import (
	"net/http"
	"strings"

	"rooya_backend/internal/auth"
	"rooya_backend/internal/logger"
	"rooya_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the session token (Authorization header, with a
// cookie fallback for browser clients) and stores the claims on the context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := c.Cookie("token"); err == nil {
			tokenStr = cookie
		}

		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid", "code": "UNAUTHORIZED"})
			return
		}

		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token", "code": "UNAUTHORIZED"})
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", models.ProfileRole(claims.Role))

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles rejects requests whose token role is not in the allowed set.
func RequireRoles(roles ...models.ProfileRole) gin.HandlerFunc {
	roleSet := make(map[models.ProfileRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: no role", "code": "FORBIDDEN"})
			return
		}

		if !roleSet[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: insufficient role", "code": "FORBIDDEN"})
			return
		}

		c.Next()
	}
}

// RoleFromContext extracts the acting role set by AuthMiddleware.
func RoleFromContext(c *gin.Context) (models.ProfileRole, bool) {
	roleVal, exists := c.Get("role")
	if !exists {
		return "", false
	}

	role, ok := roleVal.(models.ProfileRole)
	if !ok {
		roleStr, isString := roleVal.(string)
		if !isString {
			return "", false
		}
		role = models.ProfileRole(roleStr)
	}
	return role, true
}

// GetUserID extracts the acting user's ID from the context.
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}

	id, ok := userID.(string)
	if !ok {
		return ""
	}
	return id
}
