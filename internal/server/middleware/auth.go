package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"quill/internal/pkg/ctxutil"
	"quill/internal/pkg/jwt"
)

// Auth verifies the Bearer token on protected routes and injects the
// resolved identity into the request context. Missing or invalid
// credentials abort the request before any handler logic runs.
func Auth(jwtUtil *jwt.JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    40101,
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    40101,
				"message": "Invalid authorization header",
			})
			c.Abort()
			return
		}

		claims, err := jwtUtil.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    40102,
				"message": "Token invalid or expired",
			})
			c.Abort()
			return
		}

		ctx := ctxutil.WithIdentity(c.Request.Context(), ctxutil.Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireRoles permits the request only when the authenticated caller's
// role is in the allowed set. Must run after Auth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		ident, ok := ctxutil.GetIdentity(c.Request.Context())
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    40101,
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		if _, ok := allowed[ident.Role]; !ok {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    40301,
				"message": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RejectRoles denies the request when the caller's role is in the barred
// set. Used for the like endpoint, which readers may not call.
func RejectRoles(roles ...string) gin.HandlerFunc {
	barred := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		barred[r] = struct{}{}
	}

	return func(c *gin.Context) {
		ident, ok := ctxutil.GetIdentity(c.Request.Context())
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    40101,
				"message": "Authentication required",
			})
			c.Abort()
			return
		}

		if _, ok := barred[ident.Role]; ok {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    40301,
				"message": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
