package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// Claims is the token payload issued by the auth frontend.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth validates a Bearer token and stores the caller identity in the gin
// context.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token format, must be a Bearer token"})
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method in token")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Could not parse claims from token"})
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// OptionalAuth populates the caller identity when a valid token is present
// but lets anonymous requests through. Used by guest-friendly endpoints like
// donations and issue reports.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method in token")
			}
			return []byte(secret), nil
		})
		if err == nil && token.Valid {
			if claims, ok := token.Claims.(*Claims); ok && claims.Subject != "" {
				c.Set(ContextUserID, claims.Subject)
				c.Set(ContextRole, claims.Role)
			}
		}
		c.Next()
	}
}

// RequireStaff gates review and admin endpoints. Must run after Auth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role != "staff" && role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Staff access required"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller id, empty for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// IsStaff reports whether the caller carries a staff or admin role.
func IsStaff(c *gin.Context) bool {
	role := c.GetString(ContextRole)
	return role == "staff" || role == "admin"
}
