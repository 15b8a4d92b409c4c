package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/polkiloo/cvorders/internal/pkg/auth"
	"github.com/polkiloo/cvorders/internal/server/http/dto"
)

const (
	// UserIDContextKey is a gin context key for authenticated user identifier.
	UserIDContextKey = "userID"
	authCookieName   = "cvorders_token"
)

// TokenParser resolves a user from an auth token.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

// StaffChecker tells whether a user holds the staff role.
type StaffChecker interface {
	IsStaff(ctx context.Context, userID int64) (bool, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}

		userID, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abort(c, http.StatusUnauthorized, "unauthorized", "Invalid auth token")
				return
			}
			abort(c, http.StatusInternalServerError, "internal_error", "Internal server error")
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Next()
	}
}

// StaffOnly rejects callers without the staff role. Must run after AuthRequired.
func StaffOnly(checker StaffChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Get(UserIDContextKey)
		userID, _ := id.(int64)
		ok, err := checker.IsStaff(c.Request.Context(), userID)
		if err != nil {
			abort(c, http.StatusInternalServerError, "internal_error", "Internal server error")
			return
		}
		if !ok {
			abort(c, http.StatusForbidden, "forbidden", "Staff access required")
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.Result{Code: code, Message: message})
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
// The cookie is never sent on cross-site requests.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
