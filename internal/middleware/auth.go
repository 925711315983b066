package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/nexusboard/nexusboard-api/internal/constants"
	"github.com/nexusboard/nexusboard-api/internal/database"
	apierrors "github.com/nexusboard/nexusboard-api/internal/errors"
	"github.com/nexusboard/nexusboard-api/internal/models"
)

// RequireAuth checks the session and loads the user into the request
// context. JSON routes get a 401 when the check fails.
func RequireAuth() gin.HandlerFunc {
	return requireAuth(false)
}

// RequirePageAuth is the page-route variant: failures redirect to
// /login instead of answering 401.
func RequirePageAuth() gin.HandlerFunc {
	return requireAuth(true)
}

func requireAuth(redirectToLogin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(constants.ContextKeyUserID)
		if raw == nil {
			deny(c, redirectToLogin)
			return
		}

		userID, ok := asUint64(raw)
		if !ok {
			deny(c, redirectToLogin)
			return
		}

		// Resolve the session id to a full identity so handlers work
		// with an explicit user object, not session fields.
		var user models.User
		if err := database.GetDB().First(&user, userID).Error; err != nil {
			deny(c, redirectToLogin)
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// RequireAdmin gates admin-only pages. Must run after RequireAuth or
// RequirePageAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok || !user.IsAdmin {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func deny(c *gin.Context, redirectToLogin bool) {
	if redirectToLogin {
		c.Redirect(http.StatusFound, "/login")
	} else {
		apierrors.Unauthorized(c, "")
	}
	c.Abort()
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return asUint64(userID)
}

// GetCurrentUser retrieves the authenticated user from context
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	raw, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := raw.(models.User)
	return user, ok
}

func asUint64(v interface{}) (uint64, bool) {
	switch n := v.(type) {
	case uint64:
		return n, true
	case uint:
		return uint64(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}
