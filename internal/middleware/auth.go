package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

const (
	userKey    = "auth_user"
	sessionKey = "auth_session"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, *model.Session, error)
}

// RequireSession rejects requests without a live bearer session and stores
// the signed-in user on the context.
func RequireSession(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "missing bearer token"})
			return
		}

		user, sess, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			status, resp := MapError(err)
			c.AbortWithStatusJSON(status, resp)
			return
		}

		c.Set(userKey, *user)
		c.Set(sessionKey, *sess)
		c.Next()
	}
}

// RequireCapability admits users whose role passes allowed, such as
// access.CanExport. It must run after RequireSession.
func RequireCapability(allowed func(model.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
			return
		}
		if !allowed(user.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "forbidden", Details: "role " + string(user.Role) + " is not allowed"})
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return model.User{}, false
	}
	u, ok := v.(model.User)
	return u, ok
}

func CurrentSession(c *gin.Context) (model.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return model.Session{}, false
	}
	s, ok := v.(model.Session)
	return s, ok
}
