package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CamiloBytes/reportesvc/domain"
)

// Gin context keys set by the session middleware.
const (
	CtxSession  = "session"
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
)

// AuthMW wraps the auth service for middleware
type AuthMW struct {
	authSvc domain.AuthService
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(authSvc domain.AuthService) *AuthMW {
	return &AuthMW{authSvc: authSvc}
}

// WithSession returns the session validation middleware. It resolves the
// Bearer token against the session store, refreshing LastActivity on
// success. An expired session answers 401 with a login redirect so the
// caller knows the credentials are gone, not merely rejected.
func (mw *AuthMW) WithSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		sess, err := mw.authSvc.ValidateSession(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrSessionExpired):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired", "redirect": "/login"})
			case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrUnauthenticated):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Session validation failed"})
			}
			c.Abort()
			return
		}

		c.Set(CtxSession, sess)
		c.Set(CtxUserID, sess.User.ID)
		c.Set(CtxUserRole, string(sess.User.Role))

		// Downstream store calls need the session on the request context.
		c.Request = c.Request.WithContext(domain.ContextWithSession(c.Request.Context(), sess))

		c.Next()
	}
}

// SessionFromGin returns the session placed in the gin context by
// WithSession, or nil on public routes.
func SessionFromGin(c *gin.Context) *domain.Session {
	v, ok := c.Get(CtxSession)
	if !ok {
		return nil
	}
	sess, _ := v.(*domain.Session)
	return sess
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
