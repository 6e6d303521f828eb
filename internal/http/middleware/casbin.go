package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CamiloBytes/reportesvc/domain"
)

// CasbinMW wraps the policy service for middleware
type CasbinMW struct {
	policySvc domain.PolicyService
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(policySvc domain.PolicyService) *CasbinMW {
	return &CasbinMW{policySvc: policySvc}
}

// Enforce returns the route authorization middleware. It runs after
// WithSession, reading the role it placed in the context and evaluating
// the request path and method against the policy.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(CtxUserRole)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Role not found in session"})
			c.Abort()
			return
		}

		allowed, err := mw.policySvc.CheckPermission(role.(string), c.Request.URL.Path, c.Request.Method)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		c.Next()
	}
}
