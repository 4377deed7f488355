package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by the tenant middleware.
const (
	ContextKeyTenantID = "tenant_id"
	ContextKeyUserID   = "user_id"
)

// HeaderTenantID is the required tenant header on every scoped route.
const HeaderTenantID = "X-Tenant-ID"

// HeaderUserID optionally attributes the request to a user.
const HeaderUserID = "X-User-ID"

// Tenant resolves the tenant scope from request headers. Every document
// route runs behind it; a request without a valid tenant never reaches a
// handler.
func Tenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderTenantID)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "TENANT_REQUIRED", "message": "X-Tenant-ID header required"},
			})
			return
		}
		tenantID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "TENANT_INVALID", "message": "X-Tenant-ID must be a UUID"},
			})
			return
		}
		c.Set(ContextKeyTenantID, tenantID)

		if rawUser := c.GetHeader(HeaderUserID); rawUser != "" {
			if userID, err := uuid.Parse(rawUser); err == nil {
				c.Set(ContextKeyUserID, userID)
			}
		}
		c.Next()
	}
}

// GetTenantID returns the tenant ID set by the Tenant middleware.
func GetTenantID(c *gin.Context) (uuid.UUID, error) {
	v, exists := c.Get(ContextKeyTenantID)
	if !exists {
		return uuid.Nil, errors.New("tenant context missing")
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("tenant context malformed")
	}
	return id, nil
}

// GetUserID returns the optional user ID, or uuid.Nil when absent.
func GetUserID(c *gin.Context) uuid.UUID {
	v, exists := c.Get(ContextKeyUserID)
	if !exists {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
