package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ddiazp/maintenance-orders-api/models"
	"github.com/ddiazp/maintenance-orders-api/services"
)

// Header carrying the unsigned credential variant.
const UserTokenHeader = "x-user-token"

const identityKey = "identity"

// ExtractCredential decodes a bearer credential into an Identity and stores
// it in the context. Both variants are accepted: the unsigned x-user-token
// header and a signed Authorization bearer token. Requests without a
// credential pass through unauthenticated; handlers that need an identity
// use RequireIdentity or RequireRole.
func ExtractCredential(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := c.GetHeader(UserTokenHeader); token != "" {
			if identity, err := auth.DecodeUnsigned(token); err == nil {
				c.Set(identityKey, identity)
			}
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimPrefix(header, "Bearer ")
			if identity, err := auth.DecodeSigned(token); err == nil {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

// GetIdentity extracts the decoded identity from the Gin context.
func GetIdentity(c *gin.Context) (models.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := value.(models.Identity)
	return identity, ok
}

// RequireIdentity aborts with 401 unless a valid credential was presented.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetIdentity(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"ok":      false,
				"code":    "UNAUTHORIZED",
				"message": "Missing or invalid credential",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole aborts with 403 unless the identity's role matches one of the
// enumerated roles exactly. There is no hierarchy; every accepted role must
// be listed.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"ok":      false,
				"code":    "UNAUTHORIZED",
				"message": "Missing or invalid credential",
			})
			c.Abort()
			return
		}

		for _, role := range roles {
			if services.Authorize(identity, role) {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"ok":      false,
			"code":    "FORBIDDEN",
			"message": "Insufficient role for this resource",
		})
		c.Abort()
	}
}
