package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"tariften-backend/internal/pkg/common"
)

const identityKey = "identity"

// Auth verifies a Bearer token signed with the shared secret and stores
// the caller identity on the context. Token issuance lives elsewhere;
// this service only verifies.
func Auth(secret string, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "authentication required",
					"code":  common.ErrCodeUnauthorized,
				})
				return
			}
			c.Next()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "malformed authorization header",
				"code":  common.ErrCodeUnauthorized,
			})
			return
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid token",
				"code":  common.ErrCodeUnauthorized,
			})
			return
		}

		identity := common.Identity{}
		if sub, ok := claims["sub"].(string); ok {
			identity.UserID = sub
		}
		if role, ok := claims["role"].(string); ok {
			identity.Role = role
		}
		c.Set(identityKey, identity)

		c.Next()
	}
}

// IdentityFrom returns the authenticated caller, if any.
func IdentityFrom(c *gin.Context) (common.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return common.Identity{}, false
	}
	id, ok := v.(common.Identity)
	return id, ok
}
