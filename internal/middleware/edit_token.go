package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"splittab/internal/service"
)

const (
	ContextKeyBillID = "bill_id"
	ContextKeyClaims = "claims"
)

// EditToken returns Gin middleware that validates bill edit tokens. The
// token's bill claim must match the :id path parameter, so a token for one
// bill can never mutate another.
func EditToken(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := tokens.ValidateEditToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired edit token"},
			})
			return
		}

		billID, err := uuid.Parse(c.Param("id"))
		if err != nil || claims.BillID != billID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "edit token does not match this bill"},
			})
			return
		}

		c.Set(ContextKeyBillID, claims.BillID)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}
