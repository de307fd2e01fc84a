package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-order-service/pkg/helpers"
	"github.com/oksasatya/user-order-service/pkg/response"
)

const CtxTokenSubjectKey = "tokenSubject"

// BearerAuth validates the Authorization: Bearer <token> header and stores the
// token subject in the Gin context. A nil manager disables the guard.
func BearerAuth(tm *helpers.TokenManager) gin.HandlerFunc {
	if tm == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized!", "missing bearer token")
			return
		}
		claims, err := tm.ParseToken(strings.TrimSpace(token))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized!", "invalid bearer token")
			return
		}
		c.Set(CtxTokenSubjectKey, claims.Subject)
		c.Next()
	}
}
