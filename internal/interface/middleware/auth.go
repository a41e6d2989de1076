package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DonOmbisi/kilimo3/pkg/helpers"
	"github.com/DonOmbisi/kilimo3/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxWalletKey = "walletAddress"
)

// Auth validates the Authorization bearer token and injects the decoded
// claims into the Gin context. Failures short-circuit before any handler or
// store access runs.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error[any](c, http.StatusUnauthorized, "access denied: no authorization header provided", nil)
			c.Abort()
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error[any](c, http.StatusUnauthorized, "invalid authorization format, use: Bearer <token>", nil)
			c.Abort()
			return
		}

		token := parts[1]
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "access denied: no token provided", nil)
			c.Abort()
			return
		}

		claims, err := jwt.Verify(token)
		if err != nil {
			switch {
			case errors.Is(err, helpers.ErrTokenExpired):
				response.Error[any](c, http.StatusUnauthorized, "token expired, please log in again", nil)
			case errors.Is(err, helpers.ErrTokenInvalid):
				response.Error[any](c, http.StatusUnauthorized, "invalid token, please log in again", nil)
			default:
				response.Error[any](c, http.StatusUnauthorized, "token verification failed", nil)
			}
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxWalletKey, claims.WalletAddress)
		c.Next()
	}
}
