package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pantry/internal/responses"
	"pantry/internal/utils"
)

// Context keys set by the middlewares in this package.
const (
	UserIDKey    = "userId"
	ClaimsKey    = "claims"
	HouseIDKey   = "houseId"
	HouseRoleKey = "houseRole"
)

type BlacklistChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Authenticate verifies the bearer access token and rejects revoked ones.
func Authenticate(tokens *utils.TokenIssuer, blacklist BlacklistChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.Abort(c, http.StatusUnauthorized, nil, "Missing Authorization header")
			return
		}

		// Expected format: "Bearer <token>"
		scheme, tokenStr, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
			responses.Abort(c, http.StatusUnauthorized, nil, "Invalid Authorization format")
			return
		}

		claims, err := tokens.VerifyAccess(tokenStr)
		if err != nil {
			responses.Abort(c, http.StatusUnauthorized, nil, "Invalid or expired token")
			return
		}

		revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
		if err != nil {
			_ = c.Error(err)
			responses.Abort(c, http.StatusInternalServerError, nil, "Failed to verify token")
			return
		}
		if revoked {
			responses.Abort(c, http.StatusUnauthorized, nil, "Token has been revoked")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			responses.Abort(c, http.StatusUnauthorized, nil, "Invalid token subject")
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
