package middleware

import (
	"net/http"
	"strings"

	"github.com/Kushagra2109/MERN-EXPENSE-MANAGER-BACKEND/internal/util"

	"github.com/gin-gonic/gin"
)

// CurrentUserKey is the gin context key the auth gate stores verified
// claims under.
const CurrentUserKey = "currentUser"

// AuthMiddleware 校验 JWT，并在 context 里放入当前用户的 claims。
// The gate trusts the token's embedded identity and never touches the
// database. Missing or invalid tokens abort the chain with 401 before
// any protected handler runs.
func AuthMiddleware(sessionSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// Header: either "Authorization: Bearer xxx" or the raw token
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			} else {
				tokenStr = authHeader
			}
		}

		if tokenStr == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "user not logged in")
			c.Abort()
			return
		}

		claims, err := util.ParseToken(sessionSecret, tokenStr)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, claims)
		c.Next()
	}
}

// CurrentUser returns the authenticated claims set by AuthMiddleware.
func CurrentUser(c *gin.Context) (*util.Claims, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*util.Claims)
	if !ok || claims == nil {
		return nil, false
	}
	return claims, true
}
