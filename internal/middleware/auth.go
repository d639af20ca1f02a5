package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lingochat/memories-backend/internal/common"
	"github.com/lingochat/memories-backend/pkg/i18n"
	"github.com/lingochat/memories-backend/pkg/jwt"
)

const userIDKey = "userID"

// JWTAuth JWT authentication middleware.
// The token is read from cookieName first, then from an Authorization: Bearer header.
func JWTAuth(jwtManager *jwt.Manager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract token
		tokenString := extractToken(c, cookieName)
		if tokenString == "" {
			common.AbortWithError(c, http.StatusUnauthorized, T(c, i18n.MsgUnauthorized))
			return
		}

		// 2. Verify token
		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			key := i18n.MsgTokenInvalid
			if errors.Is(err, jwt.ErrExpiredToken) {
				key = i18n.MsgTokenExpired
			}
			common.AbortWithError(c, http.StatusUnauthorized, T(c, key))
			return
		}

		// 3. Store user info in context
		c.Set(userIDKey, claims.UserID)

		c.Next()
	}
}

func extractToken(c *gin.Context, cookieName string) string {
	if cookieName != "" {
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			return token
		}
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) string {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return ""
	}
	if str, ok := userID.(string); ok {
		return str
	}
	return ""
}
