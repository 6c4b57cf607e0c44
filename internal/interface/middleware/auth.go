package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/style-gallery-api/internal/application"
	"github.com/oksasatya/style-gallery-api/pkg/helpers"
	"github.com/oksasatya/style-gallery-api/pkg/response"
)

// Context keys set by Auth. CtxUserNameKey is only set when sessions are
// checked against Redis.
const (
	CtxUserIDKey   = "userID"
	CtxUserNameKey = "userName"
)

// bearerToken reads the access token from the Authorization header, falling
// back to the access_token cookie.
func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if token, err := c.Cookie("access_token"); err == nil {
		return token
	}
	return ""
}

// Auth validates the access token and, when rdb is set, requires the
// session it was issued for to still be active.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Access token is required", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid or expired token", nil)
			return
		}

		if rdb != nil {
			data, err := rdb.HGetAll(c.Request.Context(), application.SessionKey(claims.UserID)).Result()
			if err != nil || len(data) == 0 || (claims.SessionID != "" && data["sid"] != claims.SessionID) {
				response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Session expired", nil)
				return
			}
			c.Set(CtxUserNameKey, data["name"])
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
