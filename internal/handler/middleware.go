package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nitesh-Kaushik/backend/internal/models"
)

const (
	userIDContextKey = "user_id"
	claimsContextKey = "access_claims"
)

// AuthMiddleware authenticates a request from the Authorization header or,
// failing that, the accessToken cookie.
func (h *AuthHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractAccessToken(c)
		if tokenString == "" {
			tokenVerificationsTotal.WithLabelValues("access", "missing").Inc()
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				models.NewAPIError(http.StatusUnauthorized, "Unauthorized request"))
			return
		}

		claims, err := h.tokens.VerifyAccessToken(c.Request.Context(), tokenString)
		if err != nil {
			tokenVerificationsTotal.WithLabelValues("access", "invalid").Inc()
			handleServiceError(c, err)
			return
		}

		tokenVerificationsTotal.WithLabelValues("access", "ok").Inc()
		c.Set(userIDContextKey, claims.UserID)
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

func extractAccessToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok && after != "" {
		return after
	}
	if cookie, err := c.Cookie(accessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	return ""
}

// currentUserID reads the authenticated user ID placed by AuthMiddleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDContextKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
