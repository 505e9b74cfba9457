package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Nitesh-Kaushik/backend/internal/models"
)

func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, models.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, models.ErrAvatarRequired):
		statusCode = http.StatusBadRequest
		message = "Avatar file is required"
	case errors.Is(err, models.ErrUploadFailed):
		statusCode = http.StatusBadRequest
		message = "File upload failed"
	case errors.Is(err, models.ErrUserAlreadyExists), errors.Is(err, models.ErrEmailAlreadyExists):
		statusCode = http.StatusConflict
		message = "User with this username or email already exists"
	case errors.Is(err, models.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "User does not exist"
	case errors.Is(err, models.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		message = "Invalid user credentials"
	case errors.Is(err, models.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		message = "Unauthorized request"
	case errors.Is(err, models.ErrTokenStale):
		statusCode = http.StatusUnauthorized
		message = "Refresh token is expired or used"
	case errors.Is(err, models.ErrTokenExpired):
		statusCode = http.StatusUnauthorized
		message = "Token has expired"
	case errors.Is(err, models.ErrTokenInvalid), errors.Is(err, models.ErrTokenMalformed):
		statusCode = http.StatusUnauthorized
		message = "Token is invalid or malformed"
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal error occurred"
	}

	c.AbortWithStatusJSON(statusCode, models.NewAPIError(statusCode, message))
}

// handleRefreshError collapses every refresh failure to 401 so the response
// does not distinguish signature problems from stale tokens or unknown users.
func handleRefreshError(c *gin.Context, err error) {
	message := "Invalid refresh token"
	switch {
	case errors.Is(err, models.ErrTokenStale):
		message = "Refresh token is expired or used"
	case errors.Is(err, models.ErrTokenExpired):
		message = "Refresh token has expired"
	case errors.Is(err, models.ErrUnauthorized):
		message = "Unauthorized request"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewAPIError(http.StatusUnauthorized, message))
}
