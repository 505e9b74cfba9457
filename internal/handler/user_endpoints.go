package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nitesh-Kaushik/backend/internal/models"
)

func (h *AuthHandler) getMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			models.NewAPIError(http.StatusUnauthorized, "Unauthorized request"))
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewAPIResponse(http.StatusOK, user, "Current user fetched successfully"))
}

func (h *AuthHandler) changePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			models.NewAPIError(http.StatusUnauthorized, "Unauthorized request"))
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.NewAPIError(http.StatusBadRequest, "Invalid request body"))
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewAPIResponse(http.StatusOK, gin.H{}, "Password changed successfully"))
}

func (h *AuthHandler) updateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", "Avatar updated successfully", h.authService.UpdateAvatar)
}

func (h *AuthHandler) updateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", "Cover image updated successfully", h.authService.UpdateCoverImage)
}

func (h *AuthHandler) updateImage(
	c *gin.Context,
	field, successMessage string,
	update func(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error),
) {
	userID, ok := currentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			models.NewAPIError(http.StatusUnauthorized, "Unauthorized request"))
		return
	}

	localPath, err := formFile(c, field)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			models.NewAPIError(http.StatusInternalServerError, "Failed to process uploaded file"))
		return
	}
	if localPath == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.NewAPIError(http.StatusBadRequest, "Image file is required"))
		return
	}
	defer removeTempFiles(localPath)

	user, err := update(c.Request.Context(), userID, localPath)
	if err != nil {
		mediaUploadsTotal.WithLabelValues(field, "error").Inc()
		handleServiceError(c, err)
		return
	}

	mediaUploadsTotal.WithLabelValues(field, "ok").Inc()
	c.JSON(http.StatusOK, models.NewAPIResponse(http.StatusOK, user, successMessage))
}
