package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Nitesh-Kaushik/backend/internal/models"
	"github.com/Nitesh-Kaushik/backend/internal/service"
)

// register handles multipart user registration. Text fields arrive as form
// values, images as the "avatar" and "coverImage" file fields.
func (h *AuthHandler) register(c *gin.Context) {
	in := service.RegisterInput{
		Username: c.PostForm("username"),
		FullName: c.PostForm("fullname"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	avatarPath, err := formFile(c, "avatar")
	if err != nil {
		zap.L().Error("Failed to save avatar upload", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			models.NewAPIError(http.StatusInternalServerError, "Failed to process uploaded files"))
		return
	}
	coverPath, err := formFile(c, "coverImage")
	if err != nil {
		zap.L().Error("Failed to save cover image upload", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			models.NewAPIError(http.StatusInternalServerError, "Failed to process uploaded files"))
		return
	}
	in.AvatarLocalPath = avatarPath
	in.CoverImageLocalPath = coverPath
	defer removeTempFiles(avatarPath, coverPath)

	user, err := h.authService.Register(c.Request.Context(), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	registrationsTotal.Inc()
	c.JSON(http.StatusCreated, models.NewAPIResponse(http.StatusCreated, user, "User registered successfully"))
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.NewAPIError(http.StatusBadRequest, "Invalid request body"))
		return
	}
	if req.Username == "" && req.Email == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest,
			models.NewAPIError(http.StatusBadRequest, "Username or email is required"))
		return
	}

	login := req.Username
	if login == "" {
		login = req.Email
	}

	user, tokens, err := h.authService.Login(c.Request.Context(), login, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	loginsTotal.Inc()
	setAuthCookies(c, tokens.AccessToken, tokens.RefreshToken)
	c.JSON(http.StatusOK, models.NewAPIResponse(http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	}, "User logged in successfully"))
}

func (h *AuthHandler) logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			models.NewAPIError(http.StatusUnauthorized, "Unauthorized request"))
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	clearAuthCookies(c)
	c.JSON(http.StatusOK, models.NewAPIResponse(http.StatusOK, gin.H{}, "User logged out"))
}

// refresh rotates the token pair. The incoming refresh token is read from the
// refreshToken cookie, falling back to the request body.
func (h *AuthHandler) refresh(c *gin.Context) {
	token := ""
	if cookie, err := c.Cookie(refreshTokenCookie); err == nil {
		token = cookie
	}
	if token == "" {
		var req refreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		tokenVerificationsTotal.WithLabelValues("refresh", "missing").Inc()
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			models.NewAPIError(http.StatusUnauthorized, "Unauthorized request"))
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		tokenVerificationsTotal.WithLabelValues("refresh", "invalid").Inc()
		handleRefreshError(c, err)
		return
	}

	tokenVerificationsTotal.WithLabelValues("refresh", "ok").Inc()
	refreshesTotal.Inc()
	setAuthCookies(c, tokens.AccessToken, tokens.RefreshToken)
	c.JSON(http.StatusOK, models.NewAPIResponse(http.StatusOK, gin.H{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	}, "Access token refreshed"))
}

func removeTempFiles(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			zap.L().Warn("Failed to remove temp upload", zap.String("path", p), zap.Error(err))
		}
	}
}
