package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Nitesh-Kaushik/backend/internal/config"
	"github.com/Nitesh-Kaushik/backend/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	tokens      service.TokenService
	cfg         *config.Config
}

func NewAuthHandler(authService service.AuthService, tokens service.TokenService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
		cfg:         cfg,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.Engine, rateLimit gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	if rateLimit != nil {
		authGroup.Use(rateLimit)
	}
	{
		authGroup.POST("/register", h.register)
		authGroup.POST("/login", h.login)
		authGroup.POST("/logout", h.AuthMiddleware(), h.logout)
		authGroup.POST("/refresh", h.refresh)
	}

	protected := router.Group("/api")
	protected.Use(h.AuthMiddleware())
	{
		protected.GET("/me", h.getMe)
		protected.POST("/change-password", h.changePassword)
		protected.PATCH("/avatar", h.updateAvatar)
		protected.PATCH("/cover-image", h.updateCoverImage)
	}
}
