package routes

import (
	"github.com/gin-gonic/gin"

	"pantry/internal/handlers"
)

type AuthRoutes struct {
	handler       *handlers.AuthHandler
	googleHandler *handlers.GoogleAuthHandler
	guards        Guards
}

func NewAuthRoutes(handler *handlers.AuthHandler, googleHandler *handlers.GoogleAuthHandler, guards Guards) *AuthRoutes {
	return &AuthRoutes{handler: handler, googleHandler: googleHandler, guards: guards}
}

func (r *AuthRoutes) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		// Public routes
		auth.POST("/register", r.handler.Register)
		auth.POST("/login", r.handler.Login)
		auth.POST("/refresh", r.handler.Refresh)

		// Protected routes
		auth.POST("/logout", r.guards.Authenticate, r.handler.Logout)

		if r.googleHandler != nil {
			auth.GET("/google/login", r.googleHandler.Login)
			auth.GET("/google/callback", r.googleHandler.Callback)
		}
	}
}
