package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell-print/inkwell/internal/infrastructure/ratelimit"
	"github.com/inkwell-print/inkwell/internal/interfaces/http/handlers"
	"github.com/inkwell-print/inkwell/internal/interfaces/http/middleware"
)

type PublicRouteConfig struct {
	AuthHandler         *handlers.AuthHandler
	SupportHandler      *handlers.SupportHandler
	HealthHandler       *handlers.HealthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
	AuthLimits          ratelimit.Limits
	SupportLimits       ratelimit.Limits
}

func SetupPublicRoutes(engine *gin.Engine, config *PublicRouteConfig) {
	engine.GET("/healthz", config.HealthHandler.Healthz)

	auth := engine.Group("/auth")
	{
		auth.POST("/register", config.RateLimitMiddleware.Throttle("register", config.AuthLimits), config.AuthHandler.Register)
		auth.GET("/verify-email", config.AuthHandler.VerifyEmail)
		auth.POST("/login", config.RateLimitMiddleware.Throttle("login", config.AuthLimits), config.AuthHandler.Login)
	}

	support := engine.Group("/support/conversations")
	support.Use(config.AuthMiddleware.OptionalAuth(), config.RateLimitMiddleware.Throttle("support", config.SupportLimits))
	{
		support.POST("", config.SupportHandler.OpenConversation)
		support.POST("/:id/messages", config.SupportHandler.PostMessage)
	}
}
