package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/perkloop/perkloop/internal/interfaces/http/handlers"
	"github.com/perkloop/perkloop/internal/interfaces/http/middleware"
)

// AuthRouteConfig holds dependencies for authentication routes.
type AuthRouteConfig struct {
	AccountHandler      *handlers.AccountHandler
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

// SetupAuthRoutes configures registration and login.
func SetupAuthRoutes(api *gin.RouterGroup, cfg *AuthRouteConfig) {
	auth := api.Group("/auth")
	auth.Use(cfg.RateLimitMiddleware.LimitByIP("auth"))
	{
		auth.POST("/register", cfg.AccountHandler.Register)
		auth.POST("/login", cfg.AccountHandler.Login)
	}
}
