package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/perkloop/perkloop/internal/interfaces/http/handlers"
	"github.com/perkloop/perkloop/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for routes scoped to the caller's own data.
type UserRouteConfig struct {
	AccountHandler    *handlers.AccountHandler
	InvestmentHandler *handlers.InvestmentHandler
	ProfileHandler    *handlers.ProfileHandler
	WithdrawalHandler *handlers.WithdrawalHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// SetupUserRoutes configures authenticated user routes.
func SetupUserRoutes(api *gin.RouterGroup, cfg *UserRouteConfig) {
	users := api.Group("/users")
	users.Use(cfg.AuthMiddleware.RequireAuth())
	{
		users.GET("/me", cfg.AccountHandler.Me)
	}

	investments := api.Group("/investments")
	investments.Use(cfg.AuthMiddleware.RequireAuth())
	{
		investments.POST("", cfg.InvestmentHandler.Create)
		investments.GET("", cfg.InvestmentHandler.List)
		investments.GET("/:id", cfg.InvestmentHandler.Get)
		investments.PUT("/:id/deposit", cfg.InvestmentHandler.UpdateDeposit)
		investments.DELETE("/:id", cfg.InvestmentHandler.Cancel)
	}

	profile := api.Group("/profile")
	profile.Use(cfg.AuthMiddleware.RequireAuth())
	{
		profile.GET("", cfg.ProfileHandler.GetProfile)
		profile.PUT("/bank", cfg.ProfileHandler.UpdateBankAccount)
	}

	withdrawals := api.Group("/withdrawals")
	withdrawals.Use(cfg.AuthMiddleware.RequireAuth())
	{
		withdrawals.GET("/preferences", cfg.WithdrawalHandler.ListPreferences)
		withdrawals.PUT("/preferences", cfg.WithdrawalHandler.SetPreference)
		withdrawals.POST("/principal", cfg.WithdrawalHandler.RequestPrincipal)
	}
}
