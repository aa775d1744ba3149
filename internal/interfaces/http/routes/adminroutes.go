package routes

import (
	"github.com/gin-gonic/gin"

	adminHandlers "github.com/perkloop/perkloop/internal/interfaces/http/handlers/admin"
	"github.com/perkloop/perkloop/internal/interfaces/http/middleware"
)

// AdminRouteConfig holds dependencies for admin-only routes.
type AdminRouteConfig struct {
	InvestmentHandler    *adminHandlers.InvestmentHandler
	BackOfficeHandler    *adminHandlers.BackOfficeHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupAdminRoutes configures admin-only routes. Use cases check the admin
// role as well.
func SetupAdminRoutes(api *gin.RouterGroup, cfg *AdminRouteConfig) {
	admin := api.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.PermissionMiddleware.RequireRoutePermission())

	investments := admin.Group("/investments")
	{
		investments.GET("", cfg.InvestmentHandler.List)
		investments.POST("/:id/confirm", cfg.InvestmentHandler.Confirm)
		investments.POST("/:id/payout", cfg.InvestmentHandler.Payout)
		investments.POST("/:id/returns", cfg.InvestmentHandler.RecordReturns)
		investments.DELETE("/:id", cfg.InvestmentHandler.Reject)
	}

	admin.POST("/emergency-shutdown", cfg.BackOfficeHandler.EmergencyShutdown)
	admin.GET("/reconciliation.csv", cfg.BackOfficeHandler.ExportRefundList)

	admin.GET("/audit-logs", cfg.BackOfficeHandler.ListAuditLogs)
	admin.GET("/audit-logs.csv", cfg.BackOfficeHandler.ExportAuditLogs)

	admin.GET("/dashboard", cfg.BackOfficeHandler.GetDashboard)

	users := admin.Group("/users")
	{
		users.GET("", cfg.BackOfficeHandler.GetUsersOverview)
		users.PUT("/:user_id/balances", cfg.BackOfficeHandler.UpdateBalances)
	}

	withdrawals := admin.Group("/principal-withdrawals")
	{
		withdrawals.GET("", cfg.BackOfficeHandler.ListPrincipalWithdrawals)
		withdrawals.PUT("/:id/status", cfg.BackOfficeHandler.UpdatePrincipalWithdrawal)
	}
}
