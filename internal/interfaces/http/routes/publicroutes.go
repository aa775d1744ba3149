package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/perkloop/perkloop/internal/interfaces/http/handlers"
)

// PublicRouteConfig holds dependencies for routes that need no token.
type PublicRouteConfig struct {
	YieldHandler   *handlers.YieldHandler
	ContentHandler *handlers.ContentHandler
}

// SetupPublicRoutes configures the catalog, quotes, market rates and content.
func SetupPublicRoutes(api *gin.RouterGroup, cfg *PublicRouteConfig) {
	api.GET("/products", cfg.YieldHandler.ListProducts)

	quotes := api.Group("/quotes")
	{
		quotes.POST("/deposit", cfg.YieldHandler.QuoteDeposit)
		quotes.POST("/cadence", cfg.YieldHandler.QuoteCadence)
	}

	api.GET("/market/rates", cfg.YieldHandler.GetRates)
	api.GET("/content/risk-disclosure", cfg.ContentHandler.RiskDisclosure)
}
