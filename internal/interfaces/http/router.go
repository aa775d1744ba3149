package http

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/perkloop/perkloop/internal/interfaces/http/middleware"
	"github.com/perkloop/perkloop/internal/interfaces/http/routes"

	_ "github.com/perkloop/perkloop/docs"
)

const rateLimitJanitorInterval = 5 * time.Minute

// SetupRoutes configures the engine middleware chain and all HTTP routes.
func (c *Container) SetupRoutes() {
	cfg := c.cfg

	if len(cfg.Server.TrustedProxies) > 0 {
		if err := c.engine.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
			c.log.Warnw("invalid trusted proxies, ignoring", "error", err)
		}
	} else {
		_ = c.engine.SetTrustedProxies(nil)
	}

	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CustomLogger(c.log))
	c.engine.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())
	c.engine.Use(middleware.Metrics(c.metrics))

	c.engine.GET("/health", c.hdlrs.healthHandler.Health)
	if cfg.Metrics.Enabled {
		c.engine.GET(cfg.Metrics.Path, gin.WrapH(c.metrics.Handler()))
	}
	if cfg.Server.Mode != gin.ReleaseMode {
		c.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := c.engine.Group("/api/v1")

	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AccountHandler:      c.hdlrs.accountHandler,
		RateLimitMiddleware: c.rateLimitMiddleware,
	})

	routes.SetupPublicRoutes(api, &routes.PublicRouteConfig{
		YieldHandler:   c.hdlrs.yieldHandler,
		ContentHandler: c.hdlrs.contentHandler,
	})

	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		AccountHandler:    c.hdlrs.accountHandler,
		InvestmentHandler: c.hdlrs.investmentHandler,
		ProfileHandler:    c.hdlrs.profileHandler,
		WithdrawalHandler: c.hdlrs.withdrawalHandler,
		AuthMiddleware:    c.authMiddleware,
	})

	routes.SetupAdminRoutes(api, &routes.AdminRouteConfig{
		InvestmentHandler:    c.hdlrs.adminInvestmentHandler,
		BackOfficeHandler:    c.hdlrs.backOfficeHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}

// GetEngine returns the Gin engine
func (c *Container) GetEngine() *gin.Engine {
	return c.engine
}

// StartBackground restores persisted rate snapshots and starts the
// scheduler and the in-memory rate limiter janitor.
func (c *Container) StartBackground(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.backgroundCancel = cancel

	c.market.Restore(ctx)

	if c.memoryLimiter != nil {
		c.memoryLimiter.StartJanitor(ctx, rateLimitJanitorInterval)
	}

	if c.schedulerManager != nil {
		c.schedulerManager.Start()
	}
}

// Shutdown stops background work and releases connections. The database
// is owned by the caller.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error

	if c.backgroundCancel != nil {
		c.backgroundCancel()
	}

	if c.schedulerManager != nil {
		if err := c.schedulerManager.Stop(); err != nil {
			c.log.Errorw("failed to stop scheduler", "error", err)
			errs = append(errs, err)
		}
	}

	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			c.log.Errorw("failed to close event publisher", "error", err)
			errs = append(errs, err)
		}
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Errorw("failed to close redis client", "error", err)
			errs = append(errs, err)
		}
	}

	if ctx.Err() != nil {
		errs = append(errs, ctx.Err())
	}

	c.log.Infow("container shut down")
	return errors.Join(errs...)
}
