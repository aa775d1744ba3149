package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/perkloop/perkloop/internal/application/market"
	"github.com/perkloop/perkloop/internal/infrastructure/auth"
	"github.com/perkloop/perkloop/internal/infrastructure/config"
	"github.com/perkloop/perkloop/internal/infrastructure/messaging"
	"github.com/perkloop/perkloop/internal/infrastructure/metrics"
	"github.com/perkloop/perkloop/internal/infrastructure/permission"
	"github.com/perkloop/perkloop/internal/infrastructure/ratelimit"
	"github.com/perkloop/perkloop/internal/infrastructure/scheduler"
	"github.com/perkloop/perkloop/internal/interfaces/http/middleware"
	"github.com/perkloop/perkloop/internal/shared/db"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases,
// handlers and background services, and owns their shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client // nil when redis is disabled

	txManager *db.TransactionManager
	enforcer  *permission.Enforcer
	jwtSvc    *auth.JWTService
	metrics   *metrics.Metrics
	publisher messaging.Publisher
	notifier  notifier
	market    *market.Service

	// Repositories
	repos *repositories

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimitMiddleware  *middleware.RateLimitMiddleware
	memoryLimiter        *ratelimit.MemoryRateLimiter // set when redis is disabled

	// Background services
	schedulerManager *scheduler.SchedulerManager
	backgroundCancel context.CancelFunc
}

// NewContainer creates a Container with all dependencies wired together.
// It fails when a required piece of configuration cannot be honoured, such
// as an unknown fee policy version or an unreachable redis.
func NewContainer(gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		log:    log,
	}

	// Section 1: Infrastructure - Redis, auth, permissions, messaging
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Repositories
	c.repos = newRepositories(gdb, log)

	// Section 3: Market feeds and yield policy
	if err := c.initMarket(); err != nil {
		return nil, err
	}

	// Section 4: Use cases
	if err := c.initUseCases(); err != nil {
		return nil, err
	}

	// Section 5: Handlers and middlewares
	c.initHandlers()

	// Section 6: Scheduler jobs
	if err := c.initScheduler(); err != nil {
		return nil, err
	}

	return c, nil
}
