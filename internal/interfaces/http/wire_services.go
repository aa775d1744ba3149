package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	adminUsecases "github.com/perkloop/perkloop/internal/application/admin/usecases"
	"github.com/perkloop/perkloop/internal/application/market"
	withdrawalUsecases "github.com/perkloop/perkloop/internal/application/withdrawal/usecases"
	"github.com/perkloop/perkloop/internal/infrastructure/auth"
	"github.com/perkloop/perkloop/internal/infrastructure/cache"
	"github.com/perkloop/perkloop/internal/infrastructure/email"
	"github.com/perkloop/perkloop/internal/infrastructure/marketfeed"
	"github.com/perkloop/perkloop/internal/infrastructure/messaging"
	"github.com/perkloop/perkloop/internal/infrastructure/metrics"
	"github.com/perkloop/perkloop/internal/infrastructure/permission"
	"github.com/perkloop/perkloop/internal/infrastructure/ratelimit"
	"github.com/perkloop/perkloop/internal/infrastructure/scheduler"
	"github.com/perkloop/perkloop/internal/interfaces/http/middleware"
	"github.com/perkloop/perkloop/internal/shared/db"
)

// notifier is the administrator channel shared by the use cases that alert.
type notifier interface {
	adminUsecases.ShutdownNotifier
	adminUsecases.MaturityNotifier
	withdrawalUsecases.WithdrawalNotifier
}

// initInfrastructure sets up redis, auth, permissions, metrics, messaging
// and the notifier.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg.Redis.GetAddr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return err
		}
		c.redis = client
		log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())
	}

	c.txManager = db.NewTransactionManager(c.db)

	enforcer, err := permission.NewEnforcer(c.db, log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := enforcer.InitAdminPermissions(); err != nil {
		return fmt.Errorf("failed to seed admin permissions: %w", err)
	}
	c.enforcer = enforcer

	c.jwtSvc = auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.Issuer)

	c.metrics = metrics.New()
	if sqlDB, err := c.db.DB(); err == nil {
		if err := c.metrics.RegisterDB(sqlDB); err != nil {
			log.Warnw("failed to register database metrics", "error", err)
		}
	}

	// A nil *redis.Client must not reach the publisher as a non-nil interface.
	var redisClient redis.UniversalClient
	if c.redis != nil {
		redisClient = c.redis
	}
	publisher, err := messaging.NewPublisher(cfg.Messaging, redisClient, log.Named("messaging"))
	if err != nil {
		return fmt.Errorf("failed to create event publisher: %w", err)
	}
	c.publisher = messaging.NewInstrumentedPublisher(publisher, c.metrics)

	if cfg.Email.Enabled {
		c.notifier = email.NewSMTPNotifier(email.SMTPConfigFrom(cfg.Email), log.Named("email"))
	} else {
		log.Warnw("email disabled, administrator notifications go to the log only")
		c.notifier = email.NewLogNotifier(log.Named("email"))
	}

	// Early middlewares
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, log)

	limitCfg := ratelimit.RateLimitConfig{RequestsPerMinute: cfg.Server.RateLimitPerMin}
	if c.redis != nil {
		c.rateLimitMiddleware = middleware.NewRateLimitMiddleware(ratelimit.NewRedisRateLimiter(c.redis, limitCfg), log)
	} else {
		c.memoryLimiter = ratelimit.NewMemoryRateLimiter(limitCfg)
		c.rateLimitMiddleware = middleware.NewRateLimitMiddleware(c.memoryLimiter, log)
	}

	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(addr, password string, database int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       database,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return client, nil
}

// initMarket builds the two feed fetchers and the last-known-good rate service.
func (c *Container) initMarket() error {
	cfg := c.cfg
	log := c.log.Named("market")

	breaker := marketfeed.BreakerSettingsFrom(cfg.Feeds)
	breaker.OnStateChange = c.metrics.ObserveBreakerState

	fx := marketfeed.NewExchangeRateFetcher(cfg.Feeds.ExchangeRate, breaker, log)
	apy := marketfeed.NewAPYFetcher(cfg.Feeds.APY, breaker, log)

	var store market.SnapshotStore
	if c.redis != nil {
		store = cache.NewMarketSnapshotStore(c.redis)
	}

	maxAge := time.Duration(cfg.Feeds.MaxStaleMinutes) * time.Minute
	c.market = market.NewService(fx, apy, store, c.metrics, maxAge, log)
	return nil
}

// initScheduler registers the feed polls and the maturity digest.
func (c *Container) initScheduler() error {
	if !c.cfg.Scheduler.Enabled {
		c.log.Warnw("scheduler disabled, market rates will not refresh")
		return nil
	}

	manager, err := scheduler.NewSchedulerManager(c.log.Named("scheduler"))
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	if err := manager.RegisterFeedJobs(c.market, c.cfg.Feeds.ExchangeRate.Interval(), c.cfg.Feeds.APY.Interval()); err != nil {
		return fmt.Errorf("failed to register feed jobs: %w", err)
	}
	if err := manager.RegisterMaturityDigest(c.ucs.maturityDigestJob, c.cfg.Scheduler.MaturityDigestCron); err != nil {
		return fmt.Errorf("failed to register maturity digest: %w", err)
	}

	c.schedulerManager = manager
	return nil
}
