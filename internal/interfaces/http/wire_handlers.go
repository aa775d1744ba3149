package http

import (
	"context"

	"github.com/perkloop/perkloop/internal/infrastructure/content"
	"github.com/perkloop/perkloop/internal/interfaces/http/handlers"
	adminHandlers "github.com/perkloop/perkloop/internal/interfaces/http/handlers/admin"
	"github.com/perkloop/perkloop/internal/shared/services/markdown"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler     *handlers.HealthHandler
	accountHandler    *handlers.AccountHandler
	yieldHandler      *handlers.YieldHandler
	contentHandler    *handlers.ContentHandler
	investmentHandler *handlers.InvestmentHandler
	profileHandler    *handlers.ProfileHandler
	withdrawalHandler *handlers.WithdrawalHandler

	// Admin
	adminInvestmentHandler *adminHandlers.InvestmentHandler
	backOfficeHandler      *adminHandlers.BackOfficeHandler
}

// initHandlers creates every HTTP handler from the use cases.
func (c *Container) initHandlers() {
	log := c.log
	ucs := c.ucs

	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(c.healthChecks(), log),
		accountHandler: handlers.NewAccountHandler(
			ucs.registerUC, ucs.loginUC, ucs.getMeUC, log,
		),
		yieldHandler: handlers.NewYieldHandler(
			ucs.listProductsUC, ucs.quoteDepositUC, ucs.quoteCadenceUC, ucs.getRatesUC, log,
		),
		contentHandler: handlers.NewContentHandler(content.NewProvider(markdown.NewRenderer()), log),
		investmentHandler: handlers.NewInvestmentHandler(
			ucs.createInvestmentUC, ucs.updateDepositUC, ucs.cancelInvestmentUC,
			ucs.listInvestmentsUC, ucs.getInvestmentUC, log,
		),
		profileHandler: handlers.NewProfileHandler(ucs.getProfileUC, ucs.updateBankAccountUC, log),
		withdrawalHandler: handlers.NewWithdrawalHandler(
			ucs.setPreferenceUC, ucs.listPreferencesUC, ucs.requestPrincipalUC, log,
		),

		adminInvestmentHandler: adminHandlers.NewInvestmentHandler(
			ucs.adminListInvestmentsUC, ucs.confirmDepositUC, ucs.processPayoutUC,
			ucs.recordReturnsUC, ucs.rejectDepositUC, log,
		),
		backOfficeHandler: adminHandlers.NewBackOfficeHandler(adminHandlers.BackOfficeUseCases{
			EmergencyShutdown:         ucs.emergencyShutdownUC,
			ExportRefundList:          ucs.exportRefundListUC,
			AuditLogs:                 ucs.listAuditLogsUC,
			Dashboard:                 ucs.adminDashboardUC,
			UsersOverview:             ucs.usersOverviewUC,
			UpdateBalances:            ucs.updateBalancesUC,
			ListPrincipalWithdrawals:  ucs.listPrincipalWithdrawalsUC,
			UpdatePrincipalWithdrawal: ucs.updatePrincipalWithdrawalUC,
		}, log),
	}
}

// healthChecks probes the database and, when configured, redis.
func (c *Container) healthChecks() map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if c.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		}
	}
	return checks
}
