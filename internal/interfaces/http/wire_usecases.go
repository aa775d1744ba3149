package http

import (
	"fmt"

	accountUsecases "github.com/perkloop/perkloop/internal/application/account/usecases"
	adminUsecases "github.com/perkloop/perkloop/internal/application/admin/usecases"
	investmentUsecases "github.com/perkloop/perkloop/internal/application/investment/usecases"
	profileUsecases "github.com/perkloop/perkloop/internal/application/profile/usecases"
	withdrawalUsecases "github.com/perkloop/perkloop/internal/application/withdrawal/usecases"
	yieldUsecases "github.com/perkloop/perkloop/internal/application/yield/usecases"
	"github.com/perkloop/perkloop/internal/domain/yield"
	"github.com/perkloop/perkloop/internal/infrastructure/auth"
	"github.com/perkloop/perkloop/internal/infrastructure/catalog"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Account
	registerUC *accountUsecases.RegisterUseCase
	loginUC    *accountUsecases.LoginUseCase
	getMeUC    *accountUsecases.GetMeUseCase

	// Yield and quotes
	listProductsUC *yieldUsecases.ListProductsUseCase
	quoteDepositUC *yieldUsecases.QuoteDepositUseCase
	quoteCadenceUC *yieldUsecases.QuoteCadenceUseCase
	getRatesUC     *yieldUsecases.GetRatesUseCase

	// Investments
	createInvestmentUC *investmentUsecases.CreateInvestmentUseCase
	updateDepositUC    *investmentUsecases.UpdateDepositUseCase
	cancelInvestmentUC *investmentUsecases.CancelInvestmentUseCase
	listInvestmentsUC  *investmentUsecases.ListUserInvestmentsUseCase
	getInvestmentUC    *investmentUsecases.GetInvestmentUseCase

	// Profile
	getProfileUC        *profileUsecases.GetProfileUseCase
	updateBankAccountUC *profileUsecases.UpdateBankAccountUseCase

	// Withdrawals
	setPreferenceUC    *withdrawalUsecases.SetPreferenceUseCase
	listPreferencesUC  *withdrawalUsecases.ListPreferencesUseCase
	requestPrincipalUC *withdrawalUsecases.RequestPrincipalWithdrawalUseCase

	// Admin
	adminListInvestmentsUC      *adminUsecases.ListInvestmentsUseCase
	confirmDepositUC            *adminUsecases.ConfirmDepositUseCase
	processPayoutUC             *adminUsecases.ProcessPayoutUseCase
	recordReturnsUC             *adminUsecases.RecordReturnsUseCase
	rejectDepositUC             *adminUsecases.RejectDepositUseCase
	emergencyShutdownUC         *adminUsecases.EmergencyShutdownUseCase
	exportRefundListUC          *adminUsecases.ExportRefundListUseCase
	listAuditLogsUC             *adminUsecases.ListAuditLogsUseCase
	adminDashboardUC            *adminUsecases.GetAdminDashboardUseCase
	usersOverviewUC             *adminUsecases.GetUsersOverviewUseCase
	updateBalancesUC            *adminUsecases.UpdateBalancesUseCase
	listPrincipalWithdrawalsUC  *adminUsecases.ListPrincipalWithdrawalsUseCase
	updatePrincipalWithdrawalUC *adminUsecases.UpdatePrincipalWithdrawalUseCase

	// Jobs
	maturityDigestJob *adminUsecases.MaturityDigestJob
}

// initUseCases creates every use case. The fee policy version and the
// product catalog are validated here so a bad deployment fails at start-up.
func (c *Container) initUseCases() error {
	cfg := c.cfg
	log := c.log
	repos := c.repos

	policy, err := yield.PolicyByVersion(cfg.Yield.FeePolicy)
	if err != nil {
		return fmt.Errorf("invalid yield configuration: %w", err)
	}

	products, err := catalog.Load(cfg.Catalog.Path, log.Named("catalog"))
	if err != nil {
		return err
	}

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	apy := yieldUsecases.NewAPYProvider(policy, c.market)
	currency := cfg.Yield.DepositCurrency

	c.ucs = &allUseCases{
		registerUC: accountUsecases.NewRegisterUseCase(repos.userRepo, repos.profileRepo, hasher, c.jwtSvc, c.txManager, log),
		loginUC:    accountUsecases.NewLoginUseCase(repos.userRepo, hasher, c.jwtSvc, c.enforcer, log),
		getMeUC:    accountUsecases.NewGetMeUseCase(repos.userRepo, c.enforcer, log),

		listProductsUC: yieldUsecases.NewListProductsUseCase(products),
		quoteDepositUC: yieldUsecases.NewQuoteDepositUseCase(products, apy, currency, log),
		quoteCadenceUC: yieldUsecases.NewQuoteCadenceUseCase(products, apy),
		getRatesUC:     yieldUsecases.NewGetRatesUseCase(apy, c.market, log),

		createInvestmentUC: investmentUsecases.NewCreateInvestmentUseCase(repos.investmentRepo, products, apy, c.txManager, currency, log),
		updateDepositUC:    investmentUsecases.NewUpdateDepositUseCase(repos.investmentRepo, currency, log),
		cancelInvestmentUC: investmentUsecases.NewCancelInvestmentUseCase(repos.investmentRepo, log),
		listInvestmentsUC:  investmentUsecases.NewListUserInvestmentsUseCase(repos.investmentRepo, log),
		getInvestmentUC:    investmentUsecases.NewGetInvestmentUseCase(repos.investmentRepo, log),

		getProfileUC:        profileUsecases.NewGetProfileUseCase(repos.profileRepo, log),
		updateBankAccountUC: profileUsecases.NewUpdateBankAccountUseCase(repos.profileRepo, log),

		setPreferenceUC:   withdrawalUsecases.NewSetPreferenceUseCase(repos.withdrawalPrefRepo, log),
		listPreferencesUC: withdrawalUsecases.NewListPreferencesUseCase(repos.withdrawalPrefRepo, log),
		requestPrincipalUC: withdrawalUsecases.NewRequestPrincipalWithdrawalUseCase(
			repos.principalWithdrawalRepo, repos.profileRepo, c.market, c.notifier, c.txManager, log,
		),

		adminListInvestmentsUC: adminUsecases.NewListInvestmentsUseCase(repos.investmentRepo, c.enforcer, log),
		confirmDepositUC: adminUsecases.NewConfirmDepositUseCase(
			repos.investmentRepo, repos.auditLogRepo, c.enforcer, c.publisher, c.txManager, log,
		),
		processPayoutUC: adminUsecases.NewProcessPayoutUseCase(
			repos.investmentRepo, repos.auditLogRepo, c.enforcer, c.publisher, c.txManager, log,
		),
		recordReturnsUC: adminUsecases.NewRecordReturnsUseCase(
			repos.investmentRepo, repos.auditLogRepo, c.enforcer, c.txManager, log,
		),
		rejectDepositUC: adminUsecases.NewRejectDepositUseCase(
			repos.investmentRepo, repos.auditLogRepo, c.enforcer, c.publisher, c.txManager, log,
		),
		emergencyShutdownUC: adminUsecases.NewEmergencyShutdownUseCase(
			repos.investmentRepo, repos.profileRepo, repos.auditLogRepo, c.enforcer, c.publisher, c.notifier, log,
		),
		exportRefundListUC: adminUsecases.NewExportRefundListUseCase(repos.investmentRepo, repos.profileRepo, c.enforcer, log),
		listAuditLogsUC:    adminUsecases.NewListAuditLogsUseCase(repos.auditLogRepo, c.enforcer, log),
		adminDashboardUC:   adminUsecases.NewGetAdminDashboardUseCase(repos.userRepo, repos.investmentRepo, c.enforcer, cfg.Pilot, log),
		usersOverviewUC:    adminUsecases.NewGetUsersOverviewUseCase(repos.profileRepo, repos.investmentRepo, c.enforcer, cfg.Pilot, log),
		updateBalancesUC: adminUsecases.NewUpdateBalancesUseCase(
			repos.profileRepo, repos.investmentRepo, repos.auditLogRepo, c.enforcer, c.txManager, log,
		),
		listPrincipalWithdrawalsUC: adminUsecases.NewListPrincipalWithdrawalsUseCase(repos.principalWithdrawalRepo, c.enforcer, log),
		updatePrincipalWithdrawalUC: adminUsecases.NewUpdatePrincipalWithdrawalUseCase(
			repos.principalWithdrawalRepo, repos.auditLogRepo, c.enforcer, c.txManager, log,
		),

		maturityDigestJob: adminUsecases.NewMaturityDigestJob(repos.investmentRepo, c.notifier, cfg.Pilot.MaturingWindowDays, log.Named("maturity-digest")),
	}

	return nil
}
