package http

import (
	"gorm.io/gorm"

	"github.com/perkloop/perkloop/internal/domain/account"
	"github.com/perkloop/perkloop/internal/domain/audit"
	"github.com/perkloop/perkloop/internal/domain/investment"
	"github.com/perkloop/perkloop/internal/domain/profile"
	"github.com/perkloop/perkloop/internal/domain/withdrawal"
	"github.com/perkloop/perkloop/internal/infrastructure/repository"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	userRepo                account.Repository
	profileRepo             profile.Repository
	investmentRepo          investment.Repository
	auditLogRepo            audit.Repository
	withdrawalPrefRepo      withdrawal.PreferenceRepository
	principalWithdrawalRepo withdrawal.PrincipalRequestRepository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(gdb *gorm.DB, log logger.Interface) *repositories {
	return &repositories{
		userRepo:                repository.NewUserRepository(gdb, log),
		profileRepo:             repository.NewProfileRepository(gdb, log),
		investmentRepo:          repository.NewInvestmentRepository(gdb, log),
		auditLogRepo:            repository.NewAuditLogRepository(gdb, log),
		withdrawalPrefRepo:      repository.NewWithdrawalPreferenceRepository(gdb, log),
		principalWithdrawalRepo: repository.NewPrincipalWithdrawalRepository(gdb, log),
	}
}
