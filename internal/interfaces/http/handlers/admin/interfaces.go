package admin

import (
	"context"

	"github.com/gin-gonic/gin"

	admindto "github.com/perkloop/perkloop/internal/application/admin/dto"
	"github.com/perkloop/perkloop/internal/application/admin/usecases"
	invdto "github.com/perkloop/perkloop/internal/application/investment/dto"
	wdto "github.com/perkloop/perkloop/internal/application/withdrawal/dto"
	"github.com/perkloop/perkloop/internal/interfaces/http/middleware"
)

type listInvestmentsUseCase interface {
	Execute(ctx context.Context, query usecases.ListInvestmentsQuery) ([]*invdto.InvestmentDTO, error)
}

type confirmDepositUseCase interface {
	Execute(ctx context.Context, cmd usecases.ConfirmDepositCommand) (*invdto.InvestmentDTO, error)
}

type processPayoutUseCase interface {
	Execute(ctx context.Context, cmd usecases.ProcessPayoutCommand) (*invdto.InvestmentDTO, error)
}

type recordReturnsUseCase interface {
	Execute(ctx context.Context, cmd usecases.RecordReturnsCommand) (*invdto.InvestmentDTO, error)
}

type rejectDepositUseCase interface {
	Execute(ctx context.Context, cmd usecases.RejectDepositCommand) error
}

type emergencyShutdownUseCase interface {
	Execute(ctx context.Context, cmd usecases.EmergencyShutdownCommand) (*admindto.EmergencyShutdownDTO, error)
}

type exportRefundListUseCase interface {
	Execute(ctx context.Context, actor usecases.Actor) (string, []byte, error)
}

type auditLogsUseCase interface {
	Execute(ctx context.Context, query usecases.ListAuditLogsQuery) ([]admindto.AuditLogDTO, error)
	ExportCSV(ctx context.Context, query usecases.ListAuditLogsQuery) (string, []byte, error)
}

type dashboardUseCase interface {
	Execute(ctx context.Context, actor usecases.Actor) (*admindto.AdminDashboardResponse, error)
}

type usersOverviewUseCase interface {
	Execute(ctx context.Context, actor usecases.Actor) (*admindto.UsersOverviewResponse, error)
}

type updateBalancesUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateBalancesCommand) (*admindto.BalanceUpdateDTO, error)
}

type listPrincipalWithdrawalsUseCase interface {
	Execute(ctx context.Context, query usecases.ListPrincipalWithdrawalsQuery) ([]*wdto.PrincipalRequestDTO, error)
}

type updatePrincipalWithdrawalUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdatePrincipalWithdrawalCommand) (*wdto.PrincipalRequestDTO, error)
}

// actorFrom identifies the admin making the request for audit entries.
func actorFrom(c *gin.Context) usecases.Actor {
	return usecases.Actor{
		UserID:    middleware.GetUserID(c),
		IPAddress: c.ClientIP(),
	}
}
