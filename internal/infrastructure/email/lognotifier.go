package email

import (
	"context"

	adminUsecases "github.com/perkloop/perkloop/internal/application/admin/usecases"
	withdrawalUsecases "github.com/perkloop/perkloop/internal/application/withdrawal/usecases"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/utils"
)

var (
	_ adminUsecases.ShutdownNotifier        = (*LogNotifier)(nil)
	_ adminUsecases.MaturityNotifier        = (*LogNotifier)(nil)
	_ withdrawalUsecases.WithdrawalNotifier = (*LogNotifier)(nil)
)

// LogNotifier writes notifications to the log when SMTP is disabled.
type LogNotifier struct {
	logger logger.Interface
}

func NewLogNotifier(log logger.Interface) *LogNotifier {
	return &LogNotifier{logger: log}
}

func (n *LogNotifier) NotifyEmergencyShutdown(_ context.Context, notice adminUsecases.ShutdownNotice) error {
	n.logger.Warnw("emergency shutdown notice (email disabled)",
		"admin_user_id", notice.AdminUserID,
		"reason", notice.Reason,
		"attempted", notice.Attempted,
		"suspended", notice.Suspended,
		"partial", notice.Partial,
		"total_refund", notice.TotalRefund.String(),
	)
	return nil
}

func (n *LogNotifier) NotifyPrincipalWithdrawal(_ context.Context, notice withdrawalUsecases.PrincipalWithdrawalNotice) error {
	n.logger.Infow("principal withdrawal notice (email disabled)",
		"request_id", notice.RequestID,
		"user_email", utils.MaskEmail(notice.UserEmail),
		"deposit_usd", notice.DepositUSD.String(),
		"indicated_jpy", notice.IndicatedJPY.String(),
	)
	return nil
}

func (n *LogNotifier) NotifyMaturingInvestments(_ context.Context, notice adminUsecases.MaturityNotice) error {
	n.logger.Infow("maturity digest (email disabled)",
		"window_days", notice.WindowDays,
		"items", len(notice.Items),
	)
	return nil
}
