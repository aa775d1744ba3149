package usecases

import (
	"context"
	"time"

	"github.com/perkloop/perkloop/internal/application/admin/dto"
	"github.com/perkloop/perkloop/internal/domain/audit"
	"github.com/perkloop/perkloop/internal/domain/investment"
	vo "github.com/perkloop/perkloop/internal/domain/investment/valueobjects"
	"github.com/perkloop/perkloop/internal/domain/profile"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

type EmergencyShutdownCommand struct {
	Actor  Actor
	Reason string
}

// EmergencyShutdownUseCase suspends every active investment in one batched
// update and returns the refund list for manual resolution. A shutdown that
// suspends fewer rows than it counted is reported as partial, not failed.
type EmergencyShutdownUseCase struct {
	investments investment.Repository
	profiles    profile.Repository
	auditRepo   audit.Repository
	roles       RoleChecker
	publisher   EventPublisher
	notifier    ShutdownNotifier
	logger      logger.Interface
	clock       func() time.Time
}

func NewEmergencyShutdownUseCase(
	investments investment.Repository,
	profiles profile.Repository,
	auditRepo audit.Repository,
	roles RoleChecker,
	publisher EventPublisher,
	notifier ShutdownNotifier,
	logger logger.Interface,
) *EmergencyShutdownUseCase {
	return &EmergencyShutdownUseCase{
		investments: investments,
		profiles:    profiles,
		auditRepo:   auditRepo,
		roles:       roles,
		publisher:   publisher,
		notifier:    notifier,
		logger:      logger,
		clock:       biztime.NowUTC,
	}
}

func (uc *EmergencyShutdownUseCase) Execute(ctx context.Context, cmd EmergencyShutdownCommand) (*dto.EmergencyShutdownDTO, error) {
	uc.logger.Warnw("executing emergency shutdown use case",
		"admin_id", cmd.Actor.UserID,
		"reason", cmd.Reason,
	)

	if err := requireAdmin(ctx, uc.roles, cmd.Actor, uc.logger); err != nil {
		return nil, err
	}

	now := uc.clock()

	attempted, err := uc.investments.CountByStatus(ctx, vo.StatusActive)
	if err != nil {
		uc.logger.Errorw("failed to count active investments", "error", err)
		return nil, errors.WrapPersistence("count active investments", "", err)
	}

	suspended, err := uc.investments.SuspendAllActive(ctx, now)
	if err != nil {
		uc.logger.Errorw("emergency shutdown update failed", "attempted", attempted, "error", err)
		return nil, errors.WrapPersistence("suspend active investments", "", err)
	}
	partial := suspended < attempted
	if partial {
		uc.logger.Errorw("emergency shutdown partially applied",
			"attempted", attempted,
			"suspended", suspended,
		)
	}

	result := &dto.EmergencyShutdownDTO{
		Attempted:  attempted,
		Suspended:  suspended,
		Partial:    partial,
		ExecutedAt: now,
	}

	details := map[string]any{
		"attempted": attempted,
		"suspended": suspended,
		"partial":   partial,
	}
	if cmd.Reason != "" {
		details["reason"] = cmd.Reason
	}
	if err := appendAudit(ctx, uc.auditRepo, cmd.Actor, audit.ActionEmergencyShutdown, "", details, now); err != nil {
		uc.logger.Errorw("failed to record emergency shutdown audit entry", "suspended", suspended, "error", err)
	} else {
		result.AuditRecorded = true
	}

	list, err := buildRefundList(ctx, uc.investments, uc.profiles)
	if err != nil {
		uc.logger.Errorw("failed to build refund list after shutdown", "error", err)
		return nil, err
	}
	result.Rows = list.Rows
	result.TotalRefund = list.Total

	uc.logger.Warnw("emergency shutdown executed",
		"attempted", attempted,
		"suspended", suspended,
		"refund_rows", len(list.Rows),
		"total_refund", list.Total.String(),
	)

	publish(ctx, uc.publisher, investment.LifecycleEvent{
		Type:       investment.EventSuspended,
		Count:      suspended,
		OccurredAt: now,
	}, uc.logger)

	if uc.notifier != nil {
		notice := ShutdownNotice{
			AdminUserID: cmd.Actor.UserID,
			Reason:      cmd.Reason,
			Attempted:   attempted,
			Suspended:   suspended,
			Partial:     partial,
			RefundRows:  len(list.Rows),
			TotalRefund: list.Total,
			ExecutedAt:  now,
		}
		if err := uc.notifier.NotifyEmergencyShutdown(ctx, notice); err != nil {
			uc.logger.Warnw("failed to send emergency shutdown notice", "error", err)
		}
	}

	return result, nil
}
