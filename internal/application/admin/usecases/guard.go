package usecases

import (
	"context"
	"time"

	"github.com/perkloop/perkloop/internal/domain/audit"
	"github.com/perkloop/perkloop/internal/domain/investment"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

// requireAdmin denies the operation unless the actor holds the admin role.
func requireAdmin(ctx context.Context, roles RoleChecker, actor Actor, log logger.Interface) error {
	if actor.UserID == "" {
		return errors.NewUnauthorizedError("authentication required")
	}
	ok, err := roles.IsAdmin(ctx, actor.UserID)
	if err != nil {
		log.Errorw("failed to check admin role", "user_id", actor.UserID, "error", err)
		return errors.NewInternalError("failed to check permissions")
	}
	if !ok {
		log.Warnw("non-admin attempted admin operation", "user_id", actor.UserID)
		return errors.NewForbiddenError("admin role required")
	}
	return nil
}

func appendAudit(ctx context.Context, repo audit.Repository, actor Actor, action audit.ActionType, investmentID string, details map[string]any, now time.Time) error {
	entry, err := audit.NewEntry(actor.UserID, action, investmentID, details, actor.IPAddress, now)
	if err != nil {
		return err
	}
	if err := repo.Append(ctx, entry); err != nil {
		return errors.WrapPersistence("append audit log", string(action), err)
	}
	return nil
}

// publish sends a lifecycle event after commit. Failures are logged only.
func publish(ctx context.Context, publisher EventPublisher, event investment.LifecycleEvent, log logger.Interface) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		log.Warnw("failed to publish lifecycle event", "type", event.Type, "investment_ids", event.InvestmentIDs, "error", err)
	}
}

func loadInvestment(ctx context.Context, repo investment.Repository, id string) (*investment.Investment, error) {
	inv, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.WrapPersistence("get investment", id, err)
	}
	if inv == nil {
		return nil, investment.ErrNotFound(id)
	}
	return inv, nil
}

func wrapUpdate(id string, err error) error {
	return errors.WrapPersistence("update investment", id, err)
}

// logRejected logs expected rejections at Warn and everything else at Error.
func logRejected(log logger.Interface, op, id string, err error) {
	if errors.IsStateConflictError(err) || errors.IsValidationError(err) || errors.IsNotFoundError(err) {
		log.Warnw(op+" rejected", "investment_id", id, "error", err)
		return
	}
	log.Errorw("failed to "+op, "investment_id", id, "error", err)
}

func wrapDelete(id string, err error) error {
	return errors.WrapPersistence("delete investment", id, err)
}
