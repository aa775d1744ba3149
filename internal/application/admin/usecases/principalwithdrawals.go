package usecases

import (
	"context"
	"strconv"
	"time"

	wdto "github.com/perkloop/perkloop/internal/application/withdrawal/dto"
	"github.com/perkloop/perkloop/internal/domain/audit"
	"github.com/perkloop/perkloop/internal/domain/withdrawal"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/db"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

type ListPrincipalWithdrawalsQuery struct {
	Actor  Actor
	Status string
}

type ListPrincipalWithdrawalsUseCase struct {
	repo   withdrawal.PrincipalRequestRepository
	roles  RoleChecker
	logger logger.Interface
}

func NewListPrincipalWithdrawalsUseCase(repo withdrawal.PrincipalRequestRepository, roles RoleChecker, logger logger.Interface) *ListPrincipalWithdrawalsUseCase {
	return &ListPrincipalWithdrawalsUseCase{repo: repo, roles: roles, logger: logger}
}

func (uc *ListPrincipalWithdrawalsUseCase) Execute(ctx context.Context, query ListPrincipalWithdrawalsQuery) ([]*wdto.PrincipalRequestDTO, error) {
	if err := requireAdmin(ctx, uc.roles, query.Actor, uc.logger); err != nil {
		return nil, err
	}

	status := withdrawal.RequestStatus(query.Status)
	if status != "" && !status.IsValid() {
		return nil, errors.NewValidationError("invalid request status", query.Status)
	}

	items, err := uc.repo.List(ctx, status)
	if err != nil {
		uc.logger.Errorw("failed to list principal withdrawals", "error", err)
		return nil, errors.WrapPersistence("list principal withdrawals", "", err)
	}
	return wdto.ToPrincipalRequestDTOs(items), nil
}

type UpdatePrincipalWithdrawalCommand struct {
	Actor     Actor
	RequestID uint
	Status    string
}

// UpdatePrincipalWithdrawalUseCase toggles a request between pending and done.
type UpdatePrincipalWithdrawalUseCase struct {
	repo      withdrawal.PrincipalRequestRepository
	auditRepo audit.Repository
	roles     RoleChecker
	txManager db.TransactionRunner
	logger    logger.Interface
	clock     func() time.Time
}

func NewUpdatePrincipalWithdrawalUseCase(
	repo withdrawal.PrincipalRequestRepository,
	auditRepo audit.Repository,
	roles RoleChecker,
	txManager db.TransactionRunner,
	logger logger.Interface,
) *UpdatePrincipalWithdrawalUseCase {
	return &UpdatePrincipalWithdrawalUseCase{
		repo:      repo,
		auditRepo: auditRepo,
		roles:     roles,
		txManager: txManager,
		logger:    logger,
		clock:     biztime.NowUTC,
	}
}

func (uc *UpdatePrincipalWithdrawalUseCase) Execute(ctx context.Context, cmd UpdatePrincipalWithdrawalCommand) (*wdto.PrincipalRequestDTO, error) {
	uc.logger.Infow("executing update principal withdrawal use case",
		"request_id", cmd.RequestID,
		"status", cmd.Status,
		"admin_id", cmd.Actor.UserID,
	)

	if err := requireAdmin(ctx, uc.roles, cmd.Actor, uc.logger); err != nil {
		return nil, err
	}

	now := uc.clock()
	var updated *withdrawal.PrincipalRequest

	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		req, err := uc.repo.GetByID(txCtx, cmd.RequestID)
		if err != nil {
			return errors.WrapPersistence("get principal withdrawal", strconv.FormatUint(uint64(cmd.RequestID), 10), err)
		}
		if req == nil {
			return withdrawal.ErrRequestNotFound(cmd.RequestID)
		}

		previous := req.Status()
		changed, err := req.SetStatus(withdrawal.RequestStatus(cmd.Status), now)
		if err != nil {
			return err
		}
		updated = req
		if !changed {
			return nil
		}

		if err := uc.repo.Update(txCtx, req); err != nil {
			return errors.WrapPersistence("update principal withdrawal", strconv.FormatUint(uint64(req.ID()), 10), err)
		}

		details := map[string]any{
			"request_id":      req.ID(),
			"user_id":         req.UserID(),
			"previous_status": string(previous),
			"status":          string(req.Status()),
		}
		return appendAudit(txCtx, uc.auditRepo, cmd.Actor, audit.ActionUpdatePrincipalWithdrawal, "", details, now)
	})
	if err != nil {
		if errors.IsValidationError(err) || errors.IsNotFoundError(err) {
			uc.logger.Warnw("update principal withdrawal rejected", "request_id", cmd.RequestID, "error", err)
		} else {
			uc.logger.Errorw("failed to update principal withdrawal", "request_id", cmd.RequestID, "error", err)
		}
		return nil, err
	}

	return wdto.ToPrincipalRequestDTO(updated), nil
}
