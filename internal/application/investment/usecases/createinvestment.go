package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/application/investment/dto"
	"github.com/perkloop/perkloop/internal/domain/catalog"
	"github.com/perkloop/perkloop/internal/domain/investment"
	vo "github.com/perkloop/perkloop/internal/domain/investment/valueobjects"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/db"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/money"
)

// Checkout intent kinds accepted by CreateInvestmentCommand.
const (
	IntentProduct  = "product"
	IntentJustSave = "just_save"
)

type CreateInvestmentCommand struct {
	UserID        string
	Kind          string
	ProductID     string
	CadenceDays   int
	DepositAmount decimal.Decimal
	Amount        decimal.Decimal
	PaymentMethod string
}

// CreateInvestmentUseCase opens a pending investment from a checkout intent.
// An open investment for the same product is returned as a DuplicateError
// instead of creating a second row.
type CreateInvestmentUseCase struct {
	repo      investment.Repository
	catalog   catalog.Catalog
	apy       UserAPYSource
	txManager db.TransactionRunner
	currency  string
	logger    logger.Interface
	clock     func() time.Time
}

func NewCreateInvestmentUseCase(
	repo investment.Repository,
	c catalog.Catalog,
	apy UserAPYSource,
	txManager db.TransactionRunner,
	currency string,
	logger logger.Interface,
) *CreateInvestmentUseCase {
	return &CreateInvestmentUseCase{
		repo:      repo,
		catalog:   c,
		apy:       apy,
		txManager: txManager,
		currency:  currency,
		logger:    logger,
		clock:     biztime.NowUTC,
	}
}

func (uc *CreateInvestmentUseCase) Execute(ctx context.Context, cmd CreateInvestmentCommand) (*dto.InvestmentDTO, error) {
	uc.logger.Infow("executing create investment use case",
		"user_id", cmd.UserID,
		"kind", cmd.Kind,
		"product_id", cmd.ProductID,
		"payment_method", cmd.PaymentMethod,
	)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Warnw("invalid create investment command", "error", err)
		return nil, err
	}

	terms, err := uc.resolveTerms(cmd)
	if err != nil {
		uc.logger.Warnw("failed to resolve checkout terms", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	now := uc.clock()
	inv, err := investment.NewInvestment(cmd.UserID, terms, vo.PaymentMethod(cmd.PaymentMethod), now)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		existing, err := uc.repo.FindOpenByUserAndProduct(txCtx, cmd.UserID, terms.ProductName)
		if err != nil {
			return errors.WrapPersistence("find open investment", cmd.UserID, err)
		}
		if existing != nil {
			return investment.NewDuplicateError(existing)
		}
		if err := uc.repo.Create(txCtx, inv); err != nil {
			return errors.WrapPersistence("create investment", inv.ID(), err)
		}
		return nil
	})
	if err != nil {
		var dup *investment.DuplicateError
		if asDuplicate(err, &dup) {
			uc.logger.Infow("duplicate investment detected",
				"user_id", cmd.UserID,
				"product_name", terms.ProductName,
				"existing_id", dup.Existing.ID(),
			)
			return nil, dup
		}
		uc.logger.Errorw("failed to create investment", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("investment created successfully",
		"investment_id", inv.ID(),
		"user_id", inv.UserID(),
		"deposit_amount", inv.DepositAmount().String(),
		"investment_days", inv.InvestmentDays(),
	)

	return dto.ToInvestmentDTO(inv, now), nil
}

// resolveTerms turns the command into checkout terms. A derived deposit is
// rounded up to the minor unit; an explicit one is rounded half-up.
func (uc *CreateInvestmentUseCase) resolveTerms(cmd CreateInvestmentCommand) (investment.Terms, error) {
	var (
		intent  investment.CheckoutIntent
		derived bool
		userAPY decimal.Decimal
	)

	switch cmd.Kind {
	case IntentProduct:
		product, ok := uc.catalog.Get(strings.TrimSpace(cmd.ProductID))
		if !ok {
			return investment.Terms{}, catalog.ErrProductNotFound(cmd.ProductID)
		}
		intent = investment.ProductIntent{
			ProductID:     product.ID,
			Name:          product.Name,
			Icon:          product.Icon,
			Price:         product.Price,
			CadenceDays:   cmd.CadenceDays,
			DepositAmount: cmd.DepositAmount,
		}
		if cmd.DepositAmount.IsZero() {
			derived = true
			apy, err := uc.apy.UserAPY()
			if err != nil {
				return investment.Terms{}, err
			}
			userAPY = apy
		}
	case IntentJustSave:
		intent = investment.FreeformSavings{Amount: cmd.Amount}
	}

	terms, err := intent.Terms(userAPY)
	if err != nil {
		return investment.Terms{}, err
	}

	if derived {
		terms.DepositAmount, err = money.CeilToMinorUnit(terms.DepositAmount, uc.currency)
	} else {
		terms.DepositAmount, err = money.Quantize(terms.DepositAmount, uc.currency)
	}
	if err != nil {
		return investment.Terms{}, errors.NewInternalError("invalid deposit currency", uc.currency)
	}
	if !terms.DepositAmount.IsPositive() {
		return investment.Terms{}, errors.NewValidationError("deposit amount rounds to zero", uc.currency)
	}
	return terms, nil
}

func (uc *CreateInvestmentUseCase) validateCommand(cmd CreateInvestmentCommand) error {
	if strings.TrimSpace(cmd.UserID) == "" {
		return errors.NewValidationError("user id is required")
	}
	if cmd.PaymentMethod == "" {
		return errors.NewValidationError("payment method is required")
	}
	if !vo.PaymentMethod(cmd.PaymentMethod).IsValid() {
		return errors.NewValidationError("invalid payment method", cmd.PaymentMethod)
	}

	switch cmd.Kind {
	case IntentProduct:
		if strings.TrimSpace(cmd.ProductID) == "" {
			return errors.NewValidationError("product_id is required for a product checkout")
		}
		if cmd.CadenceDays < 1 {
			return errors.NewValidationError("cadence_days must be at least 1")
		}
		if cmd.DepositAmount.IsNegative() {
			return errors.NewValidationError("deposit amount must be greater than zero")
		}
	case IntentJustSave:
		if !cmd.Amount.IsPositive() {
			return errors.NewValidationError("amount must be greater than zero")
		}
	default:
		return errors.NewValidationError("kind must be product or just_save", cmd.Kind)
	}
	return nil
}
