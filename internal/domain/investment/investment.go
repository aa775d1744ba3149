// Package investment models a user's deposit from checkout to payout.
package investment

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/perkloop/perkloop/internal/domain/investment/valueobjects"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/id"
)

// Deployment records funds received, converted and deployed on-chain.
type Deployment struct {
	JPYAmount       decimal.Decimal
	JPYReceivedAt   time.Time
	USDCAmount      decimal.Decimal
	USDCConvertedAt time.Time
	TxHash          string
	DeployedAt      time.Time
}

// Payout records the settlement of a matured investment.
type Payout struct {
	Amount        decimal.Decimal
	ProcessedAt   time.Time
	TransactionID string
}

// DepositConfirmation is the admin's evidence that funds arrived and were deployed.
type DepositConfirmation struct {
	JPYAmount  decimal.Decimal
	USDCAmount decimal.Decimal
	TxHash     string
}

func (c DepositConfirmation) validate() error {
	if !c.JPYAmount.IsPositive() {
		return errors.NewValidationError("jpy amount must be greater than zero")
	}
	if !c.USDCAmount.IsPositive() {
		return errors.NewValidationError("usdc amount must be greater than zero")
	}
	if strings.TrimSpace(c.TxHash) == "" {
		return errors.NewValidationError("deployment transaction hash is required")
	}
	return nil
}

type Investment struct {
	id             string
	userID         string
	productName    string
	depositAmount  decimal.Decimal
	investmentDays int
	paymentMethod  vo.PaymentMethod
	status         vo.Status
	returns        decimal.Decimal

	referenceCode      *string
	expectedReturnDate *time.Time
	deployment         *Deployment
	payout             *Payout

	createdAt time.Time
	updatedAt time.Time
}

// NewInvestment opens a pending investment from resolved checkout terms.
// Bank wire deposits receive a reference code for statement matching.
func NewInvestment(userID string, terms Terms, method vo.PaymentMethod, now time.Time) (*Investment, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.NewValidationError("user id is required")
	}
	if strings.TrimSpace(terms.ProductName) == "" {
		return nil, errors.NewValidationError("product name is required")
	}
	if !terms.DepositAmount.IsPositive() {
		return nil, errors.NewValidationError("deposit amount must be greater than zero")
	}
	if terms.InvestmentDays < 1 {
		return nil, errors.NewValidationError("investment period must be at least 1 day")
	}
	if !method.IsValid() {
		return nil, errors.NewValidationError("invalid payment method", method.String())
	}

	inv := &Investment{
		id:             id.NewUUID(),
		userID:         userID,
		productName:    terms.ProductName,
		depositAmount:  terms.DepositAmount,
		investmentDays: terms.InvestmentDays,
		paymentMethod:  method,
		status:         vo.StatusPending,
		returns:        decimal.Zero,
		createdAt:      now,
		updatedAt:      now,
	}

	if method.RequiresReferenceCode() {
		code, err := id.NewReferenceCode()
		if err != nil {
			return nil, errors.NewInternalError("failed to generate reference code")
		}
		inv.referenceCode = &code
	}

	return inv, nil
}

// ConfirmDeposit moves a pending investment to active and starts its maturity
// clock: the expected return date is the business day now + the investment period.
func (i *Investment) ConfirmDeposit(c DepositConfirmation, now time.Time) error {
	if i.status != vo.StatusPending {
		return errTransition(i.id, i.status, "confirm the deposit of")
	}
	if err := c.validate(); err != nil {
		return err
	}

	i.deployment = &Deployment{
		JPYAmount:       c.JPYAmount,
		JPYReceivedAt:   now,
		USDCAmount:      c.USDCAmount,
		USDCConvertedAt: now,
		TxHash:          strings.TrimSpace(c.TxHash),
		DeployedAt:      now,
	}
	maturity := maturityDate(now, i.investmentDays)
	i.expectedReturnDate = &maturity
	i.status = vo.StatusActive
	i.updatedAt = now
	return nil
}

// maturityDate is a calendar date: 00:00 of the business day n days after t.
func maturityDate(t time.Time, n int) time.Time {
	return biztime.StartOfDayUTC(biztime.AddDays(t, n))
}

// ProcessPayout settles a matured active investment for deposit + returns.
func (i *Investment) ProcessPayout(bankTxID string, now time.Time) error {
	if i.status != vo.StatusActive {
		return errTransition(i.id, i.status, "pay out")
	}
	if i.expectedReturnDate == nil {
		return errors.NewStateConflictError("investment has no maturity date", i.id)
	}
	if biztime.StartOfDayUTC(now).Before(*i.expectedReturnDate) {
		return errNotMatured(i.id, *i.expectedReturnDate)
	}
	if strings.TrimSpace(bankTxID) == "" {
		return errors.NewValidationError("bank transaction id is required")
	}

	i.payout = &Payout{
		Amount:        i.TotalOwed(),
		ProcessedAt:   now,
		TransactionID: strings.TrimSpace(bankTxID),
	}
	i.status = vo.StatusCompleted
	i.updatedAt = now
	return nil
}

// ChangeDeposit merges a repeat checkout into this investment. Any change
// restarts the cycle from now, and an active investment's maturity moves with it.
func (i *Investment) ChangeDeposit(amount decimal.Decimal, now time.Time) error {
	if !i.status.IsOpen() {
		return errTransition(i.id, i.status, "change the deposit of")
	}
	if !amount.IsPositive() {
		return errors.NewValidationError("deposit amount must be greater than zero")
	}

	i.depositAmount = amount
	i.createdAt = now
	if i.status == vo.StatusActive {
		maturity := maturityDate(now, i.investmentDays)
		i.expectedReturnDate = &maturity
	}
	i.updatedAt = now
	return nil
}

// RecordReturns sets the accrued returns of an active investment.
func (i *Investment) RecordReturns(returns decimal.Decimal, now time.Time) error {
	if i.status != vo.StatusActive {
		return errTransition(i.id, i.status, "record returns on")
	}
	if returns.IsNegative() {
		return errors.NewValidationError("returns must not be negative")
	}
	i.returns = returns
	i.updatedAt = now
	return nil
}

// EnsureDeletable rejects deleting anything but a pending investment.
func (i *Investment) EnsureDeletable() error {
	if i.status != vo.StatusPending {
		return errTransition(i.id, i.status, "delete")
	}
	return nil
}

// Progress is the derived cycle position at now.
func (i *Investment) Progress(now time.Time) Progress {
	return ComputeProgress(i.createdAt, i.investmentDays, now)
}

// TotalOwed is deposit plus accrued returns.
func (i *Investment) TotalOwed() decimal.Decimal {
	return i.depositAmount.Add(i.returns)
}

func (i *Investment) IsOwnedBy(userID string) bool {
	return i.userID == userID
}

func (i *Investment) ID() string {
	return i.id
}

func (i *Investment) UserID() string {
	return i.userID
}

func (i *Investment) ProductName() string {
	return i.productName
}

func (i *Investment) DepositAmount() decimal.Decimal {
	return i.depositAmount
}

func (i *Investment) InvestmentDays() int {
	return i.investmentDays
}

func (i *Investment) PaymentMethod() vo.PaymentMethod {
	return i.paymentMethod
}

func (i *Investment) Status() vo.Status {
	return i.status
}

func (i *Investment) Returns() decimal.Decimal {
	return i.returns
}

func (i *Investment) ReferenceCode() *string {
	return i.referenceCode
}

func (i *Investment) ExpectedReturnDate() *time.Time {
	return i.expectedReturnDate
}

func (i *Investment) Deployment() *Deployment {
	return i.deployment
}

func (i *Investment) Payout() *Payout {
	return i.payout
}

func (i *Investment) CreatedAt() time.Time {
	return i.createdAt
}

func (i *Investment) UpdatedAt() time.Time {
	return i.updatedAt
}

// ReconstructInvestment rebuilds an investment from persistence
func ReconstructInvestment(
	id, userID, productName string,
	depositAmount decimal.Decimal,
	investmentDays int,
	paymentMethod vo.PaymentMethod,
	status vo.Status,
	returns decimal.Decimal,
	referenceCode *string,
	expectedReturnDate *time.Time,
	deployment *Deployment,
	payout *Payout,
	createdAt, updatedAt time.Time,
) *Investment {
	return &Investment{
		id:                 id,
		userID:             userID,
		productName:        productName,
		depositAmount:      depositAmount,
		investmentDays:     investmentDays,
		paymentMethod:      paymentMethod,
		status:             status,
		returns:            returns,
		referenceCode:      referenceCode,
		expectedReturnDate: expectedReturnDate,
		deployment:         deployment,
		payout:             payout,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}
