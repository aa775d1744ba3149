// Package profile holds payout bank details and the admin-maintained display balances.
package profile

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/shared/errors"
)

var accountNumberRegex = regexp.MustCompile(`^[0-9-]{1,20}$`)

// BankAccount is where refunds and payouts are sent.
type BankAccount struct {
	HolderName    string
	BankName      string
	Branch        string
	AccountNumber string
	AccountType   string
}

func (b BankAccount) normalized() BankAccount {
	return BankAccount{
		HolderName:    strings.TrimSpace(b.HolderName),
		BankName:      strings.TrimSpace(b.BankName),
		Branch:        strings.TrimSpace(b.Branch),
		AccountNumber: strings.TrimSpace(b.AccountNumber),
		AccountType:   strings.TrimSpace(b.AccountType),
	}
}

// IsComplete reports whether a transfer could be made with these details.
func (b BankAccount) IsComplete() bool {
	return b.HolderName != "" && b.BankName != "" && b.AccountNumber != ""
}

// Balances are edited by administrators and are not derived from investments.
type Balances struct {
	WithdrawalPrincipalUSD decimal.Decimal
	JPYDeposit             decimal.Decimal
	TotalReturnsUSD        decimal.Decimal
}

func (b Balances) validate() error {
	if b.WithdrawalPrincipalUSD.IsNegative() || b.JPYDeposit.IsNegative() || b.TotalReturnsUSD.IsNegative() {
		return errors.NewValidationError("balances must not be negative")
	}
	return nil
}

// Divergence compares the admin-entered JPY balance with the sum of the
// user's open investments.
type Divergence struct {
	RecordedJPY   decimal.Decimal
	InvestmentJPY decimal.Decimal
	DifferenceJPY decimal.Decimal
}

func (d Divergence) HasDrift() bool {
	return !d.DifferenceJPY.IsZero()
}

type Profile struct {
	userID    string
	email     string
	bank      BankAccount
	balances  Balances
	createdAt time.Time
	updatedAt time.Time
}

func NewProfile(userID, email string, now time.Time) (*Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.NewValidationError("user id is required")
	}
	return &Profile{
		userID: userID,
		email:  strings.TrimSpace(strings.ToLower(email)),
		balances: Balances{
			WithdrawalPrincipalUSD: decimal.Zero,
			JPYDeposit:             decimal.Zero,
			TotalReturnsUSD:        decimal.Zero,
		},
		createdAt: now,
		updatedAt: now,
	}, nil
}

func (p *Profile) UpdateBankAccount(b BankAccount, now time.Time) error {
	b = b.normalized()
	if b.AccountNumber != "" && !accountNumberRegex.MatchString(b.AccountNumber) {
		return errors.NewValidationError("account number must contain digits only", b.AccountNumber)
	}
	if len(b.HolderName) > 100 || len(b.BankName) > 100 || len(b.Branch) > 100 {
		return errors.NewValidationError("bank details must be at most 100 characters")
	}
	p.bank = b
	p.updatedAt = now
	return nil
}

func (p *Profile) SetBalances(b Balances, now time.Time) error {
	if err := b.validate(); err != nil {
		return err
	}
	p.balances = b
	p.updatedAt = now
	return nil
}

// CompareWithInvestments reports how far the recorded JPY balance is from
// investedJPY, the sum of the user's active deposits.
func (p *Profile) CompareWithInvestments(investedJPY decimal.Decimal) Divergence {
	return Divergence{
		RecordedJPY:   p.balances.JPYDeposit,
		InvestmentJPY: investedJPY,
		DifferenceJPY: p.balances.JPYDeposit.Sub(investedJPY),
	}
}

func (p *Profile) UserID() string {
	return p.userID
}

func (p *Profile) Email() string {
	return p.email
}

func (p *Profile) BankAccount() BankAccount {
	return p.bank
}

func (p *Profile) Balances() Balances {
	return p.balances
}

func (p *Profile) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Profile) UpdatedAt() time.Time {
	return p.updatedAt
}

func ReconstructProfile(userID, email string, bank BankAccount, balances Balances, createdAt, updatedAt time.Time) *Profile {
	return &Profile{
		userID:    userID,
		email:     email,
		bank:      bank,
		balances:  balances,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}
