package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/shared/constants"
)

type ProfileModel struct {
	UserID string `gorm:"primaryKey;size:36"`
	Email  string `gorm:"not null;size:255"`

	BankHolderName    string `gorm:"size:100"`
	BankName          string `gorm:"size:100"`
	BankBranch        string `gorm:"size:100"`
	BankAccountNumber string `gorm:"size:20"`
	BankAccountType   string `gorm:"size:20"`

	WithdrawalPrincipalUSD decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	JPYDeposit             decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`
	TotalReturnsUSD        decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProfileModel) TableName() string {
	return constants.TableProfiles
}
