package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/shared/constants"
)

// InvestmentModel is one row per investment. Completed and suspended rows
// share (user_id, product_name) with open ones, so the pair is not unique.
type InvestmentModel struct {
	ID                 string          `gorm:"primaryKey;size:36"`
	UserID             string          `gorm:"not null;size:36;index:idx_investments_user_product,priority:1"`
	ProductName        string          `gorm:"not null;size:100;index:idx_investments_user_product,priority:2"`
	DepositAmount      decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	InvestmentDays     int             `gorm:"not null"`
	PaymentMethod      string          `gorm:"not null;size:20"`
	Status             string          `gorm:"not null;size:20;index"`
	Returns            decimal.Decimal `gorm:"column:accrued_returns;type:decimal(20,8);not null;default:0"`
	ReferenceCode      *string         `gorm:"size:20;index"`
	ExpectedReturnDate *time.Time      `gorm:"index"`

	JPYAmount       *decimal.Decimal `gorm:"type:decimal(20,8)"`
	JPYReceivedAt   *time.Time
	USDCAmount      *decimal.Decimal `gorm:"type:decimal(20,8)"`
	USDCConvertedAt *time.Time
	DeployTxHash    *string `gorm:"size:128"`
	DeployedAt      *time.Time

	PayoutAmount        *decimal.Decimal `gorm:"type:decimal(20,8)"`
	PayoutProcessedAt   *time.Time
	PayoutTransactionID *string `gorm:"size:128"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (InvestmentModel) TableName() string {
	return constants.TableInvestments
}
