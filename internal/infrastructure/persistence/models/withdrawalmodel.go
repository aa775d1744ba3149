package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/shared/constants"
)

// WithdrawalPreferenceModel is unique on (user_id, withdrawal_type).
type WithdrawalPreferenceModel struct {
	ID             uint    `gorm:"primaryKey"`
	UserID         string  `gorm:"not null;size:36;uniqueIndex:uk_withdrawal_pref_user_type,priority:1"`
	WithdrawalType string  `gorm:"not null;size:20;uniqueIndex:uk_withdrawal_pref_user_type,priority:2"`
	Frequency      *string `gorm:"size:20"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (WithdrawalPreferenceModel) TableName() string {
	return constants.TableWithdrawalPreferences
}

type PrincipalWithdrawalModel struct {
	ID           uint            `gorm:"primaryKey"`
	UserID       string          `gorm:"not null;size:36;index"`
	UserEmail    string          `gorm:"not null;size:255"`
	DepositUSD   decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	ExchangeRate decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	IndicatedJPY decimal.Decimal `gorm:"type:decimal(20,8);not null"`
	Status       string          `gorm:"not null;size:20;index"`
	RequestedAt  time.Time       `gorm:"not null;index"`
	ProcessedAt  *time.Time
}

func (PrincipalWithdrawalModel) TableName() string {
	return constants.TablePrincipalWithdrawals
}
