package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/perkloop/perkloop/internal/shared/constants"
)

// AuditLogModel is append-only; nothing updates or deletes these rows.
type AuditLogModel struct {
	ID           uint           `gorm:"primaryKey"`
	AdminUserID  string         `gorm:"not null;size:36;index"`
	ActionType   string         `gorm:"not null;size:50;index"`
	InvestmentID *string        `gorm:"size:36;index"`
	Details      datatypes.JSON `gorm:"not null"`
	IPAddress    string         `gorm:"size:64"`
	CreatedAt    time.Time      `gorm:"not null;index"`
}

func (AuditLogModel) TableName() string {
	return constants.TableAuditLogs
}
