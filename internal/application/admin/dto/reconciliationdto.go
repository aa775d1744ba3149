package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefundRowDTO is one line of the manual refund list.
type RefundRowDTO struct {
	InvestmentID  string          `json:"investment_id"`
	UserID        string          `json:"user_id"`
	Status        string          `json:"status"`
	Email         string          `json:"email"`
	BankName      string          `json:"bank_name"`
	Branch        string          `json:"branch"`
	AccountNumber string          `json:"account_number"`
	HolderName    string          `json:"holder_name"`
	RefundAmount  decimal.Decimal `json:"refund_amount"`
}

// EmergencyShutdownDTO reports how much of the bulk suspension applied.
type EmergencyShutdownDTO struct {
	Attempted     int64           `json:"attempted"`
	Suspended     int64           `json:"suspended"`
	Partial       bool            `json:"partial"`
	AuditRecorded bool            `json:"audit_recorded"`
	ExecutedAt    time.Time       `json:"executed_at"`
	TotalRefund   decimal.Decimal `json:"total_refund"`
	Rows          []RefundRowDTO  `json:"rows"`
}
