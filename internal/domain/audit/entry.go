// Package audit records administrative actions. Entries are append-only.
package audit

import (
	"strings"
	"time"

	"github.com/perkloop/perkloop/internal/shared/errors"
)

type ActionType string

const (
	ActionConfirmDeposit            ActionType = "CONFIRM_DEPOSIT"
	ActionProcessPayout             ActionType = "PROCESS_PAYOUT"
	ActionEmergencyShutdown         ActionType = "EMERGENCY_SHUTDOWN"
	ActionRejectDeposit             ActionType = "REJECT_DEPOSIT"
	ActionRecordReturns             ActionType = "RECORD_RETURNS"
	ActionUpdateProfileBalances     ActionType = "UPDATE_PROFILE_BALANCES"
	ActionUpdatePrincipalWithdrawal ActionType = "UPDATE_PRINCIPAL_WITHDRAWAL"
)

func (a ActionType) IsValid() bool {
	switch a {
	case ActionConfirmDeposit, ActionProcessPayout, ActionEmergencyShutdown, ActionRejectDeposit,
		ActionRecordReturns, ActionUpdateProfileBalances, ActionUpdatePrincipalWithdrawal:
		return true
	default:
		return false
	}
}

type Entry struct {
	id           uint
	adminUserID  string
	action       ActionType
	investmentID *string
	details      map[string]any
	ipAddress    string
	createdAt    time.Time
}

// NewEntry builds an entry; investmentID may be empty for actions not tied to one investment.
func NewEntry(adminUserID string, action ActionType, investmentID string, details map[string]any, ipAddress string, now time.Time) (*Entry, error) {
	if strings.TrimSpace(adminUserID) == "" {
		return nil, errors.NewValidationError("admin user id is required")
	}
	if !action.IsValid() {
		return nil, errors.NewValidationError("unknown audit action", string(action))
	}
	if details == nil {
		details = map[string]any{}
	}

	e := &Entry{
		adminUserID: adminUserID,
		action:      action,
		details:     details,
		ipAddress:   ipAddress,
		createdAt:   now,
	}
	if investmentID != "" {
		e.investmentID = &investmentID
	}
	return e, nil
}

func (e *Entry) ID() uint {
	return e.id
}

func (e *Entry) SetID(id uint) {
	e.id = id
}

func (e *Entry) AdminUserID() string {
	return e.adminUserID
}

func (e *Entry) Action() ActionType {
	return e.action
}

func (e *Entry) InvestmentID() *string {
	return e.investmentID
}

func (e *Entry) Details() map[string]any {
	return e.details
}

func (e *Entry) IPAddress() string {
	return e.ipAddress
}

func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

func ReconstructEntry(id uint, adminUserID string, action ActionType, investmentID *string, details map[string]any, ipAddress string, createdAt time.Time) *Entry {
	return &Entry{
		id:           id,
		adminUserID:  adminUserID,
		action:       action,
		investmentID: investmentID,
		details:      details,
		ipAddress:    ipAddress,
		createdAt:    createdAt,
	}
}
