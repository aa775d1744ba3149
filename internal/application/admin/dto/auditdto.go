package dto

import "time"

type AuditLogDTO struct {
	ID           uint           `json:"id"`
	AdminUserID  string         `json:"admin_user_id"`
	ActionType   string         `json:"action_type"`
	InvestmentID *string        `json:"investment_id,omitempty"`
	Details      map[string]any `json:"details"`
	IPAddress    string         `json:"ip_address,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}
