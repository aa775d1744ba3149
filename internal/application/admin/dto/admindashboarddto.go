package dto

import (
	"github.com/shopspring/decimal"

	profiledto "github.com/perkloop/perkloop/internal/application/profile/dto"
)

// AdminDashboardResponse is the back-office summary of the pilot.
type AdminDashboardResponse struct {
	TotalUsers      int64           `json:"total_users"`
	UserLimit       int             `json:"user_limit"`
	TotalAUM        decimal.Decimal `json:"total_aum"`
	AUMLimit        decimal.Decimal `json:"aum_limit"`
	AUMRemaining    decimal.Decimal `json:"aum_remaining"`
	AUMUsedPercent  float64         `json:"aum_used_percent"`
	PendingDeposits int64           `json:"pending_deposits"`
	ActiveCount     int64           `json:"active_count"`
	SuspendedCount  int64           `json:"suspended_count"`
	MaturingSoon    int64           `json:"maturing_soon"`
	MaturingWindow  int             `json:"maturing_window_days"`
}

// UserOverviewDTO is one user's investment totals beside their recorded balances.
type UserOverviewDTO struct {
	UserID         string                   `json:"user_id"`
	Email          string                   `json:"email"`
	OpenDeposits   decimal.Decimal          `json:"open_deposits"`
	ActiveDeposits decimal.Decimal          `json:"active_deposits"`
	ActiveCount    int64                    `json:"active_count"`
	PendingCount   int64                    `json:"pending_count"`
	Returns        decimal.Decimal          `json:"returns"`
	Balances       profiledto.BalancesDTO   `json:"balances"`
	Divergence     profiledto.DivergenceDTO `json:"divergence"`
}

type UsersOverviewResponse struct {
	Users     []UserOverviewDTO `json:"users"`
	UserCount int               `json:"user_count"`
	UserLimit int               `json:"user_limit"`
}

// BalanceUpdateDTO is the profile after an admin balance edit.
type BalanceUpdateDTO struct {
	Profile    *profiledto.ProfileDTO   `json:"profile"`
	Divergence profiledto.DivergenceDTO `json:"divergence"`
}
