package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/domain/investment"
)

// Actor is the administrator performing an operation.
type Actor struct {
	UserID    string
	IPAddress string
}

// RoleChecker answers whether a user holds the admin role.
type RoleChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// EventPublisher announces committed lifecycle changes.
type EventPublisher interface {
	Publish(ctx context.Context, event investment.LifecycleEvent) error
}

// ShutdownNotice summarises an emergency shutdown for administrators.
type ShutdownNotice struct {
	AdminUserID string
	Reason      string
	Attempted   int64
	Suspended   int64
	Partial     bool
	RefundRows  int
	TotalRefund decimal.Decimal
	ExecutedAt  time.Time
}

type ShutdownNotifier interface {
	NotifyEmergencyShutdown(ctx context.Context, notice ShutdownNotice) error
}

// MaturingItem is one active investment due for payout soon.
type MaturingItem struct {
	InvestmentID       string
	UserID             string
	ProductName        string
	TotalOwed          decimal.Decimal
	ExpectedReturnDate time.Time
}

// MaturityNotice is the daily list of investments reaching maturity.
type MaturityNotice struct {
	WindowDays  int
	Items       []MaturingItem
	GeneratedAt time.Time
}

type MaturityNotifier interface {
	NotifyMaturingInvestments(ctx context.Context, notice MaturityNotice) error
}
