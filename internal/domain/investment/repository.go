package investment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/perkloop/perkloop/internal/domain/investment/valueobjects"
)

// ListFilter narrows admin listings. Zero values mean "no filter".
type ListFilter struct {
	Statuses []vo.Status
	UserID   string
	Limit    int
}

// UserTotals aggregates one user's open investments.
type UserTotals struct {
	UserID         string
	OpenDeposits   decimal.Decimal
	ActiveDeposits decimal.Decimal
	ActiveCount    int64
	PendingCount   int64
	Returns        decimal.Decimal
}

type Repository interface {
	Create(ctx context.Context, inv *Investment) error
	Update(ctx context.Context, inv *Investment) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Investment, error)
	// FindOpenByUserAndProduct returns nil, nil when the user holds no
	// pending or active investment for the product.
	FindOpenByUserAndProduct(ctx context.Context, userID, productName string) (*Investment, error)
	ListByUser(ctx context.Context, userID string) ([]*Investment, error)
	List(ctx context.Context, filter ListFilter) ([]*Investment, error)
	// SuspendAllActive suspends every active investment in one statement and
	// returns the number of rows changed.
	SuspendAllActive(ctx context.Context, now time.Time) (int64, error)
	CountByStatus(ctx context.Context, statuses ...vo.Status) (int64, error)
	SumDeposits(ctx context.Context, statuses ...vo.Status) (decimal.Decimal, error)
	CountMaturingBetween(ctx context.Context, from, to time.Time) (int64, error)
	TotalsByUser(ctx context.Context) ([]UserTotals, error)
}
