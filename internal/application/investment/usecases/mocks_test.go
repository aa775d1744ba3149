package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/domain/catalog"
	"github.com/perkloop/perkloop/internal/domain/investment"
	vo "github.com/perkloop/perkloop/internal/domain/investment/valueobjects"
)

type mockInvestmentRepository struct {
	CreateFunc                   func(ctx context.Context, inv *investment.Investment) error
	UpdateFunc                   func(ctx context.Context, inv *investment.Investment) error
	DeleteFunc                   func(ctx context.Context, id string) error
	GetByIDFunc                  func(ctx context.Context, id string) (*investment.Investment, error)
	FindOpenByUserAndProductFunc func(ctx context.Context, userID, productName string) (*investment.Investment, error)
	ListByUserFunc               func(ctx context.Context, userID string) ([]*investment.Investment, error)
	ListFunc                     func(ctx context.Context, filter investment.ListFilter) ([]*investment.Investment, error)
	SuspendAllActiveFunc         func(ctx context.Context, now time.Time) (int64, error)
	CountByStatusFunc            func(ctx context.Context, statuses ...vo.Status) (int64, error)
	SumDepositsFunc              func(ctx context.Context, statuses ...vo.Status) (decimal.Decimal, error)
	CountMaturingBetweenFunc     func(ctx context.Context, from, to time.Time) (int64, error)
	TotalsByUserFunc             func(ctx context.Context) ([]investment.UserTotals, error)
}

func (m *mockInvestmentRepository) Create(ctx context.Context, inv *investment.Investment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, inv)
	}
	return nil
}

func (m *mockInvestmentRepository) Update(ctx context.Context, inv *investment.Investment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, inv)
	}
	return nil
}

func (m *mockInvestmentRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockInvestmentRepository) GetByID(ctx context.Context, id string) (*investment.Investment, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, investment.ErrNotFound(id)
}

func (m *mockInvestmentRepository) FindOpenByUserAndProduct(ctx context.Context, userID, productName string) (*investment.Investment, error) {
	if m.FindOpenByUserAndProductFunc != nil {
		return m.FindOpenByUserAndProductFunc(ctx, userID, productName)
	}
	return nil, nil
}

func (m *mockInvestmentRepository) ListByUser(ctx context.Context, userID string) ([]*investment.Investment, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockInvestmentRepository) List(ctx context.Context, filter investment.ListFilter) ([]*investment.Investment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockInvestmentRepository) SuspendAllActive(ctx context.Context, now time.Time) (int64, error) {
	if m.SuspendAllActiveFunc != nil {
		return m.SuspendAllActiveFunc(ctx, now)
	}
	return 0, nil
}

func (m *mockInvestmentRepository) CountByStatus(ctx context.Context, statuses ...vo.Status) (int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx, statuses...)
	}
	return 0, nil
}

func (m *mockInvestmentRepository) SumDeposits(ctx context.Context, statuses ...vo.Status) (decimal.Decimal, error) {
	if m.SumDepositsFunc != nil {
		return m.SumDepositsFunc(ctx, statuses...)
	}
	return decimal.Zero, nil
}

func (m *mockInvestmentRepository) CountMaturingBetween(ctx context.Context, from, to time.Time) (int64, error) {
	if m.CountMaturingBetweenFunc != nil {
		return m.CountMaturingBetweenFunc(ctx, from, to)
	}
	return 0, nil
}

func (m *mockInvestmentRepository) TotalsByUser(ctx context.Context) ([]investment.UserTotals, error) {
	if m.TotalsByUserFunc != nil {
		return m.TotalsByUserFunc(ctx)
	}
	return nil, nil
}

type mockTxRunner struct {
	calls int
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockAPYSource struct {
	UserAPYFunc func() (decimal.Decimal, error)
}

func (m *mockAPYSource) UserAPY() (decimal.Decimal, error) {
	if m.UserAPYFunc != nil {
		return m.UserAPYFunc()
	}
	return decimal.NewFromInt(4), nil
}

type staticCatalog []catalog.Product

func (c staticCatalog) List() []catalog.Product {
	return c
}

func (c staticCatalog) Get(id string) (catalog.Product, bool) {
	for _, p := range c {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

func testCatalog() staticCatalog {
	return staticCatalog{
		{ID: "coffee", Name: "Coffee", Icon: "☕", Price: decimal.NewFromInt(500), Currency: "JPY"},
		{ID: "rice", Name: "Rice", Icon: "🍚", Price: decimal.NewFromInt(2795), Currency: "JPY"},
	}
}

var testNow = time.Date(2025, 4, 1, 3, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pendingInvestment(userID, product string, createdAt time.Time) *investment.Investment {
	return investment.ReconstructInvestment(
		"inv-1", userID, product,
		d("651786"), 7,
		vo.PaymentMethodBankWire, vo.StatusPending,
		decimal.Zero, nil, nil, nil, nil,
		createdAt, createdAt,
	)
}

func withStatus(inv *investment.Investment, status vo.Status) *investment.Investment {
	return investment.ReconstructInvestment(
		inv.ID(), inv.UserID(), inv.ProductName(),
		inv.DepositAmount(), inv.InvestmentDays(),
		inv.PaymentMethod(), status,
		inv.Returns(), inv.ReferenceCode(), inv.ExpectedReturnDate(), inv.Deployment(), inv.Payout(),
		inv.CreatedAt(), inv.UpdatedAt(),
	)
}
