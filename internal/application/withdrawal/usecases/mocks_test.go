package usecases

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/domain/profile"
	"github.com/perkloop/perkloop/internal/domain/withdrawal"
)

type mockPreferenceRepository struct {
	UpsertFunc     func(ctx context.Context, p *withdrawal.Preference) error
	ListByUserFunc func(ctx context.Context, userID string) ([]*withdrawal.Preference, error)
}

func (m *mockPreferenceRepository) Upsert(ctx context.Context, p *withdrawal.Preference) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, p)
	}
	return nil
}

func (m *mockPreferenceRepository) ListByUser(ctx context.Context, userID string) ([]*withdrawal.Preference, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

type mockRequestRepository struct {
	CreateFunc     func(ctx context.Context, r *withdrawal.PrincipalRequest) error
	UpdateFunc     func(ctx context.Context, r *withdrawal.PrincipalRequest) error
	GetByIDFunc    func(ctx context.Context, id uint) (*withdrawal.PrincipalRequest, error)
	ListFunc       func(ctx context.Context, status withdrawal.RequestStatus) ([]*withdrawal.PrincipalRequest, error)
	HasPendingFunc func(ctx context.Context, userID string) (bool, error)
}

func (m *mockRequestRepository) Create(ctx context.Context, r *withdrawal.PrincipalRequest) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, r)
	}
	return nil
}

func (m *mockRequestRepository) Update(ctx context.Context, r *withdrawal.PrincipalRequest) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, r)
	}
	return nil
}

func (m *mockRequestRepository) GetByID(ctx context.Context, id uint) (*withdrawal.PrincipalRequest, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, withdrawal.ErrRequestNotFound(id)
}

func (m *mockRequestRepository) List(ctx context.Context, status withdrawal.RequestStatus) ([]*withdrawal.PrincipalRequest, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, status)
	}
	return nil, nil
}

func (m *mockRequestRepository) HasPending(ctx context.Context, userID string) (bool, error) {
	if m.HasPendingFunc != nil {
		return m.HasPendingFunc(ctx, userID)
	}
	return false, nil
}

type mockProfileRepository struct {
	GetByUserIDFunc func(ctx context.Context, userID string) (*profile.Profile, error)
}

func (m *mockProfileRepository) Create(context.Context, *profile.Profile) error {
	return nil
}

func (m *mockProfileRepository) Update(context.Context, *profile.Profile) error {
	return nil
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID string) (*profile.Profile, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, profile.ErrNotFound(userID)
}

func (m *mockProfileRepository) GetByUserIDs(context.Context, []string) (map[string]*profile.Profile, error) {
	return map[string]*profile.Profile{}, nil
}

func (m *mockProfileRepository) List(context.Context) ([]*profile.Profile, error) {
	return nil, nil
}

type mockRates struct {
	ExchangeRateFunc func() (decimal.Decimal, error)
}

func (m *mockRates) ExchangeRate() (decimal.Decimal, error) {
	if m.ExchangeRateFunc != nil {
		return m.ExchangeRateFunc()
	}
	return decimal.RequireFromString("150.25"), nil
}

type mockNotifier struct {
	notices []PrincipalWithdrawalNotice
	err     error
}

func (m *mockNotifier) NotifyPrincipalWithdrawal(_ context.Context, notice PrincipalWithdrawalNotice) error {
	m.notices = append(m.notices, notice)
	return m.err
}

type mockTxRunner struct{}

func (mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
