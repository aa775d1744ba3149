package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkloop/perkloop/internal/domain/investment"
	vo "github.com/perkloop/perkloop/internal/domain/investment/valueobjects"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

func repoWith(inv *investment.Investment) *mockInvestmentRepository {
	return &mockInvestmentRepository{
		GetByIDFunc: func(_ context.Context, id string) (*investment.Investment, error) {
			if id != inv.ID() {
				return nil, investment.ErrNotFound(id)
			}
			return inv, nil
		},
	}
}

func TestUpdateDepositUseCase_MergeResetsCycle(t *testing.T) {
	inv := pendingInvestment("user-1", "Coffee", testNow.Add(-10*24*time.Hour))
	var updated *investment.Investment
	repo := repoWith(inv)
	repo.UpdateFunc = func(_ context.Context, i *investment.Investment) error {
		updated = i
		return nil
	}

	uc := NewUpdateDepositUseCase(repo, "JPY", logger.NewNopLogger())
	uc.clock = func() time.Time { return testNow }

	result, err := uc.Execute(context.Background(), UpdateDepositCommand{
		UserID:        "user-1",
		InvestmentID:  inv.ID(),
		DepositAmount: d("400000"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.True(t, result.DepositAmount.Equal(d("400000")))
	assert.Equal(t, testNow, result.CreatedAt)
	assert.Equal(t, 0, result.Progress.DaysPassed)
	assert.Equal(t, 7, result.Progress.RemainingDays)
}

func TestUpdateDepositUseCase_Rejections(t *testing.T) {
	base := pendingInvestment("user-1", "Coffee", testNow)

	tests := []struct {
		name  string
		inv   *investment.Investment
		cmd   UpdateDepositCommand
		check func(error) bool
	}{
		{"foreign user", base, UpdateDepositCommand{UserID: "user-2", InvestmentID: base.ID(), DepositAmount: d("1")}, errors.IsForbiddenError},
		{"missing investment", base, UpdateDepositCommand{UserID: "user-1", InvestmentID: "nope", DepositAmount: d("1")}, errors.IsNotFoundError},
		{"completed", withStatus(base, vo.StatusCompleted), UpdateDepositCommand{UserID: "user-1", InvestmentID: base.ID(), DepositAmount: d("1")}, errors.IsStateConflictError},
		{"suspended", withStatus(base, vo.StatusSuspended), UpdateDepositCommand{UserID: "user-1", InvestmentID: base.ID(), DepositAmount: d("1")}, errors.IsStateConflictError},
		{"zero amount", base, UpdateDepositCommand{UserID: "user-1", InvestmentID: base.ID(), DepositAmount: d("0")}, errors.IsValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUpdateDepositUseCase(repoWith(tt.inv), "JPY", logger.NewNopLogger())
			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
		})
	}
}

func TestCancelInvestmentUseCase(t *testing.T) {
	inv := pendingInvestment("user-1", "Coffee", testNow)
	deleted := ""
	repo := repoWith(inv)
	repo.DeleteFunc = func(_ context.Context, id string) error {
		deleted = id
		return nil
	}

	uc := NewCancelInvestmentUseCase(repo, logger.NewNopLogger())
	require.NoError(t, uc.Execute(context.Background(), CancelInvestmentCommand{UserID: "user-1", InvestmentID: inv.ID()}))
	assert.Equal(t, inv.ID(), deleted)
}

func TestCancelInvestmentUseCase_OnlyPending(t *testing.T) {
	inv := withStatus(pendingInvestment("user-1", "Coffee", testNow), vo.StatusActive)
	repo := repoWith(inv)
	repo.DeleteFunc = func(context.Context, string) error {
		t.Fatal("active investment must not be deleted")
		return nil
	}

	uc := NewCancelInvestmentUseCase(repo, logger.NewNopLogger())
	err := uc.Execute(context.Background(), CancelInvestmentCommand{UserID: "user-1", InvestmentID: inv.ID()})
	assert.True(t, errors.IsStateConflictError(err))
}

func TestListUserInvestmentsUseCase_ComputesProgress(t *testing.T) {
	inv := pendingInvestment("user-1", "Coffee", testNow.Add(-10*24*time.Hour))
	repo := &mockInvestmentRepository{
		ListByUserFunc: func(_ context.Context, userID string) ([]*investment.Investment, error) {
			assert.Equal(t, "user-1", userID)
			return []*investment.Investment{inv}, nil
		},
	}

	uc := NewListUserInvestmentsUseCase(repo, logger.NewNopLogger())
	uc.clock = func() time.Time { return testNow }

	result, err := uc.Execute(context.Background(), ListUserInvestmentsQuery{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 10, result[0].Progress.DaysPassed)
	assert.Equal(t, 3, result[0].Progress.DaysInCurrentCycle)
	assert.Equal(t, 4, result[0].Progress.RemainingDays)
	assert.InDelta(t, 42.857, result[0].Progress.Percent, 0.01)
}

func TestGetInvestmentUseCase_OwnerOnly(t *testing.T) {
	inv := pendingInvestment("user-1", "Coffee", testNow)
	uc := NewGetInvestmentUseCase(repoWith(inv), logger.NewNopLogger())

	got, err := uc.Execute(context.Background(), GetInvestmentQuery{UserID: "user-1", InvestmentID: inv.ID()})
	require.NoError(t, err)
	assert.Equal(t, inv.ID(), got.ID)

	_, err = uc.Execute(context.Background(), GetInvestmentQuery{UserID: "user-9", InvestmentID: inv.ID()})
	assert.True(t, errors.IsForbiddenError(err))
}
