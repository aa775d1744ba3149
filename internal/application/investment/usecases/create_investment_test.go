package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkloop/perkloop/internal/domain/investment"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
)

func newCreateUseCase(repo *mockInvestmentRepository, apy *mockAPYSource, tx *mockTxRunner) *CreateInvestmentUseCase {
	uc := NewCreateInvestmentUseCase(repo, testCatalog(), apy, tx, "JPY", logger.NewNopLogger())
	uc.clock = func() time.Time { return testNow }
	return uc
}

func TestCreateInvestmentUseCase_ProductDerivesDeposit(t *testing.T) {
	var saved *investment.Investment
	repo := &mockInvestmentRepository{
		CreateFunc: func(_ context.Context, inv *investment.Investment) error {
			saved = inv
			return nil
		},
	}
	tx := &mockTxRunner{}
	uc := newCreateUseCase(repo, &mockAPYSource{}, tx)

	result, err := uc.Execute(context.Background(), CreateInvestmentCommand{
		UserID:        "user-1",
		Kind:          IntentProduct,
		ProductID:     "coffee",
		CadenceDays:   7,
		PaymentMethod: "bank_wire",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)

	// 500 × 365 / (0.04 × 7) = 651,785.71… rounded up to whole yen
	assert.True(t, saved.DepositAmount().Equal(d("651786")), saved.DepositAmount().String())
	assert.Equal(t, "Coffee", result.ProductName)
	assert.Equal(t, 7, result.InvestmentDays)
	assert.Equal(t, "pending", result.Status)
	require.NotNil(t, result.ReferenceCode)
	assert.Regexp(t, `^PL-[0-9A-Z]{8}$`, *result.ReferenceCode)
	assert.Equal(t, 1, tx.calls)
}

func TestCreateInvestmentUseCase_ExplicitDepositSkipsAPY(t *testing.T) {
	apy := &mockAPYSource{UserAPYFunc: func() (decimal.Decimal, error) {
		t.Fatal("apy should not be consulted for an explicit deposit")
		return decimal.Zero, nil
	}}
	uc := newCreateUseCase(&mockInvestmentRepository{}, apy, &mockTxRunner{})

	result, err := uc.Execute(context.Background(), CreateInvestmentCommand{
		UserID:        "user-1",
		Kind:          IntentProduct,
		ProductID:     "rice",
		CadenceDays:   30,
		DepositAmount: d("1000000.4"),
		PaymentMethod: "stablecoin",
	})
	require.NoError(t, err)
	assert.True(t, result.DepositAmount.Equal(d("1000000")))
	assert.Nil(t, result.ReferenceCode)
}

func TestCreateInvestmentUseCase_JustSave(t *testing.T) {
	uc := newCreateUseCase(&mockInvestmentRepository{}, &mockAPYSource{}, &mockTxRunner{})

	result, err := uc.Execute(context.Background(), CreateInvestmentCommand{
		UserID:        "user-1",
		Kind:          IntentJustSave,
		Amount:        d("300000"),
		PaymentMethod: "credit_card",
	})
	require.NoError(t, err)
	assert.Equal(t, investment.JustSaveProductName, result.ProductName)
	assert.Equal(t, investment.JustSaveDays, result.InvestmentDays)
}

func TestCreateInvestmentUseCase_DuplicateIsNotCreated(t *testing.T) {
	existing := pendingInvestment("user-1", "Coffee", testNow.Add(-48*time.Hour))
	created := false
	repo := &mockInvestmentRepository{
		FindOpenByUserAndProductFunc: func(_ context.Context, userID, productName string) (*investment.Investment, error) {
			assert.Equal(t, "user-1", userID)
			assert.Equal(t, "Coffee", productName)
			return existing, nil
		},
		CreateFunc: func(context.Context, *investment.Investment) error {
			created = true
			return nil
		},
	}
	uc := newCreateUseCase(repo, &mockAPYSource{}, &mockTxRunner{})

	_, err := uc.Execute(context.Background(), CreateInvestmentCommand{
		UserID:        "user-1",
		Kind:          IntentProduct,
		ProductID:     "coffee",
		CadenceDays:   7,
		PaymentMethod: "bank_wire",
	})
	require.Error(t, err)
	assert.False(t, created)
	assert.True(t, errors.IsConflictError(err))

	var dup *investment.DuplicateError
	require.True(t, stderrors.As(err, &dup))
	assert.Equal(t, existing.ID(), dup.Existing.ID())
}

func TestCreateInvestmentUseCase_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		command CreateInvestmentCommand
	}{
		{"missing user", CreateInvestmentCommand{Kind: IntentJustSave, Amount: d("1"), PaymentMethod: "bank_wire"}},
		{"missing payment method", CreateInvestmentCommand{UserID: "u", Kind: IntentJustSave, Amount: d("1")}},
		{"unknown payment method", CreateInvestmentCommand{UserID: "u", Kind: IntentJustSave, Amount: d("1"), PaymentMethod: "paypal"}},
		{"unknown kind", CreateInvestmentCommand{UserID: "u", Kind: "gift", PaymentMethod: "bank_wire"}},
		{"product without id", CreateInvestmentCommand{UserID: "u", Kind: IntentProduct, CadenceDays: 7, PaymentMethod: "bank_wire"}},
		{"product without cadence", CreateInvestmentCommand{UserID: "u", Kind: IntentProduct, ProductID: "coffee", PaymentMethod: "bank_wire"}},
		{"negative explicit deposit", CreateInvestmentCommand{UserID: "u", Kind: IntentProduct, ProductID: "coffee", CadenceDays: 7, DepositAmount: d("-1"), PaymentMethod: "bank_wire"}},
		{"zero just-save amount", CreateInvestmentCommand{UserID: "u", Kind: IntentJustSave, PaymentMethod: "bank_wire"}},
		{"amount rounds to zero", CreateInvestmentCommand{UserID: "u", Kind: IntentJustSave, Amount: d("0.2"), PaymentMethod: "bank_wire"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newCreateUseCase(&mockInvestmentRepository{}, &mockAPYSource{}, &mockTxRunner{})
			_, err := uc.Execute(context.Background(), tt.command)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err), err.Error())
		})
	}
}

func TestCreateInvestmentUseCase_UnknownProduct(t *testing.T) {
	uc := newCreateUseCase(&mockInvestmentRepository{}, &mockAPYSource{}, &mockTxRunner{})

	_, err := uc.Execute(context.Background(), CreateInvestmentCommand{
		UserID: "u", Kind: IntentProduct, ProductID: "caviar", CadenceDays: 7, PaymentMethod: "bank_wire",
	})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestCreateInvestmentUseCase_APYUnavailable(t *testing.T) {
	apy := &mockAPYSource{UserAPYFunc: func() (decimal.Decimal, error) {
		return decimal.Zero, errors.NewUpstreamUnavailableError("gross_apy is unavailable")
	}}
	uc := newCreateUseCase(&mockInvestmentRepository{}, apy, &mockTxRunner{})

	_, err := uc.Execute(context.Background(), CreateInvestmentCommand{
		UserID: "u", Kind: IntentProduct, ProductID: "coffee", CadenceDays: 7, PaymentMethod: "bank_wire",
	})
	assert.True(t, errors.IsUpstreamUnavailableError(err))
}

func TestCreateInvestmentUseCase_PersistenceErrorIsWrapped(t *testing.T) {
	repo := &mockInvestmentRepository{
		CreateFunc: func(context.Context, *investment.Investment) error {
			return fmt.Errorf("failed to create investment: connection reset")
		},
	}
	uc := newCreateUseCase(repo, &mockAPYSource{}, &mockTxRunner{})

	_, err := uc.Execute(context.Background(), CreateInvestmentCommand{
		UserID: "u", Kind: IntentJustSave, Amount: d("5000"), PaymentMethod: "stablecoin",
	})
	require.Error(t, err)
	assert.True(t, errors.IsPersistenceError(err))
	assert.Contains(t, errors.GetAppError(err).Details, "create investment")
}
