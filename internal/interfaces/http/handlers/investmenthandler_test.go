package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkloop/perkloop/internal/application/investment/dto"
	"github.com/perkloop/perkloop/internal/application/investment/usecases"
	"github.com/perkloop/perkloop/internal/domain/investment"
	vo "github.com/perkloop/perkloop/internal/domain/investment/valueobjects"
	"github.com/perkloop/perkloop/internal/interfaces/http/handlers/testutil"
	"github.com/perkloop/perkloop/internal/shared/errors"
)

type mockCreateInvestmentUC struct {
	result  *dto.InvestmentDTO
	err     error
	lastCmd usecases.CreateInvestmentCommand
}

func (m *mockCreateInvestmentUC) Execute(_ context.Context, cmd usecases.CreateInvestmentCommand) (*dto.InvestmentDTO, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

type mockUpdateDepositUC struct {
	result  *dto.InvestmentDTO
	err     error
	lastCmd usecases.UpdateDepositCommand
}

func (m *mockUpdateDepositUC) Execute(_ context.Context, cmd usecases.UpdateDepositCommand) (*dto.InvestmentDTO, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

type mockCancelInvestmentUC struct {
	err     error
	lastCmd usecases.CancelInvestmentCommand
}

func (m *mockCancelInvestmentUC) Execute(_ context.Context, cmd usecases.CancelInvestmentCommand) error {
	m.lastCmd = cmd
	return m.err
}

type mockListUserInvestmentsUC struct {
	result    []*dto.InvestmentDTO
	err       error
	lastQuery usecases.ListUserInvestmentsQuery
}

func (m *mockListUserInvestmentsUC) Execute(_ context.Context, query usecases.ListUserInvestmentsQuery) ([]*dto.InvestmentDTO, error) {
	m.lastQuery = query
	return m.result, m.err
}

type mockGetInvestmentUC struct {
	result *dto.InvestmentDTO
	err    error
}

func (m *mockGetInvestmentUC) Execute(_ context.Context, _ usecases.GetInvestmentQuery) (*dto.InvestmentDTO, error) {
	return m.result, m.err
}

const testUserID = "0b7f1f8e-3d1c-4a57-9a0e-5d2f8c1e9a10"

func newTestInvestmentHandler(
	create usecases.CreateInvestmentExecutor,
	update usecases.UpdateDepositExecutor,
	cancel usecases.CancelInvestmentExecutor,
	list usecases.ListUserInvestmentsExecutor,
	get usecases.GetInvestmentExecutor,
) *InvestmentHandler {
	return NewInvestmentHandler(create, update, cancel, list, get, testutil.NewMockLogger())
}

func TestInvestmentHandler_Create_Product(t *testing.T) {
	uc := &mockCreateInvestmentUC{result: &dto.InvestmentDTO{ID: "inv-1", Status: "pending"}}
	handler := newTestInvestmentHandler(uc, nil, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/investments", map[string]any{
		"kind":           "product",
		"product_id":     "milk",
		"cadence_days":   7,
		"payment_method": "bank_wire",
	})
	testutil.SetAuthContext(c, testUserID, "user")

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, testUserID, uc.lastCmd.UserID)
	assert.Equal(t, "milk", uc.lastCmd.ProductID)
	assert.Equal(t, 7, uc.lastCmd.CadenceDays)
	assert.True(t, uc.lastCmd.DepositAmount.IsZero())

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)
}

func TestInvestmentHandler_Create_JustSaveAmountFromString(t *testing.T) {
	uc := &mockCreateInvestmentUC{result: &dto.InvestmentDTO{ID: "inv-2"}}
	handler := newTestInvestmentHandler(uc, nil, nil, nil, nil)

	c, w := testutil.NewRawTestContext(http.MethodPost, "/investments",
		`{"kind":"just_save","amount":"120000.5","payment_method":"stablecoin"}`)
	testutil.SetAuthContext(c, testUserID, "user")

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "120000.5", uc.lastCmd.Amount.String())
}

func TestInvestmentHandler_Create_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown kind", `{"kind":"loan","payment_method":"bank_wire"}`},
		{"missing payment method", `{"kind":"just_save","amount":"100"}`},
		{"product without id", `{"kind":"product","cadence_days":7,"payment_method":"bank_wire"}`},
		{"unknown payment method", `{"kind":"just_save","amount":"100","payment_method":"cash"}`},
		{"malformed json", `{"kind":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockCreateInvestmentUC{}
			handler := newTestInvestmentHandler(uc, nil, nil, nil, nil)

			c, w := testutil.NewRawTestContext(http.MethodPost, "/investments", tt.body)
			testutil.SetAuthContext(c, testUserID, "user")

			handler.Create(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, uc.lastCmd.UserID, "use case must not run")
		})
	}
}

func TestInvestmentHandler_Create_DuplicateCarriesExisting(t *testing.T) {
	existing, err := investment.NewInvestment(testUserID, investment.Terms{
		ProductName:    "Milk",
		DepositAmount:  decimal.NewFromInt(651786),
		InvestmentDays: 7,
	}, vo.PaymentMethodBankWire, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	uc := &mockCreateInvestmentUC{err: investment.NewDuplicateError(existing)}
	handler := newTestInvestmentHandler(uc, nil, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/investments", map[string]any{
		"kind":           "product",
		"product_id":     "milk",
		"cadence_days":   7,
		"payment_method": "bank_wire",
	})
	testutil.SetAuthContext(c, testUserID, "user")

	handler.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "duplicate_investment", resp.Error.Type)

	var data struct {
		Existing dto.InvestmentDTO `json:"existing"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, existing.ID(), data.Existing.ID)
	assert.Equal(t, "651786", data.Existing.DepositAmount.String())
}

func TestInvestmentHandler_UpdateDeposit(t *testing.T) {
	uc := &mockUpdateDepositUC{result: &dto.InvestmentDTO{ID: "inv-1"}}
	handler := newTestInvestmentHandler(nil, uc, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPut, "/investments/inv-1/deposit", map[string]any{
		"deposit_amount": "700000",
	})
	testutil.SetAuthContext(c, testUserID, "user")
	testutil.SetURLParam(c, "id", "inv-1")

	handler.UpdateDeposit(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "inv-1", uc.lastCmd.InvestmentID)
	assert.Equal(t, "700000", uc.lastCmd.DepositAmount.String())
}

func TestInvestmentHandler_UpdateDeposit_RejectsNonPositive(t *testing.T) {
	uc := &mockUpdateDepositUC{}
	handler := newTestInvestmentHandler(nil, uc, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPut, "/investments/inv-1/deposit", map[string]any{
		"deposit_amount": "-5",
	})
	testutil.SetAuthContext(c, testUserID, "user")
	testutil.SetURLParam(c, "id", "inv-1")

	handler.UpdateDeposit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvestmentHandler_Cancel(t *testing.T) {
	t.Run("pending is cancelled", func(t *testing.T) {
		uc := &mockCancelInvestmentUC{}
		handler := newTestInvestmentHandler(nil, nil, uc, nil, nil)

		c, _ := testutil.NewTestContext(http.MethodDelete, "/investments/inv-1", nil)
		testutil.SetAuthContext(c, testUserID, "user")
		testutil.SetURLParam(c, "id", "inv-1")

		handler.Cancel(c)

		assert.Equal(t, http.StatusNoContent, c.Writer.Status())
		assert.Equal(t, testUserID, uc.lastCmd.UserID)
	})

	t.Run("non-pending is a state conflict", func(t *testing.T) {
		uc := &mockCancelInvestmentUC{err: errors.NewStateConflictError("investment is not pending")}
		handler := newTestInvestmentHandler(nil, nil, uc, nil, nil)

		c, w := testutil.NewTestContext(http.MethodDelete, "/investments/inv-1", nil)
		testutil.SetAuthContext(c, testUserID, "user")
		testutil.SetURLParam(c, "id", "inv-1")

		handler.Cancel(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		var resp testutil.APIResponse
		require.NoError(t, testutil.ParseResponse(w, &resp))
		assert.Equal(t, string(errors.ErrorTypeStateConflict), resp.Error.Type)
	})
}

func TestInvestmentHandler_ListAndGet(t *testing.T) {
	list := &mockListUserInvestmentsUC{result: []*dto.InvestmentDTO{{ID: "a"}, {ID: "b"}}}
	get := &mockGetInvestmentUC{err: errors.NewForbiddenError("not your investment")}
	handler := newTestInvestmentHandler(nil, nil, nil, list, get)

	c, w := testutil.NewTestContext(http.MethodGet, "/investments", nil)
	testutil.SetAuthContext(c, testUserID, "user")
	handler.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testUserID, list.lastQuery.UserID)

	c, w = testutil.NewTestContext(http.MethodGet, "/investments/x", nil)
	testutil.SetAuthContext(c, testUserID, "user")
	testutil.SetURLParam(c, "id", "x")
	handler.Get(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
