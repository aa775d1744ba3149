package admin

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	admindto "github.com/perkloop/perkloop/internal/application/admin/dto"
	"github.com/perkloop/perkloop/internal/application/admin/usecases"
	invdto "github.com/perkloop/perkloop/internal/application/investment/dto"
	wdto "github.com/perkloop/perkloop/internal/application/withdrawal/dto"
	"github.com/perkloop/perkloop/internal/interfaces/http/handlers/testutil"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/utils"
)

const adminID = "5e0c7c1a-2b8f-4f4e-9a51-0c6f1d2e3b4a"

func TestMain(m *testing.M) {
	if err := utils.RegisterValidators(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type mockConfirmUC struct {
	lastCmd usecases.ConfirmDepositCommand
	err     error
}

func (m *mockConfirmUC) Execute(_ context.Context, cmd usecases.ConfirmDepositCommand) (*invdto.InvestmentDTO, error) {
	m.lastCmd = cmd
	if m.err != nil {
		return nil, m.err
	}
	return &invdto.InvestmentDTO{ID: cmd.InvestmentID, Status: "active"}, nil
}

type mockRejectUC struct {
	lastCmd usecases.RejectDepositCommand
}

func (m *mockRejectUC) Execute(_ context.Context, cmd usecases.RejectDepositCommand) error {
	m.lastCmd = cmd
	return nil
}

type mockShutdownUC struct {
	result *admindto.EmergencyShutdownDTO
}

func (m *mockShutdownUC) Execute(_ context.Context, _ usecases.EmergencyShutdownCommand) (*admindto.EmergencyShutdownDTO, error) {
	return m.result, nil
}

type mockRefundListUC struct{}

func (mockRefundListUC) Execute(_ context.Context, _ usecases.Actor) (string, []byte, error) {
	return "refund-list-2026-05-01.csv", []byte("Email,Bank Name\n"), nil
}

type mockAuditLogsUC struct {
	lastQuery usecases.ListAuditLogsQuery
}

func (m *mockAuditLogsUC) Execute(_ context.Context, q usecases.ListAuditLogsQuery) ([]admindto.AuditLogDTO, error) {
	m.lastQuery = q
	return nil, nil
}

func (m *mockAuditLogsUC) ExportCSV(_ context.Context, q usecases.ListAuditLogsQuery) (string, []byte, error) {
	m.lastQuery = q
	return "audit-logs.csv", []byte("Timestamp,Action Type,Investment ID,Details\n"), nil
}

type mockUpdateWithdrawalUC struct {
	lastCmd usecases.UpdatePrincipalWithdrawalCommand
}

func (m *mockUpdateWithdrawalUC) Execute(_ context.Context, cmd usecases.UpdatePrincipalWithdrawalCommand) (*wdto.PrincipalRequestDTO, error) {
	m.lastCmd = cmd
	return &wdto.PrincipalRequestDTO{ID: cmd.RequestID, Status: cmd.Status}, nil
}

func TestInvestmentHandler_Confirm(t *testing.T) {
	uc := &mockConfirmUC{}
	handler := NewInvestmentHandler(nil, uc, nil, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/admin/investments/inv-1/confirm", map[string]any{
		"jpy_amount":  "650000",
		"usdc_amount": "4333.33",
		"tx_hash":     "0xabc",
	})
	testutil.SetAuthContext(c, adminID, "admin")
	testutil.SetURLParam(c, "id", "inv-1")
	handler.Confirm(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, adminID, uc.lastCmd.Actor.UserID)
	assert.NotEmpty(t, uc.lastCmd.Actor.IPAddress)
	assert.Equal(t, "4333.33", uc.lastCmd.USDCAmount.String())
}

func TestInvestmentHandler_Confirm_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]any
		ucErr      error
		wantStatus int
	}{
		{"missing tx hash", map[string]any{"jpy_amount": "1", "usdc_amount": "1"}, nil, http.StatusBadRequest},
		{"zero usdc", map[string]any{"jpy_amount": "1", "usdc_amount": "0", "tx_hash": "0x1"}, nil, http.StatusBadRequest},
		{"not admin", map[string]any{"jpy_amount": "1", "usdc_amount": "1", "tx_hash": "0x1"}, errors.NewForbiddenError("admin role required"), http.StatusForbidden},
		{"not pending", map[string]any{"jpy_amount": "1", "usdc_amount": "1", "tx_hash": "0x1"}, errors.NewStateConflictError("investment is not pending"), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInvestmentHandler(nil, &mockConfirmUC{err: tt.ucErr}, nil, nil, nil, testutil.NewMockLogger())

			c, w := testutil.NewTestContext(http.MethodPost, "/admin/investments/inv-1/confirm", tt.body)
			testutil.SetAuthContext(c, adminID, "admin")
			testutil.SetURLParam(c, "id", "inv-1")
			handler.Confirm(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestInvestmentHandler_Reject_OptionalBody(t *testing.T) {
	uc := &mockRejectUC{}
	handler := NewInvestmentHandler(nil, nil, nil, nil, uc, testutil.NewMockLogger())

	c, _ := testutil.NewTestContext(http.MethodDelete, "/admin/investments/inv-9", nil)
	testutil.SetAuthContext(c, adminID, "admin")
	testutil.SetURLParam(c, "id", "inv-9")
	handler.Reject(c)

	assert.Equal(t, http.StatusNoContent, c.Writer.Status())
	assert.Equal(t, "inv-9", uc.lastCmd.InvestmentID)
	assert.Empty(t, uc.lastCmd.Reason)

	c, _ = testutil.NewTestContext(http.MethodDelete, "/admin/investments/inv-9", map[string]string{"reason": "funds never arrived"})
	testutil.SetAuthContext(c, adminID, "admin")
	testutil.SetURLParam(c, "id", "inv-9")
	handler.Reject(c)

	assert.Equal(t, "funds never arrived", uc.lastCmd.Reason)
}

func TestBackOfficeHandler_EmergencyShutdown_Partial(t *testing.T) {
	handler := NewBackOfficeHandler(BackOfficeUseCases{
		EmergencyShutdown: &mockShutdownUC{result: &admindto.EmergencyShutdownDTO{Attempted: 3, Suspended: 2, Partial: true}},
	}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/admin/emergency-shutdown", map[string]string{"reason": "pool exploit"})
	testutil.SetAuthContext(c, adminID, "admin")
	handler.EmergencyShutdown(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, "Emergency shutdown partially completed", resp.Message)
}

func TestBackOfficeHandler_ExportRefundList(t *testing.T) {
	handler := NewBackOfficeHandler(BackOfficeUseCases{ExportRefundList: mockRefundListUC{}}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/admin/reconciliation.csv", nil)
	testutil.SetAuthContext(c, adminID, "admin")
	handler.ExportRefundList(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "refund-list-2026-05-01.csv")
	assert.Equal(t, "Email,Bank Name\n", w.Body.String())
}

func TestBackOfficeHandler_AuditLogLimit(t *testing.T) {
	tests := []struct {
		name       string
		query      map[string]string
		wantStatus int
		wantLimit  int
	}{
		{"default", nil, http.StatusOK, 100},
		{"explicit", map[string]string{"limit": "20"}, http.StatusOK, 20},
		{"garbage", map[string]string{"limit": "abc"}, http.StatusBadRequest, 0},
		{"zero", map[string]string{"limit": "0"}, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockAuditLogsUC{}
			handler := NewBackOfficeHandler(BackOfficeUseCases{AuditLogs: uc}, testutil.NewMockLogger())

			c, w := testutil.NewTestContext(http.MethodGet, "/admin/audit-logs", nil)
			testutil.SetAuthContext(c, adminID, "admin")
			if tt.query != nil {
				testutil.SetQueryParams(c, tt.query)
			}
			handler.ListAuditLogs(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantLimit, uc.lastQuery.Limit)
		})
	}
}

func TestBackOfficeHandler_UpdatePrincipalWithdrawal(t *testing.T) {
	uc := &mockUpdateWithdrawalUC{}
	handler := NewBackOfficeHandler(BackOfficeUseCases{UpdatePrincipalWithdrawal: uc}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPut, "/admin/principal-withdrawals/7/status", map[string]string{"status": "done"})
	testutil.SetAuthContext(c, adminID, "admin")
	testutil.SetURLParam(c, "id", "7")
	handler.UpdatePrincipalWithdrawal(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), uc.lastCmd.RequestID)
	assert.Equal(t, "done", uc.lastCmd.Status)

	c, w = testutil.NewTestContext(http.MethodPut, "/admin/principal-withdrawals/x/status", map[string]string{"status": "done"})
	testutil.SetAuthContext(c, adminID, "admin")
	testutil.SetURLParam(c, "id", "x")
	handler.UpdatePrincipalWithdrawal(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
