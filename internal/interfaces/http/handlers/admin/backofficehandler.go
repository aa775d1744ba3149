package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/application/admin/usecases"
	"github.com/perkloop/perkloop/internal/shared/constants"
	"github.com/perkloop/perkloop/internal/shared/errors"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/utils"
)

// BackOfficeHandler serves the admin overview, reconciliation and audit endpoints.
type BackOfficeHandler struct {
	shutdownUC        emergencyShutdownUseCase
	refundListUC      exportRefundListUseCase
	auditLogsUC       auditLogsUseCase
	dashboardUC       dashboardUseCase
	usersOverviewUC   usersOverviewUseCase
	updateBalancesUC  updateBalancesUseCase
	listWithdrawalsUC listPrincipalWithdrawalsUseCase
	updateWithdrawUC  updatePrincipalWithdrawalUseCase
	logger            logger.Interface
}

// BackOfficeUseCases groups the handler's dependencies.
type BackOfficeUseCases struct {
	EmergencyShutdown         emergencyShutdownUseCase
	ExportRefundList          exportRefundListUseCase
	AuditLogs                 auditLogsUseCase
	Dashboard                 dashboardUseCase
	UsersOverview             usersOverviewUseCase
	UpdateBalances            updateBalancesUseCase
	ListPrincipalWithdrawals  listPrincipalWithdrawalsUseCase
	UpdatePrincipalWithdrawal updatePrincipalWithdrawalUseCase
}

func NewBackOfficeHandler(ucs BackOfficeUseCases, log logger.Interface) *BackOfficeHandler {
	return &BackOfficeHandler{
		shutdownUC:        ucs.EmergencyShutdown,
		refundListUC:      ucs.ExportRefundList,
		auditLogsUC:       ucs.AuditLogs,
		dashboardUC:       ucs.Dashboard,
		usersOverviewUC:   ucs.UsersOverview,
		updateBalancesUC:  ucs.UpdateBalances,
		listWithdrawalsUC: ucs.ListPrincipalWithdrawals,
		updateWithdrawUC:  ucs.UpdatePrincipalWithdrawal,
		logger:            log,
	}
}

type EmergencyShutdownRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type UpdateBalancesRequest struct {
	WithdrawalPrincipalUSD decimal.Decimal `json:"withdrawal_principal_usd"`
	JPYDeposit             decimal.Decimal `json:"jpy_deposit"`
	TotalReturnsUSD        decimal.Decimal `json:"total_returns_usd"`
}

type UpdatePrincipalWithdrawalRequest struct {
	Status string `json:"status" binding:"required,oneof=pending done"`
}

// EmergencyShutdown handles POST /admin/emergency-shutdown
//
//	@Summary		Suspend every active investment
//	@Description	Returns the counts and the refund rows. Partial failures are reported, not rolled back.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		EmergencyShutdownRequest	true	"Reason"
//	@Success		200		{object}	utils.APIResponse
//	@Router			/admin/emergency-shutdown [post]
func (h *BackOfficeHandler) EmergencyShutdown(c *gin.Context) {
	var req EmergencyShutdownRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.shutdownUC.Execute(c.Request.Context(), usecases.EmergencyShutdownCommand{
		Actor:  actorFrom(c),
		Reason: req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "Emergency shutdown completed"
	if result.Partial {
		message = "Emergency shutdown partially completed"
	}
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

// ExportRefundList handles GET /admin/reconciliation.csv
//
//	@Summary	Download the refund list
//	@Tags		admin
//	@Produce	text/csv
//	@Security	Bearer
//	@Success	200	{file}	file
//	@Router		/admin/reconciliation.csv [get]
func (h *BackOfficeHandler) ExportRefundList(c *gin.Context) {
	filename, body, err := h.refundListUC.Execute(c.Request.Context(), actorFrom(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CSVResponse(c, filename, body)
}

// ListAuditLogs handles GET /admin/audit-logs
//
//	@Summary	Latest audit entries
//	@Tags		admin
//	@Produce	json
//	@Security	Bearer
//	@Param		limit	query		int	false	"Max entries (default 100, max 500)"
//	@Success	200		{object}	utils.APIResponse
//	@Router		/admin/audit-logs [get]
func (h *BackOfficeHandler) ListAuditLogs(c *gin.Context) {
	query, err := auditQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.auditLogsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ExportAuditLogs handles GET /admin/audit-logs.csv
func (h *BackOfficeHandler) ExportAuditLogs(c *gin.Context) {
	query, err := auditQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	filename, body, err := h.auditLogsUC.ExportCSV(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CSVResponse(c, filename, body)
}

func auditQuery(c *gin.Context) (usecases.ListAuditLogsQuery, error) {
	query := usecases.ListAuditLogsQuery{
		Actor: actorFrom(c),
		Limit: constants.DefaultAuditLogLimit,
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return query, errors.NewValidationError("limit must be a positive integer", raw)
		}
		query.Limit = limit
	}
	return query, nil
}

// GetDashboard handles GET /admin/dashboard
//
//	@Summary	Pilot dashboard
//	@Tags		admin
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse
//	@Router		/admin/dashboard [get]
func (h *BackOfficeHandler) GetDashboard(c *gin.Context) {
	resp, err := h.dashboardUC.Execute(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.logger.Errorw("failed to get admin dashboard", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Admin dashboard retrieved successfully", resp)
}

// GetUsersOverview handles GET /admin/users
func (h *BackOfficeHandler) GetUsersOverview(c *gin.Context) {
	resp, err := h.usersOverviewUC.Execute(c.Request.Context(), actorFrom(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resp)
}

// UpdateBalances handles PUT /admin/users/:user_id/balances
//
//	@Summary		Edit a user's profile balances
//	@Description	Divergence from the investment sums is returned, not corrected
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			user_id	path		string					true	"User UUID"
//	@Param			request	body		UpdateBalancesRequest	true	"New balances"
//	@Success		200		{object}	utils.APIResponse
//	@Router			/admin/users/{user_id}/balances [put]
func (h *BackOfficeHandler) UpdateBalances(c *gin.Context) {
	var req UpdateBalancesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateBalancesUC.Execute(c.Request.Context(), usecases.UpdateBalancesCommand{
		Actor:                  actorFrom(c),
		UserID:                 c.Param("user_id"),
		WithdrawalPrincipalUSD: req.WithdrawalPrincipalUSD,
		JPYDeposit:             req.JPYDeposit,
		TotalReturnsUSD:        req.TotalReturnsUSD,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Balances updated", result)
}

// ListPrincipalWithdrawals handles GET /admin/principal-withdrawals
func (h *BackOfficeHandler) ListPrincipalWithdrawals(c *gin.Context) {
	result, err := h.listWithdrawalsUC.Execute(c.Request.Context(), usecases.ListPrincipalWithdrawalsQuery{
		Actor:  actorFrom(c),
		Status: c.Query("status"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdatePrincipalWithdrawal handles PUT /admin/principal-withdrawals/:id/status
func (h *BackOfficeHandler) UpdatePrincipalWithdrawal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid withdrawal request id", c.Param("id")))
		return
	}

	var req UpdatePrincipalWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateWithdrawUC.Execute(c.Request.Context(), usecases.UpdatePrincipalWithdrawalCommand{
		Actor:     actorFrom(c),
		RequestID: uint(id),
		Status:    req.Status,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Withdrawal request updated", result)
}
