package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/application/admin/usecases"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/utils"
)

// InvestmentHandler drives the investment lifecycle from the back-office.
type InvestmentHandler struct {
	listUC    listInvestmentsUseCase
	confirmUC confirmDepositUseCase
	payoutUC  processPayoutUseCase
	returnsUC recordReturnsUseCase
	rejectUC  rejectDepositUseCase
	logger    logger.Interface
}

func NewInvestmentHandler(
	listUC listInvestmentsUseCase,
	confirmUC confirmDepositUseCase,
	payoutUC processPayoutUseCase,
	returnsUC recordReturnsUseCase,
	rejectUC rejectDepositUseCase,
	log logger.Interface,
) *InvestmentHandler {
	return &InvestmentHandler{
		listUC:    listUC,
		confirmUC: confirmUC,
		payoutUC:  payoutUC,
		returnsUC: returnsUC,
		rejectUC:  rejectUC,
		logger:    log,
	}
}

type ConfirmDepositRequest struct {
	JPYAmount  decimal.Decimal `json:"jpy_amount" binding:"required,gt=0"`
	USDCAmount decimal.Decimal `json:"usdc_amount" binding:"required,gt=0"`
	TxHash     string          `json:"tx_hash" binding:"required,max=128"`
}

type ProcessPayoutRequest struct {
	BankTransactionID string `json:"bank_transaction_id" binding:"required,max=128"`
}

type RecordReturnsRequest struct {
	Returns decimal.Decimal `json:"returns" binding:"required,gt=0"`
}

type RejectDepositRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// List handles GET /admin/investments
//
//	@Summary	List investments
//	@Tags		admin
//	@Produce	json
//	@Security	Bearer
//	@Param		status	query		string	false	"pending|active|suspended|completed"
//	@Param		user_id	query		string	false	"Owner UUID"
//	@Success	200		{object}	utils.APIResponse
//	@Router		/admin/investments [get]
func (h *InvestmentHandler) List(c *gin.Context) {
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListInvestmentsQuery{
		Actor:  actorFrom(c),
		Status: c.Query("status"),
		UserID: c.Query("user_id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Confirm handles POST /admin/investments/:id/confirm
//
//	@Summary		Confirm a pending deposit
//	@Description	Records the on-chain deployment and activates the investment
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		string					true	"Investment ID"
//	@Param			request	body		ConfirmDepositRequest	true	"Deployment details"
//	@Success		200		{object}	utils.APIResponse
//	@Failure		409		{object}	utils.APIResponse	"Investment is not pending"
//	@Router			/admin/investments/{id}/confirm [post]
func (h *InvestmentHandler) Confirm(c *gin.Context) {
	var req ConfirmDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.confirmUC.Execute(c.Request.Context(), usecases.ConfirmDepositCommand{
		Actor:        actorFrom(c),
		InvestmentID: c.Param("id"),
		JPYAmount:    req.JPYAmount,
		USDCAmount:   req.USDCAmount,
		TxHash:       req.TxHash,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Deposit confirmed", result)
}

// Payout handles POST /admin/investments/:id/payout
//
//	@Summary	Record the payout of an active investment
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		id		path		string					true	"Investment ID"
//	@Param		request	body		ProcessPayoutRequest	true	"Bank transfer reference"
//	@Success	200		{object}	utils.APIResponse
//	@Failure	409		{object}	utils.APIResponse	"Investment is not active"
//	@Router		/admin/investments/{id}/payout [post]
func (h *InvestmentHandler) Payout(c *gin.Context) {
	var req ProcessPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.payoutUC.Execute(c.Request.Context(), usecases.ProcessPayoutCommand{
		Actor:             actorFrom(c),
		InvestmentID:      c.Param("id"),
		BankTransactionID: req.BankTransactionID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Payout recorded", result)
}

// RecordReturns handles POST /admin/investments/:id/returns
func (h *InvestmentHandler) RecordReturns(c *gin.Context) {
	var req RecordReturnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.returnsUC.Execute(c.Request.Context(), usecases.RecordReturnsCommand{
		Actor:        actorFrom(c),
		InvestmentID: c.Param("id"),
		Returns:      req.Returns,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Returns recorded", result)
}

// Reject handles DELETE /admin/investments/:id. The body is optional.
//
//	@Summary	Reject a pending deposit
//	@Tags		admin
//	@Security	Bearer
//	@Param		id	path	string	true	"Investment ID"
//	@Success	204
//	@Failure	409	{object}	utils.APIResponse	"Investment is not pending"
//	@Router		/admin/investments/{id} [delete]
func (h *InvestmentHandler) Reject(c *gin.Context) {
	var req RejectDepositRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, utils.BindingError(err))
			return
		}
	}

	err := h.rejectUC.Execute(c.Request.Context(), usecases.RejectDepositCommand{
		Actor:        actorFrom(c),
		InvestmentID: c.Param("id"),
		Reason:       req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
