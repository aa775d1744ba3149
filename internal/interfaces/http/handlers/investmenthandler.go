package handlers

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/perkloop/perkloop/internal/application/investment/dto"
	"github.com/perkloop/perkloop/internal/application/investment/usecases"
	"github.com/perkloop/perkloop/internal/domain/investment"
	"github.com/perkloop/perkloop/internal/interfaces/http/middleware"
	"github.com/perkloop/perkloop/internal/shared/biztime"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/utils"
)

type InvestmentHandler struct {
	createUC usecases.CreateInvestmentExecutor
	updateUC usecases.UpdateDepositExecutor
	cancelUC usecases.CancelInvestmentExecutor
	listUC   usecases.ListUserInvestmentsExecutor
	getUC    usecases.GetInvestmentExecutor
	logger   logger.Interface
	clock    func() time.Time
}

func NewInvestmentHandler(
	createUC usecases.CreateInvestmentExecutor,
	updateUC usecases.UpdateDepositExecutor,
	cancelUC usecases.CancelInvestmentExecutor,
	listUC usecases.ListUserInvestmentsExecutor,
	getUC usecases.GetInvestmentExecutor,
	logger logger.Interface,
) *InvestmentHandler {
	return &InvestmentHandler{
		createUC: createUC,
		updateUC: updateUC,
		cancelUC: cancelUC,
		listUC:   listUC,
		getUC:    getUC,
		logger:   logger,
		clock:    biztime.NowUTC,
	}
}

// CreateInvestmentRequest is a checkout intent. kind=product needs product_id
// and cadence_days (deposit_amount optional); kind=just_save needs amount.
type CreateInvestmentRequest struct {
	Kind          string          `json:"kind" binding:"required,oneof=product just_save"`
	ProductID     string          `json:"product_id" binding:"required_if=Kind product"`
	CadenceDays   int             `json:"cadence_days" binding:"omitempty,gte=1"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" binding:"required,oneof=bank_wire stablecoin credit_card"`
}

type UpdateDepositRequest struct {
	DepositAmount decimal.Decimal `json:"deposit_amount" binding:"required,gt=0"`
}

// Create handles POST /investments
//
//	@Summary		Open a pending investment
//	@Description	An open investment for the same product returns 409 with the existing record in data.existing
//	@Tags			investments
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			request	body		CreateInvestmentRequest	true	"Checkout intent"
//	@Success		201		{object}	utils.APIResponse
//	@Failure		400		{object}	utils.APIResponse
//	@Failure		409		{object}	utils.APIResponse	"Duplicate open investment"
//	@Failure		503		{object}	utils.APIResponse	"APY feed unavailable"
//	@Router			/investments [post]
func (h *InvestmentHandler) Create(c *gin.Context) {
	var req CreateInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create investment", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateInvestmentCommand{
		UserID:        middleware.GetUserID(c),
		Kind:          req.Kind,
		ProductID:     req.ProductID,
		CadenceDays:   req.CadenceDays,
		DepositAmount: req.DepositAmount,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		var dup *investment.DuplicateError
		if stderrors.As(err, &dup) {
			utils.ErrorResponseWithData(c, err, dto.DuplicateInvestmentDTO{
				Existing: dto.ToInvestmentDTO(dup.Existing, h.clock()),
			})
			return
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Investment created successfully")
}

// List handles GET /investments
//
//	@Summary	List my investments
//	@Tags		investments
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse
//	@Router		/investments [get]
func (h *InvestmentHandler) List(c *gin.Context) {
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListUserInvestmentsQuery{
		UserID: middleware.GetUserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Get handles GET /investments/:id
func (h *InvestmentHandler) Get(c *gin.Context) {
	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetInvestmentQuery{
		UserID:       middleware.GetUserID(c),
		InvestmentID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateDeposit handles PUT /investments/:id/deposit
//
//	@Summary		Merge a new deposit into an open investment
//	@Description	Replaces the deposit amount and restarts the cycle
//	@Tags			investments
//	@Accept			json
//	@Produce		json
//	@Security		Bearer
//	@Param			id		path		string					true	"Investment ID"
//	@Param			request	body		UpdateDepositRequest	true	"New deposit"
//	@Success		200		{object}	utils.APIResponse
//	@Failure		403		{object}	utils.APIResponse	"Not the owner"
//	@Failure		409		{object}	utils.APIResponse	"Investment is not pending or active"
//	@Router			/investments/{id}/deposit [put]
func (h *InvestmentHandler) UpdateDeposit(c *gin.Context) {
	var req UpdateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateDepositCommand{
		UserID:        middleware.GetUserID(c),
		InvestmentID:  c.Param("id"),
		DepositAmount: req.DepositAmount,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Deposit updated", result)
}

// Cancel handles DELETE /investments/:id
//
//	@Summary	Cancel a pending investment
//	@Tags		investments
//	@Security	Bearer
//	@Param		id	path	string	true	"Investment ID"
//	@Success	204
//	@Failure	409	{object}	utils.APIResponse	"Investment is not pending"
//	@Router		/investments/{id} [delete]
func (h *InvestmentHandler) Cancel(c *gin.Context) {
	err := h.cancelUC.Execute(c.Request.Context(), usecases.CancelInvestmentCommand{
		UserID:       middleware.GetUserID(c),
		InvestmentID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}
