package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perkloop/perkloop/internal/application/profile/usecases"
	"github.com/perkloop/perkloop/internal/interfaces/http/middleware"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/utils"
)

// ProfileHandler exposes the caller's own profile. Balance aggregates are
// read-only here; admins edit them through the back-office.
type ProfileHandler struct {
	getProfileUC getProfileUseCase
	updateBankUC updateBankAccountUseCase
	logger       logger.Interface
}

func NewProfileHandler(getProfileUC getProfileUseCase, updateBankUC updateBankAccountUseCase, logger logger.Interface) *ProfileHandler {
	return &ProfileHandler{
		getProfileUC: getProfileUC,
		updateBankUC: updateBankUC,
		logger:       logger,
	}
}

type UpdateBankAccountRequest struct {
	HolderName    string `json:"holder_name" binding:"required,max=100"`
	BankName      string `json:"bank_name" binding:"required,max=100"`
	Branch        string `json:"branch" binding:"required,max=100"`
	AccountNumber string `json:"account_number" binding:"required,max=32"`
	AccountType   string `json:"account_type" binding:"max=32"`
}

// GetProfile handles GET /profile
//
//	@Summary	My profile and balances
//	@Tags		profile
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse
//	@Failure	404	{object}	utils.APIResponse
//	@Router		/profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	result, err := h.getProfileUC.Execute(c.Request.Context(), usecases.GetProfileQuery{
		UserID: middleware.GetUserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateBankAccount handles PUT /profile/bank
//
//	@Summary	Update my bank details
//	@Tags		profile
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		request	body		UpdateBankAccountRequest	true	"Bank details"
//	@Success	200		{object}	utils.APIResponse
//	@Failure	400		{object}	utils.APIResponse
//	@Router		/profile/bank [put]
func (h *ProfileHandler) UpdateBankAccount(c *gin.Context) {
	var req UpdateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.updateBankUC.Execute(c.Request.Context(), usecases.UpdateBankAccountCommand{
		UserID:        middleware.GetUserID(c),
		HolderName:    req.HolderName,
		BankName:      req.BankName,
		Branch:        req.Branch,
		AccountNumber: req.AccountNumber,
		AccountType:   req.AccountType,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Bank details updated", result)
}
