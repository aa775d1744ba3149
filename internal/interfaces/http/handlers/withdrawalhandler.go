package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perkloop/perkloop/internal/application/withdrawal/usecases"
	"github.com/perkloop/perkloop/internal/interfaces/http/middleware"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/utils"
)

type WithdrawalHandler struct {
	setPreferenceUC    setPreferenceUseCase
	listPreferencesUC  listPreferencesUseCase
	requestPrincipalUC requestPrincipalUseCase
	logger             logger.Interface
}

func NewWithdrawalHandler(
	setPreferenceUC setPreferenceUseCase,
	listPreferencesUC listPreferencesUseCase,
	requestPrincipalUC requestPrincipalUseCase,
	logger logger.Interface,
) *WithdrawalHandler {
	return &WithdrawalHandler{
		setPreferenceUC:    setPreferenceUC,
		listPreferencesUC:  listPreferencesUC,
		requestPrincipalUC: requestPrincipalUC,
		logger:             logger,
	}
}

// SetPreferenceRequest: frequency is required for returns and must be empty
// for principal. The use case enforces the pairing.
type SetPreferenceRequest struct {
	WithdrawalType string `json:"withdrawal_type" binding:"required,oneof=returns principal"`
	Frequency      string `json:"frequency" binding:"omitempty,oneof=weekly biweekly monthly quarterly"`
}

// SetPreference handles PUT /withdrawals/preferences
//
//	@Summary	Set a withdrawal preference
//	@Tags		withdrawals
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		request	body		SetPreferenceRequest	true	"Preference"
//	@Success	200		{object}	utils.APIResponse
//	@Failure	400		{object}	utils.APIResponse
//	@Router		/withdrawals/preferences [put]
func (h *WithdrawalHandler) SetPreference(c *gin.Context) {
	var req SetPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.setPreferenceUC.Execute(c.Request.Context(), usecases.SetPreferenceCommand{
		UserID:         middleware.GetUserID(c),
		WithdrawalType: req.WithdrawalType,
		Frequency:      req.Frequency,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Preference saved", result)
}

// ListPreferences handles GET /withdrawals/preferences
func (h *WithdrawalHandler) ListPreferences(c *gin.Context) {
	result, err := h.listPreferencesUC.Execute(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RequestPrincipal handles POST /withdrawals/principal
//
//	@Summary		Request principal withdrawal
//	@Description	Indicated JPY uses the current USD/JPY rate; admins are e-mailed
//	@Tags			withdrawals
//	@Produce		json
//	@Security		Bearer
//	@Success		201	{object}	utils.APIResponse
//	@Failure		400	{object}	utils.APIResponse	"No withdrawable principal"
//	@Failure		409	{object}	utils.APIResponse	"A request is already pending"
//	@Failure		503	{object}	utils.APIResponse	"Exchange rate unavailable"
//	@Router			/withdrawals/principal [post]
func (h *WithdrawalHandler) RequestPrincipal(c *gin.Context) {
	result, err := h.requestPrincipalUC.Execute(c.Request.Context(), usecases.RequestPrincipalCommand{
		UserID: middleware.GetUserID(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, result, "Principal withdrawal requested")
}
