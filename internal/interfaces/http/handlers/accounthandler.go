package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accountUsecases "github.com/perkloop/perkloop/internal/application/account/usecases"
	"github.com/perkloop/perkloop/internal/interfaces/http/middleware"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/utils"
)

type AccountHandler struct {
	registerUC registerUseCase
	loginUC    loginUseCase
	getMeUC    getMeUseCase
	logger     logger.Interface
}

func NewAccountHandler(
	registerUC registerUseCase,
	loginUC loginUseCase,
	getMeUC getMeUseCase,
	logger logger.Interface,
) *AccountHandler {
	return &AccountHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		getMeUC:    getMeUC,
		logger:     logger,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /auth/register
//
//	@Summary		Register a new account
//	@Description	Creates a user with an empty profile and returns an access token
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest		true	"Registration data"
//	@Success		201		{object}	utils.APIResponse	"Account created"
//	@Failure		400		{object}	utils.APIResponse	"Validation error"
//	@Failure		409		{object}	utils.APIResponse	"Email already registered"
//	@Router			/auth/register [post]
func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), accountUsecases.RegisterCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Account created successfully")
}

// Login handles POST /auth/login
//
//	@Summary		Log in
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest		true	"Credentials"
//	@Success		200		{object}	utils.APIResponse	"Access token issued"
//	@Failure		401		{object}	utils.APIResponse	"Invalid credentials"
//	@Router			/auth/login [post]
func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), accountUsecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Me handles GET /users/me
//
//	@Summary	Current user
//	@Tags		auth
//	@Produce	json
//	@Security	Bearer
//	@Success	200	{object}	utils.APIResponse
//	@Failure	401	{object}	utils.APIResponse
//	@Router		/users/me [get]
func (h *AccountHandler) Me(c *gin.Context) {
	result, err := h.getMeUC.Execute(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
