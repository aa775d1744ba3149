package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	yieldUsecases "github.com/perkloop/perkloop/internal/application/yield/usecases"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/utils"
)

// YieldHandler serves the product catalog, deposit/cadence quotes and the
// live rate view. All routes are public.
type YieldHandler struct {
	listProductsUC listProductsUseCase
	quoteDepositUC quoteDepositUseCase
	quoteCadenceUC quoteCadenceUseCase
	getRatesUC     getRatesUseCase
	logger         logger.Interface
}

func NewYieldHandler(
	listProductsUC listProductsUseCase,
	quoteDepositUC quoteDepositUseCase,
	quoteCadenceUC quoteCadenceUseCase,
	getRatesUC getRatesUseCase,
	logger logger.Interface,
) *YieldHandler {
	return &YieldHandler{
		listProductsUC: listProductsUC,
		quoteDepositUC: quoteDepositUC,
		quoteCadenceUC: quoteCadenceUC,
		getRatesUC:     getRatesUC,
		logger:         logger,
	}
}

// QuoteDepositRequest prices either a catalog product or an explicit price.
type QuoteDepositRequest struct {
	ProductID   string          `json:"product_id"`
	Price       decimal.Decimal `json:"price"`
	CadenceDays int             `json:"cadence_days" binding:"required,gte=1"`
}

type QuoteCadenceRequest struct {
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Deposit   decimal.Decimal `json:"deposit" binding:"required,gt=0"`
}

// ListProducts handles GET /products
//
//	@Summary	List purchasable products
//	@Tags		yield
//	@Produce	json
//	@Success	200	{object}	utils.APIResponse
//	@Router		/products [get]
func (h *YieldHandler) ListProducts(c *gin.Context) {
	products, err := h.listProductsUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", products)
}

// QuoteDeposit handles POST /quotes/deposit
//
//	@Summary		Deposit needed for a cadence
//	@Description	Returns the deposit whose annual yield buys the product every cadence_days at the current user APY
//	@Tags			yield
//	@Accept			json
//	@Produce		json
//	@Param			request	body		QuoteDepositRequest	true	"Quote input"
//	@Success		200		{object}	utils.APIResponse
//	@Failure		400		{object}	utils.APIResponse	"Validation error"
//	@Failure		503		{object}	utils.APIResponse	"APY feed unavailable"
//	@Router			/quotes/deposit [post]
func (h *YieldHandler) QuoteDeposit(c *gin.Context) {
	var req QuoteDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	quote, err := h.quoteDepositUC.Execute(c.Request.Context(), yieldUsecases.QuoteDepositQuery{
		ProductID:   req.ProductID,
		Price:       req.Price,
		CadenceDays: req.CadenceDays,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", quote)
}

// QuoteCadence handles POST /quotes/cadence
//
//	@Summary	Cadence reached by a deposit
//	@Tags		yield
//	@Accept		json
//	@Produce	json
//	@Param		request	body		QuoteCadenceRequest	true	"Quote input"
//	@Success	200		{object}	utils.APIResponse
//	@Failure	400		{object}	utils.APIResponse
//	@Failure	503		{object}	utils.APIResponse
//	@Router		/quotes/cadence [post]
func (h *YieldHandler) QuoteCadence(c *gin.Context) {
	var req QuoteCadenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.BindingError(err))
		return
	}

	quote, err := h.quoteCadenceUC.Execute(c.Request.Context(), yieldUsecases.QuoteCadenceQuery{
		ProductID: req.ProductID,
		Price:     req.Price,
		Deposit:   req.Deposit,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", quote)
}

// GetRates handles GET /market/rates
//
//	@Summary	Current APY breakdown and exchange rate
//	@Tags		yield
//	@Produce	json
//	@Success	200	{object}	utils.APIResponse
//	@Failure	503	{object}	utils.APIResponse
//	@Router		/market/rates [get]
func (h *YieldHandler) GetRates(c *gin.Context) {
	rates, err := h.getRatesUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", rates)
}
