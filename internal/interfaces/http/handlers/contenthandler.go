package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perkloop/perkloop/internal/infrastructure/content"
	"github.com/perkloop/perkloop/internal/shared/logger"
	"github.com/perkloop/perkloop/internal/shared/utils"
)

type riskDisclosureSource interface {
	RiskDisclosure() (content.Document, error)
}

type ContentHandler struct {
	source riskDisclosureSource
	logger logger.Interface
}

func NewContentHandler(source riskDisclosureSource, logger logger.Interface) *ContentHandler {
	return &ContentHandler{source: source, logger: logger}
}

// RiskDisclosure handles GET /content/risk-disclosure
//
//	@Summary	Risk disclosure
//	@Tags		content
//	@Produce	json
//	@Success	200	{object}	utils.APIResponse
//	@Router		/content/risk-disclosure [get]
func (h *ContentHandler) RiskDisclosure(c *gin.Context) {
	doc, err := h.source.RiskDisclosure()
	if err != nil {
		h.logger.Errorw("failed to render risk disclosure", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	utils.SuccessResponse(c, http.StatusOK, "", doc)
}
