package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/supplyrisk/internal/application/dto"
	"github.com/turtacn/supplyrisk/internal/application/service"
	"github.com/turtacn/supplyrisk/pkg/logger"
)

// AssessmentHandler serves the assessment and reference listing endpoints.
// AssessmentHandler 处理风险评估与参考数据查询请求。
type AssessmentHandler struct {
	svc         service.AssessmentAppService
	defaultTopN int
	maxTopN     int
	log         logger.Logger
}

// NewAssessmentHandler creates a new AssessmentHandler.
func NewAssessmentHandler(svc service.AssessmentAppService, defaultTopN, maxTopN int, log logger.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		svc:         svc,
		defaultTopN: defaultTopN,
		maxTopN:     maxTopN,
		log:         log.WithComponent("AssessmentHandler"),
	}
}

// Assess godoc
// @Summary      Assess supply-chain risk
// @Description  Propagates risk through three supplier tiers for a country and sector.
// @Tags         assessment
// @Produce      json
// @Param        country       query  string  true   "ISO-3 country code"
// @Param        sector        query  string  true   "OECD sector code"
// @Param        skip_climate  query  bool    false  "skip expected-loss enrichment"
// @Param        top_n         query  int     false  "suppliers per node (1-20)"
// @Success      200  {object}  models.AssessmentResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/assess [get]
func (h *AssessmentHandler) Assess(c *gin.Context) {
	req := dto.NewAssessRequest(
		c.Query("country"),
		c.Query("sector"),
		c.Query("skip_climate"),
		c.Query("top_n"),
		h.defaultTopN,
		h.maxTopN,
	)

	result, err := h.svc.Assess(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListCountries godoc
// @Summary      List countries
// @Tags         reference
// @Produce      json
// @Router       /api/countries [get]
func (h *AssessmentHandler) ListCountries(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Countries(c.Request.Context()))
}

// ListSectors godoc
// @Summary      List sectors
// @Tags         reference
// @Produce      json
// @Router       /api/sectors [get]
func (h *AssessmentHandler) ListSectors(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Sectors(c.Request.Context()))
}
