package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/supplyrisk/internal/application/dto"
	"github.com/turtacn/supplyrisk/internal/application/service"
)

// ClimateCacheHandler exposes the diagnostic cache endpoints.
type ClimateCacheHandler struct {
	svc service.ClimateCacheAppService
}

// NewClimateCacheHandler creates a new ClimateCacheHandler.
func NewClimateCacheHandler(svc service.ClimateCacheAppService) *ClimateCacheHandler {
	return &ClimateCacheHandler{svc: svc}
}

// Stats godoc
// @Summary      Climate cache contents
// @Tags         climate
// @Router       /api/climate/cache [get]
func (h *ClimateCacheHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Stats(c.Request.Context()))
}

// Clear godoc
// @Summary      Clear the climate cache
// @Tags         climate
// @Router       /api/climate/cache [delete]
func (h *ClimateCacheHandler) Clear(c *gin.Context) {
	if err := h.svc.Clear(c.Request.Context()); err != nil {
		_ = c.Error(err)
		dto.SendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Climate cache cleared"})
}
