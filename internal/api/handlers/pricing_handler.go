package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nimbusgrid/platform-go/internal/application"
	"github.com/nimbusgrid/platform-go/internal/domain/pricing"
	"github.com/nimbusgrid/platform-go/pkg/response"
)

type PricingHandler struct {
	svc *application.PricingService
}

func NewPricingHandler(svc *application.PricingService) *PricingHandler {
	return &PricingHandler{svc: svc}
}

// GetPricing godoc
// @Summary Current hardware pricing across regions
// @Tags pricing
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.PricingListResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/pricing [get]
func (h *PricingHandler) GetPricing(c *gin.Context) {
	rows, err := h.svc.List()
	if err != nil {
		fail(c, err, "Pricing not found", "Failed to fetch pricing")
		return
	}
	if rows == nil {
		rows = []pricing.HardwarePricing{}
	}
	c.JSON(http.StatusOK, response.PricingListResponse{Pricing: rows})
}
