package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nimbusgrid/platform-go/internal/application"
	"github.com/nimbusgrid/platform-go/internal/domain/monitoring"
	"github.com/nimbusgrid/platform-go/pkg/response"
	"github.com/nimbusgrid/platform-go/pkg/utils"
)

type MonitoringHandler struct {
	svc *application.MonitoringService
}

func NewMonitoringHandler(svc *application.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{svc: svc}
}

// GetMonitoring godoc
// @Summary Latest monitoring sample for a job
// @Tags monitoring
// @Security BearerAuth
// @Produce json
// @Param jobId query int true "Job ID"
// @Success 200 {object} response.MonitoringResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/monitoring [get]
func (h *MonitoringHandler) GetMonitoring(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Query("jobId"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Job ID is required"})
		return
	}

	sample, err := h.svc.Latest(userID, uint(id))
	if err != nil {
		fail(c, err, "Job not found", "Failed to fetch monitoring data")
		return
	}
	c.JSON(http.StatusOK, response.MonitoringResponse{Monitoring: sample})
}

// InsertMonitoring godoc
// @Summary Report a monitoring sample for a job
// @Tags monitoring
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/monitoring [post]
func (h *MonitoringHandler) InsertMonitoring(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input monitoring.InsertSampleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if input.JobID == 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Job ID is required"})
		return
	}

	if err := h.svc.Insert(userID, input); err != nil {
		fail(c, err, "Job not found", "Failed to insert monitoring data")
		return
	}
	c.JSON(http.StatusCreated, response.SuccessResponse{Success: true})
}
