package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nimbusgrid/platform-go/internal/application"
	"github.com/nimbusgrid/platform-go/internal/domain/job"
	"github.com/nimbusgrid/platform-go/pkg/response"
	"github.com/nimbusgrid/platform-go/pkg/utils"
)

type JobHandler struct {
	svc *application.JobService
}

func NewJobHandler(svc *application.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

// GetJobs godoc
// @Summary List jobs visible to the current user
// @Tags jobs
// @Security BearerAuth
// @Produce json
// @Param projectId query int false "Filter by project"
// @Success 200 {object} response.JobListResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/jobs [get]
func (h *JobHandler) GetJobs(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var jobs []job.Job
	if raw := c.Query("projectId"); raw != "" {
		projectID, perr := strconv.ParseUint(raw, 10, 64)
		if perr != nil || projectID == 0 {
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Project ID is required"})
			return
		}
		jobs, err = h.svc.ListByProject(userID, uint(projectID))
	} else {
		jobs, err = h.svc.List(userID)
	}
	if err != nil {
		fail(c, err, "Project not found", "Failed to fetch jobs")
		return
	}
	if jobs == nil {
		jobs = []job.Job{}
	}
	c.JSON(http.StatusOK, response.JobListResponse{Jobs: jobs})
}

// CreateJob godoc
// @Summary Submit a new job
// @Tags jobs
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.JobResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/jobs [post]
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input job.CreateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if input.ProjectID == 0 || input.Name == "" || input.HardwareType == "" || input.Region == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Missing required fields"})
		return
	}

	j, err := h.svc.Create(userID, input)
	if err != nil {
		fail(c, err, "Project not found", "Failed to create job")
		return
	}
	c.JSON(http.StatusCreated, response.JobResponse{Job: *j})
}

type updateJobRequest struct {
	JobID uint `json:"jobId"`
	job.UpdateJobInput
}

// UpdateJob godoc
// @Summary Update a job (partial fields, including status transitions)
// @Tags jobs
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/jobs [put]
func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req updateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.JobID == 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Job ID is required"})
		return
	}

	if err := h.svc.Update(userID, req.JobID, req.UpdateJobInput); err != nil {
		fail(c, err, "Job not found", "Failed to update job")
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Success: true})
}

// DeleteJob godoc
// @Summary Delete a job and its monitoring samples
// @Tags jobs
// @Security BearerAuth
// @Produce json
// @Param jobId query int true "Job ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/jobs [delete]
func (h *JobHandler) DeleteJob(c *gin.Context) {
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

	if err := h.svc.Delete(userID, uint(id)); err != nil {
		fail(c, err, "Job not found", "Failed to delete job")
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Success: true})
}
