package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nimbusgrid/platform-go/internal/application"
	"github.com/nimbusgrid/platform-go/internal/domain/project"
	"github.com/nimbusgrid/platform-go/pkg/response"
	"github.com/nimbusgrid/platform-go/pkg/utils"
)

type ProjectHandler struct {
	svc *application.ProjectService
}

func NewProjectHandler(svc *application.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// GetProjects godoc
// @Summary List projects for the current user
// @Tags projects
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.ProjectListResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/projects [get]
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	projects, err := h.svc.List(userID)
	if err != nil {
		fail(c, err, "Project not found", "Failed to fetch projects")
		return
	}
	if projects == nil {
		projects = []project.Project{}
	}
	c.JSON(http.StatusOK, response.ProjectListResponse{Projects: projects})
}

// CreateProject godoc
// @Summary Create a new project
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 201 {object} response.ProjectResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var input project.CreateProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Project name is required"})
		return
	}

	p, err := h.svc.Create(userID, input)
	if err != nil {
		fail(c, err, "Project not found", "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, response.ProjectResponse{Project: *p})
}

type updateProjectRequest struct {
	ProjectID uint `json:"projectId"`
	project.UpdateProjectInput
}

// UpdateProject godoc
// @Summary Update a project (partial fields)
// @Tags projects
// @Security BearerAuth
// @Accept json
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/projects [put]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.ProjectID == 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Project ID is required"})
		return
	}

	if err := h.svc.Update(userID, req.ProjectID, req.UpdateProjectInput); err != nil {
		fail(c, err, "Project not found", "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Success: true})
}

// DeleteProject godoc
// @Summary Delete a project and all of its jobs
// @Tags projects
// @Security BearerAuth
// @Produce json
// @Param projectId query int true "Project ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/projects [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
		return
	}

	id, err := strconv.ParseUint(c.Query("projectId"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Project ID is required"})
		return
	}

	if err := h.svc.Delete(userID, uint(id)); err != nil {
		fail(c, err, "Project not found", "Failed to delete project")
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Success: true})
}
