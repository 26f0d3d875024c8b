package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/team-management-api/internal/dto"
	apierrors "github.com/yukikurage/team-management-api/internal/errors"
	"github.com/yukikurage/team-management-api/internal/middleware"
	"github.com/yukikurage/team-management-api/internal/models"
	"github.com/yukikurage/team-management-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	result, err := h.projectService.ListProjects(c.Request.Context(), listInput(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListResponse(result.Page, result.Query, dto.ToProjectDTO))
}

// GetProject returns the project with its tasks. ?query keeps only tasks
// whose name or description contains it.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := projectFromContext(c)
	if !ok {
		return
	}

	detail, err := h.projectService.GetProjectDetail(c.Request.Context(), project, c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(*detail.Project, detail.Tasks, detail.ActiveCount, detail.CompletedCount, detail.Query))
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req services.ProjectInput
	if !bindJSON(c, &req) {
		return
	}

	project, notice, err := h.projectService.CreateProject(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"project": dto.ToProjectDTO(*project),
		"notice":  notice,
	})
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	project, ok := projectFromContext(c)
	if !ok {
		return
	}

	var req services.ProjectInput
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.projectService.UpdateProject(c.Request.Context(), project, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated))
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	project, ok := projectFromContext(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), project); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// projectFromContext returns the project loaded by RequireProject
func projectFromContext(c *gin.Context) (*models.Project, bool) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
	}
	return project, ok
}
