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

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// GetTask returns a specific task by slug
// Task is already loaded with relations by RequireTask middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask adds a task to the project resolved by RequireProject
func (h *TaskHandler) CreateTask(c *gin.Context) {
	project, ok := projectFromContext(c)
	if !ok {
		return
	}

	var req services.TaskInput
	if !bindJSON(c, &req) {
		return
	}

	task, notice, err := h.taskService.CreateTask(c.Request.Context(), project, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"task":   dto.ToTaskDTO(*task),
		"notice": notice,
	})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	var req services.TaskInput
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.taskService.UpdateTask(c.Request.Context(), task, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), task); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleCompletion completes an open task or reopens a completed one
func (h *TaskHandler) ToggleCompletion(c *gin.Context) {
	actorID, ok := currentEmployeeID(c)
	if !ok {
		return
	}
	task, ok := taskFromContext(c)
	if !ok {
		return
	}

	updated, err := h.taskService.ToggleCompletion(c.Request.Context(), task, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// GenerateTasks uses AI to draft tasks for the project from free text.
// The drafts are not saved.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	project, ok := projectFromContext(c)
	if !ok {
		return
	}

	var req services.GenerateTasksInput
	if !bindJSON(c, &req) {
		return
	}

	tasks, err := h.taskService.GenerateTasks(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project": project.Slug,
		"tasks":   tasks,
		"count":   len(tasks),
	})
}

// taskFromContext returns the task loaded by RequireTask
func taskFromContext(c *gin.Context) (*models.Task, bool) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
	}
	return task, ok
}
