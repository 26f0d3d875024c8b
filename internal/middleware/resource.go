package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/team-management-api/internal/constants"
	apierrors "github.com/yukikurage/team-management-api/internal/errors"
	"github.com/yukikurage/team-management-api/internal/models"
	"github.com/yukikurage/team-management-api/internal/services"
)

type ProjectFinder interface {
	GetProject(ctx context.Context, slug string) (*models.Project, error)
}

type TaskFinder interface {
	GetTask(ctx context.Context, slug string) (*models.Task, error)
}

// RequireProject loads the project named by the :slug parameter
func RequireProject(finder ProjectFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		project, err := finder.GetProject(c.Request.Context(), c.Param("slug"))
		if err != nil {
			abortLookup(c, err, services.ErrProjectNotFound, "Project not found")
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// RequireTask loads the task named by the :slug parameter
func RequireTask(finder TaskFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		task, err := finder.GetTask(c.Request.Context(), c.Param("slug"))
		if err != nil {
			abortLookup(c, err, services.ErrTaskNotFound, "Task not found")
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

// GetProject retrieves the project stored by RequireProject
func GetProject(c *gin.Context) (*models.Project, bool) {
	v, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return nil, false
	}
	project, ok := v.(*models.Project)
	return project, ok
}

// GetTask retrieves the task stored by RequireTask
func GetTask(c *gin.Context) (*models.Task, bool) {
	v, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return nil, false
	}
	task, ok := v.(*models.Task)
	return task, ok
}

func abortLookup(c *gin.Context, err, notFound error, message string) {
	if errors.Is(err, notFound) {
		apierrors.NotFound(c, message)
	} else {
		GetLogger(c).WithError(err).Error("failed to load resource")
		apierrors.InternalError(c, "")
	}
	c.Abort()
}
