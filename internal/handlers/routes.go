package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/team-management-api/internal/middleware"
	"github.com/yukikurage/team-management-api/internal/models"
	"github.com/yukikurage/team-management-api/internal/services"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth        *services.AuthService
	Employees   *services.EmployeeService
	Invitations *services.InvitationService
	Teams       *services.TeamService
	Projects    *services.ProjectService
	Tasks       *services.TaskService
	Positions   *services.CatalogService[models.Position]
	TaskTypes   *services.CatalogService[models.TaskType]
	TaskTags    *services.CatalogService[models.TaskTag]
	Dashboard   *services.DashboardService
}

// RegisterRoutes mounts the health check and the /api tree. Session
// middleware must already be installed on r.
func RegisterRoutes(r *gin.Engine, s Services, secureCookies bool) {
	authHandler := NewAuthHandler(s.Auth, s.Invitations, secureCookies)
	employeeHandler := NewEmployeeHandler(s.Employees)
	invitationHandler := NewInvitationHandler(s.Invitations)
	teamHandler := NewTeamHandler(s.Teams)
	projectHandler := NewProjectHandler(s.Projects)
	taskHandler := NewTaskHandler(s.Tasks)
	dashboardHandler := NewDashboardHandler(s.Dashboard)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Team Management API is running",
		})
	})

	api := r.Group("/api")
	{
		// Auth routes (public except /me)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentEmployee)
		}

		// Invitees are not signed in yet
		api.GET("/invitations/:slug", invitationHandler.GetInvitation)
		api.POST("/employees/register/:slug", authHandler.Register)

		protected := api.Group("")
		protected.Use(middleware.RequireAuth())

		protected.GET("/dashboard", dashboardHandler.GetDashboard)

		employees := protected.Group("/employees")
		{
			employees.GET("", employeeHandler.ListEmployees)
			employees.PATCH("/:slug", employeeHandler.UpdateEmployee)
			employees.DELETE("/:slug", employeeHandler.DeleteEmployee)
		}

		invitations := protected.Group("/invitations")
		{
			invitations.GET("", invitationHandler.ListInvitations)
			invitations.POST("", invitationHandler.CreateInvitation)
		}

		teams := protected.Group("/teams")
		{
			teams.GET("", teamHandler.ListTeams)
			teams.POST("", teamHandler.CreateTeam)
			teams.PUT("/:slug", teamHandler.UpdateTeam)
			teams.DELETE("/:slug", teamHandler.DeleteTeam)
		}

		requireProject := middleware.RequireProject(s.Projects)
		projects := protected.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:slug", requireProject, projectHandler.GetProject)
			projects.PUT("/:slug", requireProject, projectHandler.UpdateProject)
			projects.DELETE("/:slug", requireProject, projectHandler.DeleteProject)
			projects.POST("/:slug/tasks", requireProject, taskHandler.CreateTask)
			projects.POST("/:slug/tasks/generate", requireProject, taskHandler.GenerateTasks)
		}

		requireTask := middleware.RequireTask(s.Tasks)
		tasks := protected.Group("/tasks")
		{
			tasks.GET("/:slug", requireTask, taskHandler.GetTask)
			tasks.PUT("/:slug", requireTask, taskHandler.UpdateTask)
			tasks.DELETE("/:slug", requireTask, taskHandler.DeleteTask)
			tasks.POST("/:slug/toggle-completion", requireTask, taskHandler.ToggleCompletion)
		}

		registerCatalog(protected.Group("/positions"), NewCatalogHandler(s.Positions))
		registerCatalog(protected.Group("/task-types"), NewCatalogHandler(s.TaskTypes))
		registerCatalog(protected.Group("/task-tags"), NewCatalogHandler(s.TaskTags))
	}
}

func registerCatalog[T models.CatalogEntry](group *gin.RouterGroup, h *CatalogHandler[T]) {
	group.GET("", h.List)
	group.POST("", h.Create)
	group.DELETE("/:id", h.Delete)
}
