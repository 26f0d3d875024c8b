package dto

import (
	"time"

	"github.com/yukikurage/team-management-api/internal/models"
)

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID      uint64           `json:"id"`
	Name    string           `json:"name"`
	Slug    string           `json:"slug"`
	Members []EmployeeRefDTO `json:"members"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
	Teams       []TeamDTO `json:"teams,omitempty"`
}

// ProjectDetailDTO is a project with its (optionally searched) tasks
type ProjectDetailDTO struct {
	ProjectDTO
	Tasks          []TaskDTO `json:"tasks"`
	ActiveCount    int       `json:"active_count"`
	CompletedCount int       `json:"completed_count"`
	Query          string    `json:"query"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID            uint64              `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	Slug          string              `json:"slug"`
	Deadline      time.Time           `json:"deadline"`
	IsCompleted   bool                `json:"is_completed"`
	Priority      models.TaskPriority `json:"priority"`
	PriorityLabel string              `json:"priority_label"`
	ProjectID     uint64              `json:"project_id"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	TaskType      *CatalogItem        `json:"task_type,omitempty"`
	Project       *ProjectRefDTO      `json:"project,omitempty"`
	CompletedBy   *EmployeeRefDTO     `json:"completed_by"`
	Assignees     []EmployeeRefDTO    `json:"assignees"`
	Tags          []CatalogItem       `json:"tags"`
}

type ProjectRefDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// DashboardDTO lists what the signed-in employee works on
type DashboardDTO struct {
	Projects []ProjectDTO `json:"projects"`
	Teams    []TeamDTO    `json:"teams"`
}

// Conversion functions

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	return TeamDTO{
		ID:      team.ID,
		Name:    team.Name,
		Slug:    team.Slug,
		Members: ToEmployeeRefDTOs(team.Members),
	}
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Slug:        project.Slug,
		CreatedAt:   project.CreatedAt,
	}

	// Include teams if preloaded
	if len(project.Teams) > 0 {
		dto.Teams = Map(project.Teams, ToTeamDTO)
	}
	return dto
}

func ToProjectDetailDTO(project models.Project, tasks []models.Task, active, completed int, query string) ProjectDetailDTO {
	return ProjectDetailDTO{
		ProjectDTO:     ToProjectDTO(project),
		Tasks:          Map(tasks, ToTaskDTO),
		ActiveCount:    active,
		CompletedCount: completed,
		Query:          query,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:            task.ID,
		Name:          task.Name,
		Description:   task.Description,
		Slug:          task.Slug,
		Deadline:      task.Deadline,
		IsCompleted:   task.IsCompleted,
		Priority:      task.Priority,
		PriorityLabel: task.Priority.Label(),
		ProjectID:     task.ProjectID,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
		Assignees:     ToEmployeeRefDTOs(task.Assignees),
		Tags:          Map(task.Tags, ToCatalogItem[models.TaskTag]),
	}

	if task.TaskType.ID != 0 {
		taskType := ToCatalogItem(task.TaskType)
		dto.TaskType = &taskType
	}
	if task.Project.ID != 0 {
		dto.Project = &ProjectRefDTO{ID: task.Project.ID, Name: task.Project.Name, Slug: task.Project.Slug}
	}
	if task.CompletedBy != nil {
		completedBy := ToEmployeeRefDTO(*task.CompletedBy)
		dto.CompletedBy = &completedBy
	}
	return dto
}

func ToDashboardDTO(projects []models.Project, teams []models.Team) DashboardDTO {
	return DashboardDTO{
		Projects: Map(projects, ToProjectDTO),
		Teams:    Map(teams, ToTeamDTO),
	}
}
