package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/team-management-api/internal/models"
	"github.com/yukikurage/team-management-api/internal/repository"
	"github.com/yukikurage/team-management-api/internal/search"
	"github.com/yukikurage/team-management-api/internal/slug"
	"github.com/yukikurage/team-management-api/internal/validation"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	teamRepo    repository.TeamRepository
	taskRepo    repository.TaskRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, teamRepo repository.TeamRepository, taskRepo repository.TaskRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		taskRepo:    taskRepo,
	}
}

// ProjectInput is used for both creating and updating a project
type ProjectInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description"`
	TeamIDs     []uint64 `json:"team_ids"`
}

// ProjectDetail is a project with its tasks filtered by the task search.
type ProjectDetail struct {
	Project        *models.Project
	Tasks          []models.Task
	ActiveCount    int
	CompletedCount int
	Query          string
}

func (s *ProjectService) ListProjects(ctx context.Context, input ListInput) (ListResult[models.Project], error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return ListResult[models.Project]{}, fmt.Errorf("failed to list projects: %w", err)
	}
	return searchPage(projects, input, search.Projects), nil
}

func (s *ProjectService) GetProject(ctx context.Context, slug string) (*models.Project, error) {
	project, err := s.projectRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// GetProjectDetail loads a project with its tasks. A non-empty query keeps
// only matching tasks, name matches first. Counts cover all tasks.
func (s *ProjectService) GetProjectDetail(ctx context.Context, project *models.Project, rawQuery string) (*ProjectDetail, error) {
	tasks, err := s.taskRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project tasks: %w", err)
	}

	detail := &ProjectDetail{Project: project}
	for _, t := range tasks {
		if t.IsCompleted {
			detail.CompletedCount++
		} else {
			detail.ActiveCount++
		}
	}

	q, err := search.ParseQuery(rawQuery)
	if err != nil {
		q = search.Query{}
	}
	detail.Tasks = search.Rank(tasks, q, search.ProjectTasks).Items()
	detail.Query = q.String()
	return detail, nil
}

func (s *ProjectService) CreateProject(ctx context.Context, input ProjectInput) (*models.Project, Notice, error) {
	teamIDs, err := s.validate(ctx, &input)
	if err != nil {
		return nil, Notice{}, err
	}

	projectSlug, err := slug.Unique(ctx, s.projectRepo.SlugExists, input.Name)
	if err != nil {
		return nil, Notice{}, fmt.Errorf("failed to generate slug: %w", err)
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		Slug:        projectSlug,
	}
	if err := s.projectRepo.Create(ctx, project, teamIDs); err != nil {
		return nil, Notice{}, integrityOr(err, "failed to create project")
	}

	created, err := s.GetProject(ctx, project.Slug)
	if err != nil {
		return nil, Notice{}, err
	}
	return created, success("Project created"), nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, project *models.Project, input ProjectInput) (*models.Project, error) {
	teamIDs, err := s.validate(ctx, &input)
	if err != nil {
		return nil, err
	}

	project.Name = input.Name
	project.Description = input.Description
	if err := s.projectRepo.Update(ctx, project, teamIDs); err != nil {
		return nil, integrityOr(err, "failed to update project")
	}
	return s.GetProject(ctx, project.Slug)
}

func (s *ProjectService) DeleteProject(ctx context.Context, project *models.Project) error {
	if err := s.projectRepo.Delete(ctx, project.ID); err != nil {
		return integrityOr(err, "failed to delete project")
	}
	return nil
}

func (s *ProjectService) validate(ctx context.Context, input *ProjectInput) ([]uint64, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	teamIDs := uniqueUint64(input.TeamIDs)

	errs := validation.Struct(*input)
	if err := requireAll(ctx, errs, "team_ids", teamIDs, s.teamRepo.CountByIDs); err != nil {
		return nil, err
	}
	return teamIDs, errs.Err()
}
