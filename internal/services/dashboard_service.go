package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/team-management-api/internal/models"
	"github.com/yukikurage/team-management-api/internal/repository"
)

// Dashboard is the navigation context of the signed-in employee.
type Dashboard struct {
	Projects []models.Project
	Teams    []models.Team
}

type DashboardService struct {
	projectRepo repository.ProjectRepository
	teamRepo    repository.TeamRepository
}

func NewDashboardService(projectRepo repository.ProjectRepository, teamRepo repository.TeamRepository) *DashboardService {
	return &DashboardService{
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
	}
}

// ForEmployee lists the projects the employee works on, through a task
// assignment or a team, and the teams they belong to.
func (s *DashboardService) ForEmployee(ctx context.Context, employeeID uint64) (*Dashboard, error) {
	projects, err := s.projectRepo.ListForEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	teams, err := s.teamRepo.ListForEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return &Dashboard{Projects: projects, Teams: teams}, nil
}
