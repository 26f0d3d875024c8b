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

var ErrTeamNotFound = errors.New("team not found")

// TeamService handles team business logic
type TeamService struct {
	teamRepo     repository.TeamRepository
	employeeRepo repository.EmployeeRepository
}

// NewTeamService creates a new TeamService
func NewTeamService(teamRepo repository.TeamRepository, employeeRepo repository.EmployeeRepository) *TeamService {
	return &TeamService{
		teamRepo:     teamRepo,
		employeeRepo: employeeRepo,
	}
}

// TeamInput is used for both creating and updating a team
type TeamInput struct {
	Name      string   `json:"name" validate:"required,max=100"`
	MemberIDs []uint64 `json:"member_ids"`
}

func (s *TeamService) ListTeams(ctx context.Context, input ListInput) (ListResult[models.Team], error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return ListResult[models.Team]{}, fmt.Errorf("failed to list teams: %w", err)
	}
	return searchPage(teams, input, search.Teams), nil
}

func (s *TeamService) GetTeam(ctx context.Context, slug string) (*models.Team, error) {
	team, err := s.teamRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}
	return team, nil
}

func (s *TeamService) CreateTeam(ctx context.Context, input TeamInput) (*models.Team, Notice, error) {
	memberIDs, err := s.validate(ctx, &input)
	if err != nil {
		return nil, Notice{}, err
	}

	teamSlug, err := slug.Unique(ctx, s.teamRepo.SlugExists, input.Name)
	if err != nil {
		return nil, Notice{}, fmt.Errorf("failed to generate slug: %w", err)
	}

	team := &models.Team{Name: input.Name, Slug: teamSlug}
	if err := s.teamRepo.Create(ctx, team, memberIDs); err != nil {
		return nil, Notice{}, integrityOr(err, "failed to create team")
	}

	created, err := s.GetTeam(ctx, team.Slug)
	if err != nil {
		return nil, Notice{}, err
	}
	return created, success("Team created"), nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, slug string, input TeamInput) (*models.Team, error) {
	team, err := s.GetTeam(ctx, slug)
	if err != nil {
		return nil, err
	}

	memberIDs, err := s.validate(ctx, &input)
	if err != nil {
		return nil, err
	}

	team.Name = input.Name
	if err := s.teamRepo.Update(ctx, team, memberIDs); err != nil {
		return nil, integrityOr(err, "failed to update team")
	}
	return s.GetTeam(ctx, team.Slug)
}

func (s *TeamService) DeleteTeam(ctx context.Context, slug string) error {
	team, err := s.GetTeam(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.teamRepo.Delete(ctx, team.ID); err != nil {
		return integrityOr(err, "failed to delete team")
	}
	return nil
}

func (s *TeamService) validate(ctx context.Context, input *TeamInput) ([]uint64, error) {
	input.Name = strings.TrimSpace(input.Name)
	memberIDs := uniqueUint64(input.MemberIDs)

	errs := validation.Struct(*input)
	if err := requireAll(ctx, errs, "member_ids", memberIDs, s.employeeRepo.CountByIDs); err != nil {
		return nil, err
	}
	return memberIDs, errs.Err()
}
