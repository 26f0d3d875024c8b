package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/team-management-api/internal/database"
	"github.com/yukikurage/team-management-api/internal/models"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

func (r *GormTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.WithContext(ctx).
		Scopes(database.TeamOrder).
		Preload("Members", database.EmployeeOrder).
		Find(&teams).Error
	return teams, err
}

func (r *GormTeamRepository) FindBySlug(ctx context.Context, slug string) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).
		Preload("Members", database.EmployeeOrder).
		Where("slug = ?", slug).
		First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *GormTeamRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return exists(ctx, r.db, &models.Team{}, "slug", slug)
}

func (r *GormTeamRepository) CountByIDs(ctx context.Context, ids []uint64) (int64, error) {
	return countByIDs(ctx, r.db, &models.Team{}, ids)
}

func (r *GormTeamRepository) ListForEmployee(ctx context.Context, employeeID uint64) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.WithContext(ctx).
		Scopes(database.TeamOrder).
		Where("teams.id IN (?)", r.db.Table("team_members").Select("team_id").Where("employee_id = ?", employeeID)).
		Find(&teams).Error
	return teams, err
}

// Create creates a team and its memberships
func (r *GormTeamRepository) Create(ctx context.Context, team *models.Team, memberIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(team).Error; err != nil {
			return err
		}
		return replaceJoinRows(tx, "team_members", "team_id", team.ID, "employee_id", memberIDs)
	})
}

// Update renames a team and replaces its memberships
func (r *GormTeamRepository) Update(ctx context.Context, team *models.Team, memberIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(team).Omit(clause.Associations).Update("name", team.Name).Error; err != nil {
			return err
		}
		return replaceJoinRows(tx, "team_members", "team_id", team.ID, "employee_id", memberIDs)
	})
}

// Delete deletes a team and its join rows
func (r *GormTeamRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteJoinRows(tx, "team_members", "team_id", id); err != nil {
			return err
		}
		if err := deleteJoinRows(tx, "project_teams", "team_id", id); err != nil {
			return err
		}
		return tx.Delete(&models.Team{}, id).Error
	})
}
