package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/team-management-api/internal/database"
	"github.com/yukikurage/team-management-api/internal/models"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

func (r *GormProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Scopes(database.ProjectOrder).
		Preload("Tasks", database.TaskOrder).
		Find(&projects).Error
	return projects, err
}

func (r *GormProjectRepository) FindBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).
		Preload("Teams", database.TeamOrder).
		Where("slug = ?", slug).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *GormProjectRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return exists(ctx, r.db, &models.Project{}, "slug", slug)
}

func (r *GormProjectRepository) ListForEmployee(ctx context.Context, employeeID uint64) ([]models.Project, error) {
	assigned := r.db.Table("tasks").
		Select("tasks.project_id").
		Joins("JOIN task_assignees ON task_assignees.task_id = tasks.id").
		Where("task_assignees.employee_id = ?", employeeID)
	viaTeam := r.db.Table("project_teams").
		Select("project_teams.project_id").
		Joins("JOIN team_members ON team_members.team_id = project_teams.team_id").
		Where("team_members.employee_id = ?", employeeID)

	var projects []models.Project
	err := r.db.WithContext(ctx).
		Scopes(database.ProjectOrder).
		Where("projects.id IN (?) OR projects.id IN (?)", assigned, viaTeam).
		Find(&projects).Error
	return projects, err
}

// Create creates a project and links its teams
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project, teamIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(project).Error; err != nil {
			return err
		}
		return replaceJoinRows(tx, "project_teams", "project_id", project.ID, "team_id", teamIDs)
	})
}

// Update updates name and description and replaces the linked teams
func (r *GormProjectRepository) Update(ctx context.Context, project *models.Project, teamIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(project).Omit(clause.Associations).Updates(map[string]any{
			"name":        project.Name,
			"description": project.Description,
		}).Error; err != nil {
			return err
		}
		return replaceJoinRows(tx, "project_teams", "project_id", project.ID, "team_id", teamIDs)
	})
}

// Delete deletes a project and all related data in a transaction
func (r *GormProjectRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := func() *gorm.DB {
			return tx.Model(&models.Task{}).Select("id").Where("project_id = ?", id)
		}

		if err := tx.Exec("DELETE FROM task_assignees WHERE task_id IN (?)", taskIDs()).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM task_tags WHERE task_id IN (?)", taskIDs()).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := deleteJoinRows(tx, "project_teams", "project_id", id); err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}
