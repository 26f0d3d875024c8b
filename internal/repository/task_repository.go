package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/team-management-api/internal/database"
	"github.com/yukikurage/team-management-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) ListByProject(ctx context.Context, projectID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Scopes(database.TaskOrder).
		Preload("TaskType").
		Preload("Assignees", database.EmployeeOrder).
		Where("project_id = ?", projectID).
		Find(&tasks).Error
	return tasks, err
}

func (r *GormTaskRepository) FindBySlug(ctx context.Context, slug string) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("TaskType").
		Preload("CompletedBy").
		Preload("Assignees", database.EmployeeOrder).
		Preload("Tags").
		Where("slug = ?", slug).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return exists(ctx, r.db, &models.Task{}, "slug", slug)
}

// Create creates a task with its assignees and tags
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task, assigneeIDs, tagIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(task).Error; err != nil {
			return err
		}
		return replaceTaskLinks(tx, task.ID, assigneeIDs, tagIDs)
	})
}

// Update writes the editable columns and replaces assignees and tags
func (r *GormTaskRepository) Update(ctx context.Context, task *models.Task, assigneeIDs, tagIDs []uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(task).Omit(clause.Associations).Updates(map[string]any{
			"name":         task.Name,
			"description":  task.Description,
			"deadline":     task.Deadline,
			"priority":     task.Priority,
			"task_type_id": task.TaskTypeID,
		}).Error; err != nil {
			return err
		}
		return replaceTaskLinks(tx, task.ID, assigneeIDs, tagIDs)
	})
}

func replaceTaskLinks(tx *gorm.DB, taskID uint64, assigneeIDs, tagIDs []uint64) error {
	if err := replaceJoinRows(tx, "task_assignees", "task_id", taskID, "employee_id", assigneeIDs); err != nil {
		return err
	}
	return replaceJoinRows(tx, "task_tags", "task_id", taskID, "task_tag_id", tagIDs)
}

// Delete deletes a task and its join rows
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteJoinRows(tx, "task_assignees", "task_id", id); err != nil {
			return err
		}
		if err := deleteJoinRows(tx, "task_tags", "task_id", id); err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, id).Error
	})
}

func (r *GormTaskRepository) SetCompletion(ctx context.Context, id uint64, completed bool, completedBy *uint64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_completed":    completed,
			"completed_by_id": completedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// MySQL counts changed rows, not matched ones, so a write that repeats
	// the stored values reports zero.
	found, err := exists(ctx, r.db, &models.Task{}, "id", id)
	if err != nil {
		return err
	}
	if !found {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormTaskRepository) ShuffleDeadlines(ctx context.Context, pick func() time.Time) (int, error) {
	var ids []uint64
	if err := r.db.WithContext(ctx).Model(&models.Task{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return 0, err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			if err := tx.Model(&models.Task{}).Where("id = ?", id).Update("deadline", pick()).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
