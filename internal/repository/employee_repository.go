package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yukikurage/team-management-api/internal/database"
	"github.com/yukikurage/team-management-api/internal/models"
)

// GormEmployeeRepository is a GORM implementation of EmployeeRepository
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

func (r *GormEmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.WithContext(ctx).
		Scopes(database.EmployeeOrder).
		Preload("Position").
		Find(&employees).Error
	return employees, err
}

func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uint64) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).Preload("Position").First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *GormEmployeeRepository) FindBySlug(ctx context.Context, slug string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).Preload("Position").Where("slug = ?", slug).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *GormEmployeeRepository) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).Preload("Position").Where("email = ?", email).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *GormEmployeeRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return exists(ctx, r.db, &models.Employee{}, "username", username)
}

func (r *GormEmployeeRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return exists(ctx, r.db, &models.Employee{}, "slug", slug)
}

func (r *GormEmployeeRepository) CountByIDs(ctx context.Context, ids []uint64) (int64, error) {
	return countByIDs(ctx, r.db, &models.Employee{}, ids)
}

func (r *GormEmployeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).
		Model(employee).
		Omit(clause.Associations).
		Updates(map[string]any{
			"first_name":  employee.FirstName,
			"last_name":   employee.LastName,
			"position_id": employee.PositionID,
		}).Error
}

// Delete deletes an employee and all related data in a transaction
func (r *GormEmployeeRepository) Delete(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Invitations addressed to the employee or sent by them
		if err := tx.Where("email = ? OR invited_by_id = ?", employee.Email, employee.ID).
			Delete(&models.Invitation{}).Error; err != nil {
			return err
		}

		if err := deleteJoinRows(tx, "team_members", "employee_id", employee.ID); err != nil {
			return err
		}
		if err := deleteJoinRows(tx, "task_assignees", "employee_id", employee.ID); err != nil {
			return err
		}

		if err := tx.Model(&models.Task{}).
			Where("completed_by_id = ?", employee.ID).
			Update("completed_by_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Employee{}, employee.ID).Error
	})
}
