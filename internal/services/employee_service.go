package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/yukikurage/team-management-api/internal/models"
	"github.com/yukikurage/team-management-api/internal/repository"
	"github.com/yukikurage/team-management-api/internal/search"
	"github.com/yukikurage/team-management-api/internal/validation"
)

// EmployeeService handles employee business logic
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	positionRepo repository.CatalogRepository[models.Position]
	log          *logrus.Logger
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo repository.EmployeeRepository, positionRepo repository.CatalogRepository[models.Position], log *logrus.Logger) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		positionRepo: positionRepo,
		log:          log,
	}
}

// UpdateEmployeeInput represents input for updating an employee profile
type UpdateEmployeeInput struct {
	FirstName  string `json:"first_name" validate:"required,max=150"`
	LastName   string `json:"last_name" validate:"required,max=150"`
	PositionID uint64 `json:"position_id" validate:"required"`
}

// ListEmployees returns one page of employees ranked by the search query
func (s *EmployeeService) ListEmployees(ctx context.Context, input ListInput) (ListResult[models.Employee], error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return ListResult[models.Employee]{}, fmt.Errorf("failed to list employees: %w", err)
	}
	return searchPage(employees, input, search.Employees), nil
}

// GetEmployee returns an employee by slug
func (s *EmployeeService) GetEmployee(ctx context.Context, slug string) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}

// UpdateEmployee changes name and position. The slug is never touched.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, slug string, input UpdateEmployeeInput) (*models.Employee, error) {
	employee, err := s.GetEmployee(ctx, slug)
	if err != nil {
		return nil, err
	}

	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	errs := validation.Struct(input)
	if input.PositionID != 0 {
		if err := requireAll(ctx, errs, "position_id", []uint64{input.PositionID}, s.positionRepo.CountByIDs); err != nil {
			return nil, err
		}
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	employee.FirstName = input.FirstName
	employee.LastName = input.LastName
	employee.PositionID = input.PositionID

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, integrityOr(err, "failed to update employee")
	}

	return s.employeeRepo.FindByID(ctx, employee.ID)
}

// DeleteEmployee removes the employee and everything that cascades with them
func (s *EmployeeService) DeleteEmployee(ctx context.Context, slug string, actorID uint64) error {
	employee, err := s.GetEmployee(ctx, slug)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.Delete(ctx, employee); err != nil {
		return integrityOr(err, "failed to delete employee")
	}

	s.log.WithFields(logrus.Fields{
		"employee_id": employee.ID,
		"email":       employee.Email,
		"actor_id":    actorID,
	}).Info("Employee deleted")
	return nil
}
