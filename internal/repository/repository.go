package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yukikurage/team-management-api/internal/models"
)

var (
	// ErrInvitationAlreadyAccepted is returned when the conditional accept update matched no row.
	ErrInvitationAlreadyAccepted = errors.New("invitation repository: invitation already accepted")
	// ErrCreateEmployee is returned when creating the employee fails inside the accept transaction.
	ErrCreateEmployee = errors.New("invitation repository: create employee failed")
	// ErrNotifyInvitee is returned when the invitation notification fails inside the create transaction.
	ErrNotifyInvitee = errors.New("invitation repository: notify invitee failed")
)

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	// List returns every employee in default order with Position preloaded
	List(ctx context.Context) ([]models.Employee, error)

	FindByID(ctx context.Context, id uint64) (*models.Employee, error)
	FindBySlug(ctx context.Context, slug string) (*models.Employee, error)
	FindByEmail(ctx context.Context, email string) (*models.Employee, error)

	UsernameExists(ctx context.Context, username string) (bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	// CountByIDs counts how many of the given employee IDs exist
	CountByIDs(ctx context.Context, ids []uint64) (int64, error)

	// Update writes the editable profile columns only
	Update(ctx context.Context, employee *models.Employee) error

	// Delete removes an employee together with their invitations, team and
	// assignee memberships, and clears completed_by on their tasks
	Delete(ctx context.Context, employee *models.Employee) error
}

// InvitationRepository defines the interface for invitation data access
type InvitationRepository interface {
	// List returns every invitation newest first with Position and InvitedBy preloaded
	List(ctx context.Context) ([]models.Invitation, error)

	FindBySlug(ctx context.Context, slug string) (*models.Invitation, error)

	EmailExists(ctx context.Context, email string) (bool, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Create persists the invitation and runs onCreated in the same
	// transaction. An error from onCreated rolls the insert back.
	Create(ctx context.Context, invitation *models.Invitation, onCreated func(*models.Invitation) error) error

	// Accept marks a pending invitation accepted and creates its employee
	// atomically. Returns ErrInvitationAlreadyAccepted if it was already consumed.
	Accept(ctx context.Context, invitation *models.Invitation, employee *models.Employee) error
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// List returns every team in default order with Members preloaded
	List(ctx context.Context) ([]models.Team, error)

	FindBySlug(ctx context.Context, slug string) (*models.Team, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	CountByIDs(ctx context.Context, ids []uint64) (int64, error)

	// ListForEmployee lists the teams the employee is a member of
	ListForEmployee(ctx context.Context, employeeID uint64) ([]models.Team, error)

	Create(ctx context.Context, team *models.Team, memberIDs []uint64) error
	Update(ctx context.Context, team *models.Team, memberIDs []uint64) error
	Delete(ctx context.Context, id uint64) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// List returns every project in default order with Tasks preloaded
	List(ctx context.Context) ([]models.Project, error)

	FindBySlug(ctx context.Context, slug string) (*models.Project, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	// ListForEmployee lists projects where the employee is assigned a task
	// or belongs to one of the project's teams
	ListForEmployee(ctx context.Context, employeeID uint64) ([]models.Project, error)

	Create(ctx context.Context, project *models.Project, teamIDs []uint64) error
	Update(ctx context.Context, project *models.Project, teamIDs []uint64) error

	// Delete removes the project with its tasks and all join rows
	Delete(ctx context.Context, id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// ListByProject returns the project's tasks in default order
	ListByProject(ctx context.Context, projectID uint64) ([]models.Task, error)

	FindBySlug(ctx context.Context, slug string) (*models.Task, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	Create(ctx context.Context, task *models.Task, assigneeIDs, tagIDs []uint64) error
	Update(ctx context.Context, task *models.Task, assigneeIDs, tagIDs []uint64) error
	Delete(ctx context.Context, id uint64) error

	// SetCompletion writes is_completed and completed_by in a single UPDATE
	SetCompletion(ctx context.Context, id uint64, completed bool, completedBy *uint64) error

	// ShuffleDeadlines assigns every task a deadline from pick
	ShuffleDeadlines(ctx context.Context, pick func() time.Time) (int, error)
}

// CatalogRepository defines data access for the named lookup tables
// (positions, task types and task tags)
type CatalogRepository[T models.CatalogEntry] interface {
	List(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id uint64) (*T, error)
	Create(ctx context.Context, entry *T) error
	CountByIDs(ctx context.Context, ids []uint64) (int64, error)

	// InUse reports whether a restricting row still references the entry
	InUse(ctx context.Context, id uint64) (bool, error)

	// Delete removes the entry and the rows that cascade with it
	Delete(ctx context.Context, id uint64) error
}
