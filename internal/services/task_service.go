package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/team-management-api/internal/constants"
	"github.com/yukikurage/team-management-api/internal/models"
	"github.com/yukikurage/team-management-api/internal/repository"
	"github.com/yukikurage/team-management-api/internal/slug"
	"github.com/yukikurage/team-management-api/internal/validation"
)

var (
	ErrTaskNotFound           = errors.New("task not found")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoTasksGenerated     = errors.New("AI did not generate any tasks")
	ErrAINoValidTasks         = errors.New("no valid tasks could be created from AI output")
)

const msgDeadlineInPast = "Deadline cannot be in the past."

// TaskService handles task business logic
type TaskService struct {
	taskRepo     repository.TaskRepository
	employeeRepo repository.EmployeeRepository
	taskTypeRepo repository.CatalogRepository[models.TaskType]
	tagRepo      repository.CatalogRepository[models.TaskTag]
	aiService    TaskGenerator
	now          func() time.Time
}

// NewTaskService creates a new TaskService. aiService may be nil.
func NewTaskService(
	taskRepo repository.TaskRepository,
	employeeRepo repository.EmployeeRepository,
	taskTypeRepo repository.CatalogRepository[models.TaskType],
	tagRepo repository.CatalogRepository[models.TaskTag],
	aiService TaskGenerator,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		employeeRepo: employeeRepo,
		taskTypeRepo: taskTypeRepo,
		tagRepo:      tagRepo,
		aiService:    aiService,
		now:          time.Now,
	}
}

// TaskInput is used for both creating and updating a task
type TaskInput struct {
	Name        string              `json:"name" validate:"required,max=255"`
	Description string              `json:"description"`
	Deadline    time.Time           `json:"deadline" validate:"required"`
	Priority    models.TaskPriority `json:"priority" validate:"required,oneof=1 2 3 4"`
	TaskTypeID  uint64              `json:"task_type_id" validate:"required"`
	AssigneeIDs []uint64            `json:"assignee_ids"`
	TagIDs      []uint64            `json:"tag_ids"`
}

func (s *TaskService) GetTask(ctx context.Context, slug string) (*models.Task, error) {
	task, err := s.taskRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask creates a task under the given project
func (s *TaskService) CreateTask(ctx context.Context, project *models.Project, input TaskInput) (*models.Task, Notice, error) {
	if err := s.validate(ctx, &input); err != nil {
		return nil, Notice{}, err
	}

	taskSlug, err := slug.Unique(ctx, s.taskRepo.SlugExists, input.Name)
	if err != nil {
		return nil, Notice{}, fmt.Errorf("failed to generate slug: %w", err)
	}

	task := &models.Task{
		Name:        input.Name,
		Description: input.Description,
		ProjectID:   project.ID,
		Deadline:    input.Deadline,
		Priority:    input.Priority,
		TaskTypeID:  input.TaskTypeID,
		Slug:        taskSlug,
	}
	if err := s.taskRepo.Create(ctx, task, input.AssigneeIDs, input.TagIDs); err != nil {
		return nil, Notice{}, integrityOr(err, "failed to create task")
	}

	created, err := s.GetTask(ctx, task.Slug)
	if err != nil {
		return nil, Notice{}, err
	}
	return created, success("Task created"), nil
}

// UpdateTask replaces the editable fields of a task. The slug, project and
// completion state are kept.
func (s *TaskService) UpdateTask(ctx context.Context, task *models.Task, input TaskInput) (*models.Task, error) {
	if err := s.validate(ctx, &input); err != nil {
		return nil, err
	}

	task.Name = input.Name
	task.Description = input.Description
	task.Deadline = input.Deadline
	task.Priority = input.Priority
	task.TaskTypeID = input.TaskTypeID

	if err := s.taskRepo.Update(ctx, task, input.AssigneeIDs, input.TagIDs); err != nil {
		return nil, integrityOr(err, "failed to update task")
	}
	return s.GetTask(ctx, task.Slug)
}

func (s *TaskService) DeleteTask(ctx context.Context, task *models.Task) error {
	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return integrityOr(err, "failed to delete task")
	}
	return nil
}

// ToggleCompletion flips the completion flag. Completing records the actor
// as completed_by, reopening clears it, both in the same UPDATE.
func (s *TaskService) ToggleCompletion(ctx context.Context, task *models.Task, actorID uint64) (*models.Task, error) {
	completed := !task.IsCompleted
	var completedBy *uint64
	if completed {
		completedBy = &actorID
	}

	if err := s.taskRepo.SetCompletion(ctx, task.ID, completed, completedBy); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, integrityOr(err, "failed to toggle completion")
	}
	return s.GetTask(ctx, task.Slug)
}

// ShuffleDeadlines moves every task's deadline to two days ago, tomorrow or
// five days from now, picked at random. Used to refresh demo data.
func (s *TaskService) ShuffleDeadlines(ctx context.Context, pick func(n int) int) (int, error) {
	now := s.now()
	choices := []time.Time{
		now.Add(-2 * 24 * time.Hour),
		now.Add(24 * time.Hour),
		now.Add(5 * 24 * time.Hour),
	}
	n, err := s.taskRepo.ShuffleDeadlines(ctx, func() time.Time {
		return choices[pick(len(choices))]
	})
	if err != nil {
		return 0, fmt.Errorf("failed to shuffle deadlines: %w", err)
	}
	return n, nil
}

func (s *TaskService) validate(ctx context.Context, input *TaskInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.AssigneeIDs = uniqueUint64(input.AssigneeIDs)
	input.TagIDs = uniqueUint64(input.TagIDs)

	errs := validation.Struct(*input)
	if !input.Deadline.IsZero() && input.Deadline.Before(s.now()) {
		errs.Add("deadline", msgDeadlineInPast)
	}
	if input.TaskTypeID != 0 {
		if err := requireAll(ctx, errs, "task_type_id", []uint64{input.TaskTypeID}, s.taskTypeRepo.CountByIDs); err != nil {
			return err
		}
	}
	if err := requireAll(ctx, errs, "assignee_ids", input.AssigneeIDs, s.employeeRepo.CountByIDs); err != nil {
		return err
	}
	if err := requireAll(ctx, errs, "tag_ids", input.TagIDs, s.tagRepo.CountByIDs); err != nil {
		return err
	}
	return errs.Err()
}

// GenerateTasksInput represents input for AI task generation
type GenerateTasksInput struct {
	Text string `json:"text" validate:"required,max=10000"`
}

// GenerateTasks turns free text into unsaved task drafts
func (s *TaskService) GenerateTasks(ctx context.Context, input GenerateTasksInput) ([]GeneratedTask, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}
	if err := validation.Struct(input).Err(); err != nil {
		return nil, err
	}

	aiTasks, err := s.aiService.GenerateTasksFromText(ctx, input.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}

	if len(aiTasks) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	if len(aiTasks) > constants.MaxAIGeneratedTasks {
		return nil, fmt.Errorf("AI generated too many tasks (max %d)", constants.MaxAIGeneratedTasks)
	}

	validTasks := make([]GeneratedTask, 0, len(aiTasks))
	now := s.now()
	for _, aiTask := range aiTasks {
		aiTask.Name = strings.TrimSpace(aiTask.Name)
		if aiTask.Name == "" {
			continue
		}
		if aiTask.Deadline != nil && aiTask.Deadline.Before(now) {
			aiTask.Deadline = nil
		}
		if !aiTask.Priority.Valid() {
			aiTask.Priority = models.PriorityMedium
		}
		validTasks = append(validTasks, aiTask)
	}

	if len(validTasks) == 0 {
		return nil, ErrAINoValidTasks
	}

	return validTasks, nil
}
