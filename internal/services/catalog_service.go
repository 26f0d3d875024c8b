package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/team-management-api/internal/models"
	"github.com/yukikurage/team-management-api/internal/repository"
	"github.com/yukikurage/team-management-api/internal/validation"
)

var (
	ErrCatalogEntryNotFound = errors.New("catalog entry not found")
	ErrCatalogEntryInUse    = errors.New("catalog entry is still referenced")
)

// CatalogService manages one of the name-only lookup tables.
type CatalogService[T models.CatalogEntry] struct {
	repo     repository.CatalogRepository[T]
	newEntry func(name string) T
}

func NewPositionService(repo repository.CatalogRepository[models.Position]) *CatalogService[models.Position] {
	return &CatalogService[models.Position]{
		repo:     repo,
		newEntry: func(name string) models.Position { return models.Position{Name: name} },
	}
}

func NewTaskTypeService(repo repository.CatalogRepository[models.TaskType]) *CatalogService[models.TaskType] {
	return &CatalogService[models.TaskType]{
		repo:     repo,
		newEntry: func(name string) models.TaskType { return models.TaskType{Name: name} },
	}
}

func NewTaskTagService(repo repository.CatalogRepository[models.TaskTag]) *CatalogService[models.TaskTag] {
	return &CatalogService[models.TaskTag]{
		repo:     repo,
		newEntry: func(name string) models.TaskTag { return models.TaskTag{Name: name} },
	}
}

// CatalogInput represents input for creating a catalog entry
type CatalogInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (s *CatalogService[T]) List(ctx context.Context) ([]T, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

func (s *CatalogService[T]) Create(ctx context.Context, input CatalogInput) (*T, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input).Err(); err != nil {
		return nil, err
	}

	entry := s.newEntry(input.Name)
	if err := s.repo.Create(ctx, &entry); err != nil {
		return nil, integrityOr(err, "failed to create entry")
	}
	return &entry, nil
}

// Delete removes an entry unless a restricting row still references it.
func (s *CatalogService[T]) Delete(ctx context.Context, id uint64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCatalogEntryNotFound
		}
		return fmt.Errorf("failed to find entry: %w", err)
	}

	inUse, err := s.repo.InUse(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check references: %w", err)
	}
	if inUse {
		return ErrCatalogEntryInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCatalogEntryNotFound
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrCatalogEntryInUse
		}
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}
