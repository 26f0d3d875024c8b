package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yukikurage/team-management-api/internal/models"
)

// reference is a column in another table that points at a catalog entry.
type reference struct {
	table  string
	column string
}

// GormCatalogRepository is a GORM implementation of CatalogRepository
type GormCatalogRepository[T models.CatalogEntry] struct {
	db *gorm.DB
	// rows that block deletion
	restrictedBy []reference
	// rows deleted together with the entry
	cascadesTo []reference
}

// NewPositionRepository returns the position catalog. Employees restrict
// deletion, invitations are deleted with their position.
func NewPositionRepository(db *gorm.DB) CatalogRepository[models.Position] {
	return &GormCatalogRepository[models.Position]{
		db:           db,
		restrictedBy: []reference{{"employees", "position_id"}},
		cascadesTo:   []reference{{"invitations", "position_id"}},
	}
}

func NewTaskTypeRepository(db *gorm.DB) CatalogRepository[models.TaskType] {
	return &GormCatalogRepository[models.TaskType]{
		db:           db,
		restrictedBy: []reference{{"tasks", "task_type_id"}},
	}
}

func NewTaskTagRepository(db *gorm.DB) CatalogRepository[models.TaskTag] {
	return &GormCatalogRepository[models.TaskTag]{
		db:         db,
		cascadesTo: []reference{{"task_tags", "task_tag_id"}},
	}
}

func (r *GormCatalogRepository[T]) List(ctx context.Context) ([]T, error) {
	var entries []T
	err := r.db.WithContext(ctx).Order("name").Order("id").Find(&entries).Error
	return entries, err
}

func (r *GormCatalogRepository[T]) FindByID(ctx context.Context, id uint64) (*T, error) {
	var entry T
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *GormCatalogRepository[T]) Create(ctx context.Context, entry *T) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormCatalogRepository[T]) CountByIDs(ctx context.Context, ids []uint64) (int64, error) {
	return countByIDs(ctx, r.db, new(T), ids)
}

func (r *GormCatalogRepository[T]) InUse(ctx context.Context, id uint64) (bool, error) {
	for _, ref := range r.restrictedBy {
		var count int64
		if err := r.db.WithContext(ctx).Table(ref.table).Where(ref.column+" = ?", id).Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *GormCatalogRepository[T]) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, ref := range r.cascadesTo {
			if err := deleteJoinRows(tx, ref.table, ref.column, id); err != nil {
				return err
			}
		}
		result := tx.Delete(new(T), id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
