package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/team-management-api/internal/models"
	"github.com/yukikurage/team-management-api/internal/repository"
	"github.com/yukikurage/team-management-api/internal/testutil"
	"github.com/yukikurage/team-management-api/internal/validation"
)

func TestCatalogService_Positions(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	service := NewPositionService(repository.NewPositionRepository(db))

	_, err := service.Create(ctx, CatalogInput{Name: "   "})
	_, ok := validation.As(err)
	assert.True(t, ok)

	used, err := service.Create(ctx, CatalogInput{Name: "Developer"})
	require.NoError(t, err)
	unused, err := service.Create(ctx, CatalogInput{Name: "Analyst"})
	require.NoError(t, err)
	testutil.CreateEmployee(t, db, "dev", "dev@example.com", used.ID)

	entries, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Analyst", entries[0].Name)

	assert.ErrorIs(t, service.Delete(ctx, used.ID), ErrCatalogEntryInUse)
	assert.NoError(t, service.Delete(ctx, unused.ID))
	assert.ErrorIs(t, service.Delete(ctx, unused.ID), ErrCatalogEntryNotFound)
}

func TestCatalogService_TaskTypeRestrictedByTasks(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	service := NewTaskTypeService(repository.NewTaskTypeRepository(db))

	bug, err := service.Create(ctx, CatalogInput{Name: "Bug"})
	require.NoError(t, err)
	project := testutil.CreateProject(t, db, "Website", "website")
	require.NoError(t, db.Create(&models.Task{
		Name: "Crash", ProjectID: project.ID, Priority: models.PriorityLow, TaskTypeID: bug.ID, Slug: "crash",
	}).Error)

	assert.ErrorIs(t, service.Delete(ctx, bug.ID), ErrCatalogEntryInUse)
}

func TestCatalogService_TagDeleteClearsLinks(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	tags := NewTaskTagService(repository.NewTaskTagRepository(db))

	tag, err := tags.Create(ctx, CatalogInput{Name: "frontend"})
	require.NoError(t, err)
	taskType := testutil.CreateTaskType(t, db, "Feature")
	project := testutil.CreateProject(t, db, "Website", "website")
	task := &models.Task{Name: "Navbar", ProjectID: project.ID, Priority: models.PriorityLow, TaskTypeID: taskType.ID, Slug: "navbar"}
	require.NoError(t, repository.NewTaskRepository(db).Create(ctx, task, nil, []uint64{tag.ID}))

	require.NoError(t, tags.Delete(ctx, tag.ID))

	var links int64
	require.NoError(t, db.Table("task_tags").Count(&links).Error)
	assert.Zero(t, links)
}
