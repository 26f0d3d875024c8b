package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukikurage/team-management-api/internal/models"
	"github.com/yukikurage/team-management-api/internal/testutil"
)

func TestEmployeeDelete_Cascades(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	position := testutil.CreatePosition(t, db, "Developer")
	boss := testutil.CreateEmployee(t, db, "boss", "boss@example.com", position.ID)
	leaving := testutil.CreateEmployee(t, db, "leaving", "leaving@example.com", position.ID)
	taskType := testutil.CreateTaskType(t, db, "Bug")
	project := testutil.CreateProject(t, db, "Website", "website")

	invitations := NewInvitationRepository(db)
	require.NoError(t, invitations.Create(ctx, &models.Invitation{
		Email: "leaving@example.com", PositionID: position.ID, InvitedByID: boss.ID, Slug: "inv-own",
	}, nil))
	require.NoError(t, invitations.Create(ctx, &models.Invitation{
		Email: "friend@example.com", PositionID: position.ID, InvitedByID: leaving.ID, Slug: "inv-sent",
	}, nil))
	require.NoError(t, invitations.Create(ctx, &models.Invitation{
		Email: "other@example.com", PositionID: position.ID, InvitedByID: boss.ID, Slug: "inv-other",
	}, nil))

	teams := NewTeamRepository(db)
	team := &models.Team{Name: "Backend", Slug: "backend"}
	require.NoError(t, teams.Create(ctx, team, []uint64{boss.ID, leaving.ID}))

	tasks := NewTaskRepository(db)
	task := &models.Task{
		Name: "Fix", ProjectID: project.ID, Deadline: time.Now().Add(time.Hour),
		Priority: models.PriorityHigh, TaskTypeID: taskType.ID, Slug: "fix",
	}
	require.NoError(t, tasks.Create(ctx, task, []uint64{leaving.ID}, nil))
	require.NoError(t, tasks.SetCompletion(ctx, task.ID, true, &leaving.ID))

	repo := NewEmployeeRepository(db)
	require.NoError(t, repo.Delete(ctx, &leaving))

	var remaining []models.Invitation
	require.NoError(t, db.Order("id").Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "other@example.com", remaining[0].Email)

	got, err := teams.FindBySlug(ctx, "backend")
	require.NoError(t, err)
	require.Len(t, got.Members, 1)
	assert.Equal(t, boss.ID, got.Members[0].ID)

	reloaded, err := tasks.FindBySlug(ctx, "fix")
	require.NoError(t, err)
	assert.Nil(t, reloaded.CompletedByID)
	assert.Empty(t, reloaded.Assignees)

	_, err = repo.FindByID(ctx, leaving.ID)
	assert.Error(t, err)
}

func TestEmployeeList_DefaultOrder(t *testing.T) {
	db := testutil.NewDB(t)
	position := testutil.CreatePosition(t, db, "QA")
	for _, name := range []string{"charlie", "alice", "bob"} {
		testutil.CreateEmployee(t, db, name, name+"@example.com", position.ID)
	}

	employees, err := NewEmployeeRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, employees, 3)
	assert.Equal(t, "charlie", employees[0].Username)
	assert.Equal(t, "QA", employees[0].Position.Name)
	assert.Less(t, employees[0].ID, employees[1].ID)
	assert.Less(t, employees[1].ID, employees[2].ID)
}

func TestProjectListForEmployee(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	position := testutil.CreatePosition(t, db, "Developer")
	me := testutil.CreateEmployee(t, db, "me", "me@example.com", position.ID)
	taskType := testutil.CreateTaskType(t, db, "Feature")

	projects := NewProjectRepository(db)
	teams := NewTeamRepository(db)
	tasks := NewTaskRepository(db)

	team := &models.Team{Name: "Core", Slug: "core"}
	require.NoError(t, teams.Create(ctx, team, []uint64{me.ID}))

	viaTeam := &models.Project{Name: "Via team", Slug: "via-team"}
	require.NoError(t, projects.Create(ctx, viaTeam, []uint64{team.ID}))

	viaTask := &models.Project{Name: "Via task", Slug: "via-task"}
	require.NoError(t, projects.Create(ctx, viaTask, nil))
	require.NoError(t, tasks.Create(ctx, &models.Task{
		Name: "Mine", ProjectID: viaTask.ID, Deadline: time.Now().Add(time.Hour),
		Priority: models.PriorityLow, TaskTypeID: taskType.ID, Slug: "mine",
	}, []uint64{me.ID, me.ID}, nil))

	both := &models.Project{Name: "Both", Slug: "both"}
	require.NoError(t, projects.Create(ctx, both, []uint64{team.ID}))
	require.NoError(t, tasks.Create(ctx, &models.Task{
		Name: "Also mine", ProjectID: both.ID, Deadline: time.Now().Add(time.Hour),
		Priority: models.PriorityLow, TaskTypeID: taskType.ID, Slug: "also-mine",
	}, []uint64{me.ID}, nil))

	require.NoError(t, projects.Create(ctx, &models.Project{Name: "Unrelated", Slug: "unrelated"}, nil))

	got, err := projects.ListForEmployee(ctx, me.ID)
	require.NoError(t, err)

	slugs := make([]string, len(got))
	for i, p := range got {
		slugs[i] = p.Slug
	}
	assert.ElementsMatch(t, []string{"via-team", "via-task", "both"}, slugs)

	myTeams, err := teams.ListForEmployee(ctx, me.ID)
	require.NoError(t, err)
	require.Len(t, myTeams, 1)
	assert.Equal(t, "core", myTeams[0].Slug)
}

func TestProjectDelete_RemovesTasks(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	position := testutil.CreatePosition(t, db, "Developer")
	me := testutil.CreateEmployee(t, db, "me", "me@example.com", position.ID)
	taskType := testutil.CreateTaskType(t, db, "Feature")
	tag := models.TaskTag{Name: "backend"}
	require.NoError(t, db.Create(&tag).Error)

	projects := NewProjectRepository(db)
	project := &models.Project{Name: "Doomed", Slug: "doomed"}
	require.NoError(t, projects.Create(ctx, project, nil))
	require.NoError(t, NewTaskRepository(db).Create(ctx, &models.Task{
		Name: "Gone", ProjectID: project.ID, Deadline: time.Now().Add(time.Hour),
		Priority: models.PriorityLow, TaskTypeID: taskType.ID, Slug: "gone",
	}, []uint64{me.ID}, []uint64{tag.ID}))

	require.NoError(t, projects.Delete(ctx, project.ID))

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Table("task_tags").Count(&count).Error)
	assert.Zero(t, count)
}

func TestCatalogRepository_InUseAndCascade(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	used := testutil.CreatePosition(t, db, "Developer")
	free := testutil.CreatePosition(t, db, "Intern")
	boss := testutil.CreateEmployee(t, db, "boss", "boss@example.com", used.ID)
	require.NoError(t, NewInvitationRepository(db).Create(ctx, &models.Invitation{
		Email: "intern@example.com", PositionID: free.ID, InvitedByID: boss.ID, Slug: "intern-1",
	}, nil))

	positions := NewPositionRepository(db)

	inUse, err := positions.InUse(ctx, used.ID)
	require.NoError(t, err)
	assert.True(t, inUse)

	inUse, err = positions.InUse(ctx, free.ID)
	require.NoError(t, err)
	assert.False(t, inUse)

	require.NoError(t, positions.Delete(ctx, free.ID))
	var count int64
	require.NoError(t, db.Model(&models.Invitation{}).Count(&count).Error)
	assert.Zero(t, count)

	all, err := positions.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Developer", all[0].Name)
}
