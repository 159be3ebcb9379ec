package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/traduflow-api/internal/database"
	"github.com/yukikurage/traduflow-api/internal/models"
	"github.com/yukikurage/traduflow-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type taskServiceFixture struct {
	db         *gorm.DB
	service    *TaskService
	pm         *models.User
	translator *models.User
	project    *models.Project
}

func newTaskServiceFixture(t *testing.T) *taskServiceFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	service := NewTaskService(taskRepo, projectRepo, userRepo)

	pm := &models.User{Name: "PM", Email: "pm@example.com", PasswordHash: "x", Role: models.RolePM}
	translator := &models.User{Name: "T", Email: "t@example.com", PasswordHash: "x", Role: models.RoleTranslator}
	require.NoError(t, db.Create(pm).Error)
	require.NoError(t, db.Create(translator).Error)

	project := &models.Project{Name: "Website", Description: "d", Status: models.ProjectStatusPending, OwnerID: pm.ID}
	require.NoError(t, db.Create(project).Error)

	return &taskServiceFixture{db: db, service: service, pm: pm, translator: translator, project: project}
}

func (f *taskServiceFixture) newTask(t *testing.T, status models.TaskStatus) *models.Task {
	t.Helper()

	assignee := f.translator.ID
	task := &models.Task{
		ProjectID:  f.project.ID,
		Title:      "Translate",
		AssignedTo: &assignee,
		Status:     status,
	}
	if status == models.TaskStatusCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}
	if status == models.TaskStatusRejected {
		task.AssignedTo = nil
	}
	require.NoError(t, f.db.Create(task).Error)
	return task
}

// TestTranslatorUpdateStatus_TransitionTable exercises every (from, to)
// pair of the translator workflow: only the three legal pairs succeed.
func TestTranslatorUpdateStatus_TransitionTable(t *testing.T) {
	statuses := []models.TaskStatus{
		models.TaskStatusPending,
		models.TaskStatusAccepted,
		models.TaskStatusRejected,
		models.TaskStatusCompleted,
	}
	targets := []models.TaskStatus{
		models.TaskStatusAccepted,
		models.TaskStatusRejected,
		models.TaskStatusCompleted,
	}

	legal := map[[2]models.TaskStatus]bool{
		{models.TaskStatusPending, models.TaskStatusAccepted}:   true,
		{models.TaskStatusPending, models.TaskStatusRejected}:   true,
		{models.TaskStatusAccepted, models.TaskStatusCompleted}: true,
	}

	for _, from := range statuses {
		for _, to := range targets {
			name := fmt.Sprintf("%s_to_%s", from, to)
			t.Run(name, func(t *testing.T) {
				f := newTaskServiceFixture(t)
				task := f.newTask(t, from)

				// A rejected task no longer has an assignee, but the
				// former assignee is still turned away by the
				// transition table, not by the assignee check
				updated, err := f.service.TranslatorUpdateStatus(task.ID, f.translator.ID, to)

				if legal[[2]models.TaskStatus{from, to}] {
					require.NoError(t, err)
					assert.Equal(t, to, updated.Status)
					return
				}

				assert.ErrorIs(t, err, ErrInvalidTransition)

				var stored models.Task
				require.NoError(t, f.db.First(&stored, task.ID).Error)
				assert.Equal(t, from, stored.Status)
			})
		}
	}
}

func TestTranslatorUpdateStatus_RejectClearsAssignment(t *testing.T) {
	f := newTaskServiceFixture(t)
	task := f.newTask(t, models.TaskStatusPending)

	updated, err := f.service.TranslatorUpdateStatus(task.ID, f.translator.ID, models.TaskStatusRejected)
	require.NoError(t, err)

	assert.Equal(t, models.TaskStatusRejected, updated.Status)
	assert.Nil(t, updated.AssignedTo)
	assert.Nil(t, updated.CompletedAt)
}

func TestTranslatorUpdateStatus_CompleteStampsTime(t *testing.T) {
	f := newTaskServiceFixture(t)
	task := f.newTask(t, models.TaskStatusAccepted)

	before := time.Now()
	updated, err := f.service.TranslatorUpdateStatus(task.ID, f.translator.ID, models.TaskStatusCompleted)
	require.NoError(t, err)

	require.NotNil(t, updated.CompletedAt)
	assert.WithinDuration(t, before, *updated.CompletedAt, 5*time.Second)
}

func TestTranslatorUpdateStatus_NotAssignee(t *testing.T) {
	f := newTaskServiceFixture(t)
	task := f.newTask(t, models.TaskStatusPending)

	other := &models.User{Name: "O", Email: "o@example.com", PasswordHash: "x", Role: models.RoleTranslator}
	require.NoError(t, f.db.Create(other).Error)

	_, err := f.service.TranslatorUpdateStatus(task.ID, other.ID, models.TaskStatusAccepted)
	assert.ErrorIs(t, err, ErrNotTaskAssignee)
}

// TestTranslatorUpdateStatus_MissingTask tests that a nonexistent task
// reads the same as one assigned to someone else
func TestTranslatorUpdateStatus_MissingTask(t *testing.T) {
	f := newTaskServiceFixture(t)

	_, err := f.service.TranslatorUpdateStatus(9999, f.translator.ID, models.TaskStatusAccepted)
	assert.ErrorIs(t, err, ErrNotTaskAssignee)
}

func TestCreateTask_AssigneeMustBeTranslator(t *testing.T) {
	f := newTaskServiceFixture(t)

	_, err := f.service.CreateTask(CreateTaskInput{
		ProjectID:  f.project.ID,
		PMID:       f.pm.ID,
		Title:      "Translate",
		AssignedTo: f.pm.ID,
		DueDate:    time.Now().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrAssigneeNotTranslator)

	_, err = f.service.CreateTask(CreateTaskInput{
		ProjectID:  f.project.ID,
		PMID:       f.pm.ID,
		Title:      "Translate",
		AssignedTo: 9999,
		DueDate:    time.Now().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrAssigneeNotTranslator)
}

func TestCreateTask_ProjectNotOwned(t *testing.T) {
	f := newTaskServiceFixture(t)

	otherPM := &models.User{Name: "B", Email: "b@example.com", PasswordHash: "x", Role: models.RolePM}
	require.NoError(t, f.db.Create(otherPM).Error)

	_, err := f.service.CreateTask(CreateTaskInput{
		ProjectID:  f.project.ID,
		PMID:       otherPM.ID,
		Title:      "Translate",
		AssignedTo: f.translator.ID,
		DueDate:    time.Now().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestUpdateTask_ForcedStatusSkipsTransitionTable(t *testing.T) {
	f := newTaskServiceFixture(t)
	task := f.newTask(t, models.TaskStatusPending)

	status := string(models.TaskStatusCompleted)
	updated, err := f.service.UpdateTask(task.ID, f.pm.ID, UpdateTaskInput{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, models.TaskStatusCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedAt)
}

func TestUpdateTask_RejectsUnknownStatus(t *testing.T) {
	f := newTaskServiceFixture(t)
	task := f.newTask(t, models.TaskStatusPending)

	status := "ARCHIVED"
	_, err := f.service.UpdateTask(task.ID, f.pm.ID, UpdateTaskInput{Status: &status})
	assert.ErrorIs(t, err, ErrInvalidTaskStatus)
}

func TestReassignTask_ResetsToPending(t *testing.T) {
	f := newTaskServiceFixture(t)
	task := f.newTask(t, models.TaskStatusCompleted)

	next := &models.User{Name: "Y", Email: "y@example.com", PasswordHash: "x", Role: models.RoleTranslator}
	require.NoError(t, f.db.Create(next).Error)

	updated, err := f.service.ReassignTask(task.ID, f.pm.ID, next.ID)
	require.NoError(t, err)

	assert.Equal(t, models.TaskStatusPending, updated.Status)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, next.ID, *updated.AssignedTo)
	assert.Nil(t, updated.CompletedAt)
}

func TestListTasksForTranslator_HidesRejected(t *testing.T) {
	f := newTaskServiceFixture(t)
	f.newTask(t, models.TaskStatusPending)
	f.newTask(t, models.TaskStatusAccepted)
	f.newTask(t, models.TaskStatusRejected)

	tasks, err := f.service.ListTasksForTranslator(f.translator.ID)
	require.NoError(t, err)

	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.NotEqual(t, models.TaskStatusRejected, task.Status)
		assert.Equal(t, "Website", task.ProjectName)
	}
}

func TestListTasksForTranslator_FallbackProjectName(t *testing.T) {
	f := newTaskServiceFixture(t)

	assignee := f.translator.ID
	orphan := &models.Task{
		ProjectID:  f.project.ID + 100,
		Title:      "Orphan",
		AssignedTo: &assignee,
		Status:     models.TaskStatusPending,
	}
	require.NoError(t, f.db.Create(orphan).Error)

	tasks, err := f.service.ListTasksForTranslator(f.translator.ID)
	require.NoError(t, err)

	require.Len(t, tasks, 1)
	assert.Equal(t, "Untitled Project", tasks[0].ProjectName)
}
