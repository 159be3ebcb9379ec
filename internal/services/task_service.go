package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/traduflow-api/internal/constants"
	"github.com/yukikurage/traduflow-api/internal/models"
	"github.com/yukikurage/traduflow-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound          = errors.New("task not found or not owned by you")
	ErrInvalidTaskStatus     = errors.New("invalid task status")
	ErrInvalidTransition     = errors.New("state transition not permitted")
	ErrNotTaskAssignee       = errors.New("you cannot modify this task")
	ErrAssigneeNotTranslator = errors.New("assignee must be an existing translator")
)

// TaskService handles the task lifecycle and its ownership scoping.
//
// Two mutation paths exist on purpose: the PM path may set any valid
// status directly (administrative course correction), while the
// translator path is held to the accept/reject/complete transition
// table.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	ProjectID   uint64
	PMID        uint64
	Title       string
	Description string
	AssignedTo  uint64
	DueDate     time.Time
}

// UpdateTaskInput represents a partial update on the PM path. Nil
// fields are left untouched; ClearDueDate distinguishes an explicit
// null from an absent key.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *string
	DueDate      *time.Time
	ClearDueDate bool
}

// TranslatorTask is a task enriched with its project's display name for
// the translator's listing.
type TranslatorTask struct {
	models.Task
	ProjectName string
}

// ListTasksByProject returns the tasks of a project owned by the caller
// in creation order.
func (s *TaskService) ListTasksByProject(projectID, pmID uint64) ([]models.Task, error) {
	if err := s.ensureProjectOwner(projectID, pmID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListTasksForTranslator returns the caller's visible tasks joined with
// their project names. A task whose project cannot be resolved gets a
// placeholder name instead of failing the whole listing.
func (s *TaskService) ListTasksForTranslator(userID uint64) ([]TranslatorTask, error) {
	tasks, err := s.taskRepo.ListVisibleByAssignee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	if len(tasks) == 0 {
		return []TranslatorTask{}, nil
	}

	seen := make(map[uint64]struct{}, len(tasks))
	projectIDs := make([]uint64, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := seen[t.ProjectID]; ok {
			continue
		}
		seen[t.ProjectID] = struct{}{}
		projectIDs = append(projectIDs, t.ProjectID)
	}

	names, err := s.projectRepo.FindNamesByIDs(projectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project names: %w", err)
	}

	result := make([]TranslatorTask, len(tasks))
	for i, t := range tasks {
		name, ok := names[t.ProjectID]
		if !ok || name == "" {
			name = constants.FallbackProjectName
		}
		result[i] = TranslatorTask{Task: t, ProjectName: name}
	}
	return result, nil
}

// CreateTask creates a task under a project owned by the caller. The
// assignee and due date are mandatory and the assignee must be a
// translator. New tasks always start PENDING.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if err := s.ensureProjectOwner(input.ProjectID, input.PMID); err != nil {
		return nil, err
	}

	if err := s.ensureTranslator(input.AssignedTo); err != nil {
		return nil, err
	}

	assignedTo := input.AssignedTo
	dueDate := input.DueDate
	task := &models.Task{
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		AssignedTo:  &assignedTo,
		Status:      models.TaskStatusPending,
		DueDate:     &dueDate,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update on the PM path. The status value
// is validated against the closed enum, but no transition rule applies
// here: the owning PM may force any status. CompletedAt follows the
// status (set when COMPLETED, cleared otherwise).
func (s *TaskService) UpdateTask(taskID, pmID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.resolveOwnedTask(taskID, pmID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Status != nil {
		status := models.TaskStatus(*input.Status)
		if !status.IsValid() {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = status
		if status == models.TaskStatusCompleted {
			now := time.Now()
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task under a project owned by the caller.
func (s *TaskService) DeleteTask(taskID, pmID uint64) error {
	task, err := s.resolveOwnedTask(taskID, pmID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ReassignTask hands a task to a new translator. Whatever the prior
// status was, the task goes back to PENDING with CompletedAt cleared.
func (s *TaskService) ReassignTask(taskID, pmID, translatorID uint64) (*models.Task, error) {
	task, err := s.resolveOwnedTask(taskID, pmID)
	if err != nil {
		return nil, err
	}

	if err := s.ensureTranslator(translatorID); err != nil {
		return nil, err
	}

	assignedTo := translatorID
	task.AssignedTo = &assignedTo
	task.Status = models.TaskStatusPending
	task.CompletedAt = nil

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to reassign task: %w", err)
	}

	return task, nil
}

// TranslatorUpdateStatus advances a task through the translator
// workflow. The legal transitions are exactly:
//
//	PENDING  -> ACCEPTED
//	PENDING  -> REJECTED   (clears the assignment)
//	ACCEPTED -> COMPLETED  (stamps CompletedAt)
//
// Everything else fails with ErrInvalidTransition and leaves the task
// unchanged. A caller who is not the current assignee is turned away
// before any transition is considered.
func (s *TaskService) TranslatorUpdateStatus(taskID, userID uint64, newStatus models.TaskStatus) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotTaskAssignee
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.AssignedTo != nil && *task.AssignedTo != userID {
		return nil, ErrNotTaskAssignee
	}

	switch {
	case task.Status == models.TaskStatusPending && newStatus == models.TaskStatusAccepted:
		task.Status = models.TaskStatusAccepted
		task.CompletedAt = nil
	case task.Status == models.TaskStatusPending && newStatus == models.TaskStatusRejected:
		task.Status = models.TaskStatusRejected
		task.AssignedTo = nil
		task.CompletedAt = nil
	case task.Status == models.TaskStatusAccepted && newStatus == models.TaskStatusCompleted:
		now := time.Now()
		task.Status = models.TaskStatusCompleted
		task.CompletedAt = &now
	default:
		return nil, ErrInvalidTransition
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	return task, nil
}

// resolveOwnedTask loads a task and verifies the caller owns its
// project. A task under someone else's project looks exactly like a
// missing task.
func (s *TaskService) resolveOwnedTask(taskID, pmID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if _, err := s.projectRepo.FindByIDAndOwner(task.ProjectID, pmID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to verify project ownership: %w", err)
	}

	return task, nil
}

// ensureProjectOwner verifies the caller owns the project.
func (s *TaskService) ensureProjectOwner(projectID, pmID uint64) error {
	if _, err := s.projectRepo.FindByIDAndOwner(projectID, pmID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to verify project ownership: %w", err)
	}
	return nil
}

// ensureTranslator verifies the user exists and holds the TRANSLATOR role.
func (s *TaskService) ensureTranslator(userID uint64) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssigneeNotTranslator
		}
		return fmt.Errorf("failed to verify assignee: %w", err)
	}
	if user.Role != models.RoleTranslator {
		return ErrAssigneeNotTranslator
	}
	return nil
}
