package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/traduflow-api/internal/dto"
	apierrors "github.com/yukikurage/traduflow-api/internal/errors"
	"github.com/yukikurage/traduflow-api/internal/middleware"
	"github.com/yukikurage/traduflow-api/internal/models"
	"github.com/yukikurage/traduflow-api/internal/services"
)

// TaskHandler coordinates task HTTP handlers for both the PM routes and
// the translator routes.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListByProject returns the tasks of a project owned by the caller.
func (h *TaskHandler) ListByProject(c *gin.Context) {
	pmID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasksByProject(projectID, pmID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"tasks": dto.ToTaskDTOs(tasks),
	})
}

// CreateTask creates a task under a project owned by the caller. The
// assignee and due date are mandatory.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	pmID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}

	type CreateTaskRequest struct {
		Title       string    `json:"title" binding:"required"`
		Description string    `json:"description"`
		AssignedTo  uint64    `json:"assigned_to" binding:"required"`
		DueDate     time.Time `json:"due_date" binding:"required"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		ProjectID:   projectID,
		PMID:        pmID,
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":   true,
		"task": dto.ToTaskDTO(*task),
	})
}

// UpdateTask applies a partial update on the PM path, including a
// direct status overwrite. The raw payload is inspected so that an
// explicit null due_date can be told apart from an absent key.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	pmID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateTaskInput
	if title, ok := rawReq["title"]; ok {
		titleStr, ok := title.(string)
		if !ok {
			apierrors.BadRequest(c, "Invalid title")
			return
		}
		input.Title = &titleStr
	}
	if description, ok := rawReq["description"]; ok {
		descStr, ok := description.(string)
		if !ok {
			apierrors.BadRequest(c, "Invalid description")
			return
		}
		input.Description = &descStr
	}
	if status, ok := rawReq["status"]; ok {
		statusStr, ok := status.(string)
		if !ok {
			apierrors.BadRequest(c, "Invalid status")
			return
		}
		input.Status = &statusStr
	}
	if dueDate, ok := rawReq["due_date"]; ok {
		if dueDate == nil {
			input.ClearDueDate = true
		} else {
			dueDateStr, ok := dueDate.(string)
			if !ok {
				apierrors.BadRequest(c, "Invalid due_date")
				return
			}
			parsed, err := time.Parse(time.RFC3339, dueDateStr)
			if err != nil {
				apierrors.BadRequest(c, "Invalid due_date")
				return
			}
			input.DueDate = &parsed
		}
	}

	task, err := h.taskService.UpdateTask(taskID, pmID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"task": dto.ToTaskDTO(*task),
	})
}

// DeleteTask deletes a task under a project owned by the caller.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	pmID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(taskID, pmID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Task deleted",
	})
}

// ReassignTask hands a task to a new translator and resets it to
// PENDING.
func (h *TaskHandler) ReassignTask(c *gin.Context) {
	pmID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	type ReassignRequest struct {
		AssignedTo uint64 `json:"assigned_to" binding:"required"`
	}

	var req ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "A translator to assign is required")
		return
	}

	task, err := h.taskService.ReassignTask(taskID, pmID, req.AssignedTo)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"task": dto.ToTaskDTO(*task),
	})
}

// ListForTranslator returns the caller's visible tasks with project
// names attached.
func (h *TaskHandler) ListForTranslator(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "")
		return
	}

	tasks, err := h.taskService.ListTasksForTranslator(userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"tasks": dto.ToTranslatorTaskDTOs(tasks),
	})
}

// TranslatorAction advances a task through the accept/reject/complete
// workflow.
func (h *TaskHandler) TranslatorAction(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "taskId")
	if !ok {
		return
	}

	type TranslatorActionRequest struct {
		Status models.TaskStatus `json:"status" binding:"required,oneof=ACCEPTED REJECTED COMPLETED"`
	}

	var req TranslatorActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Status must be ACCEPTED, REJECTED or COMPLETED")
		return
	}

	task, err := h.taskService.TranslatorUpdateStatus(taskID, userID, req.Status)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":   true,
		"task": dto.ToTaskDTO(*task),
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotTaskAssignee):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		apierrors.InvalidTransition(c, err.Error())
	case errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrAssigneeNotTranslator):
		apierrors.BadRequest(c, err.Error())
	default:
		logrus.WithError(err).Error("task request failed")
		apierrors.InternalError(c, "")
	}
}
