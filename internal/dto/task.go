package dto

import (
	"time"

	"github.com/yukikurage/traduflow-api/internal/models"
	"github.com/yukikurage/traduflow-api/internal/services"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	ProjectID   uint64            `json:"project_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	AssignedTo  *uint64           `json:"assigned_to"`
	Status      models.TaskStatus `json:"status"`
	DueDate     *time.Time        `json:"due_date"`
	CompletedAt *time.Time        `json:"completed_at"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// TranslatorTaskDTO is a TaskDTO enriched with the parent project's
// display name for the translator's listing.
type TranslatorTaskDTO struct {
	TaskDTO
	ProjectName string `json:"project_name"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		AssignedTo:  task.AssignedTo,
		Status:      task.Status,
		DueDate:     task.DueDate,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToTranslatorTaskDTOs converts project-name-enriched tasks
func ToTranslatorTaskDTOs(tasks []services.TranslatorTask) []TranslatorTaskDTO {
	dtos := make([]TranslatorTaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = TranslatorTaskDTO{
			TaskDTO:     ToTaskDTO(t.Task),
			ProjectName: t.ProjectName,
		}
	}
	return dtos
}
