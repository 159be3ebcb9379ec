package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusAccepted  TaskStatus = "ACCEPTED"
	TaskStatusRejected  TaskStatus = "REJECTED"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

// IsValid reports whether the status is one of the known task statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusAccepted, TaskStatusRejected, TaskStatusCompleted:
		return true
	}
	return false
}

// Task belongs to exactly one project and is visible to the owning PM
// and the currently assigned translator. CompletedAt is non-nil iff
// Status == COMPLETED.
type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	ProjectID   uint64         `gorm:"not null;index" json:"project_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	AssignedTo  *uint64        `gorm:"index" json:"assigned_to"`
	Status      TaskStatus     `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	DueDate     *time.Time     `json:"due_date"`
	CompletedAt *time.Time     `json:"completed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project  Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignee *User   `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}
