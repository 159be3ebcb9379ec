package repository

import (
	"github.com/yukikurage/traduflow-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ListByRole lists all users holding the given role, ordered by name
	ListByRole(role models.UserRole) ([]models.User, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByIDAndOwner finds a project by ID scoped to its owner.
	// A project owned by someone else is indistinguishable from a
	// missing one.
	FindByIDAndOwner(id, ownerID uint64) (*models.Project, error)

	// ListByOwner lists all projects owned by a PM in creation order
	ListByOwner(ownerID uint64) ([]models.Project, error)

	// FindNamesByIDs returns a projectID -> name map for the given IDs
	FindNamesByIDs(ids []uint64) (map[uint64]string, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete soft deletes a project. Tasks and instructions under it are
	// deliberately left in place.
	Delete(id uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// ListByProject lists all tasks of a project in creation order
	ListByProject(projectID uint64) ([]models.Task, error)

	// ListVisibleByAssignee lists a translator's tasks in creation
	// order, excluding rejected ones
	ListVisibleByAssignee(userID uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error
}

// InstructionRepository defines the interface for instruction data access
type InstructionRepository interface {
	// Create creates a new instruction
	Create(instruction *models.Instruction) error

	// FindByID finds an instruction by ID
	FindByID(id uint64) (*models.Instruction, error)

	// ListByProject lists all instructions of a project in creation order
	ListByProject(projectID uint64) ([]models.Instruction, error)

	// Update updates an instruction
	Update(instruction *models.Instruction) error

	// Delete soft deletes an instruction
	Delete(id uint64) error
}
