package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/traduflow-api/internal/models"
	"github.com/yukikurage/traduflow-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found or not owned by you")
	ErrInvalidProjectStatus = errors.New("invalid project status")
)

// ProjectService handles owner-scoped project business logic.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
	Status      string
	OwnerID     uint64
}

// UpdateProjectInput represents a partial update. Nil fields are left
// untouched.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *string
}

// ListProjects returns the caller's projects in creation order.
func (s *ProjectService) ListProjects(ownerID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a single project owned by the caller.
func (s *ProjectService) GetProject(projectID, ownerID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByIDAndOwner(projectID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// CreateProject creates a new project owned by the caller.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	status := models.ProjectStatusPending
	if input.Status != "" {
		status = models.ProjectStatus(input.Status)
		if !status.IsValid() {
			return nil, ErrInvalidProjectStatus
		}
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
		OwnerID:     input.OwnerID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// UpdateProject applies a partial update to a project owned by the
// caller and returns the merged view.
func (s *ProjectService) UpdateProject(projectID, ownerID uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.GetProject(projectID, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		status := models.ProjectStatus(*input.Status)
		if !status.IsValid() {
			return nil, ErrInvalidProjectStatus
		}
		project.Status = status
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject deletes a project owned by the caller. Tasks and
// instructions under it are not cascade-deleted.
func (s *ProjectService) DeleteProject(projectID, ownerID uint64) error {
	if _, err := s.GetProject(projectID, ownerID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}
