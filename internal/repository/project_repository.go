package repository

import (
	"github.com/yukikurage/traduflow-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByIDAndOwner finds a project by ID scoped to its owner
func (r *GormProjectRepository) FindByIDAndOwner(id, ownerID uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.Where("id = ? AND owner_id = ?", id, ownerID).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByOwner lists all projects owned by a PM in creation order
func (r *GormProjectRepository) ListByOwner(ownerID uint64) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// FindNamesByIDs returns a projectID -> name map for the given IDs
func (r *GormProjectRepository) FindNamesByIDs(ids []uint64) (map[uint64]string, error) {
	names := make(map[uint64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var projects []models.Project
	if err := r.db.Select("id", "name").
		Where("id IN ?", ids).
		Find(&projects).Error; err != nil {
		return nil, err
	}

	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete soft deletes a project. No cascade: tasks and instructions
// referencing the project are left untouched.
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Project{}, id).Error
}
