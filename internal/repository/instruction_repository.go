package repository

import (
	"github.com/yukikurage/traduflow-api/internal/models"
	"gorm.io/gorm"
)

// GormInstructionRepository is a GORM implementation of InstructionRepository
type GormInstructionRepository struct {
	db *gorm.DB
}

// NewInstructionRepository creates a new InstructionRepository
func NewInstructionRepository(db *gorm.DB) InstructionRepository {
	return &GormInstructionRepository{db: db}
}

// Create creates a new instruction
func (r *GormInstructionRepository) Create(instruction *models.Instruction) error {
	return r.db.Create(instruction).Error
}

// FindByID finds an instruction by ID
func (r *GormInstructionRepository) FindByID(id uint64) (*models.Instruction, error) {
	var instruction models.Instruction
	if err := r.db.First(&instruction, id).Error; err != nil {
		return nil, err
	}
	return &instruction, nil
}

// ListByProject lists all instructions of a project in creation order
func (r *GormInstructionRepository) ListByProject(projectID uint64) ([]models.Instruction, error) {
	var instructions []models.Instruction
	if err := r.db.Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&instructions).Error; err != nil {
		return nil, err
	}
	return instructions, nil
}

// Update updates an instruction
func (r *GormInstructionRepository) Update(instruction *models.Instruction) error {
	return r.db.Save(instruction).Error
}

// Delete soft deletes an instruction
func (r *GormInstructionRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Instruction{}, id).Error
}
