package services

import (
	"errors"
	"fmt"

	"github.com/yukikurage/traduflow-api/internal/models"
	"github.com/yukikurage/traduflow-api/internal/repository"
	"gorm.io/gorm"
)

var ErrInstructionNotFound = errors.New("instruction not found or not owned by you")

// InstructionService handles owner-scoped instruction business logic.
type InstructionService struct {
	instructionRepo repository.InstructionRepository
	projectRepo     repository.ProjectRepository
}

// NewInstructionService creates a new InstructionService
func NewInstructionService(instructionRepo repository.InstructionRepository, projectRepo repository.ProjectRepository) *InstructionService {
	return &InstructionService{
		instructionRepo: instructionRepo,
		projectRepo:     projectRepo,
	}
}

// ListInstructions returns the instructions of a project owned by the
// caller in creation order.
func (s *InstructionService) ListInstructions(projectID, pmID uint64) ([]models.Instruction, error) {
	if err := s.ensureProjectOwner(projectID, pmID); err != nil {
		return nil, err
	}

	instructions, err := s.instructionRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list instructions: %w", err)
	}
	return instructions, nil
}

// CreateInstruction posts an instruction on a project owned by the
// caller. The caller becomes the author.
func (s *InstructionService) CreateInstruction(projectID, pmID uint64, content string) (*models.Instruction, error) {
	if err := s.ensureProjectOwner(projectID, pmID); err != nil {
		return nil, err
	}

	instruction := &models.Instruction{
		ProjectID: projectID,
		AuthorID:  pmID,
		Content:   content,
	}

	if err := s.instructionRepo.Create(instruction); err != nil {
		return nil, fmt.Errorf("failed to create instruction: %w", err)
	}

	return instruction, nil
}

// UpdateInstruction replaces the content of an instruction authored by
// the caller on a project they own.
func (s *InstructionService) UpdateInstruction(instructionID, pmID uint64, content string) (*models.Instruction, error) {
	instruction, err := s.resolveOwnedInstruction(instructionID, pmID)
	if err != nil {
		return nil, err
	}

	instruction.Content = content

	if err := s.instructionRepo.Update(instruction); err != nil {
		return nil, fmt.Errorf("failed to update instruction: %w", err)
	}

	return instruction, nil
}

// DeleteInstruction removes an instruction authored by the caller on a
// project they own.
func (s *InstructionService) DeleteInstruction(instructionID, pmID uint64) error {
	instruction, err := s.resolveOwnedInstruction(instructionID, pmID)
	if err != nil {
		return err
	}

	if err := s.instructionRepo.Delete(instruction.ID); err != nil {
		return fmt.Errorf("failed to delete instruction: %w", err)
	}

	return nil
}

// resolveOwnedInstruction loads an instruction and verifies the caller
// owns the parent project and authored the instruction. Any failure
// along the way looks like a missing instruction.
func (s *InstructionService) resolveOwnedInstruction(instructionID, pmID uint64) (*models.Instruction, error) {
	instruction, err := s.instructionRepo.FindByID(instructionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstructionNotFound
		}
		return nil, fmt.Errorf("failed to find instruction: %w", err)
	}

	if _, err := s.projectRepo.FindByIDAndOwner(instruction.ProjectID, pmID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstructionNotFound
		}
		return nil, fmt.Errorf("failed to verify project ownership: %w", err)
	}

	if instruction.AuthorID != pmID {
		return nil, ErrInstructionNotFound
	}

	return instruction, nil
}

// ensureProjectOwner verifies the caller owns the project.
func (s *InstructionService) ensureProjectOwner(projectID, pmID uint64) error {
	if _, err := s.projectRepo.FindByIDAndOwner(projectID, pmID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to verify project ownership: %w", err)
	}
	return nil
}
