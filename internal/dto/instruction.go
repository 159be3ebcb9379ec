package dto

import (
	"time"

	"github.com/yukikurage/traduflow-api/internal/models"
)

// InstructionDTO represents an instruction in API responses
type InstructionDTO struct {
	ID        uint64    `json:"id"`
	ProjectID uint64    `json:"project_id"`
	AuthorID  uint64    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToInstructionDTO converts an Instruction model to InstructionDTO
func ToInstructionDTO(instruction models.Instruction) InstructionDTO {
	return InstructionDTO{
		ID:        instruction.ID,
		ProjectID: instruction.ProjectID,
		AuthorID:  instruction.AuthorID,
		Content:   instruction.Content,
		CreatedAt: instruction.CreatedAt,
		UpdatedAt: instruction.UpdatedAt,
	}
}

// ToInstructionDTOs converts a slice of instructions
func ToInstructionDTOs(instructions []models.Instruction) []InstructionDTO {
	dtos := make([]InstructionDTO, len(instructions))
	for i, instruction := range instructions {
		dtos[i] = ToInstructionDTO(instruction)
	}
	return dtos
}
