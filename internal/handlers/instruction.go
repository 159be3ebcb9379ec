package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/traduflow-api/internal/dto"
	apierrors "github.com/yukikurage/traduflow-api/internal/errors"
	"github.com/yukikurage/traduflow-api/internal/middleware"
	"github.com/yukikurage/traduflow-api/internal/services"
)

// InstructionHandler coordinates instruction HTTP handlers. PM-only.
type InstructionHandler struct {
	instructionService *services.InstructionService
}

// NewInstructionHandler creates a new InstructionHandler
func NewInstructionHandler(instructionService *services.InstructionService) *InstructionHandler {
	return &InstructionHandler{
		instructionService: instructionService,
	}
}

// ListByProject returns the instructions of a project owned by the caller.
func (h *InstructionHandler) ListByProject(c *gin.Context) {
	pmID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}

	instructions, err := h.instructionService.ListInstructions(projectID, pmID)
	if err != nil {
		respondInstructionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"instructions": dto.ToInstructionDTOs(instructions),
	})
}

// CreateInstruction posts an instruction on a project owned by the caller.
func (h *InstructionHandler) CreateInstruction(c *gin.Context) {
	pmID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}

	type CreateInstructionRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req CreateInstructionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Content is required")
		return
	}

	instruction, err := h.instructionService.CreateInstruction(projectID, pmID, req.Content)
	if err != nil {
		respondInstructionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":          true,
		"instruction": dto.ToInstructionDTO(*instruction),
	})
}

// UpdateInstruction replaces the content of an instruction authored by
// the caller.
func (h *InstructionHandler) UpdateInstruction(c *gin.Context) {
	pmID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "")
		return
	}

	instructionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateInstructionRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req UpdateInstructionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Content is required")
		return
	}

	instruction, err := h.instructionService.UpdateInstruction(instructionID, pmID, req.Content)
	if err != nil {
		respondInstructionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"instruction": dto.ToInstructionDTO(*instruction),
	})
}

// DeleteInstruction removes an instruction authored by the caller.
func (h *InstructionHandler) DeleteInstruction(c *gin.Context) {
	pmID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthenticated(c, "")
		return
	}

	instructionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.instructionService.DeleteInstruction(instructionID, pmID); err != nil {
		respondInstructionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Instruction deleted",
	})
}

func respondInstructionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrInstructionNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		logrus.WithError(err).Error("instruction request failed")
		apierrors.InternalError(c, "")
	}
}
