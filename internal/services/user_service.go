package services

import (
	"fmt"

	"github.com/yukikurage/traduflow-api/internal/models"
	"github.com/yukikurage/traduflow-api/internal/repository"
)

// UserService handles user listing for PMs.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListTranslators returns every translator, ordered by name, for the
// PM's assignment picker.
func (s *UserService) ListTranslators() ([]models.User, error) {
	translators, err := s.userRepo.ListByRole(models.RoleTranslator)
	if err != nil {
		return nil, fmt.Errorf("failed to list translators: %w", err)
	}
	return translators, nil
}
