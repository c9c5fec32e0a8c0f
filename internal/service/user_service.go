package service

import (
	"context"

	"github.com/google/uuid"

	"wooltrace/internal/authz"
	"wooltrace/internal/domain"
	"wooltrace/internal/port"
)

// AssignRoleInput is the DTO for role assignment.
type AssignRoleInput struct {
	Role domain.Role `json:"role" binding:"required"`
}

// UserService defines the admin user management contract.
type UserService interface {
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	AssignRole(ctx context.Context, userID uuid.UUID, role domain.Role) (*domain.User, error)
}

type userService struct {
	repo port.UserRepository
}

// NewUserService creates a new UserService implementation.
func NewUserService(repo port.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) List(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *userService) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *userService) AssignRole(ctx context.Context, userID uuid.UUID, role domain.Role) (*domain.User, error) {
	if !domain.ValidRoles[role] {
		return nil, domain.ErrInvalidRole
	}
	// Role change rewrites the user's permission snapshot; the static
	// role→permission table is untouched.
	return s.repo.UpdateRole(ctx, userID, role, authz.PermissionsFor(role))
}
