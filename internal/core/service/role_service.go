package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medibook/appointment-system/internal/core/domain"
	"github.com/medibook/appointment-system/internal/core/ports"
)

// RoleService manages the role catalog. Internal names are normalized and
// unique; the three core roles cannot be renamed or deleted.
type RoleService struct {
	roles  ports.RoleRepository
	logger zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, logger zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, logger: logger}
}

// CreateRole normalizes the internal name and rejects duplicates.
func (s *RoleService) CreateRole(ctx context.Context, input ports.RoleInput) (*domain.Role, error) {
	name := domain.NormalizeRoleName(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: role name is required", domain.ErrValidation)
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: role title is required", domain.ErrValidation)
	}

	existing, err := s.roles.FindByName(ctx, name)
	if err != nil && !errors.Is(err, domain.ErrRoleNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateRoleName, name)
	}

	created, err := s.roles.Create(ctx, &domain.Role{
		Name:        name,
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("role_id", created.ID).Str("name", name).Msg("role created")
	return created, nil
}

// UpdateRole edits title and description. The internal name is immutable after
// creation: any attempt to change it fails, and a non-matching normalized name
// in the input counts as an attempt.
func (s *RoleService) UpdateRole(ctx context.Context, id string, input ports.RoleInput) (*domain.Role, error) {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" && domain.NormalizeRoleName(input.Name) != role.Name {
		return nil, fmt.Errorf("%w: role internal name is immutable", domain.ErrImmutableField)
	}

	if input.Title != "" {
		role.Title = input.Title
	}
	role.Description = input.Description

	updated, err := s.roles.Update(ctx, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("role_id", id).Msg("role updated")
	return updated, nil
}

// DeleteRole refuses to delete core roles locally; the store refuses deletion
// of any role still referenced by users (surfaced as domain.ErrRoleInUse).
func (s *RoleService) DeleteRole(ctx context.Context, id string) error {
	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if domain.IsCoreRole(role.Name) {
		return fmt.Errorf("%w: %q", domain.ErrCoreRoleProtected, role.Name)
	}

	if err := s.roles.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("role_id", id).Str("name", role.Name).Msg("role deleted")
	return nil
}

func (s *RoleService) ListRoles(ctx context.Context) ([]*domain.Role, error) {
	return s.roles.List(ctx)
}
