package service

import (
	"context"
	"fmt"
	"time"

	"primefire/internal/model"
	"primefire/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateRoleRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type RoleResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// --- Interface ---

type RoleService interface {
	CreateRole(ctx context.Context, req CreateRoleRequest) (RoleResponse, error)
	GetRole(ctx context.Context, id string) (RoleResponse, error)
	GetRoles(ctx context.Context) ([]RoleResponse, error)
	UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) (RoleResponse, error)
	DeleteRole(ctx context.Context, id string) error
}

// --- Implementation ---

type roleService struct {
	roleRepo repository.RoleRepository
}

func NewRoleService(roleRepo repository.RoleRepository) RoleService {
	return &roleService{roleRepo: roleRepo}
}

func (s *roleService) CreateRole(ctx context.Context, req CreateRoleRequest) (RoleResponse, error) {
	if _, err := s.roleRepo.GetByName(ctx, req.Name); err == nil {
		return RoleResponse{}, fmt.Errorf("role name already in use")
	}

	role := &model.Role{Name: req.Name, Description: req.Description}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return RoleResponse{}, fmt.Errorf("failed to create role: %w", err)
	}
	return toRoleResponse(*role), nil
}

func (s *roleService) GetRole(ctx context.Context, id string) (RoleResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return RoleResponse{}, fmt.Errorf("invalid role ID")
	}
	role, err := s.roleRepo.GetByID(ctx, uid)
	if err != nil {
		return RoleResponse{}, fmt.Errorf("role not found: %w", err)
	}
	return toRoleResponse(*role), nil
}

func (s *roleService) GetRoles(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}

	res := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		res = append(res, toRoleResponse(r))
	}
	return res, nil
}

func (s *roleService) UpdateRole(ctx context.Context, id string, req UpdateRoleRequest) (RoleResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return RoleResponse{}, fmt.Errorf("invalid role ID")
	}
	role, err := s.roleRepo.GetByID(ctx, uid)
	if err != nil {
		return RoleResponse{}, fmt.Errorf("role not found: %w", err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return RoleResponse{}, fmt.Errorf("name cannot be empty")
		}
		if existing, err := s.roleRepo.GetByName(ctx, *req.Name); err == nil && existing.ID != role.ID {
			return RoleResponse{}, fmt.Errorf("role name already in use")
		}
		role.Name = *req.Name
	}
	if req.Description != nil {
		role.Description = *req.Description
	}

	if err := s.roleRepo.Update(ctx, role); err != nil {
		return RoleResponse{}, fmt.Errorf("failed to update role: %w", err)
	}
	return toRoleResponse(*role), nil
}

func (s *roleService) DeleteRole(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid role ID")
	}
	role, err := s.roleRepo.GetByID(ctx, uid)
	if err != nil {
		return fmt.Errorf("role not found: %w", err)
	}
	return s.roleRepo.Delete(ctx, role)
}

// --- Response mappers ---

func toRoleResponse(r model.Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}
