package service

import (
	"context"
	"fmt"
	"time"

	"primefire/internal/model"
	"primefire/internal/repository"

	"github.com/google/uuid"
)

// maxModuleDepth caps ancestor walks so corrupted parent links cannot spin
// forever.
const maxModuleDepth = 100

// --- DTOs ---

type CreateModuleRequest struct {
	ModuleKey      string  `json:"module_key" binding:"required"`
	ModuleName     string  `json:"module_name" binding:"required"`
	RouteURL       string  `json:"route_url"`
	Icon           string  `json:"icon"`
	DisplayOrder   int     `json:"display_order"`
	IsActive       *bool   `json:"is_active"`
	ParentModuleID *string `json:"parent_module_id"`
}

type UpdateModuleRequest struct {
	ModuleKey      *string `json:"module_key"`
	ModuleName     *string `json:"module_name"`
	RouteURL       *string `json:"route_url"`
	Icon           *string `json:"icon"`
	DisplayOrder   *int    `json:"display_order"`
	IsActive       *bool   `json:"is_active"`
	ParentModuleID *string `json:"parent_module_id"` // empty string moves the module to the root
}

type ModuleResponse struct {
	ModuleID       uuid.UUID  `json:"module_id"`
	ModuleKey      string     `json:"module_key"`
	ModuleName     string     `json:"module_name"`
	RouteURL       string     `json:"route_url"`
	Icon           string     `json:"icon"`
	DisplayOrder   int        `json:"display_order"`
	IsActive       bool       `json:"is_active"`
	ParentModuleID *uuid.UUID `json:"parent_module_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type ModuleTreeNode struct {
	ModuleResponse
	Children []ModuleTreeNode `json:"children"`
}

// --- Interface ---

type ModuleService interface {
	CreateModule(ctx context.Context, req CreateModuleRequest) (ModuleResponse, error)
	GetModule(ctx context.Context, id string) (ModuleResponse, error)
	GetModuleByKey(ctx context.Context, moduleKey string) (ModuleResponse, error)
	GetModules(ctx context.Context, includeInactive bool) ([]ModuleResponse, error)
	GetModuleChildren(ctx context.Context, id string) ([]ModuleResponse, error)
	// GetRootModules lists top-level modules in display order.
	GetRootModules(ctx context.Context) ([]ModuleResponse, error)
	// GetModuleTree nests modules by parent link, keeping sibling display
	// order.
	GetModuleTree(ctx context.Context, includeInactive bool) ([]ModuleTreeNode, error)
	UpdateModule(ctx context.Context, id string, req UpdateModuleRequest) (ModuleResponse, error)
	// DeleteModule removes the module and its permission rows; child modules
	// move to the root instead of being deleted.
	DeleteModule(ctx context.Context, id string) error
}

// --- Implementation ---

type moduleService struct {
	moduleRepo repository.ModuleRepository
	txManager  repository.TransactionManager
}

func NewModuleService(moduleRepo repository.ModuleRepository, txManager repository.TransactionManager) ModuleService {
	return &moduleService{moduleRepo: moduleRepo, txManager: txManager}
}

func (s *moduleService) CreateModule(ctx context.Context, req CreateModuleRequest) (ModuleResponse, error) {
	if _, err := s.moduleRepo.GetByKey(ctx, req.ModuleKey); err == nil {
		return ModuleResponse{}, fmt.Errorf("module key already in use")
	}

	module := &model.Module{
		ModuleKey:    req.ModuleKey,
		ModuleName:   req.ModuleName,
		RouteURL:     req.RouteURL,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
		IsActive:     true,
	}
	if req.IsActive != nil {
		module.IsActive = *req.IsActive
	}

	if req.ParentModuleID != nil && *req.ParentModuleID != "" {
		parentID, err := uuid.Parse(*req.ParentModuleID)
		if err != nil {
			return ModuleResponse{}, fmt.Errorf("invalid parent module ID")
		}
		if _, err := s.moduleRepo.GetByID(ctx, parentID); err != nil {
			return ModuleResponse{}, fmt.Errorf("parent module not found: %w", err)
		}
		module.ParentModuleID = &parentID
	}

	if err := s.moduleRepo.Create(ctx, module); err != nil {
		return ModuleResponse{}, fmt.Errorf("failed to create module: %w", err)
	}
	return toModuleResponse(*module), nil
}

func (s *moduleService) GetModule(ctx context.Context, id string) (ModuleResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ModuleResponse{}, fmt.Errorf("invalid module ID")
	}
	module, err := s.moduleRepo.GetByID(ctx, uid)
	if err != nil {
		return ModuleResponse{}, fmt.Errorf("module not found: %w", err)
	}
	return toModuleResponse(*module), nil
}

func (s *moduleService) GetModuleByKey(ctx context.Context, moduleKey string) (ModuleResponse, error) {
	module, err := s.moduleRepo.GetByKey(ctx, moduleKey)
	if err != nil {
		return ModuleResponse{}, fmt.Errorf("module not found: %w", err)
	}
	return toModuleResponse(*module), nil
}

func (s *moduleService) GetModules(ctx context.Context, includeInactive bool) ([]ModuleResponse, error) {
	modules, err := s.moduleRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch modules: %w", err)
	}

	res := make([]ModuleResponse, 0, len(modules))
	for _, m := range modules {
		res = append(res, toModuleResponse(m))
	}
	return res, nil
}

func (s *moduleService) GetModuleChildren(ctx context.Context, id string) ([]ModuleResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid module ID")
	}
	if _, err := s.moduleRepo.GetByID(ctx, uid); err != nil {
		return nil, fmt.Errorf("module not found: %w", err)
	}

	children, err := s.moduleRepo.ListChildren(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch modules: %w", err)
	}

	res := make([]ModuleResponse, 0, len(children))
	for _, m := range children {
		res = append(res, toModuleResponse(m))
	}
	return res, nil
}

func (s *moduleService) GetRootModules(ctx context.Context) ([]ModuleResponse, error) {
	roots, err := s.moduleRepo.ListRoots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch modules: %w", err)
	}

	res := make([]ModuleResponse, 0, len(roots))
	for _, m := range roots {
		res = append(res, toModuleResponse(m))
	}
	return res, nil
}

func (s *moduleService) GetModuleTree(ctx context.Context, includeInactive bool) ([]ModuleTreeNode, error) {
	modules, err := s.moduleRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch modules: %w", err)
	}

	children := make(map[uuid.UUID][]model.Module)
	var roots []model.Module
	for _, m := range modules {
		if m.ParentModuleID == nil {
			roots = append(roots, m)
			continue
		}
		children[*m.ParentModuleID] = append(children[*m.ParentModuleID], m)
	}

	var build func(m model.Module, depth int) ModuleTreeNode
	build = func(m model.Module, depth int) ModuleTreeNode {
		node := ModuleTreeNode{ModuleResponse: toModuleResponse(m), Children: []ModuleTreeNode{}}
		if depth >= maxModuleDepth {
			return node
		}
		for _, child := range children[m.ID] {
			node.Children = append(node.Children, build(child, depth+1))
		}
		return node
	}

	tree := make([]ModuleTreeNode, 0, len(roots))
	for _, m := range roots {
		tree = append(tree, build(m, 0))
	}
	return tree, nil
}

func (s *moduleService) UpdateModule(ctx context.Context, id string, req UpdateModuleRequest) (ModuleResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ModuleResponse{}, fmt.Errorf("invalid module ID")
	}
	module, err := s.moduleRepo.GetByID(ctx, uid)
	if err != nil {
		return ModuleResponse{}, fmt.Errorf("module not found: %w", err)
	}

	if req.ModuleKey != nil && *req.ModuleKey != module.ModuleKey {
		if *req.ModuleKey == "" {
			return ModuleResponse{}, fmt.Errorf("module_key cannot be empty")
		}
		if existing, err := s.moduleRepo.GetByKey(ctx, *req.ModuleKey); err == nil && existing.ID != module.ID {
			return ModuleResponse{}, fmt.Errorf("module key already in use")
		}
		module.ModuleKey = *req.ModuleKey
	}
	if req.ModuleName != nil {
		if *req.ModuleName == "" {
			return ModuleResponse{}, fmt.Errorf("module_name cannot be empty")
		}
		module.ModuleName = *req.ModuleName
	}
	if req.RouteURL != nil {
		module.RouteURL = *req.RouteURL
	}
	if req.Icon != nil {
		module.Icon = *req.Icon
	}
	if req.DisplayOrder != nil {
		module.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		module.IsActive = *req.IsActive
	}
	if req.ParentModuleID != nil {
		if *req.ParentModuleID == "" {
			module.ParentModuleID = nil
		} else {
			parentID, err := uuid.Parse(*req.ParentModuleID)
			if err != nil {
				return ModuleResponse{}, fmt.Errorf("invalid parent module ID")
			}
			if err := s.checkParent(ctx, module.ID, parentID); err != nil {
				return ModuleResponse{}, err
			}
			module.ParentModuleID = &parentID
		}
	}

	if err := s.moduleRepo.Update(ctx, module); err != nil {
		return ModuleResponse{}, fmt.Errorf("failed to update module: %w", err)
	}
	return toModuleResponse(*module), nil
}

func (s *moduleService) DeleteModule(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid module ID")
	}
	if _, err := s.moduleRepo.GetByID(ctx, uid); err != nil {
		return fmt.Errorf("module not found: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.moduleRepo.DetachChildren(txCtx, uid); err != nil {
			return fmt.Errorf("failed to detach child modules: %w", err)
		}
		if err := s.moduleRepo.Delete(txCtx, uid); err != nil {
			return fmt.Errorf("failed to delete module: %w", err)
		}
		return nil
	})
}

// --- Helpers ---

// checkParent rejects parent links that would make the module its own
// ancestor.
func (s *moduleService) checkParent(ctx context.Context, moduleID, parentID uuid.UUID) error {
	current := parentID
	for depth := 0; depth < maxModuleDepth; depth++ {
		if current == moduleID {
			return fmt.Errorf("module cannot be its own ancestor")
		}
		parent, err := s.moduleRepo.GetByID(ctx, current)
		if err != nil {
			return fmt.Errorf("parent module not found: %w", err)
		}
		if parent.ParentModuleID == nil {
			return nil
		}
		current = *parent.ParentModuleID
	}
	return fmt.Errorf("module hierarchy too deep")
}

// --- Response mappers ---

func toModuleResponse(m model.Module) ModuleResponse {
	return ModuleResponse{
		ModuleID:       m.ID,
		ModuleKey:      m.ModuleKey,
		ModuleName:     m.ModuleName,
		RouteURL:       m.RouteURL,
		Icon:           m.Icon,
		DisplayOrder:   m.DisplayOrder,
		IsActive:       m.IsActive,
		ParentModuleID: m.ParentModuleID,
		CreatedAt:      m.CreatedAt,
	}
}
