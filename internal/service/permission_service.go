package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"primefire/internal/model"
	"primefire/internal/repository"

	"github.com/google/uuid"
)

// Permission actions accepted by HasPermission and the check endpoint.
const (
	ActionView         = "view"
	ActionCreate       = "create"
	ActionEdit         = "edit"
	ActionDelete       = "delete"
	ActionExport       = "export"
	ActionAdminActions = "admin_actions"
	ActionOtherActions = "other_actions"
)

// --- DTOs ---

type PermissionFlags struct {
	CanView      bool `json:"can_view"`
	CanCreate    bool `json:"can_create"`
	CanEdit      bool `json:"can_edit"`
	CanDelete    bool `json:"can_delete"`
	CanExport    bool `json:"can_export"`
	AdminActions bool `json:"admin_actions"`
	OtherActions bool `json:"other_actions"`
}

// PermissionFlagOverrides carries the flags a caller wants to change; nil
// fields keep their current value.
type PermissionFlagOverrides struct {
	CanView      *bool `json:"can_view"`
	CanCreate    *bool `json:"can_create"`
	CanEdit      *bool `json:"can_edit"`
	CanDelete    *bool `json:"can_delete"`
	CanExport    *bool `json:"can_export"`
	AdminActions *bool `json:"admin_actions"`
	OtherActions *bool `json:"other_actions"`
}

type UpsertPermissionRequest struct {
	RoleID   string `json:"role_id" binding:"required"`
	ModuleID string `json:"module_id" binding:"required"`
	PermissionFlagOverrides
}

type BulkPermissionPayload struct {
	ModuleID string `json:"module_id" binding:"required"`
	PermissionFlags
}

type BulkUpdatePermissionsRequest struct {
	RoleID      string                  `json:"role_id" binding:"required"`
	Permissions []BulkPermissionPayload `json:"permissions"`
}

type RoleModuleResponse struct {
	RoleID     uuid.UUID `json:"role_id"`
	ModuleID   uuid.UUID `json:"module_id"`
	RoleName   string    `json:"role_name,omitempty"`
	ModuleKey  string    `json:"module_key,omitempty"`
	ModuleName string    `json:"module_name,omitempty"`
	PermissionFlags
	AssignedAt time.Time `json:"assigned_at"`
}

// EffectivePermission is the OR-merge of an employee's role grants on one
// module, carrying enough module metadata to build a navigation menu.
type EffectivePermission struct {
	ModuleID       uuid.UUID  `json:"module_id"`
	ModuleKey      string     `json:"module_key"`
	ModuleName     string     `json:"module_name"`
	RouteURL       string     `json:"route_url"`
	Icon           string     `json:"icon"`
	DisplayOrder   int        `json:"display_order"`
	ParentModuleID *uuid.UUID `json:"parent_module_id,omitempty"`
	PermissionFlags
}

// AccessibleModule is a navigation entry for a module the employee can view.
type AccessibleModule struct {
	ModuleID       uuid.UUID  `json:"module_id"`
	ModuleKey      string     `json:"module_key"`
	ModuleName     string     `json:"module_name"`
	RouteURL       string     `json:"route_url"`
	Icon           string     `json:"icon"`
	DisplayOrder   int        `json:"display_order"`
	ParentModuleID *uuid.UUID `json:"parent_module_id,omitempty"`
}

// AccessibleModulesFrom keeps the modules whose aggregated CanView is true.
// The input order (DisplayOrder, then ModuleName) is preserved.
func AccessibleModulesFrom(effective []EffectivePermission) []AccessibleModule {
	out := make([]AccessibleModule, 0, len(effective))
	for _, ep := range effective {
		if !ep.CanView {
			continue
		}
		out = append(out, AccessibleModule{
			ModuleID:       ep.ModuleID,
			ModuleKey:      ep.ModuleKey,
			ModuleName:     ep.ModuleName,
			RouteURL:       ep.RouteURL,
			Icon:           ep.Icon,
			DisplayOrder:   ep.DisplayOrder,
			ParentModuleID: ep.ParentModuleID,
		})
	}
	return out
}

// --- Interface ---

type PermissionService interface {
	GetPermissions(ctx context.Context) ([]RoleModuleResponse, error)
	GetPermissionsByRole(ctx context.Context, roleID string) ([]RoleModuleResponse, error)
	GetPermissionsByModule(ctx context.Context, moduleID string) ([]RoleModuleResponse, error)
	GetPermission(ctx context.Context, roleID, moduleID string) (RoleModuleResponse, error)
	CreatePermission(ctx context.Context, req UpsertPermissionRequest) (RoleModuleResponse, error)
	UpdatePermission(ctx context.Context, req UpsertPermissionRequest) (RoleModuleResponse, error)
	DeletePermission(ctx context.Context, roleID, moduleID string) error
	BulkUpdate(ctx context.Context, req BulkUpdatePermissionsRequest) ([]RoleModuleResponse, error)
	// EffectivePermissions aggregates the employee's grants across all of
	// their roles, one entry per active module.
	EffectivePermissions(ctx context.Context, employee *model.Employee) ([]EffectivePermission, error)
	HasPermission(ctx context.Context, employee *model.Employee, moduleKey, action string) (bool, error)
}

// --- Implementation ---

type permissionService struct {
	permissionRepo repository.PermissionRepository
	roleRepo       repository.RoleRepository
	moduleRepo     repository.ModuleRepository
	txManager      repository.TransactionManager
}

func NewPermissionService(
	permissionRepo repository.PermissionRepository,
	roleRepo repository.RoleRepository,
	moduleRepo repository.ModuleRepository,
	txManager repository.TransactionManager,
) PermissionService {
	return &permissionService{
		permissionRepo: permissionRepo,
		roleRepo:       roleRepo,
		moduleRepo:     moduleRepo,
		txManager:      txManager,
	}
}

func (s *permissionService) GetPermissions(ctx context.Context) ([]RoleModuleResponse, error) {
	rows, err := s.permissionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch permissions: %w", err)
	}
	return toRoleModuleResponses(rows), nil
}

func (s *permissionService) GetPermissionsByRole(ctx context.Context, roleID string) ([]RoleModuleResponse, error) {
	rid, err := uuid.Parse(roleID)
	if err != nil {
		return nil, fmt.Errorf("invalid role ID")
	}
	if _, err := s.roleRepo.GetByID(ctx, rid); err != nil {
		return nil, fmt.Errorf("role not found: %w", err)
	}

	rows, err := s.permissionRepo.ListByRole(ctx, rid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch permissions: %w", err)
	}
	return toRoleModuleResponses(rows), nil
}

func (s *permissionService) GetPermissionsByModule(ctx context.Context, moduleID string) ([]RoleModuleResponse, error) {
	mid, err := uuid.Parse(moduleID)
	if err != nil {
		return nil, fmt.Errorf("invalid module ID")
	}
	if _, err := s.moduleRepo.GetByID(ctx, mid); err != nil {
		return nil, fmt.Errorf("module not found: %w", err)
	}

	rows, err := s.permissionRepo.ListByModule(ctx, mid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch permissions: %w", err)
	}
	return toRoleModuleResponses(rows), nil
}

func (s *permissionService) GetPermission(ctx context.Context, roleID, moduleID string) (RoleModuleResponse, error) {
	rid, err := uuid.Parse(roleID)
	if err != nil {
		return RoleModuleResponse{}, fmt.Errorf("invalid role ID")
	}
	mid, err := uuid.Parse(moduleID)
	if err != nil {
		return RoleModuleResponse{}, fmt.Errorf("invalid module ID")
	}

	rm, err := s.permissionRepo.Get(ctx, rid, mid)
	if err != nil {
		return RoleModuleResponse{}, fmt.Errorf("permission not found: %w", err)
	}
	return toRoleModuleResponse(*rm), nil
}

func (s *permissionService) CreatePermission(ctx context.Context, req UpsertPermissionRequest) (RoleModuleResponse, error) {
	rid, mid, err := s.resolvePair(ctx, req.RoleID, req.ModuleID)
	if err != nil {
		return RoleModuleResponse{}, err
	}
	if _, err := s.permissionRepo.Get(ctx, rid, mid); err == nil {
		return RoleModuleResponse{}, fmt.Errorf("permission already exists for this role and module")
	}

	rm := &model.RoleModule{RoleID: rid, ModuleID: mid, CanView: true}
	applyFlagOverrides(rm, req)

	if err := s.permissionRepo.Create(ctx, rm); err != nil {
		return RoleModuleResponse{}, fmt.Errorf("failed to create permission: %w", err)
	}

	created, err := s.permissionRepo.Get(ctx, rid, mid)
	if err != nil {
		return RoleModuleResponse{}, fmt.Errorf("failed to load permission: %w", err)
	}
	return toRoleModuleResponse(*created), nil
}

func (s *permissionService) UpdatePermission(ctx context.Context, req UpsertPermissionRequest) (RoleModuleResponse, error) {
	rid, mid, err := s.resolvePair(ctx, req.RoleID, req.ModuleID)
	if err != nil {
		return RoleModuleResponse{}, err
	}

	rm, err := s.permissionRepo.Get(ctx, rid, mid)
	if err != nil {
		return RoleModuleResponse{}, fmt.Errorf("permission not found: %w", err)
	}

	applyFlagOverrides(rm, req)
	if err := s.permissionRepo.Update(ctx, rm); err != nil {
		return RoleModuleResponse{}, fmt.Errorf("failed to update permission: %w", err)
	}
	return toRoleModuleResponse(*rm), nil
}

func (s *permissionService) DeletePermission(ctx context.Context, roleID, moduleID string) error {
	rid, err := uuid.Parse(roleID)
	if err != nil {
		return fmt.Errorf("invalid role ID")
	}
	mid, err := uuid.Parse(moduleID)
	if err != nil {
		return fmt.Errorf("invalid module ID")
	}
	if _, err := s.permissionRepo.Get(ctx, rid, mid); err != nil {
		return fmt.Errorf("permission not found: %w", err)
	}
	return s.permissionRepo.Delete(ctx, rid, mid)
}

func (s *permissionService) BulkUpdate(ctx context.Context, req BulkUpdatePermissionsRequest) ([]RoleModuleResponse, error) {
	rid, err := uuid.Parse(req.RoleID)
	if err != nil {
		return nil, fmt.Errorf("invalid role ID")
	}
	if _, err := s.roleRepo.GetByID(ctx, rid); err != nil {
		return nil, fmt.Errorf("role not found: %w", err)
	}

	rows := make([]model.RoleModule, 0, len(req.Permissions))
	for i, p := range req.Permissions {
		mid, err := uuid.Parse(p.ModuleID)
		if err != nil {
			return nil, fmt.Errorf("permissions[%d]: invalid module ID", i)
		}
		if _, err := s.moduleRepo.GetByID(ctx, mid); err != nil {
			return nil, fmt.Errorf("permissions[%d]: module not found", i)
		}
		rows = append(rows, model.RoleModule{
			RoleID:       rid,
			ModuleID:     mid,
			CanView:      p.CanView,
			CanCreate:    p.CanCreate,
			CanEdit:      p.CanEdit,
			CanDelete:    p.CanDelete,
			CanExport:    p.CanExport,
			AdminActions: p.AdminActions,
			OtherActions: p.OtherActions,
		})
	}

	// Replace the role's grants atomically so a failed insert cannot leave
	// the role half-stripped.
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return s.permissionRepo.ReplaceForRole(txCtx, rid, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to replace permissions: %w", err)
	}

	saved, err := s.permissionRepo.ListByRole(ctx, rid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch permissions: %w", err)
	}
	return toRoleModuleResponses(saved), nil
}

func (s *permissionService) EffectivePermissions(ctx context.Context, employee *model.Employee) ([]EffectivePermission, error) {
	if employee == nil {
		return nil, fmt.Errorf("employee is required")
	}

	roleIDs := make([]uuid.UUID, 0, len(employee.Roles))
	for _, r := range employee.Roles {
		roleIDs = append(roleIDs, r.ID)
	}

	rows, err := s.permissionRepo.ListByRoleIDs(ctx, roleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch permissions: %w", err)
	}

	merged := make(map[uuid.UUID]*EffectivePermission)
	for _, rm := range rows {
		if !rm.Module.IsActive {
			continue
		}
		ep, ok := merged[rm.ModuleID]
		if !ok {
			ep = &EffectivePermission{
				ModuleID:       rm.ModuleID,
				ModuleKey:      rm.Module.ModuleKey,
				ModuleName:     rm.Module.ModuleName,
				RouteURL:       rm.Module.RouteURL,
				Icon:           rm.Module.Icon,
				DisplayOrder:   rm.Module.DisplayOrder,
				ParentModuleID: rm.Module.ParentModuleID,
			}
			merged[rm.ModuleID] = ep
		}
		ep.CanView = ep.CanView || rm.CanView
		ep.CanCreate = ep.CanCreate || rm.CanCreate
		ep.CanEdit = ep.CanEdit || rm.CanEdit
		ep.CanDelete = ep.CanDelete || rm.CanDelete
		ep.CanExport = ep.CanExport || rm.CanExport
		ep.AdminActions = ep.AdminActions || rm.AdminActions
		ep.OtherActions = ep.OtherActions || rm.OtherActions
	}

	out := make([]EffectivePermission, 0, len(merged))
	for _, ep := range merged {
		out = append(out, *ep)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].ModuleName < out[j].ModuleName
	})
	return out, nil
}

func (s *permissionService) HasPermission(ctx context.Context, employee *model.Employee, moduleKey, action string) (bool, error) {
	effective, err := s.EffectivePermissions(ctx, employee)
	if err != nil {
		return false, err
	}

	for _, ep := range effective {
		if ep.ModuleKey != moduleKey {
			continue
		}
		switch action {
		case ActionView:
			return ep.CanView, nil
		case ActionCreate:
			return ep.CanCreate, nil
		case ActionEdit:
			return ep.CanEdit, nil
		case ActionDelete:
			return ep.CanDelete, nil
		case ActionExport:
			return ep.CanExport, nil
		case ActionAdminActions:
			return ep.AdminActions, nil
		case ActionOtherActions:
			return ep.OtherActions, nil
		default:
			return false, fmt.Errorf("unknown action %q", action)
		}
	}

	// No grant on the module from any role.
	switch action {
	case ActionView, ActionCreate, ActionEdit, ActionDelete, ActionExport, ActionAdminActions, ActionOtherActions:
		return false, nil
	default:
		return false, fmt.Errorf("unknown action %q", action)
	}
}

// --- Helpers ---

func (s *permissionService) resolvePair(ctx context.Context, roleID, moduleID string) (uuid.UUID, uuid.UUID, error) {
	rid, err := uuid.Parse(roleID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid role ID")
	}
	mid, err := uuid.Parse(moduleID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid module ID")
	}
	if _, err := s.roleRepo.GetByID(ctx, rid); err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("role not found: %w", err)
	}
	if _, err := s.moduleRepo.GetByID(ctx, mid); err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("module not found: %w", err)
	}
	return rid, mid, nil
}

func applyFlagOverrides(rm *model.RoleModule, req UpsertPermissionRequest) {
	if req.CanView != nil {
		rm.CanView = *req.CanView
	}
	if req.CanCreate != nil {
		rm.CanCreate = *req.CanCreate
	}
	if req.CanEdit != nil {
		rm.CanEdit = *req.CanEdit
	}
	if req.CanDelete != nil {
		rm.CanDelete = *req.CanDelete
	}
	if req.CanExport != nil {
		rm.CanExport = *req.CanExport
	}
	if req.AdminActions != nil {
		rm.AdminActions = *req.AdminActions
	}
	if req.OtherActions != nil {
		rm.OtherActions = *req.OtherActions
	}
}

// --- Response mappers ---

func toRoleModuleResponse(rm model.RoleModule) RoleModuleResponse {
	return RoleModuleResponse{
		RoleID:     rm.RoleID,
		ModuleID:   rm.ModuleID,
		RoleName:   rm.Role.Name,
		ModuleKey:  rm.Module.ModuleKey,
		ModuleName: rm.Module.ModuleName,
		PermissionFlags: PermissionFlags{
			CanView:      rm.CanView,
			CanCreate:    rm.CanCreate,
			CanEdit:      rm.CanEdit,
			CanDelete:    rm.CanDelete,
			CanExport:    rm.CanExport,
			AdminActions: rm.AdminActions,
			OtherActions: rm.OtherActions,
		},
		AssignedAt: rm.AssignedAt,
	}
}

func toRoleModuleResponses(rows []model.RoleModule) []RoleModuleResponse {
	res := make([]RoleModuleResponse, 0, len(rows))
	for _, rm := range rows {
		res = append(res, toRoleModuleResponse(rm))
	}
	return res
}
