package model

import (
	"time"

	"github.com/google/uuid"
)

// Module is a named feature/route unit that permissions are scoped to.
// Modules may nest under a parent module; the tree must stay acyclic and a
// module can never be its own parent.
type Module struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"module_id"`
	ModuleKey      string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"module_key"`
	ModuleName     string     `gorm:"type:varchar(255);not null" json:"module_name"`
	RouteURL       string     `gorm:"type:varchar(255)" json:"route_url"`
	Icon           string     `gorm:"type:varchar(100)" json:"icon"`
	DisplayOrder   int        `gorm:"default:0" json:"display_order"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`
	ParentModuleID *uuid.UUID `gorm:"type:uuid" json:"parent_module_id"`
	ParentModule   *Module    `gorm:"foreignKey:ParentModuleID;constraint:OnDelete:SET NULL;" json:"-"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// RoleModule holds the per-(role, module) capability flags. The composite
// primary key keeps the pair unique.
type RoleModule struct {
	RoleID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"role_id"`
	ModuleID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"module_id"`
	Role         Role      `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE;" json:"-"`
	Module       Module    `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE;" json:"-"`
	CanView      bool      `gorm:"default:true" json:"can_view"`
	CanCreate    bool      `gorm:"default:false" json:"can_create"`
	CanEdit      bool      `gorm:"default:false" json:"can_edit"`
	CanDelete    bool      `gorm:"default:false" json:"can_delete"`
	CanExport    bool      `gorm:"default:false" json:"can_export"`
	AdminActions bool      `gorm:"default:false" json:"admin_actions"`
	OtherActions bool      `gorm:"default:false" json:"other_actions"`
	AssignedAt   time.Time `gorm:"autoCreateTime" json:"assigned_at"`
}
