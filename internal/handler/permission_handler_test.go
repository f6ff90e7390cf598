package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primefire/internal/model"
	"primefire/internal/service"
)

func newPermissionRouter(perms *fakePermissionService, employee *model.Employee) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(authAs(employee))
	NewPermissionHandler(perms).RegisterRoutes(r.Group(""))
	return r
}

func TestGetMyPermissions(t *testing.T) {
	employee := testEmployee()
	employee.Email = "jane.ops@primefire.com"
	perms := &fakePermissionService{
		effective: []service.EffectivePermission{
			{ModuleKey: "tickets", PermissionFlags: service.PermissionFlags{CanView: true, CanEdit: true}},
			{ModuleKey: "licenses", PermissionFlags: service.PermissionFlags{CanExport: true}},
		},
	}
	router := newPermissionRouter(perms, employee)

	rec := doJSON(t, router, http.MethodGet, "/api/permissions/me", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Same(t, employee, perms.lastActor)

	data := dataMap(t, decodeEnvelope(t, rec))
	assert.Equal(t, "jane.ops@primefire.com", data["employee"].(map[string]interface{})["email"])
	require.Len(t, data["permissions"], 2)

	// Only modules with an aggregated view grant show up as navigation entries.
	accessible, ok := data["accessible_modules"].([]interface{})
	require.True(t, ok)
	require.Len(t, accessible, 1)
	assert.Equal(t, "tickets", accessible[0].(map[string]interface{})["module_key"])
}

func TestCheckPermission(t *testing.T) {
	perms := &fakePermissionService{allowed: true}
	router := newPermissionRouter(perms, testEmployee())

	rec := doJSON(t, router, http.MethodGet, "/api/permissions/check/tickets/edit", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tickets", perms.lastModule)
	assert.Equal(t, service.ActionEdit, perms.lastAction)
	assert.Equal(t, true, dataMap(t, decodeEnvelope(t, rec))["allowed"])
}

// Self-service routes stay reachable when the caller lacks the
// permission-admin grant; the management routes do not.
func TestPermissionAdminRoutesAreFenced(t *testing.T) {
	perms := &fakePermissionService{allowed: false}
	router := newPermissionRouter(perms, testEmployee())

	rec := doJSON(t, router, http.MethodGet, "/api/permissions/me", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/permissions", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "permissions", perms.lastModule)
	assert.Equal(t, service.ActionAdminActions, perms.lastAction)
}

func TestCreatePermission(t *testing.T) {
	perms := allowAll()
	router := newPermissionRouter(perms, testEmployee())
	roleID, moduleID := uuid.NewString(), uuid.NewString()

	rec := doJSON(t, router, http.MethodPost, "/api/permissions", map[string]interface{}{
		"role_id":   roleID,
		"module_id": moduleID,
		"can_view":  true,
		"can_edit":  true,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, perms.created)
	assert.Equal(t, roleID, perms.created.RoleID)
	assert.Equal(t, moduleID, perms.created.ModuleID)
	require.NotNil(t, perms.created.CanEdit)
	assert.True(t, *perms.created.CanEdit)
	assert.Nil(t, perms.created.CanDelete)
}

func TestCreatePermissionRequiresIDs(t *testing.T) {
	perms := allowAll()
	router := newPermissionRouter(perms, testEmployee())

	rec := doJSON(t, router, http.MethodPost, "/api/permissions", map[string]interface{}{"can_view": true})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Nil(t, perms.created)
}

// The update route takes the pair from the path and only the flag
// overrides from the body.
func TestUpdatePermissionUsesPathPair(t *testing.T) {
	perms := allowAll()
	router := newPermissionRouter(perms, testEmployee())
	roleID, moduleID := uuid.NewString(), uuid.NewString()

	rec := doJSON(t, router, http.MethodPut, "/api/permissions/"+roleID+"/"+moduleID, map[string]interface{}{
		"can_export": true,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, perms.updated)
	assert.Equal(t, roleID, perms.updated.RoleID)
	assert.Equal(t, moduleID, perms.updated.ModuleID)
	require.NotNil(t, perms.updated.CanExport)
	assert.True(t, *perms.updated.CanExport)
	assert.Nil(t, perms.updated.CanView)
}

func TestBulkUpdatePermissions(t *testing.T) {
	perms := allowAll()
	router := newPermissionRouter(perms, testEmployee())
	roleID, moduleID := uuid.NewString(), uuid.NewString()

	rec := doJSON(t, router, http.MethodPut, "/api/permissions/bulk-update", map[string]interface{}{
		"role_id": roleID,
		"permissions": []map[string]interface{}{
			{"module_id": moduleID, "can_view": true, "can_delete": true},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, perms.bulk)
	assert.Equal(t, roleID, perms.bulk.RoleID)
	require.Len(t, perms.bulk.Permissions, 1)
	assert.Equal(t, moduleID, perms.bulk.Permissions[0].ModuleID)
	assert.True(t, perms.bulk.Permissions[0].CanDelete)
}

func TestDeletePermission(t *testing.T) {
	perms := allowAll()
	router := newPermissionRouter(perms, testEmployee())
	roleID, moduleID := uuid.NewString(), uuid.NewString()

	rec := doJSON(t, router, http.MethodDelete, "/api/permissions/"+roleID+"/"+moduleID, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, roleID, perms.deletedRole)
	assert.Equal(t, moduleID, perms.deletedMod)
	assert.Equal(t, "Permission deleted successfully", dataMap(t, decodeEnvelope(t, rec))["message"])
}
