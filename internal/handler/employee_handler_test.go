package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"primefire/internal/config"
	"primefire/internal/service"
)

func newEmployeeRouter(perms service.PermissionService, svc service.EmployeeService, sync service.SyncService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	scheduler := service.NewSyncScheduler(sync, &config.Config{SyncIntervalHours: 24}, logrus.New())
	r := gin.New()
	r.Use(authAs(testEmployee()))
	NewEmployeeHandler(svc, sync, scheduler, perms).RegisterRoutes(r.Group(""))
	return r
}

func TestListEmployeesPaginates(t *testing.T) {
	svc := &fakeEmployeeService{
		employees: []service.EmployeeResponse{{ID: uuid.New()}, {ID: uuid.New()}},
		total:     45,
	}
	router := newEmployeeRouter(allowAll(), svc, &fakeSyncService{})

	rec := doJSON(t, router, http.MethodGet, "/api/employees?page=2&limit=2&search=jo&department=IT", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.Page)
	assert.Equal(t, 2, env.Meta.Limit)
	assert.Equal(t, int64(45), env.Meta.Total)
	assert.Equal(t, 23, env.Meta.TotalPages)
	assert.Equal(t, "jo", svc.lastSearch)
	assert.Equal(t, "IT", svc.lastDept)
	assert.Equal(t, 2, svc.lastPage)
	assert.Equal(t, 2, svc.lastLimit)
}

func TestListEmployeesRequiresViewPermission(t *testing.T) {
	perms := &fakePermissionService{allowed: false}
	router := newEmployeeRouter(perms, &fakeEmployeeService{}, &fakeSyncService{})

	rec := doJSON(t, router, http.MethodGet, "/api/employees", nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "employees", perms.lastModule)
	assert.Equal(t, service.ActionView, perms.lastAction)
}

func TestCreateEmployee(t *testing.T) {
	svc := &fakeEmployeeService{employee: service.EmployeeResponse{ID: uuid.New(), Email: "ana@primefire.com"}}
	router := newEmployeeRouter(allowAll(), svc, &fakeSyncService{})

	rec := doJSON(t, router, http.MethodPost, "/api/employees", map[string]interface{}{
		"first_name": "Ana",
		"last_name":  "Diaz",
		"email":      "ana@primefire.com",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "ana@primefire.com", svc.created.Email)
	assert.Equal(t, "success", decodeEnvelope(t, rec).Status)
}

func TestCreateEmployeeRejectsIncompletePayload(t *testing.T) {
	svc := &fakeEmployeeService{}
	router := newEmployeeRouter(allowAll(), svc, &fakeSyncService{})

	rec := doJSON(t, router, http.MethodPost, "/api/employees", map[string]interface{}{
		"first_name": "Ana",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Error, "Invalid request payload")
	assert.Nil(t, svc.created)
}

func TestGetEmployeeErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "missing record", err: fmt.Errorf("employee not found: %w", gorm.ErrRecordNotFound), want: http.StatusNotFound},
		{name: "domain error", err: fmt.Errorf("invalid employee ID"), want: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newEmployeeRouter(allowAll(), &fakeEmployeeService{err: tc.err}, &fakeSyncService{})
			rec := doJSON(t, router, http.MethodGet, "/api/employees/"+uuid.NewString(), nil)
			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, "error", decodeEnvelope(t, rec).Status)
		})
	}
}

func TestDeleteEmployee(t *testing.T) {
	svc := &fakeEmployeeService{}
	router := newEmployeeRouter(allowAll(), svc, &fakeSyncService{})
	id := uuid.NewString()

	rec := doJSON(t, router, http.MethodDelete, "/api/employees/"+id, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, svc.deletedID)
	assert.Equal(t, "Employee deleted successfully", dataMap(t, decodeEnvelope(t, rec))["message"])
}

func TestAssignRoles(t *testing.T) {
	svc := &fakeEmployeeService{}
	router := newEmployeeRouter(allowAll(), svc, &fakeSyncService{})
	roleID := uuid.NewString()

	rec := doJSON(t, router, http.MethodPut, "/api/employees/"+uuid.NewString()+"/roles", map[string]interface{}{
		"role_ids": []string{roleID},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{roleID}, svc.assigned)

	rec = doJSON(t, router, http.MethodPut, "/api/employees/"+uuid.NewString()+"/roles", map[string]interface{}{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestExportEmployees(t *testing.T) {
	svc := &fakeEmployeeService{
		headers: []string{"First Name", "Email"},
		rows:    [][]string{{"Ana", "ana@primefire.com"}},
	}
	router := newEmployeeRouter(allowAll(), svc, &fakeSyncService{})

	rec := doJSON(t, router, http.MethodGet, "/api/employees/export?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "First Name,Email"))

	rec = doJSON(t, router, http.MethodGet, "/api/employees/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")

	rec = doJSON(t, router, http.MethodGet, "/api/employees/export?format=tsv", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTriggerSync(t *testing.T) {
	sync := &fakeSyncService{stats: service.SyncStats{TotalMSUsers: 3, Created: 1}}
	router := newEmployeeRouter(allowAll(), &fakeEmployeeService{}, sync)

	rec := doJSON(t, router, http.MethodPost, "/api/employees/sync", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := dataMap(t, decodeEnvelope(t, rec))
	assert.Equal(t, true, data["started"])
	stats, ok := data["stats"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), stats["total_ms_users"])
}

func TestSyncStatus(t *testing.T) {
	router := newEmployeeRouter(allowAll(), &fakeEmployeeService{}, &fakeSyncService{})

	rec := doJSON(t, router, http.MethodGet, "/api/employees/sync/status", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := dataMap(t, decodeEnvelope(t, rec))
	assert.Contains(t, data, "auto_sync_enabled")
	assert.Equal(t, false, data["running"])
}

func TestPullAndPushEmployee(t *testing.T) {
	sync := &fakeSyncService{employee: service.EmployeeResponse{ID: uuid.New()}}
	router := newEmployeeRouter(allowAll(), &fakeEmployeeService{}, sync)
	id := uuid.NewString()

	rec := doJSON(t, router, http.MethodPost, "/api/employees/"+id+"/sync/pull", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, sync.pulledID)

	rec = doJSON(t, router, http.MethodPost, "/api/employees/"+id+"/sync/push", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, sync.pushedID)
}

func TestPullEmployeeDirectoryDown(t *testing.T) {
	sync := &fakeSyncService{err: fmt.Errorf("%w: failed to fetch user: boom", service.ErrDirectoryUnavailable)}
	router := newEmployeeRouter(allowAll(), &fakeEmployeeService{}, sync)

	rec := doJSON(t, router, http.MethodPost, "/api/employees/"+uuid.NewString()+"/sync/pull", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
