package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"primefire/internal/model"
	"primefire/internal/service"
	"primefire/pkg/response"
)

// Hand-rolled service fakes shared by the handler tests. They return canned
// values and record what the handler passed in.

type fakePermissionService struct {
	allowed   bool
	hasErr    error
	all       []service.RoleModuleResponse
	one       service.RoleModuleResponse
	oneErr    error
	effective []service.EffectivePermission

	created     *service.UpsertPermissionRequest
	updated     *service.UpsertPermissionRequest
	bulk        *service.BulkUpdatePermissionsRequest
	deletedRole string
	deletedMod  string
	lastActor   *model.Employee
	lastModule  string
	lastAction  string
}

func (f *fakePermissionService) GetPermissions(context.Context) ([]service.RoleModuleResponse, error) {
	return f.all, nil
}

func (f *fakePermissionService) GetPermissionsByRole(_ context.Context, roleID string) ([]service.RoleModuleResponse, error) {
	return f.all, f.oneErr
}

func (f *fakePermissionService) GetPermissionsByModule(_ context.Context, moduleID string) ([]service.RoleModuleResponse, error) {
	return f.all, f.oneErr
}

func (f *fakePermissionService) GetPermission(_ context.Context, roleID, moduleID string) (service.RoleModuleResponse, error) {
	return f.one, f.oneErr
}

func (f *fakePermissionService) CreatePermission(_ context.Context, req service.UpsertPermissionRequest) (service.RoleModuleResponse, error) {
	f.created = &req
	return f.one, f.oneErr
}

func (f *fakePermissionService) UpdatePermission(_ context.Context, req service.UpsertPermissionRequest) (service.RoleModuleResponse, error) {
	f.updated = &req
	return f.one, f.oneErr
}

func (f *fakePermissionService) DeletePermission(_ context.Context, roleID, moduleID string) error {
	f.deletedRole, f.deletedMod = roleID, moduleID
	return f.oneErr
}

func (f *fakePermissionService) BulkUpdate(_ context.Context, req service.BulkUpdatePermissionsRequest) ([]service.RoleModuleResponse, error) {
	f.bulk = &req
	return f.all, f.oneErr
}

func (f *fakePermissionService) EffectivePermissions(_ context.Context, employee *model.Employee) ([]service.EffectivePermission, error) {
	f.lastActor = employee
	return f.effective, f.oneErr
}

func (f *fakePermissionService) HasPermission(_ context.Context, employee *model.Employee, moduleKey, action string) (bool, error) {
	f.lastActor = employee
	f.lastModule, f.lastAction = moduleKey, action
	return f.allowed, f.hasErr
}

func allowAll() *fakePermissionService {
	return &fakePermissionService{allowed: true}
}

type fakeEmployeeService struct {
	employees []service.EmployeeResponse
	total     int64
	employee  service.EmployeeResponse
	err       error
	headers   []string
	rows      [][]string

	lastSearch string
	lastDept   string
	lastPage   int
	lastLimit  int
	created    *service.CreateEmployeeRequest
	updatedID  string
	deletedID  string
	assigned   []string
}

func (f *fakeEmployeeService) CreateEmployee(_ context.Context, req service.CreateEmployeeRequest) (service.EmployeeResponse, error) {
	f.created = &req
	return f.employee, f.err
}

func (f *fakeEmployeeService) GetEmployee(context.Context, string) (service.EmployeeResponse, error) {
	return f.employee, f.err
}

func (f *fakeEmployeeService) GetEmployees(_ context.Context, search, department string, page, limit int) ([]service.EmployeeResponse, int64, error) {
	f.lastSearch, f.lastDept = search, department
	f.lastPage, f.lastLimit = page, limit
	return f.employees, f.total, f.err
}

func (f *fakeEmployeeService) UpdateEmployee(_ context.Context, id string, _ service.UpdateEmployeeRequest) (service.EmployeeResponse, error) {
	f.updatedID = id
	return f.employee, f.err
}

func (f *fakeEmployeeService) DeleteEmployee(_ context.Context, id string) error {
	f.deletedID = id
	return f.err
}

func (f *fakeEmployeeService) AssignRoles(_ context.Context, id string, roleIDs []string) (service.EmployeeResponse, error) {
	f.assigned = roleIDs
	return f.employee, f.err
}

func (f *fakeEmployeeService) ExportRows(context.Context) ([]string, [][]string, error) {
	return f.headers, f.rows, f.err
}

type fakeSyncService struct {
	stats    service.SyncStats
	employee service.EmployeeResponse
	err      error
	pulledID string
	pushedID string
}

func (f *fakeSyncService) Run(context.Context) (service.SyncStats, error) {
	return f.stats, f.err
}

func (f *fakeSyncService) PullEmployee(_ context.Context, employeeID string) (service.EmployeeResponse, error) {
	f.pulledID = employeeID
	return f.employee, f.err
}

func (f *fakeSyncService) PushEmployee(_ context.Context, employeeID string) (service.EmployeeResponse, error) {
	f.pushedID = employeeID
	return f.employee, f.err
}

type fakeJobService struct {
	jobs  []service.JobResponse
	total int64
	job   service.JobResponse
	err   error

	lastStatus string
	created    *service.CreateJobRequest
	deletedID  string
}

func (f *fakeJobService) CreateJob(_ context.Context, req service.CreateJobRequest) (service.JobResponse, error) {
	f.created = &req
	return f.job, f.err
}

func (f *fakeJobService) GetJob(context.Context, string) (service.JobResponse, error) {
	return f.job, f.err
}

func (f *fakeJobService) GetJobs(_ context.Context, status string, page, limit int) ([]service.JobResponse, int64, error) {
	f.lastStatus = status
	return f.jobs, f.total, f.err
}

func (f *fakeJobService) UpdateJob(_ context.Context, id string, _ service.UpdateJobRequest) (service.JobResponse, error) {
	return f.job, f.err
}

func (f *fakeJobService) DeleteJob(_ context.Context, id string) error {
	f.deletedID = id
	return f.err
}

type fakeTicketService struct {
	ticket      service.TicketResponse
	tickets     []service.TicketResponse
	total       int64
	message     service.TicketMessageResponse
	messages    []service.TicketMessageResponse
	attachment  service.TicketAttachmentResponse
	attachments []service.TicketAttachmentResponse
	download    service.FileDownload
	err         error

	lastActor    *model.Employee
	lastFilter   service.TicketListFilter
	lastTicketID string
	uploadName   string
	uploadType   string
	uploadBody   []byte
}

func (f *fakeTicketService) CreateTicket(_ context.Context, actor *model.Employee, _ service.CreateTicketRequest) (service.TicketResponse, error) {
	f.lastActor = actor
	return f.ticket, f.err
}

func (f *fakeTicketService) GetTicket(_ context.Context, id string) (service.TicketResponse, error) {
	f.lastTicketID = id
	return f.ticket, f.err
}

func (f *fakeTicketService) GetTickets(_ context.Context, filter service.TicketListFilter, page, limit int) ([]service.TicketResponse, int64, error) {
	f.lastFilter = filter
	return f.tickets, f.total, f.err
}

func (f *fakeTicketService) UpdateTicket(_ context.Context, actor *model.Employee, id string, _ service.UpdateTicketRequest) (service.TicketResponse, error) {
	f.lastActor = actor
	f.lastTicketID = id
	return f.ticket, f.err
}

func (f *fakeTicketService) DeleteTicket(_ context.Context, actor *model.Employee, id string) error {
	f.lastActor = actor
	f.lastTicketID = id
	return f.err
}

func (f *fakeTicketService) GetTicketMessages(_ context.Context, ticketID string) ([]service.TicketMessageResponse, error) {
	f.lastTicketID = ticketID
	return f.messages, f.err
}

func (f *fakeTicketService) AddTicketMessage(_ context.Context, actor *model.Employee, ticketID string, _ service.CreateTicketMessageRequest) (service.TicketMessageResponse, error) {
	f.lastActor = actor
	f.lastTicketID = ticketID
	return f.message, f.err
}

func (f *fakeTicketService) UpdateTicketMessage(_ context.Context, actor *model.Employee, ticketID, messageID string, _ service.UpdateTicketMessageRequest) (service.TicketMessageResponse, error) {
	f.lastActor = actor
	return f.message, f.err
}

func (f *fakeTicketService) DeleteTicketMessage(_ context.Context, actor *model.Employee, ticketID, messageID string) error {
	f.lastActor = actor
	return f.err
}

func (f *fakeTicketService) GetTicketAttachments(_ context.Context, ticketID string) ([]service.TicketAttachmentResponse, error) {
	f.lastTicketID = ticketID
	return f.attachments, f.err
}

func (f *fakeTicketService) AddTicketAttachment(_ context.Context, actor *model.Employee, ticketID string, upload service.AttachmentUpload) (service.TicketAttachmentResponse, error) {
	f.lastActor = actor
	f.lastTicketID = ticketID
	f.uploadName = upload.FileName
	f.uploadType = upload.ContentType
	body, err := io.ReadAll(upload.Content)
	if err != nil {
		return service.TicketAttachmentResponse{}, err
	}
	f.uploadBody = body
	return f.attachment, f.err
}

func (f *fakeTicketService) GetTicketAttachmentFile(_ context.Context, ticketID, attachmentID string) (service.FileDownload, error) {
	return f.download, f.err
}

func (f *fakeTicketService) DeleteTicketAttachment(_ context.Context, actor *model.Employee, ticketID, attachmentID string) error {
	f.lastActor = actor
	return f.err
}

// --- request helpers ---

// authAs injects the employee the way RequireAuth does, so routes behind
// permission checks can run without real tokens.
func authAs(employee *model.Employee) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("current_employee", employee)
	}
}

func testEmployee() *model.Employee {
	return &model.Employee{ID: uuid.New(), DisplayName: "Jane Ops"}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
	Meta       *response.Meta  `json:"meta"`
	Error      string          `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func dataMap(t *testing.T, env envelope) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &m))
	return m
}
