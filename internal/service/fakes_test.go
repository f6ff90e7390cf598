package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"primefire/internal/model"
	"primefire/internal/repository"
)

// Hand-rolled fakes shared by the service tests. They keep state in maps and
// slices so tests can assert on what was written.

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// --- roles ---

type fakeRoleRepo struct {
	roles map[uuid.UUID]*model.Role
}

func newFakeRoleRepo(roles ...*model.Role) *fakeRoleRepo {
	f := &fakeRoleRepo{roles: make(map[uuid.UUID]*model.Role)}
	for _, r := range roles {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		f.roles[r.ID] = r
	}
	return f
}

func (f *fakeRoleRepo) Create(_ context.Context, role *model.Role) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	f.roles[role.ID] = role
	return nil
}

func (f *fakeRoleRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Role, error) {
	if r, ok := f.roles[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRoleRepo) GetByName(_ context.Context, name string) (*model.Role, error) {
	for _, r := range f.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRoleRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]model.Role, error) {
	var out []model.Role
	for _, id := range ids {
		if r, ok := f.roles[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRoleRepo) List(_ context.Context) ([]model.Role, error) {
	out := make([]model.Role, 0, len(f.roles))
	for _, r := range f.roles {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRoleRepo) Update(_ context.Context, role *model.Role) error {
	f.roles[role.ID] = role
	return nil
}

func (f *fakeRoleRepo) Delete(_ context.Context, role *model.Role) error {
	delete(f.roles, role.ID)
	return nil
}

// --- modules ---

type fakeModuleRepo struct {
	modules map[uuid.UUID]*model.Module
}

func newFakeModuleRepo(modules ...*model.Module) *fakeModuleRepo {
	f := &fakeModuleRepo{modules: make(map[uuid.UUID]*model.Module)}
	for _, m := range modules {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		f.modules[m.ID] = m
	}
	return f
}

func (f *fakeModuleRepo) Create(_ context.Context, module *model.Module) error {
	if module.ID == uuid.Nil {
		module.ID = uuid.New()
	}
	f.modules[module.ID] = module
	return nil
}

func (f *fakeModuleRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Module, error) {
	if m, ok := f.modules[id]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeModuleRepo) GetByKey(_ context.Context, moduleKey string) (*model.Module, error) {
	for _, m := range f.modules {
		if m.ModuleKey == moduleKey {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeModuleRepo) List(_ context.Context, includeInactive bool) ([]model.Module, error) {
	out := make([]model.Module, 0, len(f.modules))
	for _, m := range f.modules {
		if !includeInactive && !m.IsActive {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeModuleRepo) ListChildren(_ context.Context, parentID uuid.UUID) ([]model.Module, error) {
	var out []model.Module
	for _, m := range f.modules {
		if m.ParentModuleID != nil && *m.ParentModuleID == parentID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeModuleRepo) ListRoots(_ context.Context) ([]model.Module, error) {
	var out []model.Module
	for _, m := range f.modules {
		if m.ParentModuleID == nil {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeModuleRepo) Update(_ context.Context, module *model.Module) error {
	f.modules[module.ID] = module
	return nil
}

func (f *fakeModuleRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.modules, id)
	return nil
}

func (f *fakeModuleRepo) DetachChildren(_ context.Context, parentID uuid.UUID) error {
	for _, m := range f.modules {
		if m.ParentModuleID != nil && *m.ParentModuleID == parentID {
			m.ParentModuleID = nil
		}
	}
	return nil
}

// --- permissions ---

type fakePermissionRepo struct {
	rows    []model.RoleModule
	roles   *fakeRoleRepo
	modules *fakeModuleRepo
}

func newFakePermissionRepo(roles *fakeRoleRepo, modules *fakeModuleRepo) *fakePermissionRepo {
	return &fakePermissionRepo{roles: roles, modules: modules}
}

// hydrate fills the Role and Module associations the way the real repository's
// preloads would.
func (f *fakePermissionRepo) hydrate(rm model.RoleModule) model.RoleModule {
	if f.roles != nil {
		if r, ok := f.roles.roles[rm.RoleID]; ok {
			rm.Role = *r
		}
	}
	if f.modules != nil {
		if m, ok := f.modules.modules[rm.ModuleID]; ok {
			rm.Module = *m
		}
	}
	return rm
}

func (f *fakePermissionRepo) Create(_ context.Context, rm *model.RoleModule) error {
	f.rows = append(f.rows, *rm)
	return nil
}

func (f *fakePermissionRepo) Get(_ context.Context, roleID, moduleID uuid.UUID) (*model.RoleModule, error) {
	for _, rm := range f.rows {
		if rm.RoleID == roleID && rm.ModuleID == moduleID {
			h := f.hydrate(rm)
			return &h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePermissionRepo) ListAll(_ context.Context) ([]model.RoleModule, error) {
	out := make([]model.RoleModule, 0, len(f.rows))
	for _, rm := range f.rows {
		out = append(out, f.hydrate(rm))
	}
	return out, nil
}

func (f *fakePermissionRepo) ListByRole(_ context.Context, roleID uuid.UUID) ([]model.RoleModule, error) {
	var out []model.RoleModule
	for _, rm := range f.rows {
		if rm.RoleID == roleID {
			out = append(out, f.hydrate(rm))
		}
	}
	return out, nil
}

func (f *fakePermissionRepo) ListByRoleIDs(_ context.Context, roleIDs []uuid.UUID) ([]model.RoleModule, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}
	wanted := make(map[uuid.UUID]bool, len(roleIDs))
	for _, id := range roleIDs {
		wanted[id] = true
	}
	var out []model.RoleModule
	for _, rm := range f.rows {
		if wanted[rm.RoleID] {
			out = append(out, f.hydrate(rm))
		}
	}
	return out, nil
}

func (f *fakePermissionRepo) ListByModule(_ context.Context, moduleID uuid.UUID) ([]model.RoleModule, error) {
	var out []model.RoleModule
	for _, rm := range f.rows {
		if rm.ModuleID == moduleID {
			out = append(out, f.hydrate(rm))
		}
	}
	return out, nil
}

func (f *fakePermissionRepo) Update(_ context.Context, rm *model.RoleModule) error {
	for i := range f.rows {
		if f.rows[i].RoleID == rm.RoleID && f.rows[i].ModuleID == rm.ModuleID {
			f.rows[i] = *rm
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakePermissionRepo) Delete(_ context.Context, roleID, moduleID uuid.UUID) error {
	kept := f.rows[:0]
	for _, rm := range f.rows {
		if !(rm.RoleID == roleID && rm.ModuleID == moduleID) {
			kept = append(kept, rm)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakePermissionRepo) ReplaceForRole(_ context.Context, roleID uuid.UUID, rows []model.RoleModule) error {
	kept := f.rows[:0]
	for _, rm := range f.rows {
		if rm.RoleID != roleID {
			kept = append(kept, rm)
		}
	}
	f.rows = append(kept, rows...)
	return nil
}

// --- employees ---

type fakeEmployeeRepo struct {
	employees map[uuid.UUID]*model.Employee
	createErr error
	updateErr error
}

func newFakeEmployeeRepo(employees ...*model.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{employees: make(map[uuid.UUID]*model.Employee)}
	for _, e := range employees {
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		f.employees[e.ID] = e
	}
	return f
}

func (f *fakeEmployeeRepo) Create(_ context.Context, employee *model.Employee) error {
	if f.createErr != nil {
		return f.createErr
	}
	if employee.ID == uuid.Nil {
		employee.ID = uuid.New()
	}
	f.employees[employee.ID] = employee
	return nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	if e, ok := f.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (*model.Employee, error) {
	for _, e := range f.employees {
		if e.Email == email {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepo) GetByAzureOID(_ context.Context, azureOID string) (*model.Employee, error) {
	for _, e := range f.employees {
		if e.AzureOID == azureOID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ repository.EmployeeFilter, _, _ int) ([]model.Employee, int64, error) {
	out, _ := f.ListAll(context.Background())
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeRepo) ListAll(_ context.Context) ([]model.Employee, error) {
	out := make([]model.Employee, 0, len(f.employees))
	for _, e := range f.employees {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, employee *model.Employee) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.employees[employee.ID] = employee
	return nil
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployeeRepo) ReplaceRoles(_ context.Context, employee *model.Employee, roles []model.Role) error {
	employee.Roles = roles
	f.employees[employee.ID] = employee
	return nil
}

// --- tickets ---

type fakeTicketRepo struct {
	tickets     map[uuid.UUID]*model.Ticket
	messages    map[uuid.UUID]*model.TicketMessage
	attachments map[uuid.UUID]*model.TicketAttachment
	employees   *fakeEmployeeRepo
}

func newFakeTicketRepo(employees *fakeEmployeeRepo) *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets:     make(map[uuid.UUID]*model.Ticket),
		messages:    make(map[uuid.UUID]*model.TicketMessage),
		attachments: make(map[uuid.UUID]*model.TicketAttachment),
		employees:   employees,
	}
}

// hydrateTicket fills Assignee and Creator the way the real repository's
// preloads would.
func (f *fakeTicketRepo) hydrateTicket(t model.Ticket) model.Ticket {
	if f.employees != nil {
		if t.AssignedTo != nil {
			if e, ok := f.employees.employees[*t.AssignedTo]; ok {
				t.Assignee = e
			}
		}
		if e, ok := f.employees.employees[t.CreatedBy]; ok {
			t.Creator = e
		}
	}
	return t
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *model.Ticket) error {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	stored := *ticket
	stored.Assignee = nil
	stored.Creator = nil
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Ticket, error) {
	if t, ok := f.tickets[id]; ok {
		h := f.hydrateTicket(*t)
		return &h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTicketRepo) List(_ context.Context, filter repository.TicketFilter, _, _ int) ([]model.Ticket, int64, error) {
	var out []model.Ticket
	for _, t := range f.tickets {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Priority != "" && t.Priority != filter.Priority {
			continue
		}
		if filter.SLA != "" && t.SLA != filter.SLA {
			continue
		}
		if filter.AssignedTo != nil && (t.AssignedTo == nil || *t.AssignedTo != *filter.AssignedTo) {
			continue
		}
		if filter.CreatedBy != nil && t.CreatedBy != *filter.CreatedBy {
			continue
		}
		out = append(out, f.hydrateTicket(*t))
	}
	return out, int64(len(out)), nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *model.Ticket) error {
	stored := *ticket
	stored.Assignee = nil
	stored.Creator = nil
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.tickets, id)
	for mid, m := range f.messages {
		if m.TicketID == id {
			delete(f.messages, mid)
		}
	}
	for aid, a := range f.attachments {
		if a.TicketID == id {
			delete(f.attachments, aid)
		}
	}
	return nil
}

func (f *fakeTicketRepo) CreateMessage(_ context.Context, message *model.TicketMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	stored := *message
	stored.Author = nil
	stored.Ticket = nil
	f.messages[message.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) GetMessageByID(_ context.Context, id uuid.UUID) (*model.TicketMessage, error) {
	if m, ok := f.messages[id]; ok {
		h := *m
		if f.employees != nil {
			if e, ok := f.employees.employees[h.EmployeeID]; ok {
				h.Author = e
			}
		}
		return &h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTicketRepo) ListMessages(_ context.Context, ticketID uuid.UUID) ([]model.TicketMessage, error) {
	var out []model.TicketMessage
	for _, m := range f.messages {
		if m.TicketID != ticketID {
			continue
		}
		h := *m
		if f.employees != nil {
			if e, ok := f.employees.employees[h.EmployeeID]; ok {
				h.Author = e
			}
		}
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTicketRepo) UpdateMessage(_ context.Context, message *model.TicketMessage) error {
	stored := *message
	stored.Author = nil
	stored.Ticket = nil
	f.messages[message.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) DeleteMessage(_ context.Context, id uuid.UUID) error {
	delete(f.messages, id)
	return nil
}

func (f *fakeTicketRepo) CreateAttachment(_ context.Context, attachment *model.TicketAttachment) error {
	if attachment.ID == uuid.Nil {
		attachment.ID = uuid.New()
	}
	stored := *attachment
	stored.Ticket = nil
	f.attachments[attachment.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) GetAttachmentByID(_ context.Context, id uuid.UUID) (*model.TicketAttachment, error) {
	if a, ok := f.attachments[id]; ok {
		h := *a
		return &h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTicketRepo) ListAttachments(_ context.Context, ticketID uuid.UUID) ([]model.TicketAttachment, error) {
	var out []model.TicketAttachment
	for _, a := range f.attachments {
		if a.TicketID == ticketID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTicketRepo) DeleteAttachment(_ context.Context, id uuid.UUID) error {
	delete(f.attachments, id)
	return nil
}

// --- events ---

type publishedEvent struct {
	event string
	data  interface{}
}

type fakeEventPublisher struct {
	events []publishedEvent
}

func (f *fakeEventPublisher) Publish(event string, data interface{}) {
	f.events = append(f.events, publishedEvent{event: event, data: data})
}

func (f *fakeEventPublisher) names() []string {
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.event)
	}
	return out
}
