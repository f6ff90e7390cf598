package service

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primefire/internal/graph"
	"primefire/internal/model"
)

type fakeGraphClient struct {
	users       []graph.User
	usersByID   map[string]graph.User
	updateCalls map[string]map[string]interface{}
	listErr     error
}

func newFakeGraphClient(users ...graph.User) *fakeGraphClient {
	f := &fakeGraphClient{
		users:       users,
		usersByID:   make(map[string]graph.User),
		updateCalls: make(map[string]map[string]interface{}),
	}
	for _, u := range users {
		f.usersByID[u.ID] = u
	}
	return f
}

func (f *fakeGraphClient) ListUsers(_ context.Context) ([]graph.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.users, nil
}

func (f *fakeGraphClient) GetUser(_ context.Context, userID string) (*graph.User, error) {
	u, ok := f.usersByID[userID]
	if !ok {
		return nil, assert.AnError
	}
	return &u, nil
}

func (f *fakeGraphClient) UpdateUser(_ context.Context, userID string, fields map[string]interface{}) (*graph.User, error) {
	f.updateCalls[userID] = fields
	u := f.usersByID[userID]
	return &u, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestSyncRunFiltersAndUpserts(t *testing.T) {
	existing := &model.Employee{
		AzureOID:   "oid-existing",
		Email:      "old@primefire.com.mx",
		Department: "Operations",
		Title:      "Coordinator",
	}
	employeeRepo := newFakeEmployeeRepo(existing)
	countrySvc := NewCountryService(newFakeCountryRepo())
	client := newFakeGraphClient(
		graph.User{
			ID:                "oid-new",
			UserPrincipalName: "jane.roe@primefire.com",
			GivenName:         "Jane",
			Surname:           "Roe",
			DisplayName:       "Jane Roe",
			Mail:              "jane.roe@primefire.com",
			JobTitle:          "Engineer",
			CountryLetterCode: "US",
		},
		graph.User{
			ID:                "oid-existing",
			UserPrincipalName: "old@primefire.com.mx",
			Mail:              "old@primefire.com.mx",
			JobTitle:          "Senior Coordinator",
			Country:           "Mexico",
		},
		graph.User{
			ID:   "oid-outsider",
			Mail: "someone@gmail.com",
		},
	)

	svc := NewSyncService(employeeRepo, countrySvc, client, quietLogger())
	stats, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalMSUsers)
	assert.Equal(t, 2, stats.PrimefireUsers)
	assert.Equal(t, 2, stats.Processed)
	assert.Equal(t, 1, stats.Created)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 0, stats.Errors)
	assert.Equal(t, 2, stats.CountriesCreated)
	assert.False(t, stats.Timestamp.IsZero())

	created, err := employeeRepo.GetByAzureOID(context.Background(), "oid-new")
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", created.DisplayName)
	assert.Equal(t, "Engineer", created.Title)
	require.NotNil(t, created.Country)
	assert.Equal(t, "US", created.Country.Code)
	require.NotNil(t, created.LastSyncedAt)

	// The outsider never lands locally.
	_, err = employeeRepo.GetByAzureOID(context.Background(), "oid-outsider")
	assert.Error(t, err)

	// Existing employee: new title applied, empty directory department keeps
	// the local value.
	assert.Equal(t, "Senior Coordinator", existing.Title)
	assert.Equal(t, "Operations", existing.Department)
	require.NotNil(t, existing.Country)
	assert.Equal(t, "MX", existing.Country.Code)
	require.NotNil(t, existing.LastSyncedAt)
}

func TestSyncRunTwiceOnlyTouchesLastSyncedAt(t *testing.T) {
	employeeRepo := newFakeEmployeeRepo()
	countrySvc := NewCountryService(newFakeCountryRepo())
	client := newFakeGraphClient(graph.User{
		ID:                "oid-jane",
		UserPrincipalName: "jane.roe@primefire.com",
		GivenName:         "Jane",
		Surname:           "Roe",
		DisplayName:       "Jane Roe",
		Mail:              "jane.roe@primefire.com",
		JobTitle:          "Engineer",
		CountryLetterCode: "US",
	})

	svc := NewSyncService(employeeRepo, countrySvc, client, quietLogger())
	first, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.Created)
	require.Equal(t, 1, first.CountriesCreated)

	employee, err := employeeRepo.GetByAzureOID(context.Background(), "oid-jane")
	require.NoError(t, err)
	require.NotNil(t, employee.LastSyncedAt)
	firstSynced := *employee.LastSyncedAt

	again, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, again.Created)
	assert.Equal(t, 1, again.Updated, "an unchanged record still counts as updated")
	assert.Equal(t, 0, again.CountriesCreated)
	assert.Equal(t, 0, again.Errors)

	refreshed, err := employeeRepo.GetByAzureOID(context.Background(), "oid-jane")
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", refreshed.DisplayName)
	assert.Equal(t, "Engineer", refreshed.Title)
	require.NotNil(t, refreshed.LastSyncedAt)
	assert.False(t, refreshed.LastSyncedAt.Before(firstSynced))
}

func TestSyncRunIsolatesPerUserErrors(t *testing.T) {
	existing := &model.Employee{AzureOID: "oid-ok", Email: "ok@primefire.com"}
	employeeRepo := newFakeEmployeeRepo(existing)
	employeeRepo.createErr = assert.AnError

	client := newFakeGraphClient(
		graph.User{ID: "oid-broken", Mail: "new@primefire.com"},
		graph.User{ID: "oid-ok", Mail: "ok@primefire.com", JobTitle: "Analyst"},
	)

	svc := NewSyncService(employeeRepo, NewCountryService(newFakeCountryRepo()), client, quietLogger())
	stats, err := svc.Run(context.Background())
	require.NoError(t, err, "per-user failures must not fail the run")

	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, 0, stats.Created)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, "Analyst", existing.Title)
}

func TestSyncRunFailsWhenDirectoryUnavailable(t *testing.T) {
	client := newFakeGraphClient()
	client.listErr = assert.AnError

	svc := NewSyncService(newFakeEmployeeRepo(), NewCountryService(newFakeCountryRepo()), client, quietLogger())
	_, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, ErrDirectoryUnavailable)
}

func TestIsCompanyEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"jane@primefire.com", true},
		{"bob@primefire.com.mx", true},
		{"eve@mail.primefire.io", true},
		{"sam@PRIMEFIRE.COM", true},
		{"someone@gmail.com", false},
		{"primefire@gmail.com", false},
		{"no-at-sign", false},
		{"trailing@", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, isCompanyEmail(tc.email), "email %q", tc.email)
	}
}

func TestPullEmployee(t *testing.T) {
	employee := &model.Employee{AzureOID: "oid-1", Email: "jane@primefire.com", Title: "Engineer"}
	employeeRepo := newFakeEmployeeRepo(employee)
	client := newFakeGraphClient(graph.User{
		ID:       "oid-1",
		Mail:     "jane@primefire.com",
		JobTitle: "Staff Engineer",
	})

	svc := NewSyncService(employeeRepo, NewCountryService(newFakeCountryRepo()), client, quietLogger())
	res, err := svc.PullEmployee(context.Background(), employee.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "Staff Engineer", res.Title)
	require.NotNil(t, res.LastSyncedAt)
}

func TestPullEmployeeNotLinked(t *testing.T) {
	employee := &model.Employee{Email: "local@primefire.com"}
	employeeRepo := newFakeEmployeeRepo(employee)

	svc := NewSyncService(employeeRepo, NewCountryService(newFakeCountryRepo()), newFakeGraphClient(), quietLogger())
	_, err := svc.PullEmployee(context.Background(), employee.ID.String())
	assert.EqualError(t, err, "employee is not linked to a directory account")
}

func TestPushEmployee(t *testing.T) {
	employee := &model.Employee{
		AzureOID:    "oid-1",
		Email:       "jane@primefire.com",
		FirstName:   "Jane",
		DisplayName: "Jane Roe",
	}
	employeeRepo := newFakeEmployeeRepo(employee)
	client := newFakeGraphClient(graph.User{ID: "oid-1"})

	svc := NewSyncService(employeeRepo, NewCountryService(newFakeCountryRepo()), client, quietLogger())
	res, err := svc.PushEmployee(context.Background(), employee.ID.String())
	require.NoError(t, err)

	sent := client.updateCalls["oid-1"]
	require.NotNil(t, sent, "expected a directory update")
	assert.Equal(t, "Jane", sent["givenName"])
	assert.Equal(t, "Jane Roe", sent["displayName"])
	assert.NotContains(t, sent, "mail")
	require.NotNil(t, res.LastSyncedAt)
}
