package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"primefire/internal/model"
	"primefire/internal/repository"
)

type fakeHardwareRepo struct {
	items map[uuid.UUID]*model.Hardware
}

func newFakeHardwareRepo(items ...*model.Hardware) *fakeHardwareRepo {
	f := &fakeHardwareRepo{items: make(map[uuid.UUID]*model.Hardware)}
	for _, h := range items {
		if h.ID == uuid.Nil {
			h.ID = uuid.New()
		}
		f.items[h.ID] = h
	}
	return f
}

func (f *fakeHardwareRepo) Create(_ context.Context, hardware *model.Hardware) error {
	if hardware.ID == uuid.Nil {
		hardware.ID = uuid.New()
	}
	f.items[hardware.ID] = hardware
	return nil
}

func (f *fakeHardwareRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Hardware, error) {
	if h, ok := f.items[id]; ok {
		return h, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeHardwareRepo) GetBySerialNumber(_ context.Context, serial string) (*model.Hardware, error) {
	for _, h := range f.items {
		if h.SerialNumber == serial {
			return h, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeHardwareRepo) List(_ context.Context, filter repository.HardwareFilter, _, _ int) ([]model.Hardware, int64, error) {
	var out []model.Hardware
	for _, h := range f.items {
		if filter.Status != "" && h.Status != filter.Status {
			continue
		}
		if filter.DeviceType != "" && h.DeviceType != filter.DeviceType {
			continue
		}
		if filter.EmployeeID != nil && (h.EmployeeID == nil || *h.EmployeeID != *filter.EmployeeID) {
			continue
		}
		out = append(out, *h)
	}
	return out, int64(len(out)), nil
}

func (f *fakeHardwareRepo) ListAll(_ context.Context) ([]model.Hardware, error) {
	out := make([]model.Hardware, 0, len(f.items))
	for _, h := range f.items {
		out = append(out, *h)
	}
	return out, nil
}

func (f *fakeHardwareRepo) Update(_ context.Context, hardware *model.Hardware) error {
	f.items[hardware.ID] = hardware
	return nil
}

func (f *fakeHardwareRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func TestCreateHardwareDefaultsStatus(t *testing.T) {
	repo := newFakeHardwareRepo()
	svc := NewHardwareService(repo, newFakeEmployeeRepo())

	res, err := svc.CreateHardware(context.Background(), CreateHardwareRequest{
		DeviceName:   "MBP-2023-014",
		DeviceType:   "Laptop",
		SerialNumber: "C02XL0GTJGH5",
	})
	require.NoError(t, err)
	assert.Equal(t, "Active", res.Status)
}

func TestCreateHardwareValidation(t *testing.T) {
	existing := &model.Hardware{
		DeviceName:   "DT-001",
		DeviceType:   "Desktop",
		SerialNumber: "SN-IN-USE",
		Status:       "Active",
	}
	repo := newFakeHardwareRepo(existing)
	svc := NewHardwareService(repo, newFakeEmployeeRepo())

	cases := []struct {
		name    string
		req     CreateHardwareRequest
		wantErr string
	}{
		{
			name:    "unknown device type",
			req:     CreateHardwareRequest{DeviceName: "X", DeviceType: "Tablet", SerialNumber: "SN-1"},
			wantErr: "device_type must be one of: Laptop, Desktop, Workstation, Server",
		},
		{
			name: "unknown storage type",
			req: CreateHardwareRequest{
				DeviceName: "X", DeviceType: "Laptop", SerialNumber: "SN-1", StorageType: "Floppy",
			},
			wantErr: "storage_type must be one of: HDD, SSD, NVMe, Hybrid",
		},
		{
			name: "unknown status",
			req: CreateHardwareRequest{
				DeviceName: "X", DeviceType: "Laptop", SerialNumber: "SN-1", Status: "Broken",
			},
			wantErr: "status must be one of: Active, In Repair, Retired, Spare",
		},
		{
			name:    "duplicate serial",
			req:     CreateHardwareRequest{DeviceName: "X", DeviceType: "Laptop", SerialNumber: "SN-IN-USE"},
			wantErr: "serial number already registered",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateHardware(context.Background(), tc.req)
			require.Error(t, err)
			assert.EqualError(t, err, tc.wantErr)
		})
	}
}

func TestCreateHardwareAssignsEmployee(t *testing.T) {
	owner := &model.Employee{ID: uuid.New(), DisplayName: "Ana Reyes", Email: "ana@primefire.com"}
	employees := newFakeEmployeeRepo(owner)
	svc := NewHardwareService(newFakeHardwareRepo(), employees)

	ownerID := owner.ID.String()
	res, err := svc.CreateHardware(context.Background(), CreateHardwareRequest{
		DeviceName:   "MBP-2023-015",
		DeviceType:   "Laptop",
		SerialNumber: "C02XL0GTJGH6",
		EmployeeID:   &ownerID,
	})
	require.NoError(t, err)
	require.NotNil(t, res.EmployeeID)
	assert.Equal(t, owner.ID, *res.EmployeeID)
	assert.Equal(t, "Ana Reyes", res.EmployeeName)

	bogus := "not-a-uuid"
	_, err = svc.CreateHardware(context.Background(), CreateHardwareRequest{
		DeviceName: "X", DeviceType: "Laptop", SerialNumber: "SN-2", EmployeeID: &bogus,
	})
	require.Error(t, err)
	assert.EqualError(t, err, "invalid employee ID")

	missing := uuid.NewString()
	_, err = svc.CreateHardware(context.Background(), CreateHardwareRequest{
		DeviceName: "X", DeviceType: "Laptop", SerialNumber: "SN-3", EmployeeID: &missing,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetHardwareListValidatesFilter(t *testing.T) {
	repo := newFakeHardwareRepo(
		&model.Hardware{DeviceName: "A", DeviceType: "Laptop", SerialNumber: "SN-A", Status: "Active"},
		&model.Hardware{DeviceName: "B", DeviceType: "Laptop", SerialNumber: "SN-B", Status: "In Repair"},
	)
	svc := NewHardwareService(repo, newFakeEmployeeRepo())

	items, total, err := svc.GetHardwareList(context.Background(), HardwareListFilter{Status: "In Repair"}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].DeviceName)

	_, _, err = svc.GetHardwareList(context.Background(), HardwareListFilter{Status: "Lost"}, 1, 20)
	require.Error(t, err)
	assert.EqualError(t, err, "status must be one of: Active, In Repair, Retired, Spare")

	_, _, err = svc.GetHardwareList(context.Background(), HardwareListFilter{EmployeeID: "nope"}, 1, 20)
	require.Error(t, err)
	assert.EqualError(t, err, "invalid employee ID")
}

func TestUpdateHardwareUnassignsWithEmptyEmployeeID(t *testing.T) {
	ownerID := uuid.New()
	hw := &model.Hardware{
		ID:           uuid.New(),
		DeviceName:   "MBP-2023-014",
		DeviceType:   "Laptop",
		SerialNumber: "C02XL0GTJGH5",
		Status:       "Active",
		EmployeeID:   &ownerID,
		Employee:     &model.Employee{ID: ownerID, DisplayName: "Ana Reyes"},
	}
	repo := newFakeHardwareRepo(hw)
	svc := NewHardwareService(repo, newFakeEmployeeRepo())

	none := ""
	res, err := svc.UpdateHardware(context.Background(), hw.ID.String(), UpdateHardwareRequest{EmployeeID: &none})
	require.NoError(t, err)

	assert.Nil(t, res.EmployeeID)
	assert.Empty(t, res.EmployeeName)
	assert.Nil(t, repo.items[hw.ID].EmployeeID)
}

func TestUpdateHardwareSerialRules(t *testing.T) {
	first := &model.Hardware{
		ID: uuid.New(), DeviceName: "A", DeviceType: "Laptop", SerialNumber: "SN-A", Status: "Active",
	}
	second := &model.Hardware{
		ID: uuid.New(), DeviceName: "B", DeviceType: "Laptop", SerialNumber: "SN-B", Status: "Active",
	}
	repo := newFakeHardwareRepo(first, second)
	svc := NewHardwareService(repo, newFakeEmployeeRepo())

	taken := "SN-A"
	_, err := svc.UpdateHardware(context.Background(), second.ID.String(), UpdateHardwareRequest{SerialNumber: &taken})
	require.Error(t, err)
	assert.EqualError(t, err, "serial number already registered")

	// Resubmitting the current serial is a no-op, not a conflict.
	own := "SN-B"
	_, err = svc.UpdateHardware(context.Background(), second.ID.String(), UpdateHardwareRequest{SerialNumber: &own})
	assert.NoError(t, err)

	empty := ""
	_, err = svc.UpdateHardware(context.Background(), second.ID.String(), UpdateHardwareRequest{SerialNumber: &empty})
	require.Error(t, err)
	assert.EqualError(t, err, "serial_number cannot be empty")
}

func TestDeleteHardware(t *testing.T) {
	hw := &model.Hardware{
		ID: uuid.New(), DeviceName: "Old", DeviceType: "Desktop", SerialNumber: "SN-OLD", Status: "Retired",
	}
	repo := newFakeHardwareRepo(hw)
	svc := NewHardwareService(repo, newFakeEmployeeRepo())

	require.NoError(t, svc.DeleteHardware(context.Background(), hw.ID.String()))
	_, err := repo.GetByID(context.Background(), hw.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = svc.DeleteHardware(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestHardwareExportRows(t *testing.T) {
	purchased := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	warranty := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	hw := &model.Hardware{
		DeviceName:      "MBP-2023-014",
		DeviceType:      "Laptop",
		SerialNumber:    "C02XL0GTJGH5",
		Processor:       "M2 Pro",
		RAMGB:           32,
		StorageType:     "SSD",
		StorageSizeGB:   1024,
		OperatingSystem: "macOS 14",
		PurchaseDate:    &purchased,
		WarrantyEnd:     &warranty,
		Status:          "Active",
		Employee:        &model.Employee{DisplayName: "Ana Reyes"},
		Location:        "Madrid office",
	}
	svc := NewHardwareService(newFakeHardwareRepo(hw), newFakeEmployeeRepo())

	headers, rows, err := svc.ExportRows(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Device Name", headers[0])
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(headers))

	row := rows[0]
	assert.Equal(t, "MBP-2023-014", row[0])
	assert.Equal(t, "32", row[4])
	assert.Equal(t, "2023-03-15", row[9])
	assert.Equal(t, "2026-03-15", row[10])
	assert.Equal(t, "Ana Reyes", row[12])
}
