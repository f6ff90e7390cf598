package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primefire/internal/model"
)

func TestPermissionListByRoleIDsEmptyInput(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPermissionRepository(db)

	rows, err := repo.ListByRoleIDs(context.Background(), nil)
	require.NoError(t, err)

	assert.Nil(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionListByRoleIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPermissionRepository(db)

	roleID := uuid.New()
	moduleID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "role_modules" WHERE role_id IN \(\$1\)`).
		WithArgs(roleID).
		WillReturnRows(sqlmock.NewRows([]string{"role_id", "module_id", "can_view", "can_edit"}).
			AddRow(roleID, moduleID, true, true))
	mock.ExpectQuery(`SELECT .* FROM "modules"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "module_key", "module_name"}).
			AddRow(moduleID, "employees", "Employees"))

	rows, err := repo.ListByRoleIDs(context.Background(), []uuid.UUID{roleID})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.True(t, rows[0].CanView)
	assert.True(t, rows[0].CanEdit)
	assert.Equal(t, "employees", rows[0].Module.ModuleKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionReplaceForRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPermissionRepository(db)

	roleID := uuid.New()
	rows := []model.RoleModule{
		{RoleID: roleID, ModuleID: uuid.New(), CanView: true, CanEdit: true},
		{RoleID: roleID, ModuleID: uuid.New(), CanView: true},
	}

	mock.ExpectExec(`DELETE FROM "role_modules" WHERE role_id = \$1`).
		WithArgs(roleID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO "role_modules"`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.ReplaceForRole(context.Background(), roleID, rows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionReplaceForRoleClearsWhenEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPermissionRepository(db)

	roleID := uuid.New()
	mock.ExpectExec(`DELETE FROM "role_modules" WHERE role_id = \$1`).
		WithArgs(roleID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.ReplaceForRole(context.Background(), roleID, nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
