package export

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteCSV(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteCSV(rec, "employees.csv",
		[]string{"Name", "Email"},
		[][]string{
			{"Jane Roe", "jane.roe@primefire.com"},
			{"with,comma", "second@primefire.com"},
		})
	require.NoError(t, err)

	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=employees.csv", rec.Header().Get("Content-Disposition"))

	body := rec.Body.String()
	assert.Contains(t, body, "Name,Email\n")
	assert.Contains(t, body, "jane.roe@primefire.com")
	assert.Contains(t, body, "\"with,comma\"")
}

func TestWriteExcel(t *testing.T) {
	rec := httptest.NewRecorder()

	err := WriteExcel(rec, "Employees",
		[]string{"Name", "Email"},
		[][]string{{"Jane Roe", "jane.roe@primefire.com"}})
	require.NoError(t, err)

	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=employees.xlsx", rec.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.NotContains(t, f.GetSheetList(), "Sheet1")

	got, err := f.GetCellValue("Employees", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Name", got)

	got, err = f.GetCellValue("Employees", "B2")
	require.NoError(t, err)
	assert.Equal(t, "jane.roe@primefire.com", got)
}
