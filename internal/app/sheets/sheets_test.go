package sheets

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yigit/skillhub/internal/app/models"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestExportStudents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportStudents(&buf, []models.Student{
		{ID: 3, Name: "Ada", Email: "ada@x.com", Phone: "555"},
		{ID: 1, Name: "Mark Porter", Email: "markporter@student.com", Phone: "62135792468"},
	}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Name", "Email", "Phone"}, rows[0])
	assert.Equal(t, []string{"3", "Ada", "ada@x.com", "555"}, rows[1])
	assert.Equal(t, "Mark Porter", rows[2][1])
}

func TestExportCourses(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCourses(&buf, []models.Course{
		{ID: 2, Name: "SE", Description: "d", Instructor: &models.Instructor{ID: 1, Name: "Jack Krugger"}},
		{ID: 4, Name: "DB", Description: "d"},
	}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "Jack Krugger", rows[1][4])
	assert.Equal(t, "DB", rows[2][1])
}

func TestReadStudents(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"Name", "Email", "Phone"},
		{"Ada", "ada@x.com", "555"},
		{"No Phone", "np@x.com"},
		{" Grace ", "grace@x.com", 5551234},
		{"Bad Email", "not-an-email", "558"},
		{strings.Repeat("n", 256), "long@x.com", "559"},
	})

	got, skipped, err := ReadStudents(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, skipped, "rows failing the student form rules are skipped")
	assert.Equal(t, []models.StudentPayload{
		{Name: "Ada", Email: "ada@x.com", Phone: "555"},
		{Name: "Grace", Email: "grace@x.com", Phone: "5551234"},
	}, got)
}

func TestReadStudents_ExportedWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportStudents(&buf, []models.Student{{ID: 7, Name: "Ada", Email: "ada@x.com", Phone: "555"}}))

	got, skipped, err := ReadStudents(&buf)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Equal(t, []models.StudentPayload{{Name: "Ada", Email: "ada@x.com", Phone: "555"}}, got)
}

func TestReadStudents_NotAWorkbook(t *testing.T) {
	_, _, err := ReadStudents(bytes.NewBufferString("name,email\n"))
	assert.Error(t, err)
}

func TestImportStudents(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"Name", "Email", "Phone"},
		{"Ada", "ada@x.com", "555"},
		{"Taken", "taken@x.com", "556"},
		{"", "blank@x.com", "557"},
	})

	var created []string
	res, err := ImportStudents(context.Background(), buf, func(_ context.Context, p models.StudentPayload) error {
		if p.Email == "taken@x.com" {
			return errors.New("email already taken")
		}
		created = append(created, p.Name)
		return nil
	}, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, ImportResult{Imported: 1, Skipped: 1, Failed: 1}, res)
	assert.Equal(t, []string{"Ada"}, created)
}
