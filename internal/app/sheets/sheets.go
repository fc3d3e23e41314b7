// Package sheets exports list pages to XLSX and imports students from XLSX.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/yigit/skillhub/internal/app/forms"
	"github.com/yigit/skillhub/internal/app/models"
	"github.com/yigit/skillhub/internal/pkg/helpers"
)

// ContentType is the MIME type of the generated workbooks.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const sheetName = "Sheet1"

var (
	studentHeader = []interface{}{"ID", "Name", "Email", "Phone"}
	courseHeader  = []interface{}{"ID", "Name", "Description", "Schedule", "Instructor"}
)

// ErrNoSheet is returned for workbooks without any sheet.
var ErrNoSheet = errors.New("excel file does not contain any sheets")

func write(w io.Writer, header []interface{}, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("error writing row %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("error freezing header: %w", err)
	}
	_, err := f.WriteTo(w)
	return err
}

// ExportStudents writes one row per student, in the given order.
func ExportStudents(w io.Writer, students []models.Student) error {
	rows := make([][]interface{}, 0, len(students))
	for _, s := range students {
		rows = append(rows, []interface{}{s.ID, s.Name, s.Email, s.Phone})
	}
	return write(w, studentHeader, rows)
}

// ExportCourses writes one row per course, in the given order.
func ExportCourses(w io.Writer, courses []models.Course) error {
	rows := make([][]interface{}, 0, len(courses))
	for _, c := range courses {
		instructor := ""
		if c.Instructor != nil {
			instructor = c.Instructor.Name
			if instructor == "" {
				instructor = fmt.Sprintf("#%d", c.Instructor.ID)
			}
		}
		rows = append(rows, []interface{}{c.ID, c.Name, c.Description, helpers.FormatDateTimeLocal(c.Schedule.Time), instructor})
	}
	return write(w, courseHeader, rows)
}

// ReadStudents reads Name, Email and Phone from the first sheet. The header
// row locates the columns, so exported workbooks with an ID column import as
// well; without recognised headers the first three columns are used. Rows
// failing the student form rules are skipped and counted.
func ReadStudents(r io.Reader) ([]models.StudentPayload, int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	name := f.GetSheetName(0)
	if name == "" {
		return nil, 0, ErrNoSheet
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get rows from sheet %s: %w", name, err)
	}

	var out []models.StudentPayload
	skipped := 0
	cols := studentColumns(rows)
	for i, row := range rows {
		if i == 0 {
			continue
		}
		cell := func(n int) string {
			if len(row) > n {
				return strings.TrimSpace(row[n])
			}
			return ""
		}
		form := forms.StudentForm{Name: cell(cols[0]), Email: cell(cols[1]), Phone: cell(cols[2])}
		if err := form.Validate(); err != nil {
			skipped++
			continue
		}
		p, _ := form.Payload()
		out = append(out, p)
	}
	return out, skipped, nil
}

// studentColumns returns the name, email and phone column indexes.
func studentColumns(rows [][]string) [3]int {
	cols := [3]int{0, 1, 2}
	if len(rows) == 0 {
		return cols
	}
	found := [3]bool{}
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			cols[0], found[0] = i, true
		case "email":
			cols[1], found[1] = i, true
		case "phone":
			cols[2], found[2] = i, true
		}
	}
	if found != [3]bool{true, true, true} {
		return [3]int{0, 1, 2}
	}
	return cols
}

// ImportResult summarises an import.
type ImportResult struct {
	Imported int
	Skipped  int
	Failed   int
}

// ImportStudents creates every readable row through create, continuing past
// rows the backend rejects.
func ImportStudents(ctx context.Context, r io.Reader, create func(context.Context, models.StudentPayload) error, logger zerolog.Logger) (ImportResult, error) {
	payloads, skipped, err := ReadStudents(r)
	if err != nil {
		return ImportResult{}, err
	}

	res := ImportResult{Skipped: skipped}
	for _, p := range payloads {
		if err := create(ctx, p); err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			logger.Warn().Err(err).Str("email", p.Email).Msg("Skipping student during import")
			res.Failed++
			continue
		}
		res.Imported++
	}
	return res, nil
}
