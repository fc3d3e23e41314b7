package views

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/skillhub/internal/app/forms"
	"github.com/yigit/skillhub/internal/app/models"
	"github.com/yigit/skillhub/internal/app/notify"
)

func renderPage(t *testing.T, r *Renderer, name string, data interface{}) string {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, r.Instance(name, data).Render(w))
	return w.Body.String()
}

func TestNewRenderer_ParsesEveryPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	for _, name := range []string{PageHome, PageStudents, PageStudent, PageCourses, PageCourse, PageNotFound, PageError} {
		assert.True(t, r.Has(name), name)
	}
	assert.False(t, r.Has("layout"))
}

func TestStudentsPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	t.Run("rows without placeholder", func(t *testing.T) {
		body := renderPage(t, r, PageStudents, StudentsData{
			Base:     Base{Title: "Students", Nav: "students"},
			ListView: ListView{Loaded: true},
			Students: []models.Student{{ID: 1, Name: "Mark Porter"}, {ID: 5, Name: "Ada"}},
		})
		assert.Equal(t, 2, strings.Count(body, "<tr data-id="))
		assert.NotContains(t, body, "No students yet")
		assert.NotContains(t, body, "student-modal")
	})

	t.Run("placeholder only", func(t *testing.T) {
		body := renderPage(t, r, PageStudents, StudentsData{
			Base:     Base{Title: "Students"},
			ListView: ListView{Loaded: true, Empty: true},
		})
		assert.Contains(t, body, "No students yet. Add one to get started!")
		assert.NotContains(t, body, "<tr data-id=")
	})

	t.Run("modal with alert and flashes", func(t *testing.T) {
		body := renderPage(t, r, PageStudents, StudentsData{
			Base: Base{
				Title:   "Students",
				Flashes: []notify.Flash{{Kind: notify.KindError, Message: "email already taken"}},
			},
			ListView: ListView{Loaded: true, Empty: true, Modal: true, Alert: "Name is required"},
			Form:     forms.StudentForm{Email: "ada@x.com"},
		})
		assert.Contains(t, body, `id="student-modal"`)
		assert.Contains(t, body, "Name is required")
		assert.Contains(t, body, `class="toast error"`)
		assert.Contains(t, body, "email already taken")
		assert.Contains(t, body, `value="ada@x.com"`)
	})
}

func TestCoursePage_RendersMarkdownSafely(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	body := renderPage(t, r, PageCourse, CourseData{
		Base: Base{Title: "Course"},
		Course: models.Course{
			ID:          2,
			Name:        "Software Engineering",
			Description: "Learn **fast** <script>alert(1)</script>",
			Schedule:    models.NewTimestamp(time.Date(2025, 12, 1, 4, 30, 0, 0, time.UTC)),
			Instructor:  &models.Instructor{ID: 1, Name: "Jack Krugger", Email: "jack@x.com"},
		},
	})
	assert.Contains(t, body, "<strong>fast</strong>")
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "Dec 1, 2025 04:30")
	assert.Contains(t, body, "Jack Krugger")
}

func TestHomePage_UnknownCounts(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	two := 2
	body := renderPage(t, r, PageHome, HomeData{Base: Base{Title: "Home"}, Counts: models.Counts{Students: &two}})
	assert.Contains(t, body, `<span id="students-count">2</span>`)
	assert.Contains(t, body, `<span id="courses-count">—</span>`)
}

func TestInstance_UnknownPageFallsBackToError(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	body := renderPage(t, r, "missing", nil)
	assert.Contains(t, body, "Something went wrong")
}
