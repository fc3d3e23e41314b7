package views

import (
	"html/template"

	"github.com/yigit/skillhub/internal/app/forms"
	"github.com/yigit/skillhub/internal/app/models"
	"github.com/yigit/skillhub/internal/app/notify"
)

// Base is shared by every page.
type Base struct {
	Title     string
	Nav       string
	Flashes   []notify.Flash
	CSRFField template.HTML
}

// HomeData is the home page.
type HomeData struct {
	Base
	Counts models.Counts
}

// ListView is the state of a list page as the template sees it.
type ListView struct {
	Loaded bool
	Failed bool
	Empty  bool
	Modal  bool
	// Alert is a blocking validation message shown inside the modal.
	Alert string
}

// StudentsData is the students list page.
type StudentsData struct {
	Base
	ListView
	Students []models.Student
	Form     forms.StudentForm
}

// CoursesData is the courses list page.
type CoursesData struct {
	Base
	ListView
	Courses []models.Course
	Form    forms.CourseForm
}

// StudentData is the student detail page.
type StudentData struct {
	Base
	Student     models.Student
	Form        forms.StudentForm
	EnrollModal bool
	Alert       string
	EnrollAlert string
}

// CourseData is the course detail page.
type CourseData struct {
	Base
	Course models.Course
	Form   forms.CourseForm
	Alert  string
}

// ErrorData is the error page, also used for detail pages that failed to load.
type ErrorData struct {
	Base
	Message  string
	RetryURL string
}

// NotFoundData is the not-found page.
type NotFoundData struct {
	Base
}
