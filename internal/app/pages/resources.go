package pages

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yigit/skillhub/internal/app/models"
	"github.com/yigit/skillhub/internal/app/services"
)

// Default labels, matching the texts the screens show.
var (
	StudentListLabels = ListLabels{
		Created:      "Student created",
		CreateFailed: "Could not create student",
	}
	CourseListLabels = ListLabels{
		Created:      "Course created",
		CreateFailed: "Could not create course",
	}
	StudentDetailLabels = DetailLabels{
		Saved:          "Student profile updated",
		SaveFailed:     "Could not update student",
		Deleted:        "Student deleted",
		DeleteFailed:   "Could not delete student",
		RefreshFailed:  "Could not refresh student",
		CollectionPath: "/students",
	}
	CourseDetailLabels = DetailLabels{
		Saved:          "Course updated",
		SaveFailed:     "Could not update course",
		Deleted:        "Course deleted",
		DeleteFailed:   "Could not delete course",
		RefreshFailed:  "Could not refresh course",
		CollectionPath: "/courses",
	}
)

// StudentListPage is the students list page.
type StudentListPage = ListPage[models.Student, models.StudentPayload]

// CourseListPage is the courses list page.
type CourseListPage = ListPage[models.Course, models.CoursePayload]

// NewStudentListPage mounts a students list page.
func NewStudentListPage(svc services.StudentService, notifier Notifier, logger zerolog.Logger) *StudentListPage {
	return NewListPage[models.Student, models.StudentPayload](studentSource{svc}, StudentListLabels, notifier, logger)
}

// NewCourseListPage mounts a courses list page.
func NewCourseListPage(svc services.CourseService, notifier Notifier, logger zerolog.Logger) *CourseListPage {
	return NewListPage[models.Course, models.CoursePayload](courseSource{svc}, CourseListLabels, notifier, logger)
}

// NewStudentDetailPage mounts a student detail page.
func NewStudentDetailPage(svc services.StudentService, enrollments EnrollmentOps, notifier Notifier, navigator Navigator, logger zerolog.Logger) *StudentDetailPage {
	return &StudentDetailPage{
		DetailPage: NewDetailPage[models.Student](studentSource{svc}, enrollments, StudentDetailLabels, notifier, navigator, logger),
	}
}

// NewCourseDetailPage mounts a course detail page.
func NewCourseDetailPage(svc services.CourseService, enrollments EnrollmentOps, notifier Notifier, navigator Navigator, logger zerolog.Logger) *CourseDetailPage {
	return NewDetailPage[models.Course](courseSource{svc}, enrollments, CourseDetailLabels, notifier, navigator, logger)
}

type studentSource struct {
	svc services.StudentService
}

func (s studentSource) List(ctx context.Context) ([]models.Student, error) {
	return s.svc.ListStudents(ctx)
}

func (s studentSource) Create(ctx context.Context, payload models.StudentPayload) error {
	_, err := s.svc.CreateStudent(ctx, payload)
	return err
}

func (s studentSource) Get(ctx context.Context, id int64) (*models.Student, error) {
	return s.svc.GetStudent(ctx, id)
}

func (s studentSource) Update(ctx context.Context, draft models.Student) (*models.Student, error) {
	return s.svc.UpdateStudent(ctx, draft)
}

func (s studentSource) Delete(ctx context.Context, id int64) error {
	return s.svc.DeleteStudent(ctx, id)
}

type courseSource struct {
	svc services.CourseService
}

func (s courseSource) List(ctx context.Context) ([]models.Course, error) {
	return s.svc.ListCourses(ctx)
}

func (s courseSource) Create(ctx context.Context, payload models.CoursePayload) error {
	_, err := s.svc.CreateCourse(ctx, payload)
	return err
}

func (s courseSource) Get(ctx context.Context, id int64) (*models.Course, error) {
	return s.svc.GetCourse(ctx, id)
}

func (s courseSource) Update(ctx context.Context, draft models.Course) (*models.Course, error) {
	return s.svc.UpdateCourse(ctx, draft)
}

func (s courseSource) Delete(ctx context.Context, id int64) error {
	return s.svc.DeleteCourse(ctx, id)
}
