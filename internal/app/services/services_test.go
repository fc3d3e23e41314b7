package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/skillhub/internal/app/models"
	"github.com/yigit/skillhub/internal/pkg/apiclient"
	"github.com/yigit/skillhub/internal/pkg/apperrors"
	"github.com/yigit/skillhub/internal/pkg/testbackend"
)

func setup(t *testing.T) (*Services, *testbackend.Backend) {
	t.Helper()
	backend := testbackend.New(t).Seed()
	return NewServices(apiclient.New(backend.URL()), zerolog.Nop()), backend
}

func TestStudentService_ListAndGet(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	students, err := svc.Students.ListStudents(ctx)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "Mark Porter", students[0].Name)
	assert.Empty(t, students[0].Enrollments)

	student, err := svc.Students.GetStudent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, student.Enrollments, 1)
	assert.Equal(t, int64(2), student.Enrollments[0].ID)
	assert.Equal(t, "Software Engineering", student.Enrollments[0].Course.Name)
}

func TestStudentService_GetNotFound(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.Students.GetStudent(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, "student 999 not found", apperrors.Message(err, ""))
}

func TestStudentService_InvalidID(t *testing.T) {
	svc, backend := setup(t)

	_, err := svc.Students.GetStudent(context.Background(), 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidID)
	assert.ErrorIs(t, svc.Students.DeleteStudent(context.Background(), -1), apperrors.ErrInvalidID)
	assert.Empty(t, backend.Calls())
}

func TestStudentService_Create(t *testing.T) {
	svc, backend := setup(t)

	created, err := svc.Students.CreateStudent(context.Background(), models.StudentPayload{Name: "Ada", Email: "ada@x.com", Phone: "555"})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Ada", created.Name)

	calls := backend.Calls()
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"name":"Ada","email":"ada@x.com","phone":"555"}`, calls[0].Body)
}

func TestStudentService_CreateWithTextResponse(t *testing.T) {
	svc, backend := setup(t)
	backend.TextCreate(true)

	created, err := svc.Students.CreateStudent(context.Background(), models.StudentPayload{Name: "Ada"})
	require.NoError(t, err)
	assert.Nil(t, created)
}

func TestStudentService_UpdateMergesPartialResponse(t *testing.T) {
	svc, backend := setup(t)
	backend.PartialPUT(true)
	ctx := context.Background()

	draft, err := svc.Students.GetStudent(ctx, 1)
	require.NoError(t, err)
	draft.Name = "Mark P."
	draft.Phone = "000"

	merged, err := svc.Students.UpdateStudent(ctx, *draft)
	require.NoError(t, err)
	assert.Equal(t, "Mark P.", merged.Name)
	assert.Equal(t, "000", merged.Phone)
	assert.Equal(t, "markporter@student.com", merged.Email)
	assert.Equal(t, draft.Enrollments, merged.Enrollments)

	stored, _ := backend.Student(1)
	assert.Equal(t, "000", stored.Phone)
}

func TestStudentService_UpdateDoesNotWriteThroughDraft(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	draft, err := svc.Students.GetStudent(ctx, 1)
	require.NoError(t, err)
	before := draft.Enrollments[0]

	_, err = svc.Students.UpdateStudent(ctx, *draft)
	require.NoError(t, err)
	assert.Equal(t, before, draft.Enrollments[0])
}

func TestStudentService_Delete(t *testing.T) {
	svc, backend := setup(t)

	require.NoError(t, svc.Students.DeleteStudent(context.Background(), 1))
	_, ok := backend.Student(1)
	assert.False(t, ok)

	err := svc.Students.DeleteStudent(context.Background(), 1)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCourseService_GetAndUpdate(t *testing.T) {
	svc, backend := setup(t)
	ctx := context.Background()

	course, err := svc.Courses.GetCourse(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, course.Instructor)
	assert.Equal(t, "Jack Krugger", course.Instructor.Name)
	require.Len(t, course.Enrollments, 1)
	assert.Equal(t, "Mark Porter", course.Enrollments[0].Student.Name)

	course.Schedule = models.NewTimestamp(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))
	backend.PartialPUT(true)
	merged, err := svc.Courses.UpdateCourse(ctx, *course)
	require.NoError(t, err)
	assert.Equal(t, "Jack Krugger", merged.Instructor.Name)
	assert.Equal(t, "2026-01-05T09:00", merged.ScheduleInput())

	calls := backend.Calls()
	last := calls[len(calls)-1]
	assert.Equal(t, http.MethodPut, last.Method)
	assert.JSONEq(t, `{"name":"Software Engineering","description":"Learn about **Software Engineering**...","instructor_id":1,"schedule":"2026-01-05T09:00:00Z"}`, last.Body)
}

func TestCourseService_UpdateHonoursNullInstructor(t *testing.T) {
	svc, backend := setup(t)
	ctx := context.Background()

	course, err := svc.Courses.GetCourse(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, course.Instructor)

	backend.Respond(http.MethodPut, "/api/courses/2", http.StatusOK, `{"id":2,"name":"Software Engineering","instructor":null}`)
	merged, err := svc.Courses.UpdateCourse(ctx, *course)
	require.NoError(t, err)
	assert.Nil(t, merged.Instructor, "an explicit null unlinks the instructor")
	assert.Equal(t, course.Enrollments, merged.Enrollments, "absent fields keep the draft's value")
	assert.Equal(t, course.Description, merged.Description)
}

func TestCourseService_CreateWithoutInstructor(t *testing.T) {
	svc, backend := setup(t)

	created, err := svc.Courses.CreateCourse(context.Background(), models.CoursePayload{
		Name:        "Databases",
		Description: "SQL",
		Schedule:    "2026-02-01T10:00:00Z",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Nil(t, created.Instructor)

	calls := backend.Calls()
	assert.Contains(t, calls[0].Body, `"instructor_id":null`)
}

func TestEnrollmentService_Enroll(t *testing.T) {
	svc, backend := setup(t)
	ctx := context.Background()
	third := backend.AddCourse(models.Course{Name: "Networks"})

	require.NoError(t, svc.Enrollments.Enroll(ctx, 1, []int64{third}))
	assert.Len(t, backend.EnrollmentIDs(), 2)

	err := svc.Enrollments.Enroll(ctx, 1, []int64{2, 3})
	require.Error(t, err)
	var httpErr *apperrors.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "course 3 not found", httpErr.Message)

	err = svc.Enrollments.Enroll(ctx, 1, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationGap)
}

func TestEnrollmentService_DeleteEnrollment(t *testing.T) {
	svc, backend := setup(t)

	require.NoError(t, svc.Enrollments.DeleteEnrollment(context.Background(), 2))
	assert.Empty(t, backend.EnrollmentIDs())
	assert.Equal(t, 1, backend.Count(http.MethodDelete, "/api/enrollments/2"))
}

func TestDashboardService_Counts(t *testing.T) {
	tests := []struct {
		name       string
		countShape bool
	}{
		{name: "array responses"},
		{name: "count field responses", countShape: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, backend := setup(t)
			backend.CountShape(tt.countShape)
			backend.AddStudent(models.Student{Name: "Ada"})

			counts, err := svc.Dashboard.Counts(context.Background())
			require.NoError(t, err)
			require.NotNil(t, counts.Students)
			require.NotNil(t, counts.Courses)
			assert.Equal(t, 2, *counts.Students)
			assert.Equal(t, 1, *counts.Courses)
		})
	}
}

func TestDashboardService_CountsFailure(t *testing.T) {
	svc, backend := setup(t)
	backend.Fail(http.MethodGet, "/api/courses", http.StatusInternalServerError, "")

	_, err := svc.Dashboard.Counts(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperrors.Status(err))
}

func TestCountOf(t *testing.T) {
	assert.Nil(t, countOf("ok"))
	assert.Nil(t, countOf(map[string]interface{}{"total": 3.0}))
	assert.Equal(t, 0, *countOf([]interface{}{}))
	assert.Equal(t, 7, *countOf(map[string]interface{}{"count": 7.0}))
}
