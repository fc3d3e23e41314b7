package forms

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/skillhub/internal/app/models"
	"github.com/yigit/skillhub/internal/pkg/apperrors"
)

func TestStudentForm_Validate(t *testing.T) {
	tests := []struct {
		name      string
		form      StudentForm
		wantField string
		wantMsg   string
	}{
		{name: "valid", form: StudentForm{Name: "Ada", Email: "ada@x.com", Phone: "555"}},
		{name: "missing name", form: StudentForm{Name: "  ", Email: "ada@x.com", Phone: "555"}, wantField: "name", wantMsg: "Name is required"},
		{name: "bad email", form: StudentForm{Name: "Ada", Email: "ada", Phone: "555"}, wantField: "email", wantMsg: "Please enter a valid email address"},
		{name: "missing phone", form: StudentForm{Name: "Ada", Email: "ada@x.com"}, wantField: "phone", wantMsg: "Phone is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var gap *apperrors.ValidationGap
			require.True(t, errors.As(err, &gap))
			assert.Equal(t, tt.wantField, gap.Field)
			assert.Equal(t, tt.wantMsg, gap.Message)
		})
	}
}

func TestSubmit_ResetsAfterCall(t *testing.T) {
	form := &StudentForm{Name: "Ada", Email: "ada@x.com", Phone: "555"}

	var got models.StudentPayload
	err := Submit[models.StudentPayload](form, func(p models.StudentPayload) error {
		got = p
		return errors.New("backend down")
	})
	assert.EqualError(t, err, "backend down")
	assert.Equal(t, models.StudentPayload{Name: "Ada", Email: "ada@x.com", Phone: "555"}, got)
	assert.Equal(t, StudentForm{}, *form)
}

func TestSubmit_ValidationGapSkipsCall(t *testing.T) {
	form := &StudentForm{Name: "Ada"}
	called := false

	err := Submit[models.StudentPayload](form, func(models.StudentPayload) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationGap)
	assert.False(t, called)
	assert.Equal(t, "Ada", form.Name)
}

func TestCourseForm_Payload(t *testing.T) {
	form := &CourseForm{Name: "SE", Description: "desc", Schedule: "2025-12-01T04:30", InstructorID: "1"}
	require.NoError(t, form.Validate())

	p, err := form.Payload()
	require.NoError(t, err)
	assert.Equal(t, "2025-12-01T04:30:00Z", p.Schedule)
	require.NotNil(t, p.InstructorID)
	assert.Equal(t, int64(1), *p.InstructorID)

	form.InstructorID = ""
	p, err = form.Payload()
	require.NoError(t, err)
	assert.Nil(t, p.InstructorID)
}

func TestCourseForm_Validate(t *testing.T) {
	tests := []struct {
		name      string
		form      CourseForm
		wantField string
	}{
		{name: "valid without instructor", form: CourseForm{Name: "SE", Description: "d", Schedule: "2025-12-01T04:30"}},
		{name: "missing description", form: CourseForm{Name: "SE", Schedule: "2025-12-01T04:30"}, wantField: "description"},
		{name: "bad schedule", form: CourseForm{Name: "SE", Description: "d", Schedule: "tomorrow"}, wantField: "schedule"},
		{name: "bad instructor", form: CourseForm{Name: "SE", Description: "d", Schedule: "2025-12-01T04:30", InstructorID: "0"}, wantField: "instructor_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var gap *apperrors.ValidationGap
			require.True(t, errors.As(err, &gap))
			assert.Equal(t, tt.wantField, gap.Field)
		})
	}
}

func TestCourseForm_ApplyToKeepsInstructorDetails(t *testing.T) {
	course := models.Course{
		ID:         2,
		Instructor: &models.Instructor{ID: 1, Name: "Jack Krugger"},
		Schedule:   models.NewTimestamp(time.Date(2025, 12, 1, 4, 30, 0, 0, time.UTC)),
	}
	form := CourseFormFrom(course)
	assert.Equal(t, "1", form.InstructorID)
	assert.Equal(t, "2025-12-01T04:30", form.Schedule)

	form.Name = "Software Engineering II"
	require.NoError(t, form.ApplyTo(&course))
	assert.Equal(t, "Jack Krugger", course.Instructor.Name)
	assert.Equal(t, "Software Engineering II", course.Name)
}

func TestParseCourseIDs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []int64
	}{
		{name: "simple", input: "2,3", want: []int64{2, 3}},
		{name: "spaces and empties", input: " 2 , ,3,", want: []int64{2, 3}},
		{name: "invalid tokens dropped", input: "2,abc,-1,0,4.5,7", want: []int64{2, 7}},
		{name: "duplicates dropped", input: "3,2,3,2", want: []int64{3, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCourseIDs(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCourseIDs(" , abc")
	var gap *apperrors.ValidationGap
	require.True(t, errors.As(err, &gap))
	assert.Equal(t, "Please enter at least one course ID", gap.Message)
}

func TestEnrollmentForm_Submit(t *testing.T) {
	form := &EnrollmentForm{CourseIDs: "2, 3"}
	var got []int64
	require.NoError(t, Submit[[]int64](form, func(ids []int64) error {
		got = ids
		return nil
	}))
	assert.Equal(t, []int64{2, 3}, got)
	assert.Empty(t, form.CourseIDs)
}

func TestMustRegister(t *testing.T) {
	v := validator.New()
	ok := func(validator.FieldLevel) bool { return true }

	assert.NotPanics(t, func() { mustRegister(v, "always", ok) })
	assert.NoError(t, v.Var("x", "always"))
	assert.Panics(t, func() { mustRegister(v, "", ok) })
}
