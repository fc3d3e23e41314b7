package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	want := time.Date(2025, 12, 1, 4, 30, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{name: "rfc3339 with millis", input: `"2025-12-01T04:30:00.000Z"`, want: want},
		{name: "datetime-local", input: `"2025-12-01T04:30"`, want: want},
		{name: "empty string", input: `""`},
		{name: "null", input: `null`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.input), &ts))
			assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
		})
	}

	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`12`), &ts))
}

func TestCourseDetail_Decode(t *testing.T) {
	raw := `{
		"id": 2,
		"name": "Software Engineering",
		"description": "Learn about Software Engineering...",
		"instructor": {"id": 1, "name": "Jack Krugger", "email": "jackkrugger@instructor.com", "phone": "62123456789"},
		"schedule": "2025-12-01T04:30:00.000Z",
		"enrollments": [{
			"id": 2,
			"student": {"id": 1, "name": "Mark Porter", "email": "markporter@student.com", "phone": "62135792468"},
			"status": "active",
			"created_at": "2025-11-22T10:01:16.000Z",
			"updated_at": "2025-11-22T10:01:16.000Z"
		}]
	}`
	var c Course
	require.NoError(t, json.Unmarshal([]byte(raw), &c))

	assert.Equal(t, int64(2), c.ID)
	require.NotNil(t, c.Instructor)
	assert.Equal(t, "Jack Krugger", c.Instructor.Name)
	require.Len(t, c.Enrollments, 1)
	assert.Equal(t, "Mark Porter", c.Enrollments[0].Student.Name)
	assert.Equal(t, EnrollmentStatusActive, c.Enrollments[0].Status)
	assert.Equal(t, "2025-12-01T04:30", c.ScheduleInput())
}

func TestCourse_Payload(t *testing.T) {
	c := Course{
		ID:          2,
		Name:        "SE",
		Description: "desc",
		Schedule:    NewTimestamp(time.Date(2025, 12, 1, 4, 30, 0, 0, time.UTC)),
	}

	body, err := json.Marshal(c.Payload())
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"SE","description":"desc","instructor_id":null,"schedule":"2025-12-01T04:30:00Z"}`, string(body))

	id := int64(9)
	c.SetInstructorID(&id)
	assert.Equal(t, int64(9), *c.Payload().InstructorID)
}

func TestCourse_SetInstructorID(t *testing.T) {
	c := Course{Instructor: &Instructor{ID: 1, Name: "Jack"}}

	same := int64(1)
	c.SetInstructorID(&same)
	assert.Equal(t, "Jack", c.Instructor.Name)

	other := int64(3)
	c.SetInstructorID(&other)
	assert.Equal(t, &Instructor{ID: 3}, c.Instructor)

	c.SetInstructorID(nil)
	assert.Nil(t, c.Instructor)
	assert.Nil(t, c.InstructorID())
}

func TestStudent_Payload(t *testing.T) {
	s := Student{ID: 5, Name: "Ada", Email: "ada@x.com", Phone: "555", Enrollments: []Enrollment{{ID: 1}}}
	body, err := json.Marshal(s.Payload())
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ada","email":"ada@x.com","phone":"555"}`, string(body))
}
