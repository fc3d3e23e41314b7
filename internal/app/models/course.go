package models

import (
	"time"

	"github.com/yigit/skillhub/internal/pkg/helpers"
)

// Course is a course record. Instructor and Enrollments are embedded on detail reads.
type Course struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Schedule    Timestamp    `json:"schedule"`
	Instructor  *Instructor  `json:"instructor,omitempty"`
	Enrollments []Enrollment `json:"enrollments,omitempty"`
}

// InstructorID returns the linked instructor id, or nil when none is linked.
func (c Course) InstructorID() *int64 {
	if c.Instructor == nil || c.Instructor.ID <= 0 {
		return nil
	}
	id := c.Instructor.ID
	return &id
}

// SetInstructorID relinks the course to another instructor id, keeping the
// embedded details only when the id is unchanged. Nil unlinks.
func (c *Course) SetInstructorID(id *int64) {
	if id == nil {
		c.Instructor = nil
		return
	}
	if c.Instructor != nil && c.Instructor.ID == *id {
		return
	}
	c.Instructor = &Instructor{ID: *id}
}

// Payload returns the body sent by POST /courses and PUT /courses/{id}.
func (c Course) Payload() CoursePayload {
	return CoursePayload{
		Name:         c.Name,
		Description:  c.Description,
		InstructorID: c.InstructorID(),
		Schedule:     c.Schedule.UTC().Format(time.RFC3339),
	}
}

// ScheduleInput renders the schedule for a datetime-local input.
func (c Course) ScheduleInput() string {
	return helpers.FormatDateTimeLocal(c.Schedule.Time)
}

// CoursePayload is the write shape of a course. InstructorID is sent as null when unset.
type CoursePayload struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	InstructorID *int64 `json:"instructor_id"`
	Schedule     string `json:"schedule"`
}
