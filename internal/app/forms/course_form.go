package forms

import (
	"strconv"
	"strings"

	"github.com/yigit/skillhub/internal/app/models"
	"github.com/yigit/skillhub/internal/pkg/helpers"
)

// CourseForm backs the course creation modal and the course editor.
// Schedule holds a datetime-local value; InstructorID may be left blank.
type CourseForm struct {
	Name         string `form:"name" validate:"required,max=255"`
	Description  string `form:"description" validate:"required"`
	Schedule     string `form:"schedule" validate:"required,datetime_local"`
	InstructorID string `form:"instructor_id" validate:"omitempty,record_id"`
}

// CourseFormFrom prefills the form from a record.
func CourseFormFrom(c models.Course) CourseForm {
	f := CourseForm{
		Name:        c.Name,
		Description: c.Description,
		Schedule:    c.ScheduleInput(),
	}
	if id := c.InstructorID(); id != nil {
		f.InstructorID = strconv.FormatInt(*id, 10)
	}
	return f
}

func (f *CourseForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Schedule = strings.TrimSpace(f.Schedule)
	f.InstructorID = strings.TrimSpace(f.InstructorID)
}

// Validate implements Form
func (f *CourseForm) Validate() error {
	f.normalize()
	return check(f)
}

func (f *CourseForm) instructorID() *int64 {
	if f.InstructorID == "" {
		return nil
	}
	id, err := strconv.ParseInt(f.InstructorID, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// Payload implements Form
func (f *CourseForm) Payload() (models.CoursePayload, error) {
	var c models.Course
	if err := f.ApplyTo(&c); err != nil {
		return models.CoursePayload{}, err
	}
	return c.Payload(), nil
}

// Reset implements Form
func (f *CourseForm) Reset() {
	*f = CourseForm{}
}

// ApplyTo copies the fields onto a draft record. Instructor details are kept
// when the instructor id is unchanged.
func (f *CourseForm) ApplyTo(c *models.Course) error {
	at, err := helpers.ParseDateTimeLocal(f.Schedule)
	if err != nil {
		return err
	}
	c.Name = f.Name
	c.Description = f.Description
	c.Schedule = models.NewTimestamp(at)
	c.SetInstructorID(f.instructorID())
	return nil
}
