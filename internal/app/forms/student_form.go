package forms

import (
	"strings"

	"github.com/yigit/skillhub/internal/app/models"
)

// StudentForm backs both the creation modal and the profile editor.
type StudentForm struct {
	Name  string `form:"name" validate:"required,max=255"`
	Email string `form:"email" validate:"required,email"`
	Phone string `form:"phone" validate:"required,max=32"`
}

// StudentFormFrom prefills the form from a record.
func StudentFormFrom(s models.Student) StudentForm {
	return StudentForm{Name: s.Name, Email: s.Email, Phone: s.Phone}
}

func (f *StudentForm) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
}

// Validate implements Form
func (f *StudentForm) Validate() error {
	f.normalize()
	return check(f)
}

// Payload implements Form
func (f *StudentForm) Payload() (models.StudentPayload, error) {
	return models.StudentPayload{Name: f.Name, Email: f.Email, Phone: f.Phone}, nil
}

// Reset implements Form
func (f *StudentForm) Reset() {
	*f = StudentForm{}
}

// ApplyTo copies the fields onto a draft record.
func (f *StudentForm) ApplyTo(s *models.Student) {
	s.Name = f.Name
	s.Email = f.Email
	s.Phone = f.Phone
}
