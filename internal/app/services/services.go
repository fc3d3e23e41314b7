package services

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/skillhub/internal/pkg/apiclient"
	"github.com/yigit/skillhub/internal/pkg/apperrors"
)

// Services defined in this package:
// - StudentService: student collection and records
// - CourseService: course collection and records
// - EnrollmentService: enrollment join records
// - DashboardService: collection sizes for the home page
type Services struct {
	Students    StudentService
	Courses     CourseService
	Enrollments EnrollmentService
	Dashboard   DashboardService
}

// NewServices builds every service over one shared client.
func NewServices(client *apiclient.Client, logger zerolog.Logger) *Services {
	return &Services{
		Students:    NewStudentService(client, logger),
		Courses:     NewCourseService(client, logger),
		Enrollments: NewEnrollmentService(client),
		Dashboard:   NewDashboardService(client),
	}
}

func validateID(kind string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s id %d", apperrors.ErrInvalidID, kind, id)
	}
	return nil
}

// presence decodes a response over a record and remembers which top-level
// keys it carried, so an explicit null can be told apart from an absent field.
type presence struct {
	into interface{}
	keys map[string]json.RawMessage
}

func (p *presence) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &p.keys); err != nil {
		return err
	}
	return json.Unmarshal(data, p.into)
}

func (p *presence) has(key string) bool {
	_, ok := p.keys[key]
	return ok
}
