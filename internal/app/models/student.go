package models

// Student is a learner record as served by GET /students and GET /students/{id}.
// Enrollments is only populated on detail reads.
type Student struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Enrollments []Enrollment `json:"enrollments,omitempty"`
}

// Payload returns the body sent by POST /students and PUT /students/{id}.
func (s Student) Payload() StudentPayload {
	return StudentPayload{
		Name:  s.Name,
		Email: s.Email,
		Phone: s.Phone,
	}
}

// StudentPayload is the write shape of a student.
type StudentPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
