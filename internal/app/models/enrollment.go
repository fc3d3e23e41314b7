package models

// EnrollmentStatusActive is the status the backend assigns to new enrollments.
const EnrollmentStatusActive = "active"

// Enrollment joins a student and a course. Which side is embedded depends on
// the parent record it was read through.
type Enrollment struct {
	ID        int64     `json:"id"`
	Student   *Student  `json:"student,omitempty"`
	Course    *Course   `json:"course,omitempty"`
	Status    string    `json:"status"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// EnrollmentPayload is the body of POST /enrollments.
type EnrollmentPayload struct {
	StudentID int64   `json:"student_id"`
	CourseIDs []int64 `json:"course_ids"`
}
