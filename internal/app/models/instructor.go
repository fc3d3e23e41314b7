package models

// Instructor is the optional instructor record embedded in a course.
type Instructor struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
