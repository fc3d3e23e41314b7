package models

// Counts holds the collection sizes shown on the home page.
// A nil field means the size could not be determined.
type Counts struct {
	Students *int
	Courses  *int
}
