package forms

import (
	"strconv"
	"strings"

	"github.com/yigit/skillhub/internal/pkg/apperrors"
)

// EnrollmentForm is the add-enrollment modal: a comma-separated list of course ids.
type EnrollmentForm struct {
	CourseIDs string `form:"course_ids"`
}

// Validate implements Form
func (f *EnrollmentForm) Validate() error {
	_, err := ParseCourseIDs(f.CourseIDs)
	return err
}

// Payload implements Form
func (f *EnrollmentForm) Payload() ([]int64, error) {
	return ParseCourseIDs(f.CourseIDs)
}

// Reset implements Form
func (f *EnrollmentForm) Reset() {
	f.CourseIDs = ""
}

// ParseCourseIDs splits text on commas and keeps the positive integer tokens
// in input order without duplicates. Other tokens are dropped. An input with
// no usable id is a validation gap.
func ParseCourseIDs(text string) ([]int64, error) {
	var ids []int64
	seen := make(map[int64]struct{})
	for _, token := range strings.Split(text, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, apperrors.NewValidationGap("course_ids", "Please enter at least one course ID")
	}
	return ids, nil
}
