package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/yigit/skillhub/internal/app/models"
	"github.com/yigit/skillhub/internal/pkg/apiclient"
	"github.com/yigit/skillhub/internal/pkg/apperrors"
)

// EnrollmentService defines the operations on /enrollments
type EnrollmentService interface {
	Enroll(ctx context.Context, studentID int64, courseIDs []int64) error
	DeleteEnrollment(ctx context.Context, id int64) error
}

type enrollmentServiceImpl struct {
	client *apiclient.Client
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(client *apiclient.Client) EnrollmentService {
	return &enrollmentServiceImpl{client: client}
}

// Enroll enrolls one student into every listed course in a single request
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, studentID int64, courseIDs []int64) error {
	if err := validateID("student", studentID); err != nil {
		return err
	}
	if len(courseIDs) == 0 {
		return apperrors.NewValidationGap("course_ids", "Please enter at least one course ID")
	}

	_, err := s.client.FetchJSON(ctx, "/enrollments", &apiclient.RequestOptions{
		Method: http.MethodPost,
		JSON:   models.EnrollmentPayload{StudentID: studentID, CourseIDs: courseIDs},
	})
	if err != nil {
		return fmt.Errorf("error enrolling student %d: %w", studentID, err)
	}
	return nil
}

// DeleteEnrollment deletes the join record by its own id
func (s *enrollmentServiceImpl) DeleteEnrollment(ctx context.Context, id int64) error {
	if err := validateID("enrollment", id); err != nil {
		return err
	}

	_, err := s.client.FetchJSON(ctx, fmt.Sprintf("/enrollments/%d", id), &apiclient.RequestOptions{Method: http.MethodDelete})
	if err != nil {
		return fmt.Errorf("error deleting enrollment %d: %w", id, err)
	}
	return nil
}
