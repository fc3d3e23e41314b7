package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/yigit/skillhub/internal/app/models"
	"github.com/yigit/skillhub/internal/pkg/apiclient"
	"github.com/yigit/skillhub/internal/pkg/apperrors"
)

// StudentService defines the operations on /students
type StudentService interface {
	ListStudents(ctx context.Context) ([]models.Student, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	CreateStudent(ctx context.Context, payload models.StudentPayload) (*models.Student, error)
	UpdateStudent(ctx context.Context, draft models.Student) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

type studentServiceImpl struct {
	client *apiclient.Client
	logger zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(client *apiclient.Client, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		client: client,
		logger: logger,
	}
}

// ListStudents returns the collection in server order
func (s *studentServiceImpl) ListStudents(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := s.client.FetchInto(ctx, "/students", nil, &students); err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	return students, nil
}

// GetStudent returns one student with its enrollments
func (s *studentServiceImpl) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	if err := validateID("student", id); err != nil {
		return nil, err
	}

	var student models.Student
	if err := s.client.FetchInto(ctx, fmt.Sprintf("/students/%d", id), nil, &student); err != nil {
		return nil, fmt.Errorf("error retrieving student %d: %w", id, err)
	}
	return &student, nil
}

// CreateStudent posts a new student. The returned record is nil when the
// backend answers without a JSON body.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, payload models.StudentPayload) (*models.Student, error) {
	var created *models.Student
	err := s.client.FetchInto(ctx, "/students", &apiclient.RequestOptions{
		Method: http.MethodPost,
		JSON:   payload,
	}, &created)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnexpectedPayload) {
			s.logger.Warn().Err(err).Msg("Student created but response body was not a record")
			return nil, nil
		}
		return nil, fmt.Errorf("error creating student: %w", err)
	}
	return created, nil
}

// UpdateStudent puts the full draft and returns the response merged over it,
// so fields the backend omits keep their draft value.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, draft models.Student) (*models.Student, error) {
	if err := validateID("student", draft.ID); err != nil {
		return nil, err
	}

	// Enrollments are detached so decoding never writes through the draft's backing array.
	merged := draft
	merged.Enrollments = nil
	resp := &presence{into: &merged}
	err := s.client.FetchInto(ctx, fmt.Sprintf("/students/%d", draft.ID), &apiclient.RequestOptions{
		Method: http.MethodPut,
		JSON:   draft.Payload(),
	}, resp)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnexpectedPayload) {
			s.logger.Warn().Err(err).Int64("studentID", draft.ID).Msg("Student updated but response body was not a record")
			return &draft, nil
		}
		return nil, fmt.Errorf("error updating student %d: %w", draft.ID, err)
	}
	if !resp.has("enrollments") {
		merged.Enrollments = draft.Enrollments
	}
	return &merged, nil
}

// DeleteStudent deletes a student by ID
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if err := validateID("student", id); err != nil {
		return err
	}

	_, err := s.client.FetchJSON(ctx, fmt.Sprintf("/students/%d", id), &apiclient.RequestOptions{Method: http.MethodDelete})
	if err != nil {
		return fmt.Errorf("error deleting student %d: %w", id, err)
	}
	return nil
}
