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

// CourseService defines the operations on /courses
type CourseService interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, payload models.CoursePayload) (*models.Course, error)
	UpdateCourse(ctx context.Context, draft models.Course) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
}

type courseServiceImpl struct {
	client *apiclient.Client
	logger zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(client *apiclient.Client, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		client: client,
		logger: logger,
	}
}

// ListCourses returns the collection in server order
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := s.client.FetchInto(ctx, "/courses", nil, &courses); err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	return courses, nil
}

// GetCourse returns one course with its instructor and enrollments
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	if err := validateID("course", id); err != nil {
		return nil, err
	}

	var course models.Course
	if err := s.client.FetchInto(ctx, fmt.Sprintf("/courses/%d", id), nil, &course); err != nil {
		return nil, fmt.Errorf("error retrieving course %d: %w", id, err)
	}
	return &course, nil
}

// CreateCourse posts a new course
func (s *courseServiceImpl) CreateCourse(ctx context.Context, payload models.CoursePayload) (*models.Course, error) {
	var created *models.Course
	err := s.client.FetchInto(ctx, "/courses", &apiclient.RequestOptions{
		Method: http.MethodPost,
		JSON:   payload,
	}, &created)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnexpectedPayload) {
			s.logger.Warn().Err(err).Msg("Course created but response body was not a record")
			return nil, nil
		}
		return nil, fmt.Errorf("error creating course: %w", err)
	}
	return created, nil
}

// UpdateCourse puts the full draft and returns the response merged over it
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, draft models.Course) (*models.Course, error) {
	if err := validateID("course", draft.ID); err != nil {
		return nil, err
	}

	// Nested values are detached so decoding never writes through the draft's
	// pointers or backing arrays; they are restored when the response omits them.
	merged := draft
	merged.Instructor = nil
	merged.Enrollments = nil
	resp := &presence{into: &merged}
	err := s.client.FetchInto(ctx, fmt.Sprintf("/courses/%d", draft.ID), &apiclient.RequestOptions{
		Method: http.MethodPut,
		JSON:   draft.Payload(),
	}, resp)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnexpectedPayload) {
			s.logger.Warn().Err(err).Int64("courseID", draft.ID).Msg("Course updated but response body was not a record")
			return &draft, nil
		}
		return nil, fmt.Errorf("error updating course %d: %w", draft.ID, err)
	}
	if !resp.has("instructor") {
		merged.Instructor = draft.Instructor
	}
	if !resp.has("enrollments") {
		merged.Enrollments = draft.Enrollments
	}
	return &merged, nil
}

// DeleteCourse deletes a course by ID
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if err := validateID("course", id); err != nil {
		return err
	}

	_, err := s.client.FetchJSON(ctx, fmt.Sprintf("/courses/%d", id), &apiclient.RequestOptions{Method: http.MethodDelete})
	if err != nil {
		return fmt.Errorf("error deleting course %d: %w", id, err)
	}
	return nil
}
