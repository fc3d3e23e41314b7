package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yigit/skillhub/internal/app/models"
	"github.com/yigit/skillhub/internal/pkg/apiclient"
)

// DashboardService computes the home page statistics
type DashboardService interface {
	Counts(ctx context.Context) (models.Counts, error)
}

type dashboardServiceImpl struct {
	client *apiclient.Client
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(client *apiclient.Client) DashboardService {
	return &dashboardServiceImpl{client: client}
}

// Counts loads both collections concurrently. Either failure fails the whole call.
func (s *dashboardServiceImpl) Counts(ctx context.Context) (models.Counts, error) {
	var students, courses interface{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.client.Fetch(gctx, "/students")
		if err != nil {
			return fmt.Errorf("error counting students: %w", err)
		}
		students = v
		return nil
	})
	g.Go(func() error {
		v, err := s.client.Fetch(gctx, "/courses")
		if err != nil {
			return fmt.Errorf("error counting courses: %w", err)
		}
		courses = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.Counts{}, err
	}

	return models.Counts{
		Students: countOf(students),
		Courses:  countOf(courses),
	}, nil
}

// countOf accepts either a bare array or an object with a numeric "count".
func countOf(v interface{}) *int {
	switch t := v.(type) {
	case []interface{}:
		n := len(t)
		return &n
	case map[string]interface{}:
		if c, ok := t["count"].(float64); ok {
			n := int(c)
			return &n
		}
	}
	return nil
}
