package pages

import (
	"context"
	"errors"
	"sync"

	"github.com/yigit/skillhub/internal/app/models"
)

type recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
	paths     []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *recorder) Navigate(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

type fakeStudents struct {
	rows       []models.Student
	listErr    error
	createErr  error
	getErr     error
	getErrFrom int
	updateErr  error
	deleteErr  error
	nextID     int64

	listCalls   int
	createCalls int
	getCalls    int
	deleteCalls int
	lastUpdate  models.Student
	// respond replaces the record returned by a successful update.
	respond func(draft models.Student) models.Student
}

func (f *fakeStudents) List(ctx context.Context) ([]models.Student, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Student(nil), f.rows...), nil
}

func (f *fakeStudents) Create(ctx context.Context, p models.StudentPayload) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	f.rows = append(f.rows, models.Student{ID: f.nextID, Name: p.Name, Email: p.Email, Phone: p.Phone})
	return nil
}

func (f *fakeStudents) Get(ctx context.Context, id int64) (*models.Student, error) {
	f.getCalls++
	if f.getErr != nil && f.getCalls > f.getErrFrom {
		return nil, f.getErr
	}
	for _, s := range f.rows {
		if s.ID == id {
			s := s
			return &s, nil
		}
	}
	return nil, errors.New("missing row in fake")
}

func (f *fakeStudents) Update(ctx context.Context, draft models.Student) (*models.Student, error) {
	f.lastUpdate = draft
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	out := draft
	if f.respond != nil {
		out = f.respond(draft)
	}
	for i := range f.rows {
		if f.rows[i].ID == draft.ID {
			f.rows[i] = out
		}
	}
	return &out, nil
}

func (f *fakeStudents) Delete(ctx context.Context, id int64) error {
	f.deleteCalls++
	return f.deleteErr
}

type fakeEnrollments struct {
	students  *fakeStudents
	enrollErr error
	deleteErr error

	enrolled []int64
	deleted  []int64
}

func (f *fakeEnrollments) Enroll(ctx context.Context, studentID int64, courseIDs []int64) error {
	if f.enrollErr != nil {
		return f.enrollErr
	}
	f.enrolled = append(f.enrolled, courseIDs...)
	for i := range f.students.rows {
		if f.students.rows[i].ID != studentID {
			continue
		}
		for _, cid := range courseIDs {
			f.students.rows[i].Enrollments = append(f.students.rows[i].Enrollments, models.Enrollment{
				ID:     int64(len(f.enrolled)) + 100,
				Course: &models.Course{ID: cid},
				Status: models.EnrollmentStatusActive,
			})
		}
	}
	return nil
}

func (f *fakeEnrollments) DeleteEnrollment(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	for i := range f.students.rows {
		kept := f.students.rows[i].Enrollments[:0:0]
		for _, e := range f.students.rows[i].Enrollments {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		f.students.rows[i].Enrollments = kept
	}
	return nil
}
