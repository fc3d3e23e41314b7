// Package testbackend is an in-memory stand-in for the SkillHub REST backend,
// served over httptest. Tests seed it, point an apiclient at URL(), and then
// inspect the recorded calls or inject failures.
package testbackend

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/skillhub/internal/app/models"
)

// Call is one request received by the backend.
type Call struct {
	Method string
	Path   string
	Body   string
}

type fault struct {
	method string
	path   string
	skip   int
	status int
	body   string
	hits   int
}

// Backend holds students, courses and enrollments in memory.
type Backend struct {
	srv *httptest.Server

	mu          sync.Mutex
	students    map[int64]models.Student
	courses     map[int64]models.Course
	instructors map[int64]models.Instructor
	enrollments map[int64]enrollment
	nextID      int64
	calls       []Call
	faults      []*fault
	partialPUT  bool
	textCreate  bool
	countShape  bool
}

type enrollment struct {
	id        int64
	studentID int64
	courseID  int64
	status    string
	createdAt time.Time
}

// New starts an empty backend that is closed when the test ends.
func New(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{
		students:    make(map[int64]models.Student),
		courses:     make(map[int64]models.Course),
		instructors: make(map[int64]models.Instructor),
		enrollments: make(map[int64]enrollment),
		nextID:      100,
	}
	b.srv = httptest.NewServer(b.routes())
	t.Cleanup(b.srv.Close)
	return b
}

// URL is the origin to pass as API base.
func (b *Backend) URL() string {
	return b.srv.URL
}

// Seed loads a small fixed data set:
// student 1 Mark Porter, course 2 Software Engineering taught by instructor 1,
// and enrollment 2 joining them.
func (b *Backend) Seed() *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()

	created := time.Date(2025, 11, 22, 10, 1, 16, 0, time.UTC)
	b.instructors[1] = models.Instructor{ID: 1, Name: "Jack Krugger", Email: "jackkrugger@instructor.com", Phone: "62123456789"}
	b.students[1] = models.Student{ID: 1, Name: "Mark Porter", Email: "markporter@student.com", Phone: "62135792468"}
	b.courses[2] = models.Course{
		ID:          2,
		Name:        "Software Engineering",
		Description: "Learn about **Software Engineering**...",
		Schedule:    models.NewTimestamp(time.Date(2025, 12, 1, 4, 30, 0, 0, time.UTC)),
	}
	b.courses[2] = withInstructor(b.courses[2], b.instructors[1])
	b.enrollments[2] = enrollment{id: 2, studentID: 1, courseID: 2, status: models.EnrollmentStatusActive, createdAt: created}
	return b
}

func withInstructor(c models.Course, in models.Instructor) models.Course {
	c.Instructor = &in
	return c
}

// AddStudent inserts a student and returns its id.
func (b *Backend) AddStudent(s models.Student) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s.ID == 0 {
		s.ID = b.newID()
	}
	s.Enrollments = nil
	b.students[s.ID] = s
	return s.ID
}

// AddCourse inserts a course and returns its id.
func (b *Backend) AddCourse(c models.Course) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c.ID == 0 {
		c.ID = b.newID()
	}
	c.Enrollments = nil
	b.courses[c.ID] = c
	return c.ID
}

// Fail makes every matching request answer with status and body.
func (b *Backend) Fail(method, path string, status int, body string) {
	b.FailAfter(method, path, 0, status, body)
}

// Respond answers every matching request with a canned successful body.
func (b *Backend) Respond(method, path string, status int, body string) {
	b.FailAfter(method, path, 0, status, body)
}

// FailAfter lets skip matching requests through before failing every later one.
func (b *Backend) FailAfter(method, path string, skip, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults = append(b.faults, &fault{method: method, path: path, skip: skip, status: status, body: body})
}

// PartialPUT makes updates answer with only id and name, so clients must
// merge the response over what they sent.
func (b *Backend) PartialPUT(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.partialPUT = on
}

// TextCreate makes creates answer with a plain text body instead of the record.
func (b *Backend) TextCreate(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.textCreate = on
}

// CountShape makes collection reads answer {"count": n, "data": [...]}.
func (b *Backend) CountShape(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.countShape = on
}

// Calls returns every request received so far.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// Count returns how many requests matched method and path.
func (b *Backend) Count(method, path string) int {
	n := 0
	for _, c := range b.Calls() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

// Reset forgets the recorded calls.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
}

// Student returns the stored student.
func (b *Backend) Student(id int64) (models.Student, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.students[id]
	return s, ok
}

// Course returns the stored course.
func (b *Backend) Course(id int64) (models.Course, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.courses[id]
	return c, ok
}

// EnrollmentIDs returns the enrollment ids in ascending order.
func (b *Backend) EnrollmentIDs() []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]int64, 0, len(b.enrollments))
	for id := range b.enrollments {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (b *Backend) newID() int64 {
	b.nextID++
	return b.nextID
}

func (b *Backend) routes() *gin.Engine {
	router := gin.New()
	router.Use(b.record)

	api := router.Group("/api")
	{
		students := api.Group("/students")
		{
			students.GET("", b.listStudents)
			students.POST("", b.createStudent)
			students.GET("/:id", b.getStudent)
			students.PUT("/:id", b.updateStudent)
			students.DELETE("/:id", b.deleteStudent)
		}

		courses := api.Group("/courses")
		{
			courses.GET("", b.listCourses)
			courses.POST("", b.createCourse)
			courses.GET("/:id", b.getCourse)
			courses.PUT("/:id", b.updateCourse)
			courses.DELETE("/:id", b.deleteCourse)
		}

		api.POST("/enrollments", b.createEnrollments)
		api.DELETE("/enrollments/:id", b.deleteEnrollment)
	}

	return router
}

// record logs the call and answers it from a matching fault, if any.
func (b *Backend) record(ctx *gin.Context) {
	body, _ := io.ReadAll(ctx.Request.Body)
	ctx.Request.Body = io.NopCloser(bytes.NewReader(body))

	method, path := ctx.Request.Method, ctx.Request.URL.Path
	b.mu.Lock()
	b.calls = append(b.calls, Call{Method: method, Path: path, Body: string(body)})
	f := b.matchFault(method, path)
	b.mu.Unlock()

	if f != nil {
		ctx.Data(f.status, "text/plain; charset=utf-8", []byte(f.body))
		ctx.Abort()
		return
	}
	ctx.Next()
}

// matchFault must be called with mu held.
func (b *Backend) matchFault(method, path string) *fault {
	for _, f := range b.faults {
		if f.method != method || f.path != path {
			continue
		}
		f.hits++
		if f.hits > f.skip {
			return f
		}
	}
	return nil
}

func abortWithMessage(ctx *gin.Context, status int, format string, args ...interface{}) {
	ctx.AbortWithStatusJSON(status, gin.H{"message": fmt.Sprintf(format, args...)})
}

func paramID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, "invalid id %q", ctx.Param("id"))
		return 0, false
	}
	return id, true
}

func (b *Backend) collection(ctx *gin.Context, items interface{}, n int) {
	if b.countShape {
		ctx.JSON(http.StatusOK, gin.H{"count": n, "data": items})
		return
	}
	ctx.JSON(http.StatusOK, items)
}
