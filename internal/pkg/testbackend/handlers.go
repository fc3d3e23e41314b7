package testbackend

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/skillhub/internal/app/models"
)

func (b *Backend) listStudents(ctx *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.Student, 0, len(b.students))
	for _, s := range b.students {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	b.collection(ctx, out, len(out))
}

func (b *Backend) getStudent(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.students[id]
	if !ok {
		abortWithMessage(ctx, http.StatusNotFound, "student %d not found", id)
		return
	}
	s.Enrollments = []models.Enrollment{}
	for _, e := range b.sortedEnrollments() {
		if e.studentID != id {
			continue
		}
		c := b.courses[e.courseID]
		c.Enrollments = nil
		s.Enrollments = append(s.Enrollments, b.enrollmentView(e, nil, &c))
	}
	ctx.JSON(http.StatusOK, s)
}

func (b *Backend) createStudent(ctx *gin.Context) {
	var p models.StudentPayload
	if err := ctx.ShouldBindJSON(&p); err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, "invalid body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	s := models.Student{ID: b.newID(), Name: p.Name, Email: p.Email, Phone: p.Phone}
	b.students[s.ID] = s
	if b.textCreate {
		ctx.String(http.StatusCreated, "created")
		return
	}
	ctx.JSON(http.StatusCreated, s)
}

func (b *Backend) updateStudent(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	var p models.StudentPayload
	if err := ctx.ShouldBindJSON(&p); err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, "invalid body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.students[id]; !ok {
		abortWithMessage(ctx, http.StatusNotFound, "student %d not found", id)
		return
	}
	s := models.Student{ID: id, Name: p.Name, Email: p.Email, Phone: p.Phone}
	b.students[id] = s
	if b.partialPUT {
		ctx.JSON(http.StatusOK, gin.H{"id": id, "name": s.Name})
		return
	}
	ctx.JSON(http.StatusOK, s)
}

func (b *Backend) deleteStudent(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.students[id]; !ok {
		abortWithMessage(ctx, http.StatusNotFound, "student %d not found", id)
		return
	}
	delete(b.students, id)
	for eid, e := range b.enrollments {
		if e.studentID == id {
			delete(b.enrollments, eid)
		}
	}
	ctx.Status(http.StatusNoContent)
}

func (b *Backend) listCourses(ctx *gin.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]models.Course, 0, len(b.courses))
	for _, c := range b.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	b.collection(ctx, out, len(out))
}

func (b *Backend) getCourse(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.courses[id]
	if !ok {
		abortWithMessage(ctx, http.StatusNotFound, "course %d not found", id)
		return
	}
	c.Enrollments = []models.Enrollment{}
	for _, e := range b.sortedEnrollments() {
		if e.courseID != id {
			continue
		}
		s := b.students[e.studentID]
		c.Enrollments = append(c.Enrollments, b.enrollmentView(e, &s, nil))
	}
	ctx.JSON(http.StatusOK, c)
}

func (b *Backend) courseFromPayload(id int64, p models.CoursePayload) (models.Course, bool) {
	c := models.Course{ID: id, Name: p.Name, Description: p.Description}
	if p.Schedule != "" {
		at, err := time.Parse(time.RFC3339, p.Schedule)
		if err != nil {
			return c, false
		}
		c.Schedule = models.NewTimestamp(at)
	}
	if p.InstructorID != nil {
		in, ok := b.instructors[*p.InstructorID]
		if !ok {
			in = models.Instructor{ID: *p.InstructorID}
		}
		c.Instructor = &in
	}
	return c, true
}

func (b *Backend) createCourse(ctx *gin.Context) {
	var p models.CoursePayload
	if err := ctx.ShouldBindJSON(&p); err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, "invalid body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.courseFromPayload(b.newID(), p)
	if !ok {
		abortWithMessage(ctx, http.StatusBadRequest, "invalid schedule")
		return
	}
	b.courses[c.ID] = c
	if b.textCreate {
		ctx.String(http.StatusCreated, "created")
		return
	}
	ctx.JSON(http.StatusCreated, c)
}

func (b *Backend) updateCourse(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	var p models.CoursePayload
	if err := ctx.ShouldBindJSON(&p); err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, "invalid body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.courses[id]; !ok {
		abortWithMessage(ctx, http.StatusNotFound, "course %d not found", id)
		return
	}
	c, ok := b.courseFromPayload(id, p)
	if !ok {
		abortWithMessage(ctx, http.StatusBadRequest, "invalid schedule")
		return
	}
	b.courses[id] = c
	if b.partialPUT {
		ctx.JSON(http.StatusOK, gin.H{"id": id, "name": c.Name})
		return
	}
	ctx.JSON(http.StatusOK, c)
}

func (b *Backend) deleteCourse(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.courses[id]; !ok {
		abortWithMessage(ctx, http.StatusNotFound, "course %d not found", id)
		return
	}
	delete(b.courses, id)
	for eid, e := range b.enrollments {
		if e.courseID == id {
			delete(b.enrollments, eid)
		}
	}
	ctx.Status(http.StatusNoContent)
}

func (b *Backend) createEnrollments(ctx *gin.Context) {
	var p models.EnrollmentPayload
	if err := ctx.ShouldBindJSON(&p); err != nil {
		abortWithMessage(ctx, http.StatusBadRequest, "invalid body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.students[p.StudentID]; !ok {
		abortWithMessage(ctx, http.StatusBadRequest, "student %d not found", p.StudentID)
		return
	}
	if len(p.CourseIDs) == 0 {
		abortWithMessage(ctx, http.StatusBadRequest, "course_ids must not be empty")
		return
	}
	for _, cid := range p.CourseIDs {
		if _, ok := b.courses[cid]; !ok {
			abortWithMessage(ctx, http.StatusBadRequest, "course %d not found", cid)
			return
		}
	}
	now := time.Now().UTC()
	for _, cid := range p.CourseIDs {
		id := b.newID()
		b.enrollments[id] = enrollment{id: id, studentID: p.StudentID, courseID: cid, status: models.EnrollmentStatusActive, createdAt: now}
	}
	ctx.Status(http.StatusCreated)
}

func (b *Backend) deleteEnrollment(ctx *gin.Context) {
	id, ok := paramID(ctx)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.enrollments[id]; !ok {
		abortWithMessage(ctx, http.StatusNotFound, "enrollment %d not found", id)
		return
	}
	delete(b.enrollments, id)
	ctx.Status(http.StatusNoContent)
}

// sortedEnrollments must be called with mu held.
func (b *Backend) sortedEnrollments() []enrollment {
	out := make([]enrollment, 0, len(b.enrollments))
	for _, e := range b.enrollments {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (b *Backend) enrollmentView(e enrollment, s *models.Student, c *models.Course) models.Enrollment {
	return models.Enrollment{
		ID:        e.id,
		Student:   s,
		Course:    c,
		Status:    e.status,
		CreatedAt: models.NewTimestamp(e.createdAt),
		UpdatedAt: models.NewTimestamp(e.createdAt),
	}
}
