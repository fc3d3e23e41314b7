package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/skillhub/internal/app/forms"
	"github.com/yigit/skillhub/internal/app/models"
	"github.com/yigit/skillhub/internal/app/notify"
	"github.com/yigit/skillhub/internal/app/pages"
	"github.com/yigit/skillhub/internal/app/services"
	"github.com/yigit/skillhub/internal/app/sheets"
	"github.com/yigit/skillhub/internal/app/views"
)

// CourseController handles the courses list and course detail pages
type CourseController struct {
	*Env
	courseService     services.CourseService
	enrollmentService services.EnrollmentService
}

// NewCourseController creates a new course controller
func NewCourseController(env *Env, courseService services.CourseService, enrollmentService services.EnrollmentService) *CourseController {
	return &CourseController{
		Env:               env,
		courseService:     courseService,
		enrollmentService: enrollmentService,
	}
}

func (c *CourseController) renderList(ctx *gin.Context, n *notify.Notifier, status int, page *pages.CourseListPage, form forms.CourseForm, alert string) {
	ctx.HTML(status, views.PageCourses, views.CoursesData{
		Base: c.base(ctx, n, "Courses", "courses"),
		ListView: views.ListView{
			Loaded: page.State() == pages.ListLoaded,
			Failed: page.State() == pages.ListError,
			Empty:  page.IsEmpty(),
			Modal:  page.ModalOpen(),
			Alert:  alert,
		},
		Courses: page.Items(),
		Form:    form,
	})
}

// ListCourses shows every course; ?new=1 opens the creation modal
func (c *CourseController) ListCourses(ctx *gin.Context) {
	n := c.notifier(ctx)
	page := pages.NewCourseListPage(c.courseService, n, c.logger)

	if err := page.Load(ctx.Request.Context()); err != nil && gone(ctx, err) {
		return
	}
	if ctx.Query("new") == "1" {
		page.OpenModal()
	}

	status := http.StatusOK
	if page.State() == pages.ListError {
		status = http.StatusBadGateway
	}
	c.renderList(ctx, n, status, page, forms.CourseForm{}, "")
}

// CreateCourse handles the creation modal
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	n := c.notifier(ctx)
	nav := &Redirector{}
	page := pages.NewCourseListPage(c.courseService, n, c.logger)
	page.ReloadVia(nav, "/courses")
	reqCtx := ctx.Request.Context()

	var form forms.CourseForm
	_ = ctx.ShouldBind(&form)

	err := forms.Submit[models.CoursePayload](&form, func(p models.CoursePayload) error {
		return page.Create(reqCtx, p)
	})
	if err == nil {
		seeOther(ctx, nav.Path)
		return
	}
	if gone(ctx, err) {
		return
	}

	_ = page.Load(reqCtx)
	page.OpenModal()
	c.renderList(ctx, n, failureStatus(err), page, form, alertFor(err))
}

// ExportCourses downloads the courses list as a spreadsheet
func (c *CourseController) ExportCourses(ctx *gin.Context) {
	n := c.notifier(ctx)
	page := pages.NewCourseListPage(c.courseService, n, c.logger)

	if err := page.Load(ctx.Request.Context()); err != nil {
		if gone(ctx, err) {
			return
		}
		n.Error("Could not export courses")
		seeOther(ctx, "/courses")
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="courses.xlsx"`)
	ctx.Header("Content-Type", sheets.ContentType)
	ctx.Status(http.StatusOK)
	if err := sheets.ExportCourses(ctx.Writer, page.Items()); err != nil {
		c.logger.Error().Err(err).Msg("Failed to write courses spreadsheet")
	}
}

func (c *CourseController) mount(ctx *gin.Context, n *notify.Notifier, nav *Redirector) *pages.CourseDetailPage {
	id, ok := paramID(ctx, "id")
	if !ok {
		ctx.Redirect(http.StatusFound, pages.NotFoundPath)
		return nil
	}

	page := pages.NewCourseDetailPage(c.courseService, c.enrollmentService, n, nav, c.logger)
	if err := page.Load(ctx.Request.Context(), id); err != nil {
		if gone(ctx, err) {
			return nil
		}
		c.detailFailure(ctx, n, nav, page.State(), err)
		return nil
	}
	return page
}

func (c *CourseController) renderDetail(ctx *gin.Context, n *notify.Notifier, status int, page *pages.CourseDetailPage, form forms.CourseForm, alert string) {
	course := page.Server()
	ctx.HTML(status, views.PageCourse, views.CourseData{
		Base:   c.base(ctx, n, course.Name, "courses"),
		Course: course,
		Form:   form,
		Alert:  alert,
	})
}

// GetCourse shows one course with its instructor and enrollments
func (c *CourseController) GetCourse(ctx *gin.Context) {
	n := c.notifier(ctx)
	nav := &Redirector{}
	page := c.mount(ctx, n, nav)
	if page == nil {
		return
	}
	c.renderDetail(ctx, n, http.StatusOK, page, forms.CourseFormFrom(page.Draft()), "")
}

// UpdateCourse saves the course form
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	n := c.notifier(ctx)
	nav := &Redirector{}
	page := c.mount(ctx, n, nav)
	if page == nil {
		return
	}

	var form forms.CourseForm
	_ = ctx.ShouldBind(&form)
	if err := form.Validate(); err != nil {
		c.renderDetail(ctx, n, failureStatus(err), page, form, alertFor(err))
		return
	}

	var applyErr error
	if err := page.Edit(func(course *models.Course) { applyErr = form.ApplyTo(course) }); err != nil || applyErr != nil {
		c.renderDetail(ctx, n, http.StatusUnprocessableEntity, page, form, "Schedule must be a date and time")
		return
	}

	if err := page.Save(ctx.Request.Context()); err != nil {
		if gone(ctx, err) {
			return
		}
		c.renderDetail(ctx, n, failureStatus(err), page, forms.CourseFormFrom(page.Draft()), "")
		return
	}
	seeOther(ctx, ctx.Request.URL.Path)
}

// DeleteCourse deletes the course once confirm=yes is posted
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	n := c.notifier(ctx)
	nav := &Redirector{}
	page := c.mount(ctx, n, nav)
	if page == nil {
		return
	}
	detailPath := fmt.Sprintf("/courses/%d", page.ID())

	err := page.Delete(ctx.Request.Context(), ctx.PostForm("confirm") == "yes")
	switch {
	case err == nil:
		seeOther(ctx, nav.Path)
	case errors.Is(err, pages.ErrNotConfirmed):
		seeOther(ctx, detailPath)
	case gone(ctx, err):
	default:
		seeOther(ctx, detailPath)
	}
}

// RemoveEnrollment deletes one of the course's enrollments
func (c *CourseController) RemoveEnrollment(ctx *gin.Context) {
	n := c.notifier(ctx)
	nav := &Redirector{}
	page := c.mount(ctx, n, nav)
	if page == nil {
		return
	}

	detailPath := fmt.Sprintf("/courses/%d", page.ID())
	page.ReloadVia(nav, detailPath)

	enrollmentID, ok := paramID(ctx, "enrollmentId")
	if !ok {
		n.Error("Invalid enrollment")
	} else if err := page.RemoveEnrollment(ctx.Request.Context(), enrollmentID); err != nil && gone(ctx, err) {
		return
	}
	seeOther(ctx, detailPath)
}
