package controllers

import (
	"context"
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

// StudentController handles the students list and student detail pages
type StudentController struct {
	*Env
	studentService    services.StudentService
	enrollmentService services.EnrollmentService
}

// NewStudentController creates a new student controller
func NewStudentController(env *Env, studentService services.StudentService, enrollmentService services.EnrollmentService) *StudentController {
	return &StudentController{
		Env:               env,
		studentService:    studentService,
		enrollmentService: enrollmentService,
	}
}

func (c *StudentController) renderList(ctx *gin.Context, n *notify.Notifier, status int, page *pages.StudentListPage, form forms.StudentForm, alert string) {
	ctx.HTML(status, views.PageStudents, views.StudentsData{
		Base: c.base(ctx, n, "Students", "students"),
		ListView: views.ListView{
			Loaded: page.State() == pages.ListLoaded,
			Failed: page.State() == pages.ListError,
			Empty:  page.IsEmpty(),
			Modal:  page.ModalOpen(),
			Alert:  alert,
		},
		Students: page.Items(),
		Form:     form,
	})
}

// ListStudents shows every student; ?new=1 opens the creation modal
func (c *StudentController) ListStudents(ctx *gin.Context) {
	n := c.notifier(ctx)
	page := pages.NewStudentListPage(c.studentService, n, c.logger)

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
	c.renderList(ctx, n, status, page, forms.StudentForm{}, "")
}

// CreateStudent handles the creation modal
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	n := c.notifier(ctx)
	nav := &Redirector{}
	page := pages.NewStudentListPage(c.studentService, n, c.logger)
	page.ReloadVia(nav, "/students")
	reqCtx := ctx.Request.Context()

	var form forms.StudentForm
	_ = ctx.ShouldBind(&form)

	err := forms.Submit[models.StudentPayload](&form, func(p models.StudentPayload) error {
		return page.Create(reqCtx, p)
	})
	if err == nil {
		seeOther(ctx, nav.Path)
		return
	}
	if gone(ctx, err) {
		return
	}

	// The rows on screen are the server's; the failed create inserted nothing.
	_ = page.Load(reqCtx)
	page.OpenModal()
	c.renderList(ctx, n, failureStatus(err), page, form, alertFor(err))
}

// ExportStudents downloads the students list as a spreadsheet
func (c *StudentController) ExportStudents(ctx *gin.Context) {
	n := c.notifier(ctx)
	page := pages.NewStudentListPage(c.studentService, n, c.logger)

	if err := page.Load(ctx.Request.Context()); err != nil {
		if gone(ctx, err) {
			return
		}
		n.Error("Could not export students")
		seeOther(ctx, "/students")
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="students.xlsx"`)
	ctx.Header("Content-Type", sheets.ContentType)
	ctx.Status(http.StatusOK)
	if err := sheets.ExportStudents(ctx.Writer, page.Items()); err != nil {
		c.logger.Error().Err(err).Msg("Failed to write students spreadsheet")
	}
}

// ImportStudents creates students from an uploaded spreadsheet
func (c *StudentController) ImportStudents(ctx *gin.Context) {
	n := c.notifier(ctx)

	header, err := ctx.FormFile("file")
	if err != nil {
		n.Error("Please choose a spreadsheet to import")
		seeOther(ctx, "/students")
		return
	}
	file, err := header.Open()
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to open uploaded spreadsheet")
		n.Error("Could not read the spreadsheet")
		seeOther(ctx, "/students")
		return
	}
	defer file.Close()

	create := func(reqCtx context.Context, p models.StudentPayload) error {
		_, err := c.studentService.CreateStudent(reqCtx, p)
		return err
	}
	res, err := sheets.ImportStudents(ctx.Request.Context(), file, create, c.logger)
	if err != nil {
		if gone(ctx, err) {
			return
		}
		c.logger.Warn().Err(err).Msg("Failed to import spreadsheet")
		n.Error("Could not read the spreadsheet")
		seeOther(ctx, "/students")
		return
	}

	n.Success(fmt.Sprintf("Imported %d students", res.Imported))
	if skipped := res.Skipped + res.Failed; skipped > 0 {
		n.Error(fmt.Sprintf("Skipped %d rows", skipped))
	}
	seeOther(ctx, "/students")
}

// mount loads the detail page for the :id route parameter. It answers the
// request itself and returns nil when the page cannot be shown.
func (c *StudentController) mount(ctx *gin.Context, n *notify.Notifier, nav *Redirector) *pages.StudentDetailPage {
	id, ok := paramID(ctx, "id")
	if !ok {
		ctx.Redirect(http.StatusFound, pages.NotFoundPath)
		return nil
	}

	page := pages.NewStudentDetailPage(c.studentService, c.enrollmentService, n, nav, c.logger)
	if err := page.Load(ctx.Request.Context(), id); err != nil {
		if gone(ctx, err) {
			return nil
		}
		c.detailFailure(ctx, n, nav, page.State(), err)
		return nil
	}
	return page
}

func (c *StudentController) renderDetail(ctx *gin.Context, n *notify.Notifier, status int, page *pages.StudentDetailPage, form forms.StudentForm, alert, enrollAlert string) {
	student := page.Server()
	ctx.HTML(status, views.PageStudent, views.StudentData{
		Base:        c.base(ctx, n, student.Name, "students"),
		Student:     student,
		Form:        form,
		EnrollModal: page.EnrollModalOpen(),
		Alert:       alert,
		EnrollAlert: enrollAlert,
	})
}

// GetStudent shows one student; ?enroll=1 opens the add-enrollment modal
func (c *StudentController) GetStudent(ctx *gin.Context) {
	n := c.notifier(ctx)
	nav := &Redirector{}
	page := c.mount(ctx, n, nav)
	if page == nil {
		return
	}
	if ctx.Query("enroll") == "1" {
		page.OpenEnrollModal()
	}
	c.renderDetail(ctx, n, http.StatusOK, page, forms.StudentFormFrom(page.Draft()), "", "")
}

// UpdateStudent saves the profile form
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	n := c.notifier(ctx)
	nav := &Redirector{}
	page := c.mount(ctx, n, nav)
	if page == nil {
		return
	}

	var form forms.StudentForm
	_ = ctx.ShouldBind(&form)
	if err := form.Validate(); err != nil {
		c.renderDetail(ctx, n, failureStatus(err), page, form, alertFor(err), "")
		return
	}
	if err := page.Edit(form.ApplyTo); err != nil {
		c.renderError(ctx, n, http.StatusConflict, err.Error(), ctx.Request.URL.Path)
		return
	}

	if err := page.Save(ctx.Request.Context()); err != nil {
		if gone(ctx, err) {
			return
		}
		c.renderDetail(ctx, n, failureStatus(err), page, forms.StudentFormFrom(page.Draft()), "", "")
		return
	}
	seeOther(ctx, ctx.Request.URL.Path)
}

// DeleteStudent deletes the student once confirm=yes is posted
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	n := c.notifier(ctx)
	nav := &Redirector{}
	page := c.mount(ctx, n, nav)
	if page == nil {
		return
	}
	detailPath := fmt.Sprintf("/students/%d", page.ID())

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

// AddEnrollments enrolls the student into the posted course ids
func (c *StudentController) AddEnrollments(ctx *gin.Context) {
	n := c.notifier(ctx)
	nav := &Redirector{}
	page := c.mount(ctx, n, nav)
	if page == nil {
		return
	}

	detailPath := fmt.Sprintf("/students/%d", page.ID())
	page.ReloadVia(nav, detailPath)

	var form forms.EnrollmentForm
	_ = ctx.ShouldBind(&form)

	err := forms.Submit[[]int64](&form, func(ids []int64) error {
		return page.AddEnrollments(ctx.Request.Context(), ids)
	})
	if err == nil {
		seeOther(ctx, detailPath)
		return
	}
	if gone(ctx, err) {
		return
	}

	page.OpenEnrollModal()
	c.renderDetail(ctx, n, failureStatus(err), page, forms.StudentFormFrom(page.Draft()), "", alertFor(err))
}

// RemoveEnrollment deletes one of the student's enrollments
func (c *StudentController) RemoveEnrollment(ctx *gin.Context) {
	n := c.notifier(ctx)
	nav := &Redirector{}
	page := c.mount(ctx, n, nav)
	if page == nil {
		return
	}

	detailPath := fmt.Sprintf("/students/%d", page.ID())
	page.ReloadVia(nav, detailPath)

	enrollmentID, ok := paramID(ctx, "enrollmentId")
	if !ok {
		n.Error("Invalid enrollment")
	} else if err := page.RemoveEnrollment(ctx.Request.Context(), enrollmentID); err != nil && gone(ctx, err) {
		return
	}
	seeOther(ctx, detailPath)
}
