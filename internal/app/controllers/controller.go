package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/rs/zerolog"

	"github.com/yigit/skillhub/internal/app/notify"
	"github.com/yigit/skillhub/internal/app/pages"
	"github.com/yigit/skillhub/internal/app/views"
	"github.com/yigit/skillhub/internal/pkg/apiclient"
	"github.com/yigit/skillhub/internal/pkg/apperrors"
)

// StatusClientClosedRequest is logged when the visitor went away mid-request.
const StatusClientClosedRequest = 499

// Redirector is the pages.Navigator of one request. It records the target so
// the controller can answer with a redirect once the page operation returns.
type Redirector struct {
	Path string
}

// Navigate implements pages.Navigator
func (r *Redirector) Navigate(path string) {
	r.Path = path
}

// Env holds what every controller needs to render a page.
type Env struct {
	flashes notify.Store
	logger  zerolog.Logger
}

// NewEnv creates the shared controller environment
func NewEnv(flashes notify.Store, logger zerolog.Logger) *Env {
	return &Env{flashes: flashes, logger: logger}
}

// notifier binds the flash store to the visitor of this request.
func (e *Env) notifier(ctx *gin.Context) *notify.Notifier {
	return notify.NewNotifier(ctx.Request.Context(), e.flashes, notify.SessionID(ctx), e.logger)
}

// base collects the layout data, draining the visitor's queued flashes.
func (e *Env) base(ctx *gin.Context, n *notify.Notifier, title, nav string) views.Base {
	return views.Base{
		Title:     title,
		Nav:       nav,
		Flashes:   n.Drain(),
		CSRFField: csrf.TemplateField(ctx.Request),
	}
}

func (e *Env) renderError(ctx *gin.Context, n *notify.Notifier, status int, message, retry string) {
	ctx.HTML(status, views.PageError, views.ErrorData{
		Base:     e.base(ctx, n, "Error", ""),
		Message:  message,
		RetryURL: retry,
	})
}

// NotFound renders the not-found view.
func (e *Env) NotFound(ctx *gin.Context) {
	n := e.notifier(ctx)
	ctx.HTML(http.StatusNotFound, views.PageNotFound, views.NotFoundData{
		Base: e.base(ctx, n, "Not Found", ""),
	})
}

// gone reports whether the visitor's request ended, in which case nothing is rendered.
func gone(ctx *gin.Context, err error) bool {
	if ctx.Request.Context().Err() != nil || apiclient.IsCanceled(err) {
		ctx.AbortWithStatus(StatusClientClosedRequest)
		return true
	}
	return false
}

func seeOther(ctx *gin.Context, path string) {
	ctx.Redirect(http.StatusSeeOther, path)
}

// failureStatus maps a failed page operation to the status of the re-rendered page.
func failureStatus(err error) int {
	if errors.Is(err, apperrors.ErrValidationGap) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, pages.ErrRefreshFailed) {
		return http.StatusBadGateway
	}
	if status := apperrors.Status(err); status >= 400 && status < 500 {
		return status
	}
	return http.StatusBadGateway
}

// alertFor returns the blocking alert text for validation gaps, else "".
func alertFor(err error) string {
	var gap *apperrors.ValidationGap
	if errors.As(err, &gap) {
		return gap.Message
	}
	return ""
}

func paramID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// detailFailure answers a detail request whose page did not load.
func (e *Env) detailFailure(ctx *gin.Context, n *notify.Notifier, nav *Redirector, state pages.DetailState, err error) {
	if state == pages.DetailNotFound {
		ctx.Redirect(http.StatusFound, nav.Path)
		return
	}
	e.renderError(ctx, n, http.StatusBadGateway, apperrors.Message(err, "Could not load this page"), ctx.Request.URL.Path)
}
