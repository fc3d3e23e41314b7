// Package pages holds the page state machines shared by the student and
// course screens: list pages that reconcile by re-fetching after a create, and
// detail pages that keep the last confirmed record apart from the edit draft.
//
// A page lives for exactly one view. Every operation takes the view's context;
// when that context ends, late results are dropped instead of applied.
package pages

import (
	"context"
	"errors"
	"fmt"
)

// NotFoundPath is where detail pages send the visitor on a 404.
const NotFoundPath = "/not-found"

var (
	// ErrPageNotLoaded is returned by mutations on a page that is not in a loaded state.
	ErrPageNotLoaded = errors.New("page is not loaded")

	// ErrNotConfirmed is returned by Delete when the user did not confirm.
	ErrNotConfirmed = errors.New("deletion not confirmed")

	// ErrRefreshFailed matches RefreshError.
	ErrRefreshFailed = errors.New("refresh after mutation failed")
)

// Notifier shows transient, non-blocking messages to the user.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Navigator moves the user to another page.
type Navigator interface {
	Navigate(path string)
}

// RefreshError reports that a mutation succeeded on the server but the page
// could not re-fetch its record afterwards.
type RefreshError struct {
	Op  string
	Err error
}

// Error implements error interface
func (e *RefreshError) Error() string {
	return fmt.Sprintf("%s succeeded but refresh failed: %v", e.Op, e.Err)
}

// Unwrap implements errors.Unwrap interface
func (e *RefreshError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrRefreshFailed) match.
func (e *RefreshError) Is(target error) bool {
	return target == ErrRefreshFailed
}

// dropped reports whether the view behind ctx has gone away, in which case
// results must not be applied and nothing should be shown.
func dropped(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	return errors.Is(err, context.Canceled)
}

// reload hands a page's post-mutation re-fetch to a navigation: the view at
// path loads the records afresh, so the page does not fetch in place.
type reload struct {
	nav  Navigator
	path string
}

// deferred navigates and reports true when a reload target is set.
func (r reload) deferred() bool {
	if r.nav == nil {
		return false
	}
	r.nav.Navigate(r.path)
	return true
}
