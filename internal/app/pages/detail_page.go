package pages

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/yigit/skillhub/internal/pkg/apperrors"
)

// DetailState is the lifecycle of a detail page.
type DetailState int

const (
	DetailLoading DetailState = iota
	// DetailNotFound is terminal: the visitor has been sent to the not-found view.
	DetailNotFound
	DetailLoaded
	// DetailFailed is a non-404 load failure; the view offers a retry.
	DetailFailed
)

func (s DetailState) String() string {
	switch s {
	case DetailLoading:
		return "loading"
	case DetailNotFound:
		return "not_found"
	case DetailLoaded:
		return "loaded"
	case DetailFailed:
		return "failed"
	}
	return "unknown"
}

// Record is the server-side record behind a detail page.
type Record[T any] interface {
	Get(ctx context.Context, id int64) (*T, error)
	// Update sends the full draft and returns the response merged over it.
	Update(ctx context.Context, draft T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// EnrollmentOps are the join-record operations reachable from detail pages.
type EnrollmentOps interface {
	Enroll(ctx context.Context, studentID int64, courseIDs []int64) error
	DeleteEnrollment(ctx context.Context, id int64) error
}

// DetailLabels are the user-facing texts of a detail page.
type DetailLabels struct {
	Saved          string
	SaveFailed     string
	Deleted        string
	DeleteFailed   string
	RefreshFailed  string
	CollectionPath string
}

// DetailPage shows one record. Server is the last confirmed state; Draft
// holds local edits and is only reconciled with Server after a confirmed save
// or a re-fetch.
type DetailPage[T any] struct {
	source      Record[T]
	enrollments EnrollmentOps
	labels      DetailLabels
	notifier    Notifier
	navigator   Navigator
	logger      zerolog.Logger

	id     int64
	state  DetailState
	server T
	draft  T
	err    error
	reload reload
}

// NewDetailPage creates a detail page in the Loading state.
func NewDetailPage[T any](source Record[T], enrollments EnrollmentOps, labels DetailLabels, notifier Notifier, navigator Navigator, logger zerolog.Logger) *DetailPage[T] {
	return &DetailPage[T]{
		source:      source,
		enrollments: enrollments,
		labels:      labels,
		notifier:    notifier,
		navigator:   navigator,
		logger:      logger,
	}
}

// Load fetches the record with the id from the route. A 404 navigates to the
// not-found view and ends the page; other failures leave it in DetailFailed.
func (p *DetailPage[T]) Load(ctx context.Context, id int64) error {
	p.id = id
	p.state = DetailLoading

	record, err := p.source.Get(ctx, id)
	if dropped(ctx, err) {
		if err == nil {
			err = ctx.Err()
		}
		return err
	}
	if err != nil {
		if apperrors.IsNotFound(err) {
			p.state = DetailNotFound
			p.navigator.Navigate(NotFoundPath)
			return err
		}
		p.logger.Error().Err(err).Int64("id", id).Msg("Failed to load record")
		p.state = DetailFailed
		p.err = err
		return err
	}

	p.apply(*record)
	return nil
}

func (p *DetailPage[T]) apply(record T) {
	p.server = record
	p.draft = record
	p.state = DetailLoaded
	p.err = nil
}

// ReloadVia makes join-record mutations navigate to path instead of
// re-fetching in place; the view at path performs the re-fetch.
func (p *DetailPage[T]) ReloadVia(nav Navigator, path string) {
	p.reload = reload{nav: nav, path: path}
}

// refresh re-fetches the record after a join-record mutation.
func (p *DetailPage[T]) refresh(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if p.reload.deferred() {
		return nil
	}
	record, err := p.source.Get(ctx, p.id)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	p.apply(*record)
	return nil
}

func (p *DetailPage[T]) ready() error {
	if p.state != DetailLoaded {
		return ErrPageNotLoaded
	}
	return nil
}

// Edit changes the draft only; nothing is sent until Save.
func (p *DetailPage[T]) Edit(fn func(draft *T)) error {
	if err := p.ready(); err != nil {
		return err
	}
	fn(&p.draft)
	return nil
}

// Save sends the full draft. On success the merged response becomes both the
// confirmed record and the new draft; on failure the draft is kept as is.
func (p *DetailPage[T]) Save(ctx context.Context) error {
	if err := p.ready(); err != nil {
		return err
	}

	updated, err := p.source.Update(ctx, p.draft)
	if err != nil {
		if dropped(ctx, err) {
			return err
		}
		p.logger.Error().Err(err).Int64("id", p.id).Msg("Failed to save record")
		p.notifier.Error(apperrors.Message(err, p.labels.SaveFailed))
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	p.server = *updated
	p.draft = *updated
	p.notifier.Success(p.labels.Saved)
	return nil
}

// Delete removes the record once the user has confirmed, then navigates back
// to the collection. A failed delete stays on the page.
func (p *DetailPage[T]) Delete(ctx context.Context, confirmed bool) error {
	if err := p.ready(); err != nil {
		return err
	}
	if !confirmed {
		return ErrNotConfirmed
	}

	if err := p.source.Delete(ctx, p.id); err != nil {
		if dropped(ctx, err) {
			return err
		}
		p.logger.Error().Err(err).Int64("id", p.id).Msg("Failed to delete record")
		p.notifier.Error(apperrors.Message(err, p.labels.DeleteFailed))
		return err
	}

	p.notifier.Success(p.labels.Deleted)
	p.navigator.Navigate(p.labels.CollectionPath)
	return nil
}

// RemoveEnrollment deletes one join record by its own id and re-fetches the
// page record. A failed re-fetch is reported as *RefreshError: the enrollment
// is gone on the server even though the page could not show it.
func (p *DetailPage[T]) RemoveEnrollment(ctx context.Context, enrollmentID int64) error {
	if err := p.ready(); err != nil {
		return err
	}

	if err := p.enrollments.DeleteEnrollment(ctx, enrollmentID); err != nil {
		if dropped(ctx, err) {
			return err
		}
		p.logger.Error().Err(err).Int64("enrollmentID", enrollmentID).Msg("Failed to remove enrollment")
		p.notifier.Error(apperrors.Message(err, "Could not remove enrollment"))
		return err
	}

	if err := p.refresh(ctx); err != nil {
		return p.refreshFailed(ctx, "remove enrollment", err)
	}

	p.notifier.Success("Enrollment removed")
	return nil
}

func (p *DetailPage[T]) refreshFailed(ctx context.Context, op string, err error) error {
	if dropped(ctx, err) {
		return err
	}
	p.logger.Error().Err(err).Int64("id", p.id).Str("op", op).Msg("Failed to refresh record after mutation")
	p.notifier.Error(apperrors.Message(err, p.labels.RefreshFailed))
	return &RefreshError{Op: op, Err: err}
}

// ID returns the record id taken from the route.
func (p *DetailPage[T]) ID() int64 { return p.id }

// State returns the current lifecycle state.
func (p *DetailPage[T]) State() DetailState { return p.state }

// Server returns the last confirmed record.
func (p *DetailPage[T]) Server() T { return p.server }

// Draft returns the record with local edits applied.
func (p *DetailPage[T]) Draft() T { return p.draft }

// Err returns the load failure in DetailFailed.
func (p *DetailPage[T]) Err() error { return p.err }

// IsRefreshError reports whether err is a mutation whose follow-up refresh failed.
func IsRefreshError(err error) bool {
	return errors.Is(err, ErrRefreshFailed)
}
