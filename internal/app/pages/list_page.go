package pages

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yigit/skillhub/internal/pkg/apperrors"
)

// ListState is the lifecycle of a list page.
type ListState int

const (
	ListEmpty ListState = iota
	ListLoading
	ListLoaded
	ListError
)

func (s ListState) String() string {
	switch s {
	case ListEmpty:
		return "empty"
	case ListLoading:
		return "loading"
	case ListLoaded:
		return "loaded"
	case ListError:
		return "error"
	}
	return "unknown"
}

// Collection is the server-side collection behind a list page.
type Collection[T, P any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, payload P) error
}

// ListLabels are the user-facing texts of a list page.
type ListLabels struct {
	Created      string
	CreateFailed string
}

// ListPage is a collection view with a creation modal. Its rows are always
// server-derived: a successful create re-fetches instead of inserting locally.
type ListPage[T, P any] struct {
	source   Collection[T, P]
	labels   ListLabels
	notifier Notifier
	logger   zerolog.Logger

	state     ListState
	items     []T
	err       error
	modalOpen bool
	reload    reload
}

// NewListPage creates a list page in the Empty state.
func NewListPage[T, P any](source Collection[T, P], labels ListLabels, notifier Notifier, logger zerolog.Logger) *ListPage[T, P] {
	return &ListPage[T, P]{
		source:   source,
		labels:   labels,
		notifier: notifier,
		logger:   logger,
	}
}

// Load fetches the collection. The returned order is kept as is.
func (p *ListPage[T, P]) Load(ctx context.Context) error {
	prevState := p.state
	p.state = ListLoading

	items, err := p.source.List(ctx)
	if dropped(ctx, err) {
		p.state = prevState
		if err == nil {
			err = ctx.Err()
		}
		return err
	}
	if err != nil {
		p.logger.Error().Err(err).Msg("Failed to load collection")
		p.state = ListError
		p.items = nil
		p.err = err
		return err
	}

	p.state = ListLoaded
	p.items = items
	p.err = nil
	return nil
}

// ReloadVia makes a successful Create navigate to path instead of re-fetching
// in place; the view at path performs the one re-fetch.
func (p *ListPage[T, P]) ReloadVia(nav Navigator, path string) {
	p.reload = reload{nav: nav, path: path}
}

// Create posts payload. On success the collection is re-fetched once, the
// modal closes and a success notification fires. On failure the modal stays
// open, the rows are untouched and an error notification fires.
func (p *ListPage[T, P]) Create(ctx context.Context, payload P) error {
	if err := p.source.Create(ctx, payload); err != nil {
		if dropped(ctx, err) {
			return err
		}
		p.logger.Error().Err(err).Msg("Failed to create record")
		p.modalOpen = true
		p.notifier.Error(apperrors.Message(err, p.labels.CreateFailed))
		return err
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if !p.reload.deferred() {
		if err := p.Load(ctx); err != nil && dropped(ctx, err) {
			return err
		}
	}
	p.modalOpen = false
	p.notifier.Success(p.labels.Created)
	return nil
}

// State returns the current lifecycle state.
func (p *ListPage[T, P]) State() ListState { return p.state }

// Items returns the rows to render.
func (p *ListPage[T, P]) Items() []T { return p.items }

// Err returns the last load error, if any.
func (p *ListPage[T, P]) Err() error { return p.err }

// IsEmpty reports whether the "no records" placeholder should be shown.
// It is never true while rows are present.
func (p *ListPage[T, P]) IsEmpty() bool {
	return p.state == ListLoaded && len(p.items) == 0
}

// ModalOpen reports whether the creation modal is shown.
func (p *ListPage[T, P]) ModalOpen() bool { return p.modalOpen }

// OpenModal shows the creation modal.
func (p *ListPage[T, P]) OpenModal() { p.modalOpen = true }
