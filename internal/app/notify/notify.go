// Package notify keeps flash notifications per visitor session. A flash is
// pushed while handling a mutation and shown once on the next rendered page.
package notify

import (
	"context"
	"errors"
)

// Kind is the style of a flash.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// MaxQueued bounds the flashes kept per session; older ones are dropped first.
const MaxQueued = 20

// ErrNoSession is returned when a flash is pushed without a session id.
var ErrNoSession = errors.New("no session")

// Flash is one notification.
type Flash struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// IsError reports whether the flash is an error.
func (f Flash) IsError() bool { return f.Kind == KindError }

// Store holds queued flashes per session.
type Store interface {
	Push(ctx context.Context, session string, f Flash) error
	// Pop returns and removes every queued flash for session, oldest first.
	Pop(ctx context.Context, session string) ([]Flash, error)
}
