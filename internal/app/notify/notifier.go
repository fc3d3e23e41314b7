package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Notifier queues flashes for one session. It satisfies pages.Notifier.
type Notifier struct {
	ctx     context.Context
	store   Store
	session string
	logger  zerolog.Logger
}

// NewNotifier binds store to one visitor session for the lifetime of ctx.
func NewNotifier(ctx context.Context, store Store, session string, logger zerolog.Logger) *Notifier {
	return &Notifier{
		ctx:     context.WithoutCancel(ctx),
		store:   store,
		session: session,
		logger:  logger,
	}
}

// Success queues a success flash.
func (n *Notifier) Success(message string) {
	n.push(Flash{Kind: KindSuccess, Message: message})
}

// Error queues an error flash.
func (n *Notifier) Error(message string) {
	n.push(Flash{Kind: KindError, Message: message})
}

func (n *Notifier) push(f Flash) {
	if err := n.store.Push(n.ctx, n.session, f); err != nil {
		n.logger.Warn().Err(err).Str("kind", string(f.Kind)).Msg("Failed to queue notification")
	}
}

// Drain returns the queued flashes and clears them.
func (n *Notifier) Drain() []Flash {
	flashes, err := n.store.Pop(n.ctx, n.session)
	if err != nil {
		n.logger.Warn().Err(err).Msg("Failed to read notifications")
		return nil
	}
	return flashes
}
