package analytics

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultWriteTimeout = 2 * time.Second

// EventStore is the persistence the recorder writes to.
type EventStore interface {
	Insert(ctx context.Context, e SearchEvent) error
	Recent(ctx context.Context, limit int) ([]SearchEvent, error)
}

// Recorder writes search events in the background. A nil *Recorder is valid
// and records nothing.
type Recorder struct {
	store   EventStore
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewRecorder(store EventStore) *Recorder {
	return &Recorder{store: store, timeout: defaultWriteTimeout}
}

// Enabled reports whether events are persisted.
func (r *Recorder) Enabled() bool {
	return r != nil && r.store != nil
}

// Track stores the event asynchronously. Failures are logged and dropped.
func (r *Recorder) Track(e SearchEvent) {
	if !r.Enabled() {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		if err := r.store.Insert(ctx, e); err != nil {
			log.Warn().Err(err).Str("event_id", e.ID.String()).Msg("failed to record search event")
		}
	}()
}

// Recent lists stored events, clamping limit to [1, MaxRecentLimit].
func (r *Recorder) Recent(ctx context.Context, limit int) ([]SearchEvent, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	return r.store.Recent(ctx, limit)
}

// Wait blocks until pending writes finish or ctx ends.
func (r *Recorder) Wait(ctx context.Context) {
	if !r.Enabled() {
		return
	}
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}
