// Package resolver resolves a detail view: the primary entry first, then every
// film it references, fetched concurrently.
//
// Each call to Resolve is an attempt. A newer attempt cancels the older one's
// context, and results of an older attempt are never committed. Within an
// attempt the first failing film fetch cancels its siblings and the attempt
// ends Failed without exposing any film.
package resolver

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sksahoo1435/scintillate-project/internal/logging"
	"github.com/sksahoo1435/scintillate-project/internal/swapi"
)

// ErrSuperseded is returned by Resolve when a newer attempt (or Reset) took
// over before this one finished.
var ErrSuperseded = errors.New("resolution superseded")

type Status int

const (
	Idle Status = iota
	Loading
	Resolved
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

type Gateway interface {
	FetchEntry(ctx context.Context, id string) (swapi.Entry, error)
	FetchDependent(ctx context.Context, url string) (swapi.Film, error)
}

// Snapshot is the detail view's state. Films is ordered by the entry's
// reference order, not completion order, and is only set once Resolved.
type Snapshot struct {
	Status  Status
	ID      string
	Attempt uint64
	Entry   *swapi.Entry
	Films   []swapi.Film
	Err     error
}

// Message is the human-readable failure, or "" when not Failed.
func (s Snapshot) Message() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

type Option func(*Resolver)

// WithFanOutLimit caps concurrent film fetches per attempt. Zero means one
// goroutine per reference.
func WithFanOutLimit(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.limit = n
		}
	}
}

type Resolver struct {
	gateway Gateway
	limit   int

	mu      sync.Mutex
	attempt uint64
	cancel  context.CancelFunc
	snap    Snapshot
}

func New(gateway Gateway, opts ...Option) *Resolver {
	r := &Resolver{gateway: gateway}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

// Reset abandons any in-flight attempt and returns to Idle.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.attempt++
	r.snap = Snapshot{Status: Idle, Attempt: r.attempt}
}

// Resolve runs a full attempt for id and returns its terminal snapshot
// (Resolved or Failed). If the attempt was superseded the current snapshot
// is returned together with ErrSuperseded.
func (r *Resolver) Resolve(ctx context.Context, id string) (Snapshot, error) {
	attemptCtx, attempt := r.begin(ctx, id)
	defer r.finish(attempt)

	logger := logging.FromContext(ctx).With().
		Str("attempt_id", uuid.NewString()).
		Str("entry_id", id).
		Logger()
	start := time.Now()
	logger.Debug().Msg("resolving entry")

	entry, err := r.gateway.FetchEntry(attemptCtx, id)
	if err != nil {
		logger.Warn().Err(err).Msg("entry fetch failed")
		return r.commit(attempt, Snapshot{Status: Failed, ID: id, Err: err})
	}
	if err := r.progress(attempt, entry); err != nil {
		logger.Debug().Msg("attempt superseded after entry fetch")
		return r.Snapshot(), err
	}

	refs := entry.Films
	if len(refs) == 0 {
		return r.commit(attempt, Snapshot{Status: Resolved, ID: id, Entry: &entry, Films: []swapi.Film{}})
	}

	films := make([]swapi.Film, len(refs))
	g, gctx := errgroup.WithContext(attemptCtx)
	if r.limit > 0 {
		g.SetLimit(r.limit)
	}
	for i, ref := range refs {
		g.Go(func() error {
			film, err := r.gateway.FetchDependent(gctx, ref)
			if err != nil {
				return err
			}
			films[i] = film
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Warn().Err(err).Int("references", len(refs)).Msg("film fetch failed")
		return r.commit(attempt, Snapshot{Status: Failed, ID: id, Entry: &entry, Err: err})
	}

	logger.Debug().
		Int("films", len(films)).
		Dur("duration", time.Since(start)).
		Msg("entry resolved")
	return r.commit(attempt, Snapshot{Status: Resolved, ID: id, Entry: &entry, Films: films})
}

func (r *Resolver) begin(ctx context.Context, id string) (context.Context, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}
	attemptCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.attempt++
	r.snap = Snapshot{Status: Loading, ID: id, Attempt: r.attempt}
	return attemptCtx, r.attempt
}

func (r *Resolver) finish(attempt uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if attempt == r.attempt && r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

func (r *Resolver) progress(attempt uint64, entry swapi.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if attempt != r.attempt {
		return ErrSuperseded
	}
	r.snap.Entry = &entry
	return nil
}

func (r *Resolver) commit(attempt uint64, snap Snapshot) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if attempt != r.attempt {
		return r.snap, ErrSuperseded
	}
	snap.Attempt = attempt
	r.snap = snap
	return snap, nil
}
