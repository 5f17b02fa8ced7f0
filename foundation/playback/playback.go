// Package playback steps through the construction of a merkle tree on a
// timer. Every session owns its own ticker so a caller stopping one session
// never affects another.
package playback

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ardanlabs/merkleviz/foundation/merkle"
	"github.com/google/uuid"
)

// ErrInvalidInterval is returned when a session is started with an interval
// that is not positive.
var ErrInvalidInterval = errors.New("interval must be greater than zero")

// Session delivers each step of a tree construction over its channel, one
// per interval. The first step is delivered immediately.
type Session struct {
	ID       string
	Interval time.Duration

	ch       chan merkle.PartialTree
	shut     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Start constructs a session and begins delivering the steps. The channel
// returned by C is closed once the final step is delivered, the context
// is cancelled or Stop is called.
func Start(ctx context.Context, steps []merkle.PartialTree, interval time.Duration) (*Session, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	s := Session{
		ID:       uuid.NewString(),
		Interval: interval,
		ch:       make(chan merkle.PartialTree),
		shut:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	go s.run(ctx, steps)

	return &s, nil
}

// C returns the channel steps are delivered over.
func (s *Session) C() <-chan merkle.PartialTree {
	return s.ch
}

// Done returns a channel that is closed when the session has stopped.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Stop halts the session and releases its ticker. It waits for the session
// goroutine to terminate and is safe to call more than once.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.shut)
	})
	<-s.done
}

// run delivers the steps while the session is alive.
func (s *Session) run(ctx context.Context, steps []merkle.PartialTree) {
	defer close(s.done)
	defer close(s.ch)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for i, step := range steps {
		if i > 0 {
			select {
			case <-ticker.C:
			case <-s.shut:
				return
			case <-ctx.Done():
				return
			}
		}

		select {
		case s.ch <- step:
		case <-s.shut:
			return
		case <-ctx.Done():
			return
		}
	}
}

// =============================================================================

// Sessions tracks the set of running sessions so they can be stopped by id
// or all at once during shutdown.
type Sessions struct {
	mu sync.Mutex
	m  map[string]*Session
}

// NewSessions constructs an empty set of sessions.
func NewSessions() *Sessions {
	return &Sessions{
		m: make(map[string]*Session),
	}
}

// Start starts a new session and tracks it until it finishes.
func (ss *Sessions) Start(ctx context.Context, steps []merkle.PartialTree, interval time.Duration) (*Session, error) {
	s, err := Start(ctx, steps, interval)
	if err != nil {
		return nil, err
	}

	ss.mu.Lock()
	ss.m[s.ID] = s
	ss.mu.Unlock()

	go func() {
		<-s.Done()

		ss.mu.Lock()
		delete(ss.m, s.ID)
		ss.mu.Unlock()
	}()

	return s, nil
}

// Stop stops the session for the specified id. It reports false if no such
// session is running.
func (ss *Sessions) Stop(id string) bool {
	ss.mu.Lock()
	s, exists := ss.m[id]
	delete(ss.m, id)
	ss.mu.Unlock()

	if !exists {
		return false
	}

	s.Stop()
	return true
}

// Len returns the number of running sessions.
func (ss *Sessions) Len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	return len(ss.m)
}

// Shutdown stops every running session.
func (ss *Sessions) Shutdown() {
	ss.mu.Lock()
	sessions := make([]*Session, 0, len(ss.m))
	for _, s := range ss.m {
		sessions = append(sessions, s)
	}
	ss.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}
}
