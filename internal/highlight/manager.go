package highlight

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/uiprobe/uiprobe/internal/ui"
)

// DefaultMaxSessions caps concurrently live overlay sessions. Each
// session owns real OS windows, so rapid repeated highlight calls must
// not grow without bound.
const DefaultMaxSessions = 16

// Session is one tracked highlight: a set of overlay windows plus the
// timer that tears them down. Every session guarantees full window
// teardown on completion, whether the timer fired, the session was
// cancelled, or the whole manager drained.
type Session struct {
	ID       string
	done     chan struct{}
	cancel   context.CancelFunc
	teardown func()
	once     sync.Once
}

// Done is closed after the session's windows are gone.
func (s *Session) Done() <-chan struct{} { return s.done }

// Cancel tears the session down early. Safe to call more than once.
func (s *Session) Cancel() { s.cancel() }

func (s *Session) finish() {
	s.once.Do(func() {
		s.teardown()
		close(s.done)
	})
}

// Manager owns all highlight sessions. Dispatched sessions are tracked,
// cancellable, and awaitable rather than fully detached; concurrent
// sessions are otherwise uncoordinated with each other.
type Manager struct {
	presenter Presenter
	max       int

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager over a presenter. max <= 0 uses
// DefaultMaxSessions.
func NewManager(presenter Presenter, max int) *Manager {
	if max <= 0 {
		max = DefaultMaxSessions
	}
	return &Manager{
		presenter: presenter,
		max:       max,
		sessions:  make(map[string]*Session),
	}
}

// Launch shows overlays and returns the running session. The overlay
// windows are created synchronously on the caller's UI context; their
// lifetime timer runs independently, so the caller may either return
// immediately (fire-and-forget) or block on Session.Done (awaited mode).
func (m *Manager) Launch(tok ui.Token, overlays []Overlay, duration time.Duration) (*Session, error) {
	if duration <= 0 {
		duration = DefaultDuration
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:     ulid.Make().String(),
		done:   make(chan struct{}),
		cancel: cancel,
	}

	// Register before showing so the cap holds under concurrent Launch
	// calls; a failed Show releases the slot again.
	m.mu.Lock()
	if len(m.sessions) >= m.max {
		m.mu.Unlock()
		cancel()
		return nil, fmt.Errorf("highlight session limit reached (%d live)", m.max)
	}
	m.sessions[s.ID] = s
	m.mu.Unlock()

	teardown, err := m.presenter.Show(tok, overlays)
	if err != nil {
		m.mu.Lock()
		delete(m.sessions, s.ID)
		m.mu.Unlock()
		cancel()
		return nil, fmt.Errorf("present overlays: %w", err)
	}
	s.teardown = teardown

	go func() {
		timer := time.NewTimer(duration)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
		}
		s.finish()
		m.mu.Lock()
		delete(m.sessions, s.ID)
		m.mu.Unlock()
	}()

	return s, nil
}

// Present shows overlays and blocks until their teardown — the
// synchronous-contract variant: all created windows are gone by return.
func (m *Manager) Present(tok ui.Token, overlays []Overlay, duration time.Duration) error {
	s, err := m.Launch(tok, overlays, duration)
	if err != nil {
		return err
	}
	<-s.Done()
	return nil
}

// Live returns the number of sessions still on screen.
func (m *Manager) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// CancelAll tears down every live session without waiting for timers.
func (m *Manager) CancelAll() {
	for _, s := range m.snapshot() {
		s.Cancel()
	}
}

// Drain waits for all live sessions to finish, or for ctx.
func (m *Manager) Drain(ctx context.Context) error {
	for _, s := range m.snapshot() {
		select {
		case <-s.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (m *Manager) snapshot() []*Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}
