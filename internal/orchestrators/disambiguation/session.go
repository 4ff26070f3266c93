package disambiguation

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/interaction"
)

// State is the lifecycle state of a session
type State string

// Session states. A session leaves StatePending exactly once.
const (
	StatePending   State = "pending"
	StateResolved  State = "resolved"
	StateExpired   State = "expired"
	StateCancelled State = "cancelled"
)

// CancelKeyword lets the requester close the prompt without choosing
const CancelKeyword = "cancel"

// Session is one pending choice among candidates. It is owned by the
// lookup that created it and is never shared.
type Session struct {
	id         string
	requester  entities.Requester
	candidates []*entities.Record
	createdAt  time.Time
	timeout    time.Duration

	mu       sync.Mutex
	state    State
	selected *entities.Record
	closedAt time.Time
	done     chan struct{}
}

// newSession snapshots candidates; later changes to the caller's slice do
// not affect the session.
func newSession(id string, requester entities.Requester, candidates []*entities.Record, createdAt time.Time, timeout time.Duration) *Session {
	return &Session{
		id:         id,
		requester:  requester,
		candidates: append([]*entities.Record(nil), candidates...),
		createdAt:  createdAt,
		timeout:    timeout,
		state:      StatePending,
		done:       make(chan struct{}),
	}
}

// ID returns the session id
func (s *Session) ID() string { return s.id }

// Candidates returns the presented candidates in display order
func (s *Session) Candidates() []*entities.Record {
	return append([]*entities.Record(nil), s.candidates...)
}

// State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Selected returns the chosen candidate, nil unless resolved
func (s *Session) Selected() *entities.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Done is closed when the session leaves StatePending
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Offer applies a user message. It returns true only when the message
// closed the session: it must come from the requester and be a 1-based
// index into the candidates, a candidate name (ignoring case), or the
// cancel keyword. Everything else is ignored.
func (s *Session) Offer(msg interaction.Message, now time.Time) bool {
	if !s.requester.Same(msg.Author) {
		return false
	}

	choice, cancel, ok := s.match(msg.Content)
	if !ok {
		return false
	}
	if cancel {
		return s.finish(StateCancelled, nil, now)
	}
	return s.finish(StateResolved, choice, now)
}

// Expire closes a pending session as expired
func (s *Session) Expire(now time.Time) bool {
	return s.finish(StateExpired, nil, now)
}

// Cancel closes a pending session as cancelled
func (s *Session) Cancel(now time.Time) bool {
	return s.finish(StateCancelled, nil, now)
}

func (s *Session) finish(state State, selected *entities.Record, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePending {
		return false
	}
	s.state = state
	s.selected = selected
	s.closedAt = now
	close(s.done)
	return true
}

func (s *Session) match(content string) (*entities.Record, bool, bool) {
	text := strings.TrimSpace(content)
	if text == "" {
		return nil, false, false
	}

	if n, err := strconv.Atoi(text); err == nil {
		if n < 1 || n > len(s.candidates) {
			return nil, false, false
		}
		return s.candidates[n-1], false, true
	}

	for _, c := range s.candidates {
		if c.MatchesName(text) {
			return c, false, true
		}
	}

	if strings.EqualFold(text, CancelKeyword) {
		return nil, true, true
	}
	return nil, false, false
}

// pending reports how long the session was open
func (s *Session) pending() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closedAt.IsZero() {
		return 0
	}
	return s.closedAt.Sub(s.createdAt)
}
