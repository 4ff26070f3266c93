package disambiguation

import (
	"sync"
	"time"

	"github.com/NekroDarkmoon/Zen.A5E/internal/interaction"
)

// routeKey groups the sessions one requester has open in one conversation
type routeKey struct {
	conversation interaction.Conversation
	userID       string
}

type routeGroup struct {
	sessions []*Session // oldest first
	seen     map[string]struct{}
}

// router hands each user message to at most one session. Every session
// subscribed to a conversation receives the same message, so the first
// goroutine to route it decides, newest session first, and the others
// skip it by message id.
type router struct {
	mu     sync.Mutex
	groups map[routeKey]*routeGroup
}

func newRouter() *router {
	return &router{groups: make(map[routeKey]*routeGroup)}
}

func (r *router) join(key routeKey, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.groups[key]
	if g == nil {
		g = &routeGroup{seen: make(map[string]struct{})}
		r.groups[key] = g
	}
	g.sessions = append(g.sessions, s)
}

func (r *router) leave(key routeKey, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.groups[key]
	if g == nil {
		return
	}
	for i, other := range g.sessions {
		if other == s {
			g.sessions = append(g.sessions[:i], g.sessions[i+1:]...)
			break
		}
	}
	if len(g.sessions) == 0 {
		delete(r.groups, key)
	}
}

// route offers msg to the requester's sessions until one accepts it. A
// message is routed once no matter how many subscribers saw it.
func (r *router) route(key routeKey, msg interaction.Message, now time.Time) {
	if msg.Author.UserID != key.userID {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.groups[key]
	if g == nil {
		return
	}
	if msg.ID != "" {
		if _, ok := g.seen[msg.ID]; ok {
			return
		}
		g.seen[msg.ID] = struct{}{}
	}

	for i := len(g.sessions) - 1; i >= 0; i-- {
		if g.sessions[i].Offer(msg, now) {
			return
		}
	}
}
