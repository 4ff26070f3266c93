package disambiguation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/NekroDarkmoon/Zen.A5E/internal/interaction"
)

func TestRouterDeliversEachMessageOnce(t *testing.T) {
	r := newRouter()
	conv := interaction.NewMemoryConversation()
	key := routeKey{conversation: conv, userID: alice.UserID}

	older := newSession("s1", alice, testCandidates(), t0, time.Minute)
	newer := newSession("s2", alice, testCandidates(), t0, time.Minute)
	r.join(key, older)
	r.join(key, newer)

	msg := interaction.Message{ID: "m1", Author: alice, Content: "1"}
	r.route(key, msg, t0)
	// A second subscriber seeing the same message must not close older
	r.route(key, msg, t0)

	assert.Equal(t, StateResolved, newer.State())
	assert.Equal(t, StatePending, older.State())

	r.route(key, interaction.Message{ID: "m2", Author: alice, Content: "2"}, t0)
	assert.Equal(t, StateResolved, older.State())
	assert.Equal(t, "Fireball", older.Selected().Name)
}

func TestRouterIgnoresOtherUsersAndConversations(t *testing.T) {
	r := newRouter()
	conv := interaction.NewMemoryConversation()
	other := interaction.NewMemoryConversation()
	key := routeKey{conversation: conv, userID: alice.UserID}

	s := newSession("s1", alice, testCandidates(), t0, time.Minute)
	r.join(key, s)

	r.route(key, interaction.Message{ID: "m1", Author: bob, Content: "1"}, t0)
	r.route(routeKey{conversation: other, userID: alice.UserID}, interaction.Message{ID: "m2", Author: alice, Content: "1"}, t0)
	assert.Equal(t, StatePending, s.State())
}

func TestRouterLeaveDropsEmptyGroups(t *testing.T) {
	r := newRouter()
	key := routeKey{conversation: interaction.NewMemoryConversation(), userID: alice.UserID}

	s := newSession("s1", alice, testCandidates(), t0, time.Minute)
	r.join(key, s)
	r.route(key, interaction.Message{ID: "m1", Author: alice, Content: "what?"}, t0)
	r.leave(key, s)
	r.leave(key, s)

	assert.Empty(t, r.groups)
}
