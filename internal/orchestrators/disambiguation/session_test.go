package disambiguation

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/interaction"
)

var (
	alice = entities.Requester{UserID: "alice", ChannelID: "c1"}
	bob   = entities.Requester{UserID: "bob", ChannelID: "c1"}
	t0    = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func testCandidates() []*entities.Record {
	return []*entities.Record{{Name: "Fire Bolt"}, {Name: "Fireball"}}
}

func TestSessionOfferByIndexAndName(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected string
	}{
		{"first index", "1", "Fire Bolt"},
		{"second index with spaces", " 2 ", "Fireball"},
		{"exact name", "fireball", "Fireball"},
		{"exact name with space", "FIRE BOLT", "Fire Bolt"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			candidates := testCandidates()
			s := newSession("s1", alice, candidates, t0, time.Minute)

			assert.True(t, s.Offer(interaction.Message{Author: alice, Content: tc.content}, t0))
			assert.Equal(t, StateResolved, s.State())
			require.NotNil(t, s.Selected())
			assert.Equal(t, tc.expected, s.Selected().Name)

			// Selection comes from the original snapshot
			found := false
			for _, c := range candidates {
				if c == s.Selected() {
					found = true
				}
			}
			assert.True(t, found)
		})
	}
}

func TestSessionIgnoresInvalidSelections(t *testing.T) {
	s := newSession("s1", alice, testCandidates(), t0, time.Minute)

	for _, content := range []string{"0", "3", "-1", "fire", "", "   ", "fireballs"} {
		assert.False(t, s.Offer(interaction.Message{Author: alice, Content: content}, t0), content)
	}
	assert.Equal(t, StatePending, s.State())
}

func TestSessionIgnoresOtherUsers(t *testing.T) {
	s := newSession("s1", alice, testCandidates(), t0, time.Minute)

	assert.False(t, s.Offer(interaction.Message{Author: bob, Content: "1"}, t0))
	assert.False(t, s.Offer(interaction.Message{Author: bob, Content: "cancel"}, t0))
	assert.Equal(t, StatePending, s.State())

	assert.True(t, s.Offer(interaction.Message{Author: alice, Content: "2"}, t0))
	assert.Equal(t, "Fireball", s.Selected().Name)
}

func TestSessionCancelKeyword(t *testing.T) {
	s := newSession("s1", alice, testCandidates(), t0, time.Minute)

	assert.True(t, s.Offer(interaction.Message{Author: alice, Content: "Cancel"}, t0.Add(time.Second)))
	assert.Equal(t, StateCancelled, s.State())
	assert.Nil(t, s.Selected())
	assert.Equal(t, time.Second, s.pending())
}

func TestSessionNameBeatsCancelKeyword(t *testing.T) {
	s := newSession("s1", alice, []*entities.Record{{Name: "Cancel"}, {Name: "Counter"}}, t0, time.Minute)

	assert.True(t, s.Offer(interaction.Message{Author: alice, Content: "cancel"}, t0))
	assert.Equal(t, StateResolved, s.State())
	assert.Equal(t, "Cancel", s.Selected().Name)
}

func TestSessionExactlyOnce(t *testing.T) {
	s := newSession("s1", alice, testCandidates(), t0, time.Minute)

	assert.True(t, s.Expire(t0.Add(time.Minute)))
	assert.False(t, s.Offer(interaction.Message{Author: alice, Content: "1"}, t0.Add(time.Minute)))
	assert.False(t, s.Cancel(t0))
	assert.Equal(t, StateExpired, s.State())
	assert.Nil(t, s.Selected())

	select {
	case <-s.Done():
	default:
		t.Fatal("done not closed")
	}
}

func TestSessionConcurrentOffersResolveOnce(t *testing.T) {
	s := newSession("s1", alice, testCandidates(), t0, time.Minute)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			content := "1"
			if i%2 == 0 {
				content = "2"
			}
			ok := s.Offer(interaction.Message{Author: alice, Content: content}, t0)
			if i%7 == 0 {
				ok = s.Expire(t0) || ok
			}
			if ok {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	assert.NotEqual(t, StatePending, s.State())
}

func TestSessionSnapshotIsolation(t *testing.T) {
	candidates := testCandidates()
	s := newSession("s1", alice, candidates, t0, time.Minute)

	candidates[0] = &entities.Record{Name: "Replaced"}
	assert.Equal(t, "Fire Bolt", s.Candidates()[0].Name)
}
