package disambiguation_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	"github.com/NekroDarkmoon/Zen.A5E/internal/interaction"
	"github.com/NekroDarkmoon/Zen.A5E/internal/orchestrators/disambiguation"
	"github.com/NekroDarkmoon/Zen.A5E/internal/pkg/clock"
	"github.com/NekroDarkmoon/Zen.A5E/internal/pkg/idgen"
	"github.com/NekroDarkmoon/Zen.A5E/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	clock      *clock.Fake
	conv       *interaction.MemoryConversation
	service    disambiguation.Service
	requester  entities.Requester
	candidates []*entities.Record
	ctx        context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.clock = clock.NewFake(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	s.conv = interaction.NewMemoryConversation()
	s.requester = testutils.TestRequester("alice")
	s.candidates = []*entities.Record{testutils.FireBoltRecord(), testutils.FireballRecord()}
	s.ctx = context.Background()

	svc, err := disambiguation.NewOrchestrator(&disambiguation.Config{
		Clock:       s.clock,
		IDGenerator: idgen.NewSequential("sess"),
	})
	s.Require().NoError(err)
	s.service = svc
}

type result struct {
	outcome *disambiguation.Outcome
	err     error
}

// start runs Disambiguate in the background and waits for the prompt
func (s *OrchestratorTestSuite) start(ctx context.Context, timeout time.Duration) (<-chan result, interaction.SentMessage) {
	done := make(chan result, 1)
	go func() {
		out, err := s.service.Disambiguate(ctx, &disambiguation.Input{
			Requester:    s.requester,
			EntityType:   entities.EntityTypeSpell,
			Query:        "fire",
			Candidates:   s.candidates,
			Conversation: s.conv,
			Timeout:      timeout,
		})
		done <- result{out, err}
	}()

	var prompt interaction.SentMessage
	select {
	case prompt = <-s.conv.Sent():
	case <-time.After(2 * time.Second):
		s.FailNow("prompt was not sent")
	}
	return done, prompt
}

func (s *OrchestratorTestSuite) wait(done <-chan result) result {
	select {
	case r := <-done:
		return r
	case <-time.After(2 * time.Second):
		s.FailNow("session did not finish")
		return result{}
	}
}

func (s *OrchestratorTestSuite) TestPromptListsCandidatesInOrder() {
	done, prompt := s.start(s.ctx, time.Minute)

	s.Require().Len(prompt.Reply.Segments, 1)
	s.Equal("**1.** Fire Bolt\n**2.** Fireball", prompt.Reply.Segments[0].Description)
	s.Contains(prompt.Reply.Segments[0].Title, `"fire"`)
	s.Equal("Expires in 60 seconds", prompt.Reply.Segments[0].Footer)

	s.conv.Deliver(interaction.Message{Author: s.requester, Content: "1"})
	r := s.wait(done)
	s.Require().NoError(r.err)
	s.Equal(disambiguation.StateResolved, r.outcome.State)
	s.Same(s.candidates[0], r.outcome.Selected)
	s.Equal("sess_1", r.outcome.SessionID)
}

func (s *OrchestratorTestSuite) TestSelectionEditsPromptAndReleasesSubscription() {
	done, prompt := s.start(s.ctx, time.Minute)

	s.conv.Deliver(interaction.Message{Author: s.requester, Content: "Fireball"})
	r := s.wait(done)
	s.Require().NoError(r.err)
	s.Same(s.candidates[1], r.outcome.Selected)

	edits := s.conv.Edits(prompt.ID)
	s.Require().Len(edits, 1)
	s.Equal("Selected **Fireball**.", edits[0].Content)
	s.Empty(edits[0].Segments)
	s.Equal(0, s.conv.Subscribers())
}

func (s *OrchestratorTestSuite) TestOtherUsersAndGarbageAreIgnored() {
	done, _ := s.start(s.ctx, time.Minute)

	s.conv.Deliver(interaction.Message{Author: testutils.TestRequester("bob"), Content: "2"})
	s.conv.Deliver(interaction.Message{Author: s.requester, Content: "7"})
	s.conv.Deliver(interaction.Message{Author: s.requester, Content: "what?"})
	s.conv.Deliver(interaction.Message{Author: s.requester, Content: "1"})

	r := s.wait(done)
	s.Require().NoError(r.err)
	s.Equal("Fire Bolt", r.outcome.Selected.Name)
}

func (s *OrchestratorTestSuite) TestTimeoutExpires() {
	done, prompt := s.start(s.ctx, 30*time.Second)

	s.Require().Eventually(func() bool { return s.clock.Waiters() == 1 }, 2*time.Second, time.Millisecond)
	s.clock.Advance(29 * time.Second)
	select {
	case <-done:
		s.FailNow("expired early")
	case <-time.After(20 * time.Millisecond):
	}

	s.clock.Advance(time.Second)
	r := s.wait(done)
	s.Require().NoError(r.err)
	s.Equal(disambiguation.StateExpired, r.outcome.State)
	s.Nil(r.outcome.Selected)
	s.Equal("Selection window closed.", s.conv.Edits(prompt.ID)[0].Content)
	s.Equal(0, s.conv.Subscribers())
}

func (s *OrchestratorTestSuite) TestLateSelectionAfterExpiryIsIgnored() {
	done, _ := s.start(s.ctx, time.Second)

	s.Require().Eventually(func() bool { return s.clock.Waiters() == 1 }, 2*time.Second, time.Millisecond)
	s.clock.Advance(time.Second)
	r := s.wait(done)
	s.Equal(disambiguation.StateExpired, r.outcome.State)

	// Nobody is listening any more
	s.conv.Deliver(interaction.Message{Author: s.requester, Content: "1"})
	s.Equal(disambiguation.StateExpired, r.outcome.State)
	s.Nil(r.outcome.Selected)
}

func (s *OrchestratorTestSuite) TestContextCancellation() {
	ctx, cancel := context.WithCancel(s.ctx)
	done, prompt := s.start(ctx, time.Minute)

	cancel()
	r := s.wait(done)
	s.Require().NoError(r.err)
	s.Equal(disambiguation.StateCancelled, r.outcome.State)
	s.Nil(r.outcome.Selected)
	s.Equal("Selection cancelled.", s.conv.Edits(prompt.ID)[0].Content)
	s.Equal(0, s.conv.Subscribers())
}

func (s *OrchestratorTestSuite) TestCancelKeyword() {
	done, _ := s.start(s.ctx, time.Minute)

	s.conv.Deliver(interaction.Message{Author: s.requester, Content: "cancel"})
	r := s.wait(done)
	s.Equal(disambiguation.StateCancelled, r.outcome.State)
}

func (s *OrchestratorTestSuite) TestIndependentSessionsForSameUser() {
	other := interaction.NewMemoryConversation()

	var wg sync.WaitGroup
	outcomes := make([]*disambiguation.Outcome, 2)
	convs := []*interaction.MemoryConversation{s.conv, other}
	for i, conv := range convs {
		wg.Add(1)
		go func(i int, conv *interaction.MemoryConversation) {
			defer wg.Done()
			out, err := s.service.Disambiguate(s.ctx, &disambiguation.Input{
				Requester:    s.requester,
				Candidates:   s.candidates,
				Conversation: conv,
			})
			s.NoError(err)
			outcomes[i] = out
		}(i, conv)
	}

	<-s.conv.Sent()
	<-other.Sent()
	s.conv.Deliver(interaction.Message{Author: s.requester, Content: "1"})
	other.Deliver(interaction.Message{Author: s.requester, Content: "2"})
	wg.Wait()

	s.Equal("Fire Bolt", outcomes[0].Selected.Name)
	s.Equal("Fireball", outcomes[1].Selected.Name)
	s.NotEqual(outcomes[0].SessionID, outcomes[1].SessionID)
}

func (s *OrchestratorTestSuite) TestOneReplyClosesOneSessionInSharedConversation() {
	feats := []*entities.Record{
		{Name: "Fire Dancer", Description: "d"},
		{Name: "Fire Soul", Description: "s"},
	}

	run := func(candidates []*entities.Record) <-chan result {
		done := make(chan result, 1)
		go func() {
			out, err := s.service.Disambiguate(s.ctx, &disambiguation.Input{
				Requester:    s.requester,
				Candidates:   candidates,
				Conversation: s.conv,
			})
			done <- result{out, err}
		}()
		<-s.conv.Sent()
		return done
	}

	spells := run(s.candidates)
	featsDone := run(feats)

	// The newest prompt takes the reply
	s.conv.Deliver(interaction.Message{Author: s.requester, Content: "1"})
	r := s.wait(featsDone)
	s.Require().NoError(r.err)
	s.Equal(disambiguation.StateResolved, r.outcome.State)
	s.Same(feats[0], r.outcome.Selected)

	select {
	case <-spells:
		s.FailNow("one reply closed both sessions")
	case <-time.After(20 * time.Millisecond):
	}

	s.conv.Deliver(interaction.Message{Author: s.requester, Content: "2"})
	r = s.wait(spells)
	s.Require().NoError(r.err)
	s.Same(s.candidates[1], r.outcome.Selected)
	s.Equal(0, s.conv.Subscribers())
}

func (s *OrchestratorTestSuite) TestReplyFallsThroughToOlderSession() {
	feats := []*entities.Record{
		{Name: "Fire Dancer", Description: "d"},
		{Name: "Fire Soul", Description: "s"},
	}

	run := func(candidates []*entities.Record) <-chan result {
		done := make(chan result, 1)
		go func() {
			out, err := s.service.Disambiguate(s.ctx, &disambiguation.Input{
				Requester:    s.requester,
				Candidates:   candidates,
				Conversation: s.conv,
			})
			done <- result{out, err}
		}()
		<-s.conv.Sent()
		return done
	}

	spells := run(s.candidates)
	featsDone := run(feats)

	// Only the older prompt lists Fireball
	s.conv.Deliver(interaction.Message{Author: s.requester, Content: "fireball"})
	r := s.wait(spells)
	s.Same(s.candidates[1], r.outcome.Selected)

	select {
	case <-featsDone:
		s.FailNow("feat session closed by a spell name")
	case <-time.After(20 * time.Millisecond):
	}

	s.conv.Deliver(interaction.Message{Author: s.requester, Content: "cancel"})
	r = s.wait(featsDone)
	s.Equal(disambiguation.StateCancelled, r.outcome.State)
}

func (s *OrchestratorTestSuite) TestSendFailure() {
	s.conv.SendErr = errors.Unavailable("gateway closed")

	_, err := s.service.Disambiguate(s.ctx, &disambiguation.Input{
		Requester:    s.requester,
		Candidates:   s.candidates,
		Conversation: s.conv,
	})
	s.True(errors.IsUnavailable(err))
	s.Equal(0, s.conv.Subscribers())
}

func (s *OrchestratorTestSuite) TestValidation() {
	_, err := s.service.Disambiguate(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.service.Disambiguate(s.ctx, &disambiguation.Input{Requester: s.requester, Conversation: s.conv})
	s.True(errors.IsInvalidArgument(err))

	_, err = disambiguation.NewOrchestrator(&disambiguation.Config{})
	s.True(errors.IsInvalidArgument(err))
}
