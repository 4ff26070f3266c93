// Package disambiguation runs the interactive choice between several
// candidate records.
package disambiguation

//go:generate mockgen -destination=mock/mock_service.go -package=disambiguationmock github.com/NekroDarkmoon/Zen.A5E/internal/orchestrators/disambiguation Service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	"github.com/NekroDarkmoon/Zen.A5E/internal/interaction"
	"github.com/NekroDarkmoon/Zen.A5E/internal/metrics"
	"github.com/NekroDarkmoon/Zen.A5E/internal/pkg/clock"
	"github.com/NekroDarkmoon/Zen.A5E/internal/pkg/idgen"
)

const (
	// DefaultTimeout is how long a prompt waits for the requester
	DefaultTimeout = 60 * time.Second

	// editTimeout bounds the closing edit, which runs even when the
	// command context is already cancelled
	editTimeout = 5 * time.Second
)

// Service defines the interface for disambiguation
type Service interface {
	// Disambiguate prompts the requester to choose one candidate and waits
	// for a choice, the timeout, or ctx cancellation.
	Disambiguate(ctx context.Context, input *Input) (*Outcome, error)
}

// Input contains parameters for a disambiguation prompt
type Input struct {
	Requester    entities.Requester
	EntityType   entities.EntityType
	Query        string
	Candidates   []*entities.Record
	Conversation interaction.Conversation
	Timeout      time.Duration // zero uses the service default
}

// Outcome is the final state of the session. Selected is one of the
// input candidates when State is StateResolved and nil otherwise.
type Outcome struct {
	SessionID string
	State     State
	Selected  *entities.Record
}

// Config holds the dependencies for the disambiguation orchestrator
type Config struct {
	Clock          clock.Clock
	IDGenerator    idgen.Generator
	DefaultTimeout time.Duration
	Logger         *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.DefaultTimeout < 0 {
		vb.Field("DefaultTimeout", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	clock   clock.Clock
	idGen   idgen.Generator
	timeout time.Duration
	router  *router
	logger  *zap.Logger
}

// NewOrchestrator creates a new disambiguation orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	timeout := cfg.DefaultTimeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &orchestrator{
		clock:   cfg.Clock,
		idGen:   cfg.IDGenerator,
		timeout: timeout,
		router:  newRouter(),
		logger:  logger.Named("disambiguation"),
	}, nil
}

// Disambiguate runs one session to completion
func (o *orchestrator) Disambiguate(ctx context.Context, input *Input) (*Outcome, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	if input.Conversation == nil {
		vb.RequiredField("Conversation")
	}
	if len(input.Candidates) == 0 {
		vb.RequiredField("Candidates")
	}
	errors.ValidateRequired("Requester.UserID", input.Requester.UserID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	timeout := input.Timeout
	if timeout <= 0 {
		timeout = o.timeout
	}

	session := newSession(o.idGen.Generate(), input.Requester, input.Candidates, o.clock.Now(), timeout)
	logger := o.logger.With(
		zap.String("session_id", session.ID()),
		zap.String("user_id", input.Requester.UserID),
		zap.String("entity_type", input.EntityType.String()),
		zap.Int("candidates", len(session.candidates)),
	)

	// Subscribe before prompting so a fast answer is not lost
	messages, unsubscribe := input.Conversation.Subscribe()
	defer unsubscribe()

	key := routeKey{conversation: input.Conversation, userID: input.Requester.UserID}
	o.router.join(key, session)
	defer o.router.leave(key, session)

	promptID, err := input.Conversation.Send(ctx, renderPrompt(session, input.Query, input.EntityType))
	if err != nil {
		session.Cancel(o.clock.Now())
		return nil, errors.Wrap(err, "failed to send selection prompt")
	}

	logger.Debug("selection prompt sent", zap.String("prompt_id", promptID))

	expired := o.clock.After(timeout)
wait:
	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				session.Cancel(o.clock.Now())
				break wait
			}
			o.router.route(key, msg, o.clock.Now())
		case <-session.Done():
			break wait
		case <-expired:
			session.Expire(o.clock.Now())
			break wait
		case <-ctx.Done():
			session.Cancel(o.clock.Now())
			break wait
		}
	}

	state := session.State()
	editCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), editTimeout)
	defer cancel()
	if err := input.Conversation.Edit(editCtx, promptID, renderClosed(session)); err != nil {
		logger.Warn("failed to close selection prompt", zap.Error(err))
	}

	metrics.RecordSession(string(state), session.pending())
	logger.Info("selection session closed", zap.String("state", string(state)))

	return &Outcome{
		SessionID: session.ID(),
		State:     state,
		Selected:  session.Selected(),
	}, nil
}

func renderPrompt(s *Session, query string, entityType entities.EntityType) interaction.Reply {
	lines := make([]string, len(s.candidates))
	for i, c := range s.candidates {
		lines[i] = fmt.Sprintf("**%d.** %s", i+1, c.Name)
	}

	title := "Multiple matches"
	if entityType != "" {
		title = fmt.Sprintf("Multiple %s matches", entityType)
	}
	if query != "" {
		title += fmt.Sprintf(" for %q", query)
	}

	return interaction.Reply{
		Content: fmt.Sprintf("<@%s> reply with a number or name, or `%s`.", s.requester.UserID, CancelKeyword),
		Segments: []entities.Segment{{
			Title:       title,
			Description: strings.Join(lines, "\n"),
			Color:       entities.ColorDefault,
			Footer:      fmt.Sprintf("Expires in %d seconds", int(s.timeout.Seconds())),
		}},
	}
}

func renderClosed(s *Session) interaction.Reply {
	switch s.State() {
	case StateResolved:
		return interaction.Reply{Content: fmt.Sprintf("Selected **%s**.", s.Selected().Name)}
	case StateExpired:
		return interaction.Reply{Content: "Selection window closed."}
	default:
		return interaction.Reply{Content: "Selection cancelled."}
	}
}
