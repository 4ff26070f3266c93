// Package lookup resolves a free-text query to a single reference record.
//
// Resolution is exact match first, then trigram similarity. Several
// similar candidates hand off to an interactive disambiguation session;
// the chosen record is always one of the candidates fetched here and is
// never looked up again.
package lookup

//go:generate mockgen -destination=mock/mock_service.go -package=lookupmock github.com/NekroDarkmoon/Zen.A5E/internal/orchestrators/lookup Service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	"github.com/NekroDarkmoon/Zen.A5E/internal/interaction"
	"github.com/NekroDarkmoon/Zen.A5E/internal/metrics"
	"github.com/NekroDarkmoon/Zen.A5E/internal/orchestrators/disambiguation"
	"github.com/NekroDarkmoon/Zen.A5E/internal/repositories/compendium"
)

const (
	// DefaultCandidateLimit bounds the fuzzy candidate set
	DefaultCandidateLimit = 5

	// MaxCandidateLimit is the largest accepted candidate limit
	MaxCandidateLimit = 25
)

// Outcome describes how a lookup ended
type Outcome string

// Lookup outcomes
const (
	OutcomeExact           Outcome = "exact"
	OutcomeSingleCandidate Outcome = "single_candidate"
	OutcomeSelected        Outcome = "selected"
	OutcomeNoSelection     Outcome = "no_selection"
	OutcomeNotFound        Outcome = "not_found"
)

// Service defines the interface for entity resolution
type Service interface {
	// Resolve finds the record a query refers to. A lookup that finds
	// nothing, or whose prompt closes without a choice, is not an error:
	// Record is nil and Outcome says why.
	Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error)
}

// ResolveInput contains parameters for a lookup
type ResolveInput struct {
	EntityType   entities.EntityType
	Query        string
	Requester    entities.Requester
	Conversation interaction.Conversation
}

// ResolveOutput contains the resolved record, if any
type ResolveOutput struct {
	Record     *entities.Record
	Outcome    Outcome
	Candidates []*entities.Record // fuzzy candidates, when fuzzy search ran
	SessionID  string             // set when a prompt was shown
}

// Found reports whether a record was resolved
func (o *ResolveOutput) Found() bool {
	return o != nil && o.Record != nil
}

// Config holds the dependencies for the lookup orchestrator
type Config struct {
	Repository       compendium.Repository
	Disambiguator    disambiguation.Service
	CandidateLimit   int
	SelectionTimeout time.Duration
	Logger           *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Disambiguator == nil {
		vb.RequiredField("Disambiguator")
	}
	if c.CandidateLimit != 0 {
		errors.ValidateRange("CandidateLimit", c.CandidateLimit, 1, MaxCandidateLimit, vb)
	}
	if c.SelectionTimeout < 0 {
		vb.Field("SelectionTimeout", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	repo          compendium.Repository
	disambiguator disambiguation.Service
	limit         int
	timeout       time.Duration
	logger        *zap.Logger
}

// NewOrchestrator creates a new lookup orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	limit := cfg.CandidateLimit
	if limit == 0 {
		limit = DefaultCandidateLimit
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &orchestrator{
		repo:          cfg.Repository,
		disambiguator: cfg.Disambiguator,
		limit:         limit,
		timeout:       cfg.SelectionTimeout,
		logger:        logger.Named("lookup"),
	}, nil
}

// Resolve runs exact, then fuzzy, then disambiguation when needed
func (o *orchestrator) Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out, err := o.resolve(ctx, input)
	outcome := "error"
	if err == nil {
		outcome = string(out.Outcome)
	}
	metrics.RecordResolution(input.EntityType.String(), outcome)
	return out, err
}

func (o *orchestrator) resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error) {
	query := entities.NormalizeQuery(input.Query)
	vb := errors.NewValidationBuilder()
	if !input.EntityType.Valid() {
		vb.InvalidField("EntityType", string(input.EntityType))
	}
	if query == "" {
		vb.RequiredField("Query")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	logger := o.logger.With(
		zap.String("entity_type", input.EntityType.String()),
		zap.String("query", query),
		zap.String("user_id", input.Requester.UserID),
	)

	exact, err := o.repo.Exact(ctx, compendium.ExactInput{EntityType: input.EntityType, Query: query})
	switch {
	case err == nil:
		logger.Debug("exact match", zap.String("name", exact.Record.Name))
		return &ResolveOutput{Record: exact.Record, Outcome: OutcomeExact}, nil
	case !errors.IsNotFound(err):
		return nil, errors.Wrapf(err, "exact lookup for %s", input.EntityType)
	}

	fuzzy, err := o.repo.Fuzzy(ctx, compendium.FuzzyInput{
		EntityType: input.EntityType,
		Query:      query,
		Limit:      o.limit,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fuzzy lookup for %s", input.EntityType)
	}

	candidates := fuzzy.Candidates
	if len(candidates) > o.limit {
		candidates = candidates[:o.limit]
	}

	switch len(candidates) {
	case 0:
		logger.Debug("no candidates")
		return &ResolveOutput{Outcome: OutcomeNotFound}, nil
	case 1:
		logger.Debug("single candidate", zap.String("name", candidates[0].Name))
		return &ResolveOutput{Record: candidates[0], Outcome: OutcomeSingleCandidate, Candidates: candidates}, nil
	}

	if input.Conversation == nil {
		return nil, errors.FailedPrecondition("several candidates match and there is no conversation to ask in")
	}

	result, err := o.disambiguator.Disambiguate(ctx, &disambiguation.Input{
		Requester:    input.Requester,
		EntityType:   input.EntityType,
		Query:        input.Query,
		Candidates:   candidates,
		Conversation: input.Conversation,
		Timeout:      o.timeout,
	})
	if err != nil {
		return nil, errors.Wrap(err, "disambiguation failed")
	}

	out := &ResolveOutput{Candidates: candidates, SessionID: result.SessionID, Outcome: OutcomeNoSelection}
	if result.State == disambiguation.StateResolved && result.Selected != nil {
		selected := pick(candidates, result.Selected)
		if selected == nil {
			return nil, errors.Internalf("session %s returned a record outside its candidates", result.SessionID)
		}
		out.Record = selected
		out.Outcome = OutcomeSelected
	}

	logger.Debug("disambiguation finished",
		zap.String("session_id", result.SessionID),
		zap.String("state", string(result.State)),
		zap.String("outcome", string(out.Outcome)))

	return out, nil
}

// pick returns the candidate that is selected, by identity
func pick(candidates []*entities.Record, selected *entities.Record) *entities.Record {
	for _, c := range candidates {
		if c == selected {
			return c
		}
	}
	return nil
}
