package compendium

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	"github.com/NekroDarkmoon/Zen.A5E/internal/metrics"
)

// BreakerConfig holds the configuration for the circuit breaker decorator
type BreakerConfig struct {
	Repository Repository
	Name       string

	// MaxFailures is the number of consecutive store failures that opens
	// the circuit. Default: 5
	MaxFailures uint32

	// OpenTimeout is how long the circuit stays open before letting a
	// trial request through. Default: 30 seconds
	OpenTimeout time.Duration

	Logger *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *BreakerConfig) Validate() error {
	if c.Repository == nil {
		return errors.InvalidArgument("repository is required")
	}
	return nil
}

// breakerRepository fails fast with Unavailable once the store has failed
// MaxFailures times in a row. Only Unavailable errors count as failures.
type breakerRepository struct {
	next    Repository
	breaker *gobreaker.CircuitBreaker
}

var _ Repository = (*breakerRepository)(nil)

// NewBreaker wraps a repository with a circuit breaker
func NewBreaker(cfg *BreakerConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	name := cfg.Name
	if name == "" {
		name = "compendium"
	}
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}
	timeout := cfg.OpenTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	metrics.SetBreakerState(name, 0)
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.IsUnavailable(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("compendium breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			metrics.SetBreakerState(name, stateValue(to))
		},
	}

	return &breakerRepository{
		next:    cfg.Repository,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}, nil
}

// Exact runs the lookup through the breaker
func (b *breakerRepository) Exact(ctx context.Context, input ExactInput) (*ExactOutput, error) {
	out, err := b.breaker.Execute(func() (interface{}, error) {
		return b.next.Exact(ctx, input)
	})
	if err != nil {
		return nil, b.translate(err)
	}
	return out.(*ExactOutput), nil
}

// Fuzzy runs the lookup through the breaker
func (b *breakerRepository) Fuzzy(ctx context.Context, input FuzzyInput) (*FuzzyOutput, error) {
	out, err := b.breaker.Execute(func() (interface{}, error) {
		return b.next.Fuzzy(ctx, input)
	})
	if err != nil {
		return nil, b.translate(err)
	}
	return out.(*FuzzyOutput), nil
}

func (b *breakerRepository) translate(err error) error {
	if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "compendium store circuit open").
			WithMeta("breaker", b.breaker.Name())
	}
	return err
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
