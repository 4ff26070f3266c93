package rollhistory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	"github.com/NekroDarkmoon/Zen.A5E/internal/pkg/clock"
	redisclient "github.com/NekroDarkmoon/Zen.A5E/internal/redis"
)

const (
	// Key pattern: roll_history:{user_id}
	historyKeyPrefix = "roll_history:"

	DefaultTTL        = 24 * time.Hour
	DefaultMaxEntries = 10

	errUserIDEmpty = "user ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client     redisclient.Client
	Clock      clock.Clock
	TTL        time.Duration
	MaxEntries int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.TTL < 0 {
		vb.Field("TTL", "must not be negative")
	}
	if c.MaxEntries < 0 {
		vb.Field("MaxEntries", "must not be negative")
	}
	return vb.Build()
}

type redisRepository struct {
	client     redisclient.Client
	clock      clock.Clock
	ttl        time.Duration
	maxEntries int
}

var _ Repository = (*redisRepository)(nil)

// NewRedisRepository creates a new Redis repository for roll history
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	r := &redisRepository{
		client:     cfg.Client,
		clock:      cfg.Clock,
		ttl:        cfg.TTL,
		maxEntries: cfg.MaxEntries,
	}
	if r.clock == nil {
		r.clock = clock.New()
	}
	if r.ttl == 0 {
		r.ttl = DefaultTTL
	}
	if r.maxEntries == 0 {
		r.maxEntries = DefaultMaxEntries
	}
	return r, nil
}

// Record prepends a roll to the user's history
func (r *redisRepository) Record(ctx context.Context, input RecordInput) error {
	if input.UserID == "" {
		return errors.InvalidArgument(errUserIDEmpty)
	}
	if input.Entry.Notation == "" {
		return errors.InvalidArgument("notation cannot be empty")
	}

	entry := input.Entry
	if entry.RolledAt.IsZero() {
		entry.RolledAt = r.clock.Now()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal roll")
	}

	key := buildKey(input.UserID)
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, int64(r.maxEntries-1))
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to record roll")
	}
	return nil
}

// Recent returns up to Limit rolls, newest first
func (r *redisRepository) Recent(ctx context.Context, input RecentInput) (*RecentOutput, error) {
	if input.UserID == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}
	if input.Limit < 0 {
		return nil, errors.InvalidArgument("limit must not be negative")
	}

	stop := int64(-1)
	if input.Limit > 0 {
		stop = int64(input.Limit - 1)
	}

	raw, err := r.client.LRange(ctx, buildKey(input.UserID), 0, stop).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read roll history")
	}
	if len(raw) == 0 {
		return nil, errors.NotFoundf("no rolls recorded for %s", input.UserID)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to unmarshal roll")
		}
		entries = append(entries, e)
	}

	return &RecentOutput{Entries: entries}, nil
}

// Clear drops the user's history
func (r *redisRepository) Clear(ctx context.Context, input ClearInput) (*ClearOutput, error) {
	if input.UserID == "" {
		return nil, errors.InvalidArgument(errUserIDEmpty)
	}

	key := buildKey(input.UserID)
	pipe := r.client.TxPipeline()
	length := pipe.LLen(ctx, key)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to clear roll history")
	}

	return &ClearOutput{Removed: int(length.Val())}, nil
}

func buildKey(userID string) string {
	return historyKeyPrefix + userID
}
