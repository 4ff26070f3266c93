package guildsettings

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	redis "github.com/redis/go-redis/v9"

	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	redisclient "github.com/NekroDarkmoon/Zen.A5E/internal/redis"
)

const (
	// Key pattern: guild_prefixes:{guild_id}
	prefixKeyPrefix = "guild_prefixes:"
	blacklistKey    = "blacklist"

	errGuildIDEmpty = "guild ID cannot be empty"
	errIDEmpty      = "ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a new Redis repository for guild settings
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// GetPrefixes reads the stored prefixes for a guild
func (r *redisRepository) GetPrefixes(ctx context.Context, input GetPrefixesInput) (*GetPrefixesOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}

	raw, err := r.client.Get(ctx, prefixKeyPrefix+input.GuildID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return &GetPrefixesOutput{}, nil
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get prefixes from Redis")
	}

	var prefixes []string
	if err := json.Unmarshal(raw, &prefixes); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal prefixes for guild %s", input.GuildID)
	}

	return &GetPrefixesOutput{Prefixes: prefixes, Custom: true}, nil
}

// SetPrefixes stores the normalized prefix list
func (r *redisRepository) SetPrefixes(ctx context.Context, input SetPrefixesInput) (*SetPrefixesOutput, error) {
	if input.GuildID == "" {
		return nil, errors.InvalidArgument(errGuildIDEmpty)
	}

	prefixes := normalizePrefixes(input.Prefixes)
	if len(prefixes) > MaxPrefixes {
		return nil, errors.InvalidArgumentf("cannot have more than %d custom prefixes", MaxPrefixes)
	}

	raw, err := json.Marshal(prefixes)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal prefixes")
	}
	if err := r.client.Set(ctx, prefixKeyPrefix+input.GuildID, raw, 0).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store prefixes in Redis")
	}

	return &SetPrefixesOutput{Prefixes: prefixes}, nil
}

// AddToBlacklist blacklists a user or guild id
func (r *redisRepository) AddToBlacklist(ctx context.Context, input BlacklistInput) error {
	if input.ID == "" {
		return errors.InvalidArgument(errIDEmpty)
	}
	if err := r.client.SAdd(ctx, blacklistKey, input.ID).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to update blacklist")
	}
	return nil
}

// RemoveFromBlacklist removes an id; removing an absent id is not an error
func (r *redisRepository) RemoveFromBlacklist(ctx context.Context, input BlacklistInput) error {
	if input.ID == "" {
		return errors.InvalidArgument(errIDEmpty)
	}
	if err := r.client.SRem(ctx, blacklistKey, input.ID).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to update blacklist")
	}
	return nil
}

// IsBlacklisted reports whether any of the ids is blacklisted
func (r *redisRepository) IsBlacklisted(ctx context.Context, input IsBlacklistedInput) (*IsBlacklistedOutput, error) {
	ids := make([]interface{}, 0, len(input.IDs))
	for _, id := range input.IDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return &IsBlacklistedOutput{}, nil
	}

	found, err := r.client.SMIsMember(ctx, blacklistKey, ids...).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read blacklist")
	}
	for _, hit := range found {
		if hit {
			return &IsBlacklistedOutput{Blacklisted: true}, nil
		}
	}
	return &IsBlacklistedOutput{}, nil
}

func normalizePrefixes(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}
