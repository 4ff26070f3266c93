// Package guildsettings provides storage for per-guild command prefixes
// and the user/guild blacklist.
package guildsettings

import (
	"context"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=guildsettingsmock github.com/NekroDarkmoon/Zen.A5E/internal/repositories/guild_settings Repository

// MaxPrefixes is the most custom prefixes a guild may have
const MaxPrefixes = 10

// GetPrefixesInput contains parameters for reading a guild's prefixes
type GetPrefixesInput struct {
	GuildID string
}

// GetPrefixesOutput contains the stored prefixes. Custom is false when the
// guild never set any, in which case the default prefix applies.
type GetPrefixesOutput struct {
	Prefixes []string
	Custom   bool
}

// SetPrefixesInput contains parameters for replacing a guild's prefixes
type SetPrefixesInput struct {
	GuildID  string
	Prefixes []string
}

// SetPrefixesOutput contains the prefixes as stored: unique and sorted in
// descending order so longer prefixes sharing a start are tried first.
type SetPrefixesOutput struct {
	Prefixes []string
}

// BlacklistInput identifies a user or guild id
type BlacklistInput struct {
	ID string
}

// IsBlacklistedInput lists ids to check, typically the author and guild
type IsBlacklistedInput struct {
	IDs []string
}

// IsBlacklistedOutput reports whether any id is blacklisted
type IsBlacklistedOutput struct {
	Blacklisted bool
}

// Repository defines guild settings storage operations
type Repository interface {
	GetPrefixes(ctx context.Context, input GetPrefixesInput) (*GetPrefixesOutput, error)

	// SetPrefixes replaces the prefixes. An empty list leaves only
	// mentions as a way to address the bot.
	SetPrefixes(ctx context.Context, input SetPrefixesInput) (*SetPrefixesOutput, error)

	AddToBlacklist(ctx context.Context, input BlacklistInput) error
	RemoveFromBlacklist(ctx context.Context, input BlacklistInput) error
	IsBlacklisted(ctx context.Context, input IsBlacklistedInput) (*IsBlacklistedOutput, error)
}
