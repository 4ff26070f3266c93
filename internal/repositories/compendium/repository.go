// Package compendium provides the similarity search adapter over the
// reference tables (feats, spells, maneuvers, conditions).
package compendium

import (
	"context"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=compendiummock github.com/NekroDarkmoon/Zen.A5E/internal/repositories/compendium Repository

// DefaultFuzzyLimit bounds fuzzy results when the caller passes no limit
const DefaultFuzzyLimit = 5

// ExactInput contains parameters for an exact name lookup
type ExactInput struct {
	EntityType entities.EntityType
	Query      string // compared case-insensitively
}

// ExactOutput contains the matched record
type ExactOutput struct {
	Record *entities.Record
}

// FuzzyInput contains parameters for a trigram similarity lookup
type FuzzyInput struct {
	EntityType entities.EntityType
	Query      string
	Limit      int
}

// FuzzyOutput contains candidates ordered by descending similarity, ties
// broken by name. Empty when nothing clears the similarity threshold.
type FuzzyOutput struct {
	Candidates []*entities.Record
}

// UpsertInput contains records to insert or replace
type UpsertInput struct {
	EntityType entities.EntityType
	Records    []*entities.Record
}

// UpsertOutput reports how many records were written
type UpsertOutput struct {
	Written int
}

// Repository is the read side used during lookups. Both operations are
// read-only and safe to retry.
type Repository interface {
	// Exact returns the record whose name equals the query ignoring case.
	// Returns a NotFound error when there is none and Unavailable when the
	// store cannot be reached.
	Exact(ctx context.Context, input ExactInput) (*ExactOutput, error)

	// Fuzzy returns up to Limit records whose names are similar to the query
	Fuzzy(ctx context.Context, input FuzzyInput) (*FuzzyOutput, error)
}

// Store adds the maintenance operations used by the CLI and by serve
type Store interface {
	Repository

	// EnsureSchema creates tables and indexes when missing
	EnsureSchema(ctx context.Context) error

	// Upsert inserts or replaces records by name
	Upsert(ctx context.Context, input UpsertInput) (*UpsertOutput, error)

	// Ping checks that the store is reachable
	Ping(ctx context.Context) error

	Close() error
}
