// Package rollhistory keeps each user's recent dice rolls so they can be
// listed or rolled again.
package rollhistory

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=rollhistorymock github.com/NekroDarkmoon/Zen.A5E/internal/repositories/roll_history Repository

// Entry is one past roll
type Entry struct {
	Notation string    `json:"notation"`
	Dice     []int     `json:"dice"`
	Dropped  []int     `json:"dropped,omitempty"`
	Modifier int       `json:"modifier,omitempty"`
	Total    int       `json:"total"`
	RolledAt time.Time `json:"rolled_at"`
}

// RecordInput contains a roll to remember for a user
type RecordInput struct {
	UserID string
	Entry  Entry // RolledAt defaults to now
}

// RecentInput contains parameters for reading a user's history
type RecentInput struct {
	UserID string
	Limit  int // zero means every stored entry
}

// RecentOutput lists entries newest first
type RecentOutput struct {
	Entries []Entry
}

// ClearInput identifies the user whose history is dropped
type ClearInput struct {
	UserID string
}

// ClearOutput reports how many entries were dropped
type ClearOutput struct {
	Removed int
}

// Repository defines roll history storage operations
type Repository interface {
	// Record prepends a roll, keeping at most the configured number of
	// entries and refreshing the history's TTL
	Record(ctx context.Context, input RecordInput) error

	// Recent returns NotFound when the user has no stored rolls
	Recent(ctx context.Context, input RecentInput) (*RecentOutput, error)

	Clear(ctx context.Context, input ClearInput) (*ClearOutput, error)
}
