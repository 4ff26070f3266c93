package entities

import (
	"encoding/json"
	"strings"
)

// Record is one row of a reference table. Name is unique per table when
// compared case-insensitively.
type Record struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Type        string          `json:"type,omitempty"`  // optional tag, empty when absent
	Extra       json.RawMessage `json:"extra,omitempty"` // nil when absent
}

// NormalizeQuery is the lookup form of a name: trimmed and lowercased.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// MatchesName reports whether s names this record, ignoring case and
// surrounding whitespace.
func (r *Record) MatchesName(s string) bool {
	return r != nil && NormalizeQuery(r.Name) == NormalizeQuery(s)
}

// Requester identifies the user who issued a command and where.
type Requester struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name,omitempty"`
	GuildID     string `json:"guild_id,omitempty"`
	ChannelID   string `json:"channel_id"`
}

// Same reports whether other is the same user
func (r Requester) Same(other Requester) bool {
	return r.UserID != "" && r.UserID == other.UserID
}
