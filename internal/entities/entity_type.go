// Package entities provides core data structures for the compendium bot.
package entities

import (
	"strings"

	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
)

// EntityType names one of the reference tables the bot can search
type EntityType string

// Entity types
const (
	EntityTypeFeat      EntityType = "feat"
	EntityTypeSpell     EntityType = "spell"
	EntityTypeManeuver  EntityType = "maneuver"
	EntityTypeCondition EntityType = "condition"
)

// AllEntityTypes lists every searchable entity type in display order
var AllEntityTypes = []EntityType{
	EntityTypeFeat,
	EntityTypeSpell,
	EntityTypeManeuver,
	EntityTypeCondition,
}

// String returns the string representation of the type
func (t EntityType) String() string {
	return string(t)
}

// Table returns the backing table name
func (t EntityType) Table() string {
	return string(t) + "s"
}

// Title returns the capitalized display name
func (t EntityType) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// HasTypeColumn reports whether records carry the optional type tag
func (t EntityType) HasTypeColumn() bool {
	return t == EntityTypeFeat || t == EntityTypeSpell
}

// HasExtra reports whether records carry a structured extra payload
func (t EntityType) HasExtra() bool {
	return t == EntityTypeSpell || t == EntityTypeManeuver
}

// Valid reports whether t is a known entity type
func (t EntityType) Valid() bool {
	for _, known := range AllEntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseEntityType accepts singular or plural names in any case.
func ParseEntityType(s string) (EntityType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, t := range AllEntityTypes {
		if name == string(t) || name == t.Table() {
			return t, nil
		}
	}
	return "", errors.InvalidArgumentf("unknown entity type %q", s)
}
