package a5e

import (
	"fmt"
	"strings"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
)

// Tradition keys and display names
var traditions = map[string]string{
	"adamantMountain": "Adamant Mountain",
	"bitingZephyr":    "Biting Zephyr",
	"mirrorsGlint":    "Mirror's Glint",
	"mistAndShade":    "Mist and Shade",
	"rapidCurrent":    "Rapid Current",
	"razorsEdge":      "Razor's Edge",
	"sanguineKnot":    "Sanguine Knot",
	"spiritedSteed":   "Spirited Steed",
	"temperedIron":    "Tempered Iron",
	"toothAndClaw":    "Tooth and Claw",
	"unendingWheel":   "Unending Wheel",
}

// TraditionName returns the display name for a tradition key
func TraditionName(key string) (string, bool) {
	name, ok := traditions[key]
	return name, ok
}

// ManeuverExtras is the structured payload stored with a maneuver
type ManeuverExtras struct {
	Degree       int         `json:"degree" validate:"min=1,max=5"`
	Tradition    string      `json:"tradition" validate:"required,tradition"`
	ExertionCost int         `json:"exertionCost" validate:"min=0"`
	Activation   CastingTime `json:"activation"`
}

// Maneuver is a combat maneuver with its decoded extras
type Maneuver struct {
	ManeuverName string `validate:"required"`
	Description  string `validate:"required"`
	Extras       ManeuverExtras
}

var _ Entry = (*Maneuver)(nil)

// Name returns the maneuver name
func (m *Maneuver) Name() string { return m.ManeuverName }

// Kind returns EntityTypeManeuver
func (m *Maneuver) Kind() entities.EntityType { return entities.EntityTypeManeuver }

// Summary is the degree and tradition line
func (m *Maneuver) Summary() string {
	tradition, ok := TraditionName(m.Extras.Tradition)
	if !ok {
		tradition = m.Extras.Tradition
	}
	return fmt.Sprintf("*%s degree, %s*", Ordinal(m.Extras.Degree), tradition)
}

// Render builds the maneuver segments
func (m *Maneuver) Render(author string) []entities.Segment {
	seg := entities.Segment{
		Title:       m.ManeuverName,
		Author:      author,
		Description: m.Summary(),
		Color:       entities.ColorManeuver,
	}

	meta := []string{"**Activation**: " + m.Extras.Activation.String()}
	if m.Extras.ExertionCost > 0 {
		meta = append(meta, "**Exertion**: "+Plural(m.Extras.ExertionCost, "point", ""))
	}
	seg.AddField("Meta", strings.Join(meta, "\n"), false)

	return describeInField(seg, "Description", m.Description)
}
