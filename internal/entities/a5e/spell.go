package a5e

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
)

// Range keywords and their distance in feet
var spellRanges = map[string]int{
	"short":  30,
	"medium": 60,
	"long":   120,
}

// Target type keys and their display labels
var spellTargets = map[string]string{
	"self":           "Self",
	"creature":       "Creature",
	"object":         "Object",
	"creatureObject": "Creature or Object",
	"other":          "Other",
}

// Quantity is a JSON value that may be stored as a number or a string
type Quantity string

// UnmarshalJSON accepts a JSON string, number or null
func (q *Quantity) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*q = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*q = Quantity(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("quantity must be a string or number: %w", err)
	}
	*q = Quantity(n.String())
	return nil
}

// CastingTime is the action cost of casting or activating
type CastingTime struct {
	Cost            Quantity `json:"cost"`
	Type            string   `json:"type" validate:"required"`
	ReactionTrigger string   `json:"reactionTrigger"`
}

func (c CastingTime) String() string {
	return joinNonEmpty(" ", string(c.Cost), c.Type, c.ReactionTrigger)
}

// SpellArea is the area of effect
type SpellArea struct {
	Shape  string   `json:"shape" validate:"omitempty,oneof=cone cube cylinder line sphere emanation square circle"`
	Length Quantity `json:"length"`
	Width  Quantity `json:"width"`
	Radius Quantity `json:"radius"`
}

// SpellTarget describes what the spell affects
type SpellTarget struct {
	Type     string   `json:"type" validate:"omitempty,oneof=self creature object creatureObject other"`
	Quantity Quantity `json:"quantity"`
}

// SpellComponents lists required components
type SpellComponents struct {
	Vocalized bool `json:"vocalized"`
	Seen      bool `json:"seen"`
	Material  bool `json:"material"`
}

// SpellDuration is how long the spell lasts
type SpellDuration struct {
	Value Quantity `json:"value"`
	Unit  string   `json:"unit" validate:"required"`
}

// SpellExtras is the structured payload stored with a spell
type SpellExtras struct {
	Level           int             `json:"level" validate:"min=0,max=9"`
	PrimarySchool   string          `json:"primarySchool" validate:"required"`
	SecondarySchool []string        `json:"secondarySchool"`
	CastingTime     CastingTime     `json:"castingTime"`
	Range           []string        `json:"range" validate:"min=1,dive,required"`
	Area            SpellArea       `json:"area"`
	Target          SpellTarget     `json:"target"`
	Components      SpellComponents `json:"components"`
	Materials       string          `json:"materials"`
	Concentration   bool            `json:"concentration"`
	Ritual          bool            `json:"ritual"`
	Duration        SpellDuration   `json:"duration"`
	SavingThrow     string          `json:"savingThrow"`
	Classes         []string        `json:"classes"`
}

// Spell is a spell with its decoded extras
type Spell struct {
	SpellName   string `validate:"required"`
	Description string `validate:"required"`
	Type        string
	Extras      SpellExtras
}

var _ Entry = (*Spell)(nil)

// Name returns the spell name
func (s *Spell) Name() string { return s.SpellName }

// Kind returns EntityTypeSpell
func (s *Spell) Kind() entities.EntityType { return entities.EntityTypeSpell }

// Rare reports whether the spell is tagged rare
func (s *Spell) Rare() bool { return strings.EqualFold(s.Type, "rare") }

// Title is the display title, tagged when rare
func (s *Spell) Title() string {
	if s.Rare() {
		return s.SpellName + " (Rare)"
	}
	return s.SpellName
}

// Summary is the level and school line, e.g. "*3rd-level Evocation; Fire*"
func (s *Spell) Summary() string {
	level := Ordinal(s.Extras.Level) + "-level"
	if s.Extras.Level == 0 {
		level = "Cantrip"
	}
	line := fmt.Sprintf("%s %s", level, Capitalize(s.Extras.PrimarySchool))
	if len(s.Extras.SecondarySchool) > 0 {
		line += "; " + strings.Join(s.Extras.SecondarySchool, ", ")
	}
	return "*" + line + "*"
}

// Meta is the casting details block
func (s *Spell) Meta() string {
	x := s.Extras
	lines := make([]string, 0, 7)

	casting := "**Casting Time**: " + x.CastingTime.String()
	if x.Ritual {
		casting += " *(Ritual)*"
	}
	lines = append(lines, casting)

	if len(x.Range) > 0 {
		r := x.Range[0]
		if feet, ok := spellRanges[r]; ok {
			lines = append(lines, fmt.Sprintf("**Range**: %s *(%dft.)*", Capitalize(r), feet))
		} else {
			lines = append(lines, "**Range**: "+Capitalize(r))
		}
	}

	if area := x.Area.String(); area != "" {
		lines = append(lines, "**Area**: "+area)
	}

	if label, ok := spellTargets[x.Target.Type]; ok {
		lines = append(lines, "**Target**: "+joinNonEmpty(" ", string(x.Target.Quantity), label))
	}

	lines = append(lines, "**Components**: "+s.components())

	lines = append(lines, "**Duration**: "+joinNonEmpty(" ", string(x.Duration.Value), Capitalize(x.Duration.Unit)))

	if x.SavingThrow != "" {
		lines = append(lines, "**Saving Throw**: "+Capitalize(x.SavingThrow))
	}

	return strings.Join(lines, "\n")
}

func (s *Spell) components() string {
	var parts []string
	if s.Extras.Components.Vocalized {
		parts = append(parts, "V")
	}
	if s.Extras.Components.Seen {
		parts = append(parts, "S")
	}
	if s.Extras.Components.Material {
		parts = append(parts, "M")
	}
	if s.Extras.Concentration {
		parts = append(parts, "C")
	}
	out := strings.Join(parts, ", ")
	if len(s.Extras.Materials) > 1 {
		out = joinNonEmpty(" ", out, "("+s.Extras.Materials+")")
	}
	return out
}

// String formats the area, e.g. "20ft. radius sphere"
func (a SpellArea) String() string {
	var size string
	switch a.Shape {
	case "":
		return ""
	case "cone":
		size = fmt.Sprintf("%sft", a.Length)
	case "cube":
		size = fmt.Sprintf("%sft", a.Width)
	case "line":
		size = fmt.Sprintf("%sft by %sft", a.Length, a.Width)
	default:
		size = fmt.Sprintf("%sft. radius", a.Radius)
	}
	return size + " " + a.Shape
}

// Render builds the spell segments
func (s *Spell) Render(author string) []entities.Segment {
	seg := entities.Segment{
		Title:       s.Title(),
		Author:      author,
		Description: s.Summary(),
		Color:       entities.ColorSpell,
	}
	seg.AddField("Meta", s.Meta(), false)
	if len(s.Extras.Classes) > 0 {
		seg.Footer = "Classes: " + strings.Join(s.Extras.Classes, ", ")
	}
	return describeInField(seg, "Description", s.Description)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
