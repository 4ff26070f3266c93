package a5e_test

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/entities/a5e"
)

type RenderTestSuite struct {
	suite.Suite
	fireball *a5e.Spell
}

func TestRenderSuite(t *testing.T) {
	suite.Run(t, new(RenderTestSuite))
}

func (s *RenderTestSuite) SetupTest() {
	s.fireball = &a5e.Spell{
		SpellName:   "Fireball",
		Description: "A bright streak flashes from your pointing finger.",
		Extras: a5e.SpellExtras{
			Level:           3,
			PrimarySchool:   "evocation",
			SecondarySchool: []string{"Fire"},
			CastingTime:     a5e.CastingTime{Cost: "1", Type: "action"},
			Range:           []string{"long"},
			Area:            a5e.SpellArea{Shape: "sphere", Radius: "20"},
			Target:          a5e.SpellTarget{},
			Components:      a5e.SpellComponents{Vocalized: true, Seen: true, Material: true},
			Materials:       "a tiny ball of bat guano and sulfur",
			Duration:        a5e.SpellDuration{Unit: "instantaneous"},
			SavingThrow:     "dexterity",
			Classes:         []string{"wizard", "sorcerer"},
		},
	}
}

func (s *RenderTestSuite) TestSpellRender() {
	segments := s.fireball.Render("Tester")
	s.Require().Len(segments, 1)

	seg := segments[0]
	s.Equal("Fireball", seg.Title)
	s.Equal("Tester", seg.Author)
	s.Equal("*3rd-level Evocation; Fire*", seg.Description)
	s.Equal("Classes: wizard, sorcerer", seg.Footer)
	s.Require().Len(seg.Fields, 2)
	s.Equal("Meta", seg.Fields[0].Name)
	s.Equal(strings.Join([]string{
		"**Casting Time**: 1 action",
		"**Range**: Long *(120ft.)*",
		"**Area**: 20ft. radius sphere",
		"**Components**: V, S, M (a tiny ball of bat guano and sulfur)",
		"**Duration**: Instantaneous",
		"**Saving Throw**: Dexterity",
	}, "\n"), seg.Fields[0].Value)
	s.Equal("Description", seg.Fields[1].Name)
	s.Equal(s.fireball.Description, seg.Fields[1].Value)
}

func (s *RenderTestSuite) TestSpellRareRitualAndTarget() {
	s.fireball.Type = "rare"
	s.fireball.Extras.Ritual = true
	s.fireball.Extras.Concentration = true
	s.fireball.Extras.Target = a5e.SpellTarget{Type: "creatureObject", Quantity: "1"}
	s.fireball.Extras.Level = 0

	seg := s.fireball.Render("")[0]
	s.Equal("Fireball (Rare)", seg.Title)
	s.Equal("*Cantrip Evocation; Fire*", seg.Description)
	s.Contains(seg.Fields[0].Value, "**Casting Time**: 1 action *(Ritual)*")
	s.Contains(seg.Fields[0].Value, "**Target**: 1 Creature or Object")
	s.Contains(seg.Fields[0].Value, "**Components**: V, S, M, C (")
}

func (s *RenderTestSuite) TestSpellAreaShapes() {
	s.Equal("15ft cone", a5e.SpellArea{Shape: "cone", Length: "15"}.String())
	s.Equal("10ft cube", a5e.SpellArea{Shape: "cube", Width: "10"}.String())
	s.Equal("60ft by 5ft line", a5e.SpellArea{Shape: "line", Length: "60", Width: "5"}.String())
	s.Equal("", a5e.SpellArea{}.String())
}

func (s *RenderTestSuite) TestSpellLongDescriptionChunks() {
	s.fireball.Description = strings.Repeat("Flames roar across the field. ", 120)

	segments := s.fireball.Render("")
	s.Require().Greater(len(segments), 1)

	var rebuilt strings.Builder
	rebuilt.WriteString(segments[0].Fields[1].Value)
	for _, seg := range segments[1:] {
		s.Equal(entities.ColorSpell, seg.Color)
		s.Empty(seg.Title)
		rebuilt.WriteString(seg.Description)
	}
	s.Equal(s.fireball.Description, rebuilt.String())
	s.LessOrEqual(utf8.RuneCountInString(segments[0].Fields[1].Value), a5e.DescriptionChunkSize)
}

func (s *RenderTestSuite) TestManeuverRender() {
	m := &a5e.Maneuver{
		ManeuverName: "Crushing Blow",
		Description:  "You strike with overwhelming force.",
		Extras: a5e.ManeuverExtras{
			Degree:       2,
			Tradition:    "adamantMountain",
			ExertionCost: 2,
			Activation:   a5e.CastingTime{Cost: "1", Type: "action"},
		},
	}

	segments := m.Render("Tester")
	s.Require().Len(segments, 1)
	s.Equal("*2nd degree, Adamant Mountain*", segments[0].Description)
	s.Equal("**Activation**: 1 action\n**Exertion**: 2 points", segments[0].Fields[0].Value)
	s.Equal("You strike with overwhelming force.", segments[0].Fields[1].Value)
	s.Equal(entities.EntityTypeManeuver, m.Kind())
}

func (s *RenderTestSuite) TestFeatAndConditionRender() {
	feat := &a5e.Feat{FeatName: "Alert", Description: "Always on the lookout.", Type: "general"}
	seg := feat.Render("")[0]
	s.Equal("Alert", seg.Title)
	s.Equal("Always on the lookout.", seg.Description)
	s.Equal("General feat", seg.Footer)

	cond := &a5e.Condition{ConditionName: "blinded", Description: "A blinded creature cannot see."}
	seg = cond.Render("")[0]
	s.Equal("Blinded", seg.Title)
	s.Equal(entities.ColorCondition, seg.Color)
}

func TestQuantityUnmarshal(t *testing.T) {
	var d a5e.SpellDuration
	require.NoError(t, json.Unmarshal([]byte(`{"value": 10, "unit": "minutes"}`), &d))
	assert.Equal(t, a5e.Quantity("10"), d.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"value": "1d4", "unit": "rounds"}`), &d))
	assert.Equal(t, a5e.Quantity("1d4"), d.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"value": null, "unit": "instantaneous"}`), &d))
	assert.Equal(t, a5e.Quantity(""), d.Value)

	assert.Error(t, json.Unmarshal([]byte(`{"value": {"x": 1}}`), &d))
}
