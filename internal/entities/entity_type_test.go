package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
)

func TestParseEntityType(t *testing.T) {
	testCases := []struct {
		input    string
		expected entities.EntityType
	}{
		{"feat", entities.EntityTypeFeat},
		{"Feats", entities.EntityTypeFeat},
		{" SPELL ", entities.EntityTypeSpell},
		{"maneuvers", entities.EntityTypeManeuver},
		{"condition", entities.EntityTypeCondition},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := entities.ParseEntityType(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	_, err := entities.ParseEntityType("monster")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestEntityTypeColumns(t *testing.T) {
	assert.Equal(t, "spells", entities.EntityTypeSpell.Table())
	assert.Equal(t, "Maneuver", entities.EntityTypeManeuver.Title())
	assert.True(t, entities.EntityTypeFeat.HasTypeColumn())
	assert.False(t, entities.EntityTypeCondition.HasTypeColumn())
	assert.True(t, entities.EntityTypeManeuver.HasExtra())
	assert.False(t, entities.EntityTypeFeat.HasExtra())
	assert.False(t, entities.EntityType("monster").Valid())
}

func TestRecordMatchesName(t *testing.T) {
	r := &entities.Record{Name: "Fire Bolt"}
	assert.True(t, r.MatchesName("  fire bolt "))
	assert.False(t, r.MatchesName("fire"))

	var nilRecord *entities.Record
	assert.False(t, nilRecord.MatchesName("fire"))
}

func TestRequesterSame(t *testing.T) {
	a := entities.Requester{UserID: "u1", ChannelID: "c1"}
	assert.True(t, a.Same(entities.Requester{UserID: "u1", ChannelID: "c2"}))
	assert.False(t, a.Same(entities.Requester{UserID: "u2"}))
	assert.False(t, entities.Requester{}.Same(entities.Requester{}))
}
