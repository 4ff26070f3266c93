package testutils

import (
	"encoding/json"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
)

// Spell fixtures. "fire" matches both fuzzy spells; Fire Bolt ranks first.
var (
	FireballExtra = json.RawMessage(`{
		"level": 3,
		"primarySchool": "evocation",
		"secondarySchool": ["Fire"],
		"castingTime": {"cost": 1, "type": "action", "reactionTrigger": ""},
		"range": ["long"],
		"area": {"shape": "sphere", "radius": 20},
		"target": {"type": "", "quantity": ""},
		"components": {"vocalized": true, "seen": true, "material": true},
		"materials": "a tiny ball of bat guano and sulfur",
		"concentration": false,
		"ritual": false,
		"duration": {"value": "", "unit": "instantaneous"},
		"savingThrow": "dexterity",
		"classes": ["sorcerer", "wizard"]
	}`)

	FireBoltExtra = json.RawMessage(`{
		"level": 0,
		"primarySchool": "evocation",
		"secondarySchool": ["Fire"],
		"castingTime": {"cost": 1, "type": "action", "reactionTrigger": ""},
		"range": ["long"],
		"area": {"shape": ""},
		"target": {"type": "creatureObject", "quantity": 1},
		"components": {"vocalized": true, "seen": true, "material": false},
		"materials": "",
		"concentration": false,
		"ritual": false,
		"duration": {"value": "", "unit": "instantaneous"},
		"savingThrow": "",
		"classes": ["sorcerer", "wizard"]
	}`)
)

// FireballRecord returns a fresh Fireball spell record
func FireballRecord() *entities.Record {
	return &entities.Record{
		Name:        "Fireball",
		Description: "A bright streak flashes from your pointing finger and blossoms into an explosion of flame.",
		Extra:       FireballExtra,
	}
}

// FireBoltRecord returns a fresh Fire Bolt spell record
func FireBoltRecord() *entities.Record {
	return &entities.Record{
		Name:        "Fire Bolt",
		Description: "You hurl a mote of fire at a creature or object within range.",
		Extra:       FireBoltExtra,
	}
}

// AlertRecord returns a feat record
func AlertRecord() *entities.Record {
	return &entities.Record{
		Name:        "Alert",
		Description: "Always on the lookout for danger.",
		Type:        "general",
	}
}

// BlindedRecord returns a condition record
func BlindedRecord() *entities.Record {
	return &entities.Record{
		Name:        "Blinded",
		Description: "A blinded creature cannot see and automatically fails any ability check that requires sight.",
	}
}

// TestRequester returns a requester in a test channel
func TestRequester(userID string) entities.Requester {
	return entities.Requester{
		UserID:      userID,
		DisplayName: "user-" + userID,
		GuildID:     "guild-1",
		ChannelID:   "channel-1",
	}
}
