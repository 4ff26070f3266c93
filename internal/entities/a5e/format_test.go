package a5e_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities/a5e"
)

func TestOrdinal(t *testing.T) {
	testCases := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 9: "9th",
		11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd", 101: "101st", 111: "111th",
	}
	for n, expected := range testCases {
		assert.Equal(t, expected, a5e.Ordinal(n))
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Evocation", a5e.Capitalize("evocation"))
	assert.Equal(t, "Blinded", a5e.Capitalize("BLINDED"))
	assert.Equal(t, "", a5e.Capitalize(""))
}

func TestHumanJoin(t *testing.T) {
	assert.Equal(t, "", a5e.HumanJoin(nil, "or"))
	assert.Equal(t, "a", a5e.HumanJoin([]string{"a"}, "or"))
	assert.Equal(t, "a or b", a5e.HumanJoin([]string{"a", "b"}, "or"))
	assert.Equal(t, "a, b, and c", a5e.HumanJoin([]string{"a", "b", "c"}, "and"))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 point", a5e.Plural(1, "point", ""))
	assert.Equal(t, "2 points", a5e.Plural(2, "point", ""))
	assert.Equal(t, "0 candidates", a5e.Plural(0, "candidate", ""))
	assert.Equal(t, "3 mice", a5e.Plural(3, "mouse", "mice"))
}
