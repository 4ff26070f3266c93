package dice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
)

// scriptedRoller returns fixed values and records what was asked for
type scriptedRoller struct {
	values       []int
	count, sides int
	err          error
}

func (r *scriptedRoller) Roll(size int) (int, error) {
	vals, err := r.RollN(1, size)
	if err != nil {
		return 0, err
	}
	return vals[0], nil
}

func (r *scriptedRoller) RollN(count, size int) ([]int, error) {
	r.count, r.sides = count, size
	if r.err != nil {
		return nil, r.err
	}
	return append([]int(nil), r.values[:count]...), nil
}

func TestParseDiceNotation(t *testing.T) {
	tests := []struct {
		in   string
		want notation
		str  string
	}{
		{"2d6", notation{count: 2, sides: 6}, "2d6"},
		{"d20", notation{count: 1, sides: 20}, "1d20"},
		{"1D20 + 5", notation{count: 1, sides: 20, modifier: 5}, "1d20+5"},
		{"3d8-2", notation{count: 3, sides: 8, modifier: -2}, "3d8-2"},
		{"4d6dl1", notation{count: 4, sides: 6, drop: 1}, "4d6dl1"},
		{"4d6dl1+1", notation{count: 4, sides: 6, drop: 1, modifier: 1}, "4d6dl1+1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDiceNotation(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.str, got.String())
		})
	}
}

func TestParseDiceNotationRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "2d", "0d6", "2d1", "101d6", "2d6dl2", "1d20+99999", "2d6*3"} {
		t.Run(in, func(t *testing.T) {
			_, err := parseDiceNotation(in)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidArgument(err))
		})
	}
}

func TestDropLowest(t *testing.T) {
	kept, dropped := dropLowest([]int{3, 1, 5, 1}, 1)
	assert.Equal(t, []int{3, 5, 1}, kept)
	assert.Equal(t, []int{1}, dropped)

	kept, dropped = dropLowest([]int{4, 2, 6}, 0)
	assert.Equal(t, []int{4, 2, 6}, kept)
	assert.Nil(t, dropped)
}

func TestOrchestrator_Roll(t *testing.T) {
	ctx := context.Background()

	t.Run("sums dice and modifier", func(t *testing.T) {
		roller := &scriptedRoller{values: []int{3, 4}}
		svc, err := NewOrchestrator(&Config{Roller: roller})
		require.NoError(t, err)

		out, err := svc.Roll(ctx, &RollInput{Notation: "2d6+1"})
		require.NoError(t, err)
		assert.Equal(t, 2, roller.count)
		assert.Equal(t, 6, roller.sides)
		assert.Equal(t, []int{3, 4}, out.Dice)
		assert.Equal(t, 1, out.Modifier)
		assert.Equal(t, 8, out.Total)
		assert.Equal(t, "2d6+1", out.Notation)
	})

	t.Run("4d6 drop lowest", func(t *testing.T) {
		svc, err := NewOrchestrator(&Config{Roller: &scriptedRoller{values: []int{6, 2, 5, 3}}})
		require.NoError(t, err)

		out, err := svc.Roll(ctx, &RollInput{Notation: "4d6dl1"})
		require.NoError(t, err)
		assert.Equal(t, []int{6, 5, 3}, out.Dice)
		assert.Equal(t, []int{2}, out.Dropped)
		assert.Equal(t, 14, out.Total)
	})

	t.Run("empty notation", func(t *testing.T) {
		svc, err := NewOrchestrator(&Config{Roller: &scriptedRoller{}})
		require.NoError(t, err)

		_, err = svc.Roll(ctx, &RollInput{Notation: "  "})
		assert.True(t, errors.IsInvalidArgument(err))
	})

	t.Run("roller failure is internal", func(t *testing.T) {
		svc, err := NewOrchestrator(&Config{Roller: &scriptedRoller{err: assert.AnError}})
		require.NoError(t, err)

		_, err = svc.Roll(ctx, &RollInput{Notation: "1d20"})
		require.Error(t, err)
		assert.True(t, errors.IsInternal(err))
	})

	t.Run("default roller stays in range", func(t *testing.T) {
		svc, err := NewOrchestrator(&Config{})
		require.NoError(t, err)

		for range 50 {
			out, err := svc.Roll(ctx, &RollInput{Notation: "1d20"})
			require.NoError(t, err)
			assert.GreaterOrEqual(t, out.Total, 1)
			assert.LessOrEqual(t, out.Total, 20)
		}
	})
}
