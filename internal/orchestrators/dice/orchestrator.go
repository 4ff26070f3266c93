// Package dice rolls dice notation for the roll command
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/NekroDarkmoon/Zen.A5E/internal/orchestrators/dice Service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"go.uber.org/zap"

	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
)

const (
	// MaxDice caps the number of dice in one roll
	MaxDice = 100

	// MaxSides caps the die size
	MaxSides = 1000

	// MaxModifier caps the absolute flat modifier
	MaxModifier = 10000
)

// Notation: [count]d<sides>[dl<n>][+|-<modifier>], e.g. "d20", "4d6dl1", "2d8+3"
var diceNotationRegex = regexp.MustCompile(`^(\d*)d(\d+)(?:dl(\d+))?(?:([+-])(\d+))?$`)

// Service defines the interface for dice operations
type Service interface {
	Roll(ctx context.Context, input *RollInput) (*RollOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	Roller dice.Roller // defaults to dice.DefaultRoller
	Logger *zap.Logger
}

type orchestrator struct {
	roller dice.Roller
	logger *zap.Logger
}

// NewOrchestrator creates a new dice orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}

	roller := cfg.Roller
	if roller == nil {
		roller = dice.DefaultRoller
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &orchestrator{roller: roller, logger: logger.Named("dice")}, nil
}

type notation struct {
	count, sides, drop, modifier int
}

func (n notation) String() string {
	s := fmt.Sprintf("%dd%d", n.count, n.sides)
	if n.drop > 0 {
		s += fmt.Sprintf("dl%d", n.drop)
	}
	switch {
	case n.modifier > 0:
		s += fmt.Sprintf("+%d", n.modifier)
	case n.modifier < 0:
		s += fmt.Sprintf("%d", n.modifier)
	}
	return s
}

// parseDiceNotation parses notation like "2d6", "d20+5" or "4d6dl1"
func parseDiceNotation(raw string) (notation, error) {
	cleaned := strings.ToLower(strings.Join(strings.Fields(raw), ""))
	matches := diceNotationRegex.FindStringSubmatch(cleaned)
	if matches == nil {
		return notation{}, errors.InvalidArgumentf("invalid dice notation %q (expected NdM, e.g. 2d6+1)", raw)
	}

	n := notation{count: 1}
	var err error
	if matches[1] != "" {
		if n.count, err = strconv.Atoi(matches[1]); err != nil {
			return notation{}, errors.InvalidArgumentf("invalid dice count in %q", raw)
		}
	}
	if n.sides, err = strconv.Atoi(matches[2]); err != nil {
		return notation{}, errors.InvalidArgumentf("invalid die size in %q", raw)
	}
	if matches[3] != "" {
		if n.drop, err = strconv.Atoi(matches[3]); err != nil {
			return notation{}, errors.InvalidArgumentf("invalid drop count in %q", raw)
		}
	}
	if matches[5] != "" {
		if n.modifier, err = strconv.Atoi(matches[5]); err != nil {
			return notation{}, errors.InvalidArgumentf("invalid modifier in %q", raw)
		}
		if matches[4] == "-" {
			n.modifier = -n.modifier
		}
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRange("count", n.count, 1, MaxDice, vb)
	errors.ValidateRange("sides", n.sides, 2, MaxSides, vb)
	errors.ValidateRange("modifier", n.modifier, -MaxModifier, MaxModifier, vb)
	if n.drop >= n.count {
		vb.Fieldf("drop", "must be less than the dice count %d", n.count)
	}
	if err := vb.Build(); err != nil {
		return notation{}, err
	}

	return n, nil
}

// Roll rolls the notation with the configured roller
func (o *orchestrator) Roll(_ context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil || strings.TrimSpace(input.Notation) == "" {
		return nil, errors.InvalidArgument("dice notation is required")
	}

	n, err := parseDiceNotation(input.Notation)
	if err != nil {
		return nil, err
	}

	rolled, err := o.roller.RollN(n.count, n.sides)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "failed to roll dice")
	}

	kept, dropped := dropLowest(rolled, n.drop)
	total := n.modifier
	for _, d := range kept {
		total += d
	}

	o.logger.Debug("dice rolled",
		zap.String("notation", n.String()),
		zap.Ints("dice", rolled),
		zap.Int("total", total))

	return &RollOutput{
		Notation: n.String(),
		Dice:     kept,
		Dropped:  dropped,
		Modifier: n.modifier,
		Total:    total,
	}, nil
}

// dropLowest removes the n lowest values, keeping the rest in roll order
func dropLowest(rolled []int, n int) (kept, dropped []int) {
	if n <= 0 {
		return append([]int(nil), rolled...), nil
	}

	idx := make([]int, len(rolled))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return rolled[idx[a]] < rolled[idx[b]] })

	drop := make(map[int]bool, n)
	for _, i := range idx[:n] {
		drop[i] = true
		dropped = append(dropped, rolled[i])
	}
	for i, v := range rolled {
		if !drop[i] {
			kept = append(kept, v)
		}
	}
	return kept, dropped
}
