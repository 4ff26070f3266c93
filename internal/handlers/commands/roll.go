package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	"github.com/NekroDarkmoon/Zen.A5E/internal/interaction"
	"github.com/NekroDarkmoon/Zen.A5E/internal/orchestrators/dice"
	rollhistory "github.com/NekroDarkmoon/Zen.A5E/internal/repositories/roll_history"
)

// recentRollsShown bounds the rolls command's listing
const recentRollsShown = 5

func (h *Handler) registerRoll() {
	h.register(&command{
		name:    "roll",
		aliases: []string{"r"},
		usage:   "roll <dice>",
		help:    "Rolls dice, e.g. `2d6+1` or `4d6dl1`.",
		run:     h.roll,
	})
	if h.history == nil {
		return
	}
	h.register(&command{
		name:    "reroll",
		aliases: []string{"rr"},
		usage:   "reroll",
		help:    "Rolls your last dice again.",
		run:     h.reroll,
	})
	h.register(&command{
		name:  "rolls",
		usage: "rolls",
		help:  "Lists your recent rolls.",
		run:   h.recentRolls,
	})
}

func (h *Handler) roll(ctx context.Context, call *Call) error {
	if call.Args == "" {
		return errors.InvalidArgumentf("Usage: `%sroll <dice>`", call.Prefix)
	}

	return h.rollAndRecord(ctx, call, call.Args)
}

func (h *Handler) rollAndRecord(ctx context.Context, call *Call, notation string) error {
	out, err := h.dice.Roll(ctx, &dice.RollInput{Notation: notation})
	if err != nil {
		return err
	}

	if h.history != nil {
		err := h.history.Record(ctx, rollhistory.RecordInput{
			UserID: call.Message.Author.UserID,
			Entry: rollhistory.Entry{
				Notation: out.Notation,
				Dice:     out.Dice,
				Dropped:  out.Dropped,
				Modifier: out.Modifier,
				Total:    out.Total,
				RolledAt: h.clock.Now(),
			},
		})
		if err != nil {
			h.logger.Warn("failed to record roll", zap.String("user_id", call.Message.Author.UserID), zap.Error(err))
		}
	}

	return h.reply(ctx, call, interaction.Reply{
		Content: fmt.Sprintf("<@%s> rolled %s", call.Message.Author.UserID, formatRoll(out)),
	})
}

func (h *Handler) reroll(ctx context.Context, call *Call) error {
	out, err := h.history.Recent(ctx, rollhistory.RecentInput{UserID: call.Message.Author.UserID, Limit: 1})
	if errors.IsNotFound(err) {
		return h.reply(ctx, call, interaction.Reply{Content: "You have no recent rolls."})
	}
	if err != nil {
		return err
	}
	return h.rollAndRecord(ctx, call, out.Entries[0].Notation)
}

func (h *Handler) recentRolls(ctx context.Context, call *Call) error {
	out, err := h.history.Recent(ctx, rollhistory.RecentInput{
		UserID: call.Message.Author.UserID,
		Limit:  recentRollsShown,
	})
	if errors.IsNotFound(err) {
		return h.reply(ctx, call, interaction.Reply{Content: "You have no recent rolls."})
	}
	if err != nil {
		return err
	}

	lines := make([]string, len(out.Entries))
	for i, e := range out.Entries {
		lines[i] = fmt.Sprintf("%d. %s", i+1, formatRoll(&dice.RollOutput{
			Notation: e.Notation,
			Dice:     e.Dice,
			Dropped:  e.Dropped,
			Modifier: e.Modifier,
			Total:    e.Total,
		}))
	}
	return h.reply(ctx, call, interaction.Reply{
		Content: fmt.Sprintf("Recent rolls for <@%s>:\n%s", call.Message.Author.UserID, strings.Join(lines, "\n")),
	})
}

// formatRoll renders "**2d6+1**: [3, 4] +1 = **8**", striking dropped dice
func formatRoll(out *dice.RollOutput) string {
	parts := make([]string, 0, len(out.Dice)+len(out.Dropped))
	for _, d := range out.Dice {
		parts = append(parts, strconv.Itoa(d))
	}
	for _, d := range out.Dropped {
		parts = append(parts, "~~"+strconv.Itoa(d)+"~~")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**: [%s]", out.Notation, strings.Join(parts, ", "))
	switch {
	case out.Modifier > 0:
		fmt.Fprintf(&b, " +%d", out.Modifier)
	case out.Modifier < 0:
		fmt.Fprintf(&b, " %d", out.Modifier)
	}
	fmt.Fprintf(&b, " = **%d**", out.Total)
	return b.String()
}
