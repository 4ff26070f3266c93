package commands

import (
	"context"
	"fmt"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	"github.com/NekroDarkmoon/Zen.A5E/internal/interaction"
	"github.com/NekroDarkmoon/Zen.A5E/internal/orchestrators/lookup"
)

// MaxSegmentsPerReply is how many segments one reply may carry
const MaxSegmentsPerReply = 10

func (h *Handler) registerCompendium() {
	for _, t := range entities.AllEntityTypes {
		h.register(&command{
			name:  string(t),
			usage: string(t) + " <name>",
			help:  "Looks up a " + string(t) + ".",
			run:   h.lookupCommand(t),
		})
	}
}

func (h *Handler) lookupCommand(entityType entities.EntityType) func(context.Context, *Call) error {
	return func(ctx context.Context, call *Call) error {
		if call.Args == "" {
			return errors.InvalidArgumentf("Usage: `%s%s <name>`", call.Prefix, entityType)
		}

		out, err := h.lookup.Resolve(ctx, &lookup.ResolveInput{
			EntityType:   entityType,
			Query:        call.Args,
			Requester:    call.Message.Author,
			Conversation: call.Conversation,
		})
		if err != nil {
			return err
		}

		switch out.Outcome {
		case lookup.OutcomeNotFound:
			return h.reply(ctx, call, interaction.Reply{
				Content: fmt.Sprintf("No %s found matching `%s`.", entityType, call.Args),
			})
		case lookup.OutcomeNoSelection:
			return h.reply(ctx, call, interaction.Reply{Content: "No selection made."})
		}

		entry, err := h.converter.ToEntry(entityType, out.Record)
		if err != nil {
			return err
		}
		return h.sendSegments(ctx, call, entry.Render(call.Message.Author.DisplayName))
	}
}

// sendSegments posts segments in as few replies as the per-reply cap allows
func (h *Handler) sendSegments(ctx context.Context, call *Call, segments []entities.Segment) error {
	for start := 0; start < len(segments); start += MaxSegmentsPerReply {
		end := min(start+MaxSegmentsPerReply, len(segments))
		if err := h.reply(ctx, call, interaction.Reply{Segments: segments[start:end]}); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) reply(ctx context.Context, call *Call, reply interaction.Reply) error {
	if _, err := call.Conversation.Send(ctx, reply); err != nil {
		return errors.Wrap(err, "failed to send reply")
	}
	return nil
}
