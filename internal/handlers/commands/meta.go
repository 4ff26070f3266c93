package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	"github.com/NekroDarkmoon/Zen.A5E/internal/interaction"
	guildsettings "github.com/NekroDarkmoon/Zen.A5E/internal/repositories/guild_settings"
)

// Links shown by the info command
const (
	supportServerURL = "https://discord.com/invite/r6ufkcpSvU"
	sourceURL        = "https://github.com/NekroDarkmoon/Zen.A5E"
	donateURL        = "[Ko-fi](https://ko-fi.com/nekrodarkmoon)"
)

func (h *Handler) registerMeta() {
	h.register(&command{name: "ping", usage: "ping", help: "Checks that the bot is responding.", run: h.ping})
	h.register(&command{name: "info", usage: "info", help: "Shows links and bot details.", run: h.info})
	h.register(&command{name: "help", usage: "help", help: "Lists the commands.", run: h.help})
	h.register(&command{
		name:      "prefix",
		usage:     "prefix [add|remove <prefix> | clear]",
		help:      "Shows or changes the server's command prefixes.",
		guildOnly: true,
		run:       h.prefix,
	})
}

func (h *Handler) ping(ctx context.Context, call *Call) error {
	start := h.clock.Now()
	id, err := call.Conversation.Send(ctx, interaction.Reply{Content: "Pong!"})
	if err != nil {
		return errors.Wrap(err, "failed to send reply")
	}

	took := h.clock.Now().Sub(start)
	content := fmt.Sprintf("Pong! `%dms`", took.Milliseconds())
	if err := call.Conversation.Edit(ctx, id, interaction.Reply{Content: content}); err != nil {
		return errors.Wrap(err, "failed to edit reply")
	}
	return nil
}

func (h *Handler) info(ctx context.Context, call *Call) error {
	seg := entities.Segment{
		Title:       "Help",
		Description: "For detailed information about the bot please view the github page linked below.",
		Color:       entities.ColorDefault,
	}
	seg.AddField("Discord Server", supportServerURL, false).
		AddField("Github", sourceURL, false).
		AddField("Support The Bot", donateURL, false)
	if h.version != "" {
		seg.AddField("Version", h.version, true)
	}
	seg.AddField("Uptime", h.clock.Now().Sub(h.started).Round(time.Second).String(), true)

	return h.reply(ctx, call, interaction.Reply{Segments: []entities.Segment{seg}})
}

func (h *Handler) help(ctx context.Context, call *Call) error {
	lines := make([]string, len(h.ordered))
	for i, cmd := range h.ordered {
		lines[i] = fmt.Sprintf("`%s%s` %s", call.Prefix, cmd.usage, cmd.help)
	}
	return h.reply(ctx, call, interaction.Reply{Segments: []entities.Segment{{
		Title:       "Commands",
		Description: strings.Join(lines, "\n"),
		Color:       entities.ColorDefault,
	}}})
}

func (h *Handler) prefix(ctx context.Context, call *Call) error {
	guildID := call.Message.Author.GuildID
	action, arg, _ := strings.Cut(call.Args, " ")
	arg = strings.TrimSpace(arg)

	current, err := h.settings.GetPrefixes(ctx, guildsettings.GetPrefixesInput{GuildID: guildID})
	if err != nil {
		return err
	}
	prefixes := current.Prefixes
	if !current.Custom {
		prefixes = []string{h.defaultPrefix}
	}

	switch strings.ToLower(action) {
	case "":
		return h.reply(ctx, call, interaction.Reply{Content: describePrefixes(prefixes)})
	case "add":
		if arg == "" {
			return errors.InvalidArgumentf("Usage: `%sprefix add <prefix>`", call.Prefix)
		}
		if slices.Contains(prefixes, arg) {
			return errors.InvalidArgument("That prefix is already registered.")
		}
		prefixes = append(slices.Clone(prefixes), arg)
	case "remove":
		if arg == "" {
			return errors.InvalidArgumentf("Usage: `%sprefix remove <prefix>`", call.Prefix)
		}
		i := slices.Index(prefixes, arg)
		if i < 0 {
			return errors.InvalidArgument("That prefix is not registered.")
		}
		prefixes = slices.Delete(slices.Clone(prefixes), i, i+1)
	case "clear":
		prefixes = nil
	default:
		return errors.InvalidArgumentf("Unknown prefix action %q.", action)
	}

	out, err := h.settings.SetPrefixes(ctx, guildsettings.SetPrefixesInput{GuildID: guildID, Prefixes: prefixes})
	if err != nil {
		return err
	}
	return h.reply(ctx, call, interaction.Reply{Content: describePrefixes(out.Prefixes)})
}

func describePrefixes(prefixes []string) string {
	if len(prefixes) == 0 {
		return "No prefixes set. Mention the bot to use commands."
	}
	quoted := make([]string, len(prefixes))
	for i, p := range prefixes {
		quoted[i] = "`" + p + "`"
	}
	return "Prefixes: " + strings.Join(quoted, ", ")
}
