// Package commands parses chat messages into bot commands and runs them
package commands

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	"github.com/NekroDarkmoon/Zen.A5E/internal/interaction"
	"github.com/NekroDarkmoon/Zen.A5E/internal/metrics"
	"github.com/NekroDarkmoon/Zen.A5E/internal/orchestrators/dice"
	"github.com/NekroDarkmoon/Zen.A5E/internal/orchestrators/lookup"
	"github.com/NekroDarkmoon/Zen.A5E/internal/pkg/clock"
	guildsettings "github.com/NekroDarkmoon/Zen.A5E/internal/repositories/guild_settings"
	rollhistory "github.com/NekroDarkmoon/Zen.A5E/internal/repositories/roll_history"
	"github.com/NekroDarkmoon/Zen.A5E/internal/services/conversion"
)

// DefaultPrefix is used in DMs and in guilds that never set prefixes
const DefaultPrefix = "?"

// HandlerConfig holds dependencies for the command handler
type HandlerConfig struct {
	Lookup    lookup.Service
	Converter conversion.Converter
	Dice      dice.Service
	Settings  guildsettings.Repository
	History   rollhistory.Repository // optional; enables reroll and rolls
	Clock     clock.Clock

	BotID         string // used for mention prefixes
	DefaultPrefix string
	Version       string

	Logger *zap.Logger
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Lookup == nil {
		vb.RequiredField("Lookup")
	}
	if c.Converter == nil {
		vb.RequiredField("Converter")
	}
	if c.Dice == nil {
		vb.RequiredField("Dice")
	}
	if c.Settings == nil {
		vb.RequiredField("Settings")
	}
	errors.ValidateRequired("BotID", c.BotID, vb)

	return vb.Build()
}

// Call is one parsed command invocation
type Call struct {
	Message      interaction.Message
	Conversation interaction.Conversation
	Prefix       string
	Name         string
	Args         string
}

type command struct {
	name      string
	aliases   []string
	usage     string
	help      string
	guildOnly bool
	run       func(ctx context.Context, call *Call) error
}

// Handler dispatches user messages to commands
type Handler struct {
	lookup    lookup.Service
	converter conversion.Converter
	dice      dice.Service
	settings  guildsettings.Repository
	history   rollhistory.Repository
	clock     clock.Clock
	logger    *zap.Logger

	botID         string
	defaultPrefix string
	version       string
	started       time.Time

	commands map[string]*command
	ordered  []*command
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	h := &Handler{
		lookup:        cfg.Lookup,
		converter:     cfg.Converter,
		dice:          cfg.Dice,
		settings:      cfg.Settings,
		history:       cfg.History,
		clock:         cfg.Clock,
		logger:        cfg.Logger,
		botID:         cfg.BotID,
		defaultPrefix: cfg.DefaultPrefix,
		version:       cfg.Version,
		commands:      make(map[string]*command),
	}
	if h.clock == nil {
		h.clock = clock.New()
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	h.logger = h.logger.Named("commands")
	if h.defaultPrefix == "" {
		h.defaultPrefix = DefaultPrefix
	}
	h.started = h.clock.Now()

	h.registerCompendium()
	h.registerMeta()
	h.registerRoll()

	return h, nil
}

func (h *Handler) register(cmd *command) {
	h.commands[cmd.name] = cmd
	for _, alias := range cmd.aliases {
		h.commands[alias] = cmd
	}
	h.ordered = append(h.ordered, cmd)
	sort.Slice(h.ordered, func(i, j int) bool { return h.ordered[i].name < h.ordered[j].name })
}

// HandleMessage runs the command in msg, if there is one. Messages that
// are not commands, and commands from blacklisted authors or guilds, are
// ignored. Command failures are reported to the channel and returned.
func (h *Handler) HandleMessage(ctx context.Context, msg interaction.Message, conv interaction.Conversation) error {
	call, ok := h.parse(ctx, msg)
	if !ok {
		return nil
	}
	call.Conversation = conv

	cmd := h.commands[call.Name]
	if cmd == nil {
		return nil
	}

	logger := h.logger.With(
		zap.String("command", cmd.name),
		zap.String("user_id", msg.Author.UserID),
		zap.String("guild_id", msg.Author.GuildID),
		zap.String("channel_id", msg.ChannelID),
	)

	if h.blacklisted(ctx, msg, logger) {
		metrics.RecordCommand(cmd.name, "blacklisted")
		return nil
	}

	if cmd.guildOnly && msg.Author.GuildID == "" {
		return h.fail(ctx, cmd, call, logger, errors.InvalidArgument("This command can only be used in a server."))
	}

	logger.Debug("running command", zap.String("args", call.Args))
	if err := cmd.run(ctx, call); err != nil {
		return h.fail(ctx, cmd, call, logger, err)
	}

	metrics.RecordCommand(cmd.name, "ok")
	return nil
}

// fail reports err to the channel and returns it
func (h *Handler) fail(ctx context.Context, cmd *command, call *Call, logger *zap.Logger, err error) error {
	result := "error"
	switch {
	case errors.IsInvalidArgument(err):
		result = "invalid"
		logger.Debug("command rejected", zap.Error(err))
	case errors.IsCanceled(err):
		result = "canceled"
		logger.Debug("command canceled", zap.Error(err))
		metrics.RecordCommand(cmd.name, result)
		return err
	case errors.IsMalformedRecord(err):
		meta := errors.GetMeta(err)
		logger.Error("malformed record",
			zap.Any("entity_type", meta["entity_type"]),
			zap.Any("name", meta["name"]),
			zap.Error(err))
	default:
		logger.Error("command failed", zap.Error(err))
	}
	metrics.RecordCommand(cmd.name, result)

	if _, sendErr := call.Conversation.Send(ctx, interaction.Reply{Content: errors.UserMessage(err)}); sendErr != nil {
		logger.Warn("failed to report command error", zap.Error(sendErr))
	}
	return err
}

// parse splits a message into prefix, command name and arguments
func (h *Handler) parse(ctx context.Context, msg interaction.Message) (*Call, bool) {
	content := strings.TrimSpace(msg.Content)
	if content == "" {
		return nil, false
	}

	for _, prefix := range h.prefixes(ctx, msg.Author.GuildID) {
		if !strings.HasPrefix(content, prefix) {
			continue
		}
		rest := strings.TrimSpace(content[len(prefix):])
		name, args, _ := strings.Cut(rest, " ")
		if name == "" {
			return nil, false
		}
		return &Call{
			Message: msg,
			Prefix:  prefix,
			Name:    strings.ToLower(name),
			Args:    strings.TrimSpace(args),
		}, true
	}
	return nil, false
}

// prefixes lists the accepted prefixes for a guild, mentions first. Direct
// messages and unreadable settings fall back to the default prefix.
func (h *Handler) prefixes(ctx context.Context, guildID string) []string {
	base := []string{"<@!" + h.botID + ">", "<@" + h.botID + ">"}
	if guildID == "" {
		return append(base, h.defaultPrefix)
	}

	out, err := h.settings.GetPrefixes(ctx, guildsettings.GetPrefixesInput{GuildID: guildID})
	if err != nil {
		h.logger.Warn("failed to read guild prefixes", zap.String("guild_id", guildID), zap.Error(err))
		return append(base, h.defaultPrefix)
	}
	if !out.Custom {
		return append(base, h.defaultPrefix)
	}
	return append(base, out.Prefixes...)
}

// blacklisted checks the author and guild; storage errors let the command through
func (h *Handler) blacklisted(ctx context.Context, msg interaction.Message, logger *zap.Logger) bool {
	out, err := h.settings.IsBlacklisted(ctx, guildsettings.IsBlacklistedInput{
		IDs: []string{msg.Author.UserID, msg.Author.GuildID},
	})
	if err != nil {
		logger.Warn("failed to read blacklist", zap.Error(err))
		return false
	}
	return out.Blacklisted
}
