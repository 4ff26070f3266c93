// Package gateway hosts the chat surface over websockets. Each connection
// identifies as one user in one channel; user messages are broadcast to
// the channel, fanned out to subscribers and handed to the dispatcher.
package gateway

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	"github.com/NekroDarkmoon/Zen.A5E/internal/interaction"
	"github.com/NekroDarkmoon/Zen.A5E/internal/metrics"
	"github.com/NekroDarkmoon/Zen.A5E/internal/pkg/clock"
	"github.com/NekroDarkmoon/Zen.A5E/internal/pkg/idgen"
)

const (
	// DefaultIdentifyTimeout bounds the wait for the identify frame
	DefaultIdentifyTimeout = 10 * time.Second

	writeTimeout      = 10 * time.Second
	sendBuffer        = 64
	subscribeBuffer   = 16
	maxTrackedReplies = 256
	maxContentLength  = 2000
)

// Dispatcher handles user messages. ctx is cancelled when the author's
// connection closes.
type Dispatcher interface {
	HandleMessage(ctx context.Context, msg interaction.Message, conv interaction.Conversation) error
}

// Config holds the dependencies for the gateway
type Config struct {
	Dispatcher      Dispatcher
	Bot             entities.Requester // author of bot replies; UserID is required
	IDGenerator     idgen.Generator
	Clock           clock.Clock
	OriginPatterns  []string
	IdentifyTimeout time.Duration
	Logger          *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Dispatcher == nil {
		vb.RequiredField("Dispatcher")
	}
	errors.ValidateRequired("Bot.UserID", c.Bot.UserID, vb)
	if c.IdentifyTimeout < 0 {
		vb.Field("IdentifyTimeout", "must not be negative")
	}

	return vb.Build()
}

// Gateway is an http.Handler serving the websocket endpoint
type Gateway struct {
	dispatcher      Dispatcher
	bot             entities.Requester
	ids             idgen.Generator
	clock           clock.Clock
	originPatterns  []string
	identifyTimeout time.Duration
	logger          *zap.Logger

	mu       sync.Mutex
	channels map[string]*channel
	closed   bool

	baseCtx  context.Context
	shutdown context.CancelFunc
	handlers sync.WaitGroup
}

var _ http.Handler = (*Gateway)(nil)

// New creates a gateway
func New(cfg *Config) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	g := &Gateway{
		dispatcher:      cfg.Dispatcher,
		bot:             cfg.Bot,
		ids:             cfg.IDGenerator,
		clock:           cfg.Clock,
		originPatterns:  cfg.OriginPatterns,
		identifyTimeout: cfg.IdentifyTimeout,
		logger:          cfg.Logger,
		channels:        make(map[string]*channel),
	}
	if g.ids == nil {
		g.ids = idgen.NewUUID("")
	}
	if g.clock == nil {
		g.clock = clock.New()
	}
	if g.identifyTimeout == 0 {
		g.identifyTimeout = DefaultIdentifyTimeout
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	g.logger = g.logger.Named("gateway")
	g.baseCtx, g.shutdown = context.WithCancel(context.Background())

	return g, nil
}

// ServeHTTP upgrades the request and serves the connection until it closes
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: g.originPatterns})
	if err != nil {
		g.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer func() { _ = ws.CloseNow() }()

	user, err := g.identify(r.Context(), ws)
	if err != nil {
		g.logger.Debug("identify failed", zap.Error(err))
		_ = ws.Close(websocket.StatusPolicyViolation, "invalid identify")
		return
	}

	c, err := g.register(ws, user)
	if err != nil {
		_ = ws.Close(websocket.StatusGoingAway, "shutting down")
		return
	}
	defer g.unregister(c)

	logger := g.logger.With(zap.String("session_id", c.id), zap.String("user_id", user.UserID), zap.String("channel_id", user.ChannelID))
	logger.Info("client connected")
	metrics.GatewayConnected(1)
	defer metrics.GatewayConnected(-1)

	ready, _ := NewFrame(OpReady, ReadyData{SessionID: c.id, User: user, Bot: g.bot})
	c.enqueue(ready)

	go c.writeLoop(logger)
	g.readLoop(c, logger)

	_ = ws.Close(websocket.StatusNormalClosure, "")
	logger.Info("client disconnected")
}

func (g *Gateway) identify(ctx context.Context, ws *websocket.Conn) (entities.Requester, error) {
	ctx, cancel := context.WithTimeout(ctx, g.identifyTimeout)
	defer cancel()

	var frame Frame
	if err := wsjson.Read(ctx, ws, &frame); err != nil {
		return entities.Requester{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to read identify")
	}
	if frame.Op != OpIdentify {
		return entities.Requester{}, errors.InvalidArgumentf("expected %s, got %q", OpIdentify, frame.Op)
	}

	var data IdentifyData
	if err := frame.Decode(&data); err != nil {
		return entities.Requester{}, errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed identify")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("user_id", data.UserID, vb)
	errors.ValidateRequired("channel_id", data.ChannelID, vb)
	if data.UserID == g.bot.UserID {
		vb.InvalidField("user_id", "reserved")
	}
	if err := vb.Build(); err != nil {
		return entities.Requester{}, err
	}

	name := data.DisplayName
	if name == "" {
		name = data.UserID
	}
	return entities.Requester{
		UserID:      data.UserID,
		DisplayName: name,
		GuildID:     data.GuildID,
		ChannelID:   data.ChannelID,
	}, nil
}

func (g *Gateway) readLoop(c *conn, logger *zap.Logger) {
	for {
		var frame Frame
		if err := wsjson.Read(c.ctx, c.ws, &frame); err != nil {
			if websocket.CloseStatus(err) == -1 && c.ctx.Err() == nil {
				logger.Debug("read failed", zap.Error(err))
			}
			return
		}

		if frame.Op != OpMessage {
			logger.Debug("ignoring frame", zap.String("op", string(frame.Op)))
			continue
		}

		var data MessageData
		if err := frame.Decode(&data); err != nil {
			logger.Debug("malformed message frame", zap.Error(err))
			continue
		}
		if data.Content == "" || len(data.Content) > maxContentLength {
			continue
		}

		g.post(c, data.Content, logger)
	}
}

// post publishes a user message and dispatches it
func (g *Gateway) post(c *conn, content string, logger *zap.Logger) {
	msg := interaction.Message{
		ID:        g.ids.Generate(),
		ChannelID: c.user.ChannelID,
		Author:    c.user,
		Content:   content,
		CreatedAt: g.clock.Now(),
	}

	ch := c.channel
	ch.broadcast(OpMessageCreate, MessageEvent{
		MessageID: msg.ID,
		ChannelID: msg.ChannelID,
		Author:    msg.Author,
		Content:   msg.Content,
		Timestamp: msg.CreatedAt,
	})
	ch.fanOut(msg)

	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.handlers.Add(1)
	g.mu.Unlock()

	go func() {
		defer g.handlers.Done()
		if err := g.dispatcher.HandleMessage(c.ctx, msg, ch.conv); err != nil {
			logger.Debug("message handler returned error", zap.String("message_id", msg.ID), zap.Error(err))
		}
	}()
}

func (g *Gateway) register(ws *websocket.Conn, user entities.Requester) (*conn, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return nil, errors.Unavailable("gateway is shutting down")
	}

	ch := g.channels[user.ChannelID]
	if ch == nil {
		ch = newChannel(user.ChannelID)
		ch.conv = &conversation{gateway: g, channel: ch}
		g.channels[user.ChannelID] = ch
	}

	ctx, cancel := context.WithCancel(g.baseCtx)
	c := &conn{
		id:      g.ids.Generate(),
		ws:      ws,
		user:    user,
		channel: ch,
		send:    make(chan Frame, sendBuffer),
		ctx:     ctx,
		cancel:  cancel,
	}
	ch.add(c)
	return c, nil
}

func (g *Gateway) unregister(c *conn) {
	c.cancel()

	g.mu.Lock()
	defer g.mu.Unlock()

	if c.channel.remove(c) && g.channels[c.channel.id] == c.channel {
		delete(g.channels, c.channel.id)
	}
}

// prune forgets a channel once its last connection and subscriber are gone
func (g *Gateway) prune(ch *channel) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if ch.unused() && g.channels[ch.id] == ch {
		delete(g.channels, ch.id)
	}
}

// Close disconnects every client and waits for in-flight handlers
func (g *Gateway) Close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()

	g.shutdown()
	g.handlers.Wait()
}

// conversation is the Conversation handed to the dispatcher for one channel
type conversation struct {
	gateway *Gateway
	channel *channel
}

var _ interaction.Conversation = (*conversation)(nil)

// Send broadcasts a bot message to the channel
func (c *conversation) Send(ctx context.Context, reply interaction.Reply) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WrapWithCode(err, errors.GetCode(err), "send aborted")
	}

	id := c.gateway.ids.Generate()
	c.channel.track(id)
	c.channel.broadcast(OpMessageCreate, MessageEvent{
		MessageID: id,
		ChannelID: c.channel.id,
		Author:    c.gateway.bot,
		Content:   reply.Content,
		Embeds:    reply.Segments,
		Timestamp: c.gateway.clock.Now(),
	})
	return id, nil
}

// Edit broadcasts a new version of a bot message
func (c *conversation) Edit(ctx context.Context, messageID string, reply interaction.Reply) error {
	if err := ctx.Err(); err != nil {
		return errors.WrapWithCode(err, errors.GetCode(err), "edit aborted")
	}
	if !c.channel.tracked(messageID) {
		return errors.NotFoundf("message %s not found", messageID)
	}

	c.channel.broadcast(OpMessageUpdate, MessageEvent{
		MessageID: messageID,
		ChannelID: c.channel.id,
		Author:    c.gateway.bot,
		Content:   reply.Content,
		Embeds:    reply.Segments,
		Timestamp: c.gateway.clock.Now(),
	})
	return nil
}

// Subscribe receives user messages posted to the channel
func (c *conversation) Subscribe() (<-chan interaction.Message, func()) {
	sub, release := c.channel.subscribe()

	var once sync.Once
	return sub, func() {
		once.Do(func() {
			release()
			c.gateway.prune(c.channel)
		})
	}
}
