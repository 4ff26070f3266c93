package gateway

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/interaction"
)

// conn is one identified websocket client
type conn struct {
	id      string
	ws      *websocket.Conn
	user    entities.Requester
	channel *channel
	send    chan Frame
	ctx     context.Context
	cancel  context.CancelFunc
}

// enqueue queues a frame; a client that cannot keep up is disconnected
func (c *conn) enqueue(f Frame) {
	select {
	case c.send <- f:
	default:
		c.cancel()
	}
}

func (c *conn) writeLoop(logger *zap.Logger) {
	for {
		select {
		case <-c.ctx.Done():
			return
		case f := <-c.send:
			ctx, cancel := context.WithTimeout(c.ctx, writeTimeout)
			err := wsjson.Write(ctx, c.ws, f)
			cancel()
			if err != nil {
				logger.Debug("write failed", zap.Error(err))
				c.cancel()
				return
			}
		}
	}
}

// channel groups the connections and subscribers of one chat channel
type channel struct {
	id   string
	conv *conversation // shared by every command issued here

	mu      sync.Mutex
	conns   map[*conn]struct{}
	subs    map[int]chan interaction.Message
	nextSub int
	replies map[string]struct{}
	order   []string
}

func newChannel(id string) *channel {
	return &channel{
		id:      id,
		conns:   make(map[*conn]struct{}),
		subs:    make(map[int]chan interaction.Message),
		replies: make(map[string]struct{}),
	}
}

func (ch *channel) add(c *conn) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.conns[c] = struct{}{}
}

// remove drops c and reports whether the channel is now unused
func (ch *channel) remove(c *conn) bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	delete(ch.conns, c)
	return len(ch.conns) == 0 && len(ch.subs) == 0
}

func (ch *channel) unused() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return len(ch.conns) == 0 && len(ch.subs) == 0
}

// broadcast sends an event to every connection in the channel
func (ch *channel) broadcast(op Op, event MessageEvent) {
	frame, err := NewFrame(op, event)
	if err != nil {
		return
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()
	for c := range ch.conns {
		c.enqueue(frame)
	}
}

// fanOut delivers a user message to subscribers; full subscribers miss it
func (ch *channel) fanOut(msg interaction.Message) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	for _, sub := range ch.subs {
		select {
		case sub <- msg:
		default:
		}
	}
}

func (ch *channel) subscribe() (<-chan interaction.Message, func()) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	id := ch.nextSub
	ch.nextSub++
	sub := make(chan interaction.Message, subscribeBuffer)
	ch.subs[id] = sub

	var once sync.Once
	return sub, func() {
		once.Do(func() {
			ch.mu.Lock()
			defer ch.mu.Unlock()
			delete(ch.subs, id)
		})
	}
}

// track remembers a bot message id so it can be edited later
func (ch *channel) track(id string) {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	ch.replies[id] = struct{}{}
	ch.order = append(ch.order, id)
	if len(ch.order) > maxTrackedReplies {
		delete(ch.replies, ch.order[0])
		ch.order = ch.order[1:]
	}
}

func (ch *channel) tracked(id string) bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	_, ok := ch.replies[id]
	return ok
}

func (ch *channel) subscribers() int {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return len(ch.subs)
}
