package interaction

import (
	"context"
	"sync"

	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
	"github.com/NekroDarkmoon/Zen.A5E/internal/pkg/idgen"
)

// SentMessage is a reply recorded by MemoryConversation
type SentMessage struct {
	ID    string
	Reply Reply
}

// MemoryConversation is an in-process Conversation. It records what the
// bot sends and lets callers inject user messages with Deliver.
type MemoryConversation struct {
	mu      sync.Mutex
	ids     idgen.Generator
	inIDs   idgen.Generator
	sent    []SentMessage
	edits   map[string][]Reply
	subs    map[int]chan Message
	nextSub int
	sentC   chan SentMessage

	// SendErr, when set, is returned by Send
	SendErr error
}

var _ Conversation = (*MemoryConversation)(nil)

// NewMemoryConversation creates an empty conversation
func NewMemoryConversation() *MemoryConversation {
	return &MemoryConversation{
		ids:   idgen.NewSequential("msg"),
		inIDs: idgen.NewSequential("in"),
		edits: make(map[string][]Reply),
		subs:  make(map[int]chan Message),
		sentC: make(chan SentMessage, 64),
	}
}

// Send records the reply
func (c *MemoryConversation) Send(_ context.Context, reply Reply) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.SendErr != nil {
		return "", c.SendErr
	}

	msg := SentMessage{ID: c.ids.Generate(), Reply: reply}
	c.sent = append(c.sent, msg)
	select {
	case c.sentC <- msg:
	default:
	}
	return msg.ID, nil
}

// Edit records a new version of a sent message
func (c *MemoryConversation) Edit(_ context.Context, messageID string, reply Reply) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range c.sent {
		if m.ID == messageID {
			c.edits[messageID] = append(c.edits[messageID], reply)
			return nil
		}
	}
	return errors.NotFoundf("message %s not found", messageID)
}

// Subscribe registers a buffered subscriber
func (c *MemoryConversation) Subscribe() (<-chan Message, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan Message, 16)
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
		})
	}
}

// Deliver hands a user message to every current subscriber. A message
// without an id gets one. Full subscribers miss the message.
func (c *MemoryConversation) Deliver(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if msg.ID == "" {
		msg.ID = c.inIDs.Generate()
	}

	for _, ch := range c.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Sent returns a channel that receives each reply as it is sent
func (c *MemoryConversation) Sent() <-chan SentMessage {
	return c.sentC
}

// SentMessages returns every reply sent so far
func (c *MemoryConversation) SentMessages() []SentMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]SentMessage(nil), c.sent...)
}

// Edits returns the edits applied to a message, oldest first
func (c *MemoryConversation) Edits(messageID string) []Reply {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Reply(nil), c.edits[messageID]...)
}

// Subscribers reports the number of live subscriptions
func (c *MemoryConversation) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}
