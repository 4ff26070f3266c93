// Package interaction defines the contract between command handling and
// the chat surface that carries it.
package interaction

import (
	"context"
	"time"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
)

//go:generate mockgen -destination=mock/mock_conversation.go -package=interactionmock github.com/NekroDarkmoon/Zen.A5E/internal/interaction Conversation

// Message is a chat message posted by a user. ID is unique within the
// conversation.
type Message struct {
	ID        string             `json:"message_id"`
	ChannelID string             `json:"channel_id"`
	Author    entities.Requester `json:"author"`
	Content   string             `json:"content"`
	CreatedAt time.Time          `json:"created_at"`
}

// Reply is a message posted by the bot
type Reply struct {
	Content  string             `json:"content,omitempty"`
	Segments []entities.Segment `json:"embeds,omitempty"`
}

// Conversation is the channel a command was issued in, as seen by the
// code handling it. Cancellation of the command arrives through the
// context passed to the handler. Implementations are comparable and every
// command issued in one channel sees the same value.
type Conversation interface {
	// Send posts a reply and returns its message id
	Send(ctx context.Context, reply Reply) (string, error)

	// Edit replaces the content of a message previously sent
	Edit(ctx context.Context, messageID string, reply Reply) error

	// Subscribe delivers user messages posted to the channel from now on.
	// The returned func releases the subscription and is safe to call more
	// than once.
	Subscribe() (<-chan Message, func())
}
