package gateway

import (
	"encoding/json"
	"time"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
)

// Op names a frame type
type Op string

// Client ops
const (
	OpIdentify Op = "identify"
	OpMessage  Op = "message"
)

// Server ops
const (
	OpReady         Op = "ready"
	OpMessageCreate Op = "message_create"
	OpMessageUpdate Op = "message_update"
)

// Frame is the envelope of every websocket message
type Frame struct {
	Op   Op              `json:"op"`
	Data json.RawMessage `json:"d,omitempty"`
}

// IdentifyData is sent once by the client after connecting
type IdentifyData struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	GuildID     string `json:"guild_id,omitempty"`
	ChannelID   string `json:"channel_id"`
}

// MessageData is a user message
type MessageData struct {
	Content string `json:"content"`
}

// ReadyData acknowledges an identify
type ReadyData struct {
	SessionID string             `json:"session_id"`
	User      entities.Requester `json:"user"`
	Bot       entities.Requester `json:"bot"`
}

// MessageEvent is the payload of message_create and message_update
type MessageEvent struct {
	MessageID string             `json:"message_id"`
	ChannelID string             `json:"channel_id"`
	Author    entities.Requester `json:"author"`
	Content   string             `json:"content,omitempty"`
	Embeds    []entities.Segment `json:"embeds,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

// NewFrame marshals data into a frame
func NewFrame(op Op, data any) (Frame, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Frame{}, err
	}
	return Frame{Op: op, Data: raw}, nil
}

// Decode unmarshals the frame payload
func (f Frame) Decode(dst any) error {
	return json.Unmarshal(f.Data, dst)
}
