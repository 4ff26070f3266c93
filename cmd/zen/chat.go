package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/gateway"
)

var (
	chatURL     string
	chatUser    string
	chatName    string
	chatGuild   string
	chatChannel string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to a running bot from the terminal",
	Long: `Connect to the chat gateway and post each line typed as a message. Examples:

  zen chat --user alice --channel tavern
  zen chat --server ws://bot.example.com:8080/gateway --guild table-1 --channel tavern`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatURL, "server", "ws://localhost:8080/gateway", "gateway URL")
	chatCmd.Flags().StringVar(&chatUser, "user", os.Getenv("USER"), "user id")
	chatCmd.Flags().StringVar(&chatName, "name", "", "display name (defaults to the user id)")
	chatCmd.Flags().StringVar(&chatGuild, "guild", "", "guild id, empty for a direct message")
	chatCmd.Flags().StringVar(&chatChannel, "channel", "general", "channel id")
}

func runChat(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ws, _, err := websocket.Dial(ctx, chatURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", chatURL, err)
	}
	defer ws.CloseNow() // nolint:errcheck // safe to ignore in cleanup

	name := chatName
	if name == "" {
		name = chatUser
	}
	if err := writeFrame(ctx, ws, gateway.OpIdentify, gateway.IdentifyData{
		UserID:      chatUser,
		DisplayName: name,
		GuildID:     chatGuild,
		ChannelID:   chatChannel,
	}); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- printFrames(ctx, ws, os.Stdout)
	}()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ws.Close(websocket.StatusNormalClosure, "bye")
		case err := <-done:
			return err
		case line, ok := <-lines:
			if !ok {
				return ws.Close(websocket.StatusNormalClosure, "bye")
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			if err := writeFrame(ctx, ws, gateway.OpMessage, gateway.MessageData{Content: line}); err != nil {
				return err
			}
		}
	}
}

func writeFrame(ctx context.Context, ws *websocket.Conn, op gateway.Op, data any) error {
	frame, err := gateway.NewFrame(op, data)
	if err != nil {
		return err
	}
	return wsjson.Write(ctx, ws, frame)
}

// printFrames writes server frames to w until the connection closes
func printFrames(ctx context.Context, ws *websocket.Conn, w io.Writer) error {
	for {
		var frame gateway.Frame
		if err := wsjson.Read(ctx, ws, &frame); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("connection lost: %w", err)
		}

		switch frame.Op {
		case gateway.OpReady:
			var ready gateway.ReadyData
			if err := frame.Decode(&ready); err == nil {
				fmt.Fprintf(w, "connected as %s in #%s (%s is here)\n", ready.User.UserID, ready.User.ChannelID, ready.Bot.DisplayName)
			}
		case gateway.OpMessageCreate, gateway.OpMessageUpdate:
			var ev gateway.MessageEvent
			if err := frame.Decode(&ev); err != nil {
				continue
			}
			fmt.Fprint(w, formatEvent(frame.Op, ev))
		}
	}
}

func formatEvent(op gateway.Op, ev gateway.MessageEvent) string {
	var b strings.Builder

	author := ev.Author.DisplayName
	if author == "" {
		author = ev.Author.UserID
	}
	marker := ""
	if op == gateway.OpMessageUpdate {
		marker = " (edited)"
	}
	fmt.Fprintf(&b, "[%s] %s%s: %s\n", ev.Timestamp.Format("15:04:05"), author, marker, ev.Content)

	for _, seg := range ev.Embeds {
		writeSegment(&b, seg)
	}
	return b.String()
}

func writeSegment(b *strings.Builder, seg entities.Segment) {
	if seg.Title != "" {
		fmt.Fprintf(b, "  == %s ==\n", seg.Title)
	}
	if seg.Author != "" {
		fmt.Fprintf(b, "  (%s)\n", seg.Author)
	}
	for _, line := range strings.Split(seg.Description, "\n") {
		if line != "" {
			fmt.Fprintf(b, "  %s\n", line)
		}
	}
	for _, f := range seg.Fields {
		fmt.Fprintf(b, "  %s: %s\n", f.Name, strings.ReplaceAll(f.Value, "\n", "\n    "))
	}
	if seg.Footer != "" {
		fmt.Fprintf(b, "  -- %s\n", seg.Footer)
	}
}
