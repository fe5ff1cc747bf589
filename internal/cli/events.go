package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/yahtzee-go/internal/api/response"
)

func newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Stream events from the active table",
		Long: `Connect to the active table's websocket and stream events in real-time.

Events include:
  - player_joined / player_left: Seating changed
  - game_started: Play has begun
  - dice_changed: Dice rolled, held or released
  - category_selected: A category was previewed
  - turn_ended: A score was committed
  - game_complete: Every scorecard is full
  - game_abandoned: The table was abandoned

Press Ctrl+C to disconnect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return streamEvents(ctx, client.WebsocketURL("/api/v1/table/events"), NewOutputTo(cmd.OutOrStdout(), cfg.Output), cmd.ErrOrStderr())
		},
	}
}

// streamEvents prints every event received on the websocket until the
// server closes it or ctx is cancelled
func streamEvents(ctx context.Context, url string, out *Output, status io.Writer) error {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("connection failed: HTTP %d", resp.StatusCode)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	go func() {
		<-ctx.Done()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		_ = conn.Close()
	}()

	_, _ = fmt.Fprintln(status, "Connected")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				_, _ = fmt.Fprintln(status, "Disconnected")
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}

		var event response.Event
		if err := json.Unmarshal(data, &event); err != nil {
			return fmt.Errorf("failed to parse event: %w", err)
		}
		out.Print(event)
	}
}
