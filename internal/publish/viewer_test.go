package publish

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	server "github.com/zishang520/socket.io/v2/socket"
)

// viewer is an in-process socket.io server standing in for a palette viewer.
type viewer struct {
	url      string
	received chan any
}

// startViewer serves socket.io on an httptest server. When ackEvent is set
// the viewer answers every palette with that event.
func startViewer(t *testing.T, ackEvent string) *viewer {
	t.Helper()

	received := make(chan any, 1)
	io := server.NewServer(nil, nil)
	io.On("connection", func(clients ...any) {
		client := clients[0].(*server.Socket)
		client.On(DefaultEvent, func(args ...any) {
			var payload any
			if len(args) > 0 {
				payload = args[0]
			}
			select {
			case received <- payload:
			default:
			}
			if ackEvent != "" {
				client.Emit(ackEvent, "rendered")
			}
		})
	})

	ts := httptest.NewServer(io.ServeHandler(nil))
	t.Cleanup(func() {
		io.Close(nil)
		ts.Close()
	})
	return &viewer{url: ts.URL, received: received}
}

func (v *viewer) waitPayload(t *testing.T) map[string]any {
	t.Helper()
	select {
	case p := <-v.received:
		payload, ok := p.(map[string]any)
		require.True(t, ok, "payload should decode as a JSON object, got %T", p)
		return payload
	case <-time.After(5 * time.Second):
		require.FailNow(t, "viewer never received the palette")
		return nil
	}
}

func testPayload() map[string]any {
	return map[string]any{
		"name":  "primaries",
		"model": "hsv",
		"hexes": []string{"#ff0000ff", "#00ff00ff", "#0000ffff"},
	}
}

func TestPublish_Viewer(t *testing.T) {
	t.Run("without ack event returns once the palette is sent", func(t *testing.T) {
		// --- Arrange ---
		v := startViewer(t, "")
		opts := Options{URL: v.url, Timeout: 5 * time.Second}

		// --- Act ---
		ack, err := Publish(context.Background(), opts, testPayload())

		// --- Assert ---
		require.NoError(t, err)
		assert.Nil(t, ack)
		payload := v.waitPayload(t)
		assert.Equal(t, "primaries", payload["name"])
		assert.Equal(t, "hsv", payload["model"])
		assert.Equal(t, []any{"#ff0000ff", "#00ff00ff", "#0000ffff"}, payload["hexes"])
	})

	t.Run("with ack event returns the viewer's answer", func(t *testing.T) {
		// --- Arrange ---
		v := startViewer(t, "rendered")
		opts := Options{URL: v.url, AckEvent: "rendered", Timeout: 5 * time.Second}

		// --- Act ---
		ack, err := Publish(context.Background(), opts, testPayload())

		// --- Assert ---
		require.NoError(t, err)
		assert.Equal(t, "rendered", ack)
		assert.Equal(t, "primaries", v.waitPayload(t)["name"])
	})

	t.Run("ack event that never arrives times out", func(t *testing.T) {
		// --- Arrange ---
		v := startViewer(t, "")
		opts := Options{URL: v.url, AckEvent: "rendered", Timeout: 1 * time.Second}

		// --- Act ---
		_, err := Publish(context.Background(), opts, testPayload())

		// --- Assert ---
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timed out after connecting while waiting for event 'rendered'")
		v.waitPayload(t)
	})

	t.Run("unreachable viewer returns an error", func(t *testing.T) {
		// --- Arrange ---
		ts := httptest.NewServer(nil)
		url := ts.URL
		ts.Close()
		opts := Options{URL: url, Timeout: 2 * time.Second}

		// --- Act ---
		start := time.Now()
		_, err := Publish(context.Background(), opts, testPayload())

		// --- Assert ---
		require.Error(t, err)
		assert.Less(t, time.Since(start), 5*time.Second)
	})

	t.Run("cancelled context wins over the timeout", func(t *testing.T) {
		// --- Arrange ---
		v := startViewer(t, "")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		opts := Options{URL: v.url, AckEvent: "rendered", Timeout: 5 * time.Second}

		// --- Act ---
		_, err := Publish(ctx, opts, testPayload())

		// --- Assert ---
		assert.ErrorIs(t, err, context.Canceled)
	})
}
