package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readEvent returns the next event name from the stream, skipping comments
func readEvent(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if name, ok := strings.CutPrefix(strings.TrimSpace(line), "event: "); ok {
			return name
		}
	}
}

func TestHandler_StreamsFilteredEvents(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?types=round.settled,+jackpot.awarded&account_id=alice", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body := bufio.NewReader(resp.Body)
	assert.Equal(t, EventTypeConnected, readEvent(t, body))
	waitForClients(t, hub, 1)

	hub.Broadcast("jackpot.refreshed", "", 1)
	hub.Broadcast("round.settled", "bob", 2)
	hub.Broadcast("round.settled", "alice", 3)
	assert.Equal(t, "round.settled", readEvent(t, body))

	cancel()
	waitForClients(t, hub, 0)
}

func TestHandler_HubShutdownEndsStream(t *testing.T) {
	hub := NewHub()
	hub.Start()
	srv := httptest.NewServer(Handler(hub))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body := bufio.NewReader(resp.Body)
	assert.Equal(t, EventTypeConnected, readEvent(t, body))
	waitForClients(t, hub, 1)

	hub.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = body.ReadString(0)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream stayed open after hub shutdown")
	}
}
