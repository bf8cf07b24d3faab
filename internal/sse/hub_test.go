package sse

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/event"
	"github.com/wrecklessracks/racks/internal/testing/leaktest"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, time.Second, time.Millisecond)
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case e := <-c.Events:
		return e
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func assertQuiet(t *testing.T, c *Client) {
	t.Helper()
	select {
	case e := <-c.Events:
		t.Fatalf("unexpected event %s", e.Type)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestHub_Filtering(t *testing.T) {
	hub := startHub(t)

	everything := hub.Register(nil, "")
	alice := hub.Register(nil, "alice")
	jackpotOnly := hub.Register([]string{string(event.JackpotRefreshed)}, "alice")
	waitForClients(t, hub, 3)

	hub.Broadcast(string(event.RoundSettled), "alice", "round")

	got := receive(t, alice)
	assert.Equal(t, string(event.RoundSettled), got.Type)
	assert.Equal(t, "round", got.Payload)
	assert.NotEmpty(t, got.ID)
	assertQuiet(t, everything)
	assertQuiet(t, jackpotOnly)

	hub.Broadcast(string(event.JackpotRefreshed), "", 50_000)

	for _, c := range []*Client{everything, alice, jackpotOnly} {
		assert.Equal(t, string(event.JackpotRefreshed), receive(t, c).Type)
	}
}

func TestHub_SlowClientMissesEvents(t *testing.T) {
	hub := startHub(t)
	slow := hub.Register(nil, "")
	waitForClients(t, hub, 1)

	for i := 0; i < ClientEventBuffer+10; i++ {
		hub.Broadcast(string(event.JackpotRefreshed), "", i)
	}

	require.Eventually(t, func() bool { return len(slow.Events) == ClientEventBuffer }, time.Second, time.Millisecond)
	assert.Equal(t, 0, receive(t, slow).Payload)
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	hub := startHub(t)
	c := hub.Register(nil, "")
	waitForClients(t, hub, 1)

	hub.Unregister(c.ID)
	waitForClients(t, hub, 0)

	_, open := <-c.Events
	assert.False(t, open)
}

func TestHub_StopClosesClientsAndIsIdempotent(t *testing.T) {
	leaks := leaktest.NewGoroutineChecker(t)
	hub := NewHub()
	hub.Start()
	c := hub.Register(nil, "bob")
	waitForClients(t, hub, 1)

	hub.Stop()
	hub.Stop()

	_, open := <-c.Events
	assert.False(t, open)
	assert.Zero(t, hub.ClientCount())

	// Registering after shutdown hands back a closed stream
	late := hub.Register(nil, "")
	_, open = <-late.Events
	assert.False(t, open)
	hub.Unregister(late.ID)

	leaks.Check(0)
}

func TestSubscriber_ForwardsBusEvents(t *testing.T) {
	hub := startHub(t)
	bus := event.NewMemoryBus()
	NewSubscriber(hub).Register(bus)

	watcher := hub.Register(nil, "carol")
	stranger := hub.Register(nil, "dave")
	waitForClients(t, hub, 2)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event.NewVIPTierChangedEvent("carol", 1, "Silver")))
	got := receive(t, watcher)
	assert.Equal(t, string(event.VIPTierChanged), got.Type)
	assert.IsType(t, event.VIPTierChangedPayloadV1{}, got.Payload)
	assertQuiet(t, stranger)

	// Jackpot wins go to everyone even though they belong to an account
	require.NoError(t, bus.Publish(ctx, event.NewJackpotAwardedEvent("carol", domain.JackpotPoolMegaSlots, 80_000)))
	assert.Equal(t, string(event.JackpotAwarded), receive(t, watcher).Type)
	assert.Equal(t, string(event.JackpotAwarded), receive(t, stranger).Type)
}

func TestFormatMessage(t *testing.T) {
	msg, err := FormatMessage(Event{ID: "e-1", Type: "jackpot.refreshed", Timestamp: 1, Payload: map[string]int{"amount": 5}})
	require.NoError(t, err)

	lines := strings.Split(string(msg), "\n")
	assert.Equal(t, "id: e-1", lines[0])
	assert.Equal(t, "event: jackpot.refreshed", lines[1])
	assert.JSONEq(t, `{"id":"e-1","type":"jackpot.refreshed","timestamp":1,"payload":{"amount":5}}`, strings.TrimPrefix(lines[2], "data: "))
	assert.True(t, strings.HasSuffix(string(msg), "\n\n"))

	_, err = FormatMessage(Event{Payload: make(chan int)})
	assert.Error(t, err)
}
