package event

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/testing/leaktest"
)

// flakyBus records every publish and fails while failing returns true for the call number
type flakyBus struct {
	mu      sync.Mutex
	calls   []time.Time
	failing func(call int) bool
}

func (b *flakyBus) Publish(context.Context, Event) error {
	b.mu.Lock()
	b.calls = append(b.calls, time.Now())
	n := len(b.calls)
	b.mu.Unlock()

	if b.failing != nil && b.failing(n) {
		return errors.New("broker unavailable")
	}
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func (b *flakyBus) callTimes() []time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]time.Time(nil), b.calls...)
}

func settledEvent(accountID string) Event {
	return NewRoundSettledEvent(&domain.RoundResult{
		RoundID:      "round-1",
		AccountID:    accountID,
		Game:         domain.GameSlots,
		Bet:          100,
		PayoutAmount: 250,
		NewBalance:   10_150,
	})
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	entries, err := ReadDeadLetters(path)
	require.NoError(t, err)
	return entries
}

func newPublisher(t *testing.T, bus Bus, retries int, delay time.Duration) (*ResilientPublisher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	rp, err := NewResilientPublisher(bus, retries, delay, path)
	require.NoError(t, err)
	return rp, path
}

func TestResilientPublisher_FirstAttemptSucceeds(t *testing.T) {
	bus := &flakyBus{}
	rp, path := newPublisher(t, bus, 3, 20*time.Millisecond)

	rp.PublishWithRetry(context.Background(), settledEvent("alice"))
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 1, bus.count())
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_RetriesUntilDelivered(t *testing.T) {
	bus := &flakyBus{failing: func(call int) bool { return call <= 2 }}
	rp, path := newPublisher(t, bus, 5, 10*time.Millisecond)

	rp.PublishWithRetry(context.Background(), settledEvent("alice"))

	assert.Eventually(t, func() bool { return bus.count() == 3 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_ExhaustedRetriesAreDeadLettered(t *testing.T) {
	bus := &flakyBus{failing: func(int) bool { return true }}
	rp, path := newPublisher(t, bus, 2, 10*time.Millisecond)

	rp.PublishWithRetry(context.Background(), settledEvent("bob"))

	// First attempt plus two retries
	assert.Eventually(t, func() bool { return bus.count() == 3 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, DeadLetterSchemaVersion, entries[0].SchemaVersion)
	assert.Equal(t, RoundSettled, entries[0].Event.Type)
	assert.Equal(t, 3, entries[0].Attempts)
	assert.Equal(t, "broker unavailable", entries[0].LastError)
	assert.Equal(t, "bob", entries[0].Event.AccountID())
	assert.Equal(t, "bob", entries[0].AccountID)
}

func TestResilientPublisher_BackoffDoubles(t *testing.T) {
	base := 20 * time.Millisecond
	bus := &flakyBus{failing: func(call int) bool { return call <= 3 }}
	rp, _ := newPublisher(t, bus, 5, base)
	defer func() { _ = rp.Shutdown(context.Background()) }()

	rp.PublishWithRetry(context.Background(), settledEvent("carol"))
	require.Eventually(t, func() bool { return bus.count() == 4 }, 2*time.Second, 5*time.Millisecond)

	calls := bus.callTimes()
	for i := 1; i < len(calls); i++ {
		want := CalculateRetryDelay(base, i)
		assert.GreaterOrEqual(t, calls[i].Sub(calls[i-1]), want-5*time.Millisecond, "gap before attempt %d", i+1)
	}
}

func TestResilientPublisher_ShutdownDrainsPendingRetries(t *testing.T) {
	// Retries would wait a minute; shutdown must not
	leaks := leaktest.NewGoroutineChecker(t)
	bus := &flakyBus{failing: func(call int) bool { return call == 1 }}
	rp, path := newPublisher(t, bus, 5, time.Minute)

	rp.PublishWithRetry(context.Background(), settledEvent("dave"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	assert.Equal(t, 2, bus.count())
	assert.Empty(t, readDeadLetters(t, path))
	leaks.Check(0)
}

func TestResilientPublisher_ConcurrentPublishes(t *testing.T) {
	bus := &flakyBus{}
	rp, _ := newPublisher(t, bus, 3, 10*time.Millisecond)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rp.PublishWithRetry(context.Background(), settledEvent("erin"))
		}()
	}
	wg.Wait()
	require.NoError(t, rp.Shutdown(context.Background()))

	assert.Equal(t, 50, bus.count())
}

func TestResilientPublisher_SubscribeDelegates(t *testing.T) {
	bus := NewMemoryBus()
	rp, _ := newPublisher(t, bus, 1, time.Millisecond)
	defer func() { _ = rp.Shutdown(context.Background()) }()

	var got Event
	rp.Subscribe(RoundSettled, func(_ context.Context, e Event) error {
		got = e
		return nil
	})
	rp.PublishWithRetry(context.Background(), settledEvent("frank"))

	assert.Equal(t, "frank", got.AccountID())
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 32*time.Second, CalculateRetryDelay(base, 5))
	assert.Equal(t, base, CalculateRetryDelay(base, 0))
	assert.Equal(t, CalculateRetryDelay(base, 17), CalculateRetryDelay(base, 40), "backoff is capped")
}

func TestReadDeadLetters(t *testing.T) {
	dir := t.TempDir()

	entries, err := ReadDeadLetters(filepath.Join(dir, "missing.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	path := filepath.Join(dir, "deadletter.jsonl")
	w, err := NewDeadLetterWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(settledEvent("gina"), 4, errors.New("timeout")))
	require.NoError(t, w.Write(NewJackpotRefreshedEvent(domain.ProgressiveJackpot{PoolID: domain.JackpotPoolMegaSlots}), 2, nil))
	require.NoError(t, w.Close())

	entries, err = ReadDeadLetters(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "gina", entries[0].AccountID)
	assert.Equal(t, "timeout", entries[0].LastError)
	assert.Equal(t, JackpotRefreshed, entries[1].Event.Type)
	assert.Empty(t, entries[1].AccountID)
	assert.Empty(t, entries[1].LastError)

	require.NoError(t, os.WriteFile(path, []byte("{\"attempts\":1}\n\nnot json\n"), 0o644))
	entries, err = ReadDeadLetters(path)
	assert.ErrorContains(t, err, "line 3")
	assert.Len(t, entries, 1)
}
