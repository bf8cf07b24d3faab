package concurrency

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockManager_SerializesSameKey(t *testing.T) {
	lm := NewLockManager()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, lm.Lock(ctx, "acct-1"))
			counter++
			lm.Unlock("acct-1")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
}

func TestLockManager_KeysAreIndependent(t *testing.T) {
	lm := NewLockManager()
	require.True(t, lm.TryLock("a"))
	assert.True(t, lm.TryLock("b"))
	assert.False(t, lm.TryLock("a"))

	lm.Unlock("a")
	assert.True(t, lm.TryLock("a"))
}

func TestLockManager_LockHonorsContext(t *testing.T) {
	lm := NewLockManager()
	require.True(t, lm.TryLock("a"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, lm.Lock(ctx, "a"), context.DeadlineExceeded)
}

func TestLockManager_UnlockUnheldPanics(t *testing.T) {
	lm := NewLockManager()
	assert.Panics(t, func() { lm.Unlock("never") })
}
