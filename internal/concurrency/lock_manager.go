// Package concurrency provides keyed locks for per-account serialization
package concurrency

import (
	"context"
	"sync"
)

// LockManager handles named locks. Each key gets its own single-slot semaphore so a waiter can
// give up when its context ends.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

func (lm *LockManager) slot(key string) chan struct{} {
	lock, _ := lm.locks.LoadOrStore(key, make(chan struct{}, 1))
	return lock.(chan struct{})
}

// Lock blocks until the key is held or ctx is done
func (lm *LockManager) Lock(ctx context.Context, key string) error {
	select {
	case lm.slot(key) <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryLock acquires the key only if it is free
func (lm *LockManager) TryLock(key string) bool {
	select {
	case lm.slot(key) <- struct{}{}:
		return true
	default:
		return false
	}
}

// Unlock releases a key held by Lock or TryLock
func (lm *LockManager) Unlock(key string) {
	select {
	case <-lm.slot(key):
	default:
		panic("concurrency: unlock of unlocked key " + key)
	}
}
