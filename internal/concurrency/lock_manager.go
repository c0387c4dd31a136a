package concurrency

import (
	"sync"
)

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

// LockManager hands out one mutex per key. Entries are dropped once no
// goroutine holds or waits on them, so per-player keys do not accumulate.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*keyedLock)}
}

// Lock blocks until key is free and returns the matching unlock func.
func (lm *LockManager) Lock(key string) (unlock func()) {
	lm.mu.Lock()
	l, ok := lm.locks[key]
	if !ok {
		l = &keyedLock{}
		lm.locks[key] = l
	}
	l.refs++
	lm.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		lm.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(lm.locks, key)
		}
		lm.mu.Unlock()
	}
}

// Len is the number of keys currently held or awaited.
func (lm *LockManager) Len() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}
