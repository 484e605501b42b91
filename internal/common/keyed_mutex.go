package common

import "sync"

// KeyedMutex serializes writers per key. The version log requires that
// all writes for one (entityType, entityID) pair happen one at a time;
// writes for different entities never contend.
//
// Locks are never removed from the map. The key space is bounded by the
// number of content entities a single process touches, which is small
// relative to the rows they generate.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex creates an empty keyed mutex
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use
func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
}

// Unlock releases the mutex for key. Unlocking a key that was never
// locked panics, same as sync.Mutex.
func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	l, ok := k.locks[key]
	k.mu.Unlock()
	if !ok {
		panic("common: unlock of unknown key " + key)
	}
	l.Unlock()
}
