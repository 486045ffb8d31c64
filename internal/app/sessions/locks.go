// Package sessions serialises read-modify-write cycles per session.
package sessions

import "sync"

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// Locks hands out one mutex per session id. An entry lives only while a
// caller holds or waits on it, so idle session ids cost nothing.
type Locks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

func NewLocks() *Locks {
	return &Locks{locks: make(map[string]*sessionLock)}
}

// Lock blocks until session is free and returns the matching unlock.
// A nil *Locks never blocks.
func (l *Locks) Lock(session string) func() {
	if l == nil {
		return func() {}
	}
	l.mu.Lock()
	entry, ok := l.locks[session]
	if !ok {
		entry = &sessionLock{}
		l.locks[session] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	var once sync.Once
	return func() {
		once.Do(func() {
			entry.mu.Unlock()
			l.release(session, entry)
		})
	}
}

func (l *Locks) release(session string, entry *sessionLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, session)
	}
}

// Len reports how many sessions currently hold or wait on a lock.
func (l *Locks) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
