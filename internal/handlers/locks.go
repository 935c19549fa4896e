package handlers

import "sync"

// calendarLocks serializes read-modify-write cycles per calendar id.
// Entries are dropped once nobody holds or waits for them.
type calendarLocks struct {
	mu    sync.Mutex
	locks map[string]*calendarLock
}

type calendarLock struct {
	sync.Mutex
	refs int
}

func newCalendarLocks() *calendarLocks {
	return &calendarLocks{locks: make(map[string]*calendarLock)}
}

// Lock blocks until the calendar is free and returns the matching unlock.
func (locks *calendarLocks) Lock(calendarID string) func() {
	locks.mu.Lock()
	lock, ok := locks.locks[calendarID]
	if !ok {
		lock = &calendarLock{}
		locks.locks[calendarID] = lock
	}
	lock.refs++
	locks.mu.Unlock()

	lock.Lock()
	return func() {
		lock.Unlock()

		locks.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(locks.locks, calendarID)
		}
		locks.mu.Unlock()
	}
}

func (locks *calendarLocks) size() int {
	locks.mu.Lock()
	defer locks.mu.Unlock()
	return len(locks.locks)
}
