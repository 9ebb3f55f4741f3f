package booking

import "sync"

// SlotLocker serializes work per (court, date). Entries are reference counted
// and removed once no caller holds or waits on them.
type SlotLocker struct {
	mu    sync.Mutex
	slots map[slotKey]*slotLock
}

type slotKey struct {
	courtID int64
	date    Date
}

type slotLock struct {
	mu   sync.Mutex
	refs int
}

func NewSlotLocker() *SlotLocker {
	return &SlotLocker{slots: make(map[slotKey]*slotLock)}
}

// Lock blocks until the (courtID, date) slot is free and returns its release func.
func (l *SlotLocker) Lock(courtID int64, date Date) (unlock func()) {
	key := slotKey{courtID: courtID, date: date}

	l.mu.Lock()
	entry, ok := l.slots[key]
	if !ok {
		entry = &slotLock{}
		l.slots[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()
		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.slots, key)
		}
		l.mu.Unlock()
	}
}

func (l *SlotLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
