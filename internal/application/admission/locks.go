package admission

import "sync"

// eventLocks serializes admissions per event. The event document (stock,
// capacity) is the unit of contention; holding its lock across
// read-validate-write upholds the oversell invariant under concurrent
// requests. Process-local, like the forum room registry.
type eventLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func (l *eventLocks) acquire(eventID string) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[string]*sync.Mutex)
	}
	em, ok := l.m[eventID]
	if !ok {
		em = &sync.Mutex{}
		l.m[eventID] = em
	}
	l.mu.Unlock()

	em.Lock()
	return em.Unlock
}
