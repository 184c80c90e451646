package booking

import "sync"

// keyedMutex hands out one mutex per auditorium so that the
// read-decide-write sequence for overlapping seat ranges is
// serialized while unrelated auditoriums proceed in parallel.
// The lock is per auditorium rather than per showtime because the
// paid-seat confirmation check spans every showtime sharing the
// room.  Mutexes are created on first use and kept for the lifetime
// of the process; the set of auditoriums is small and static.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uint64]*sync.Mutex)}
}

func (k *keyedMutex) get(key uint64) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
