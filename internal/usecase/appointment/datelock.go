package appointment

import (
	"fmt"
	"sync"

	"github.com/romacabello/salon-scheduler/internal/models"
)

// DateLocks serializes booking writes per (date, staff) so concurrent
// creates and reschedules re-check occupancy one at a time. One instance
// is shared by every use case that writes the ledger; private locks
// would let a create and a reschedule interleave their checks.
// Entries are tiny and bounded by the number of distinct dates seen, so
// they are never evicted.
type DateLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDateLocks() *DateLocks {
	return &DateLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *DateLocks) Lock(date models.Date, staffID *uint) func() {
	key := date.String()
	if staffID != nil {
		key = fmt.Sprintf("%s/%d", key, *staffID)
	}

	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
