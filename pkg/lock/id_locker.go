package lock

import (
	"sync"

	"github.com/apex/log"
)

// IdLocker hands out one mutex per id, so work on different ids proceeds in
// parallel while work on the same id is serialized. Callers should only
// lock ids of records that exist, since entries are never removed.
type IdLocker struct {
	mapMutex sync.Mutex
	idMap    map[int]*sync.Mutex
}

func NewIdLocker() *IdLocker {
	return &IdLocker{
		idMap: make(map[int]*sync.Mutex),
	}
}

func (l *IdLocker) AcquireLock(id int) {
	l.mapMutex.Lock()
	idMutex, ok := l.idMap[id]
	if !ok {
		idMutex = &sync.Mutex{}
		l.idMap[id] = idMutex
	}
	l.mapMutex.Unlock()

	idMutex.Lock()
}

func (l *IdLocker) ReleaseLock(id int) {
	l.mapMutex.Lock()
	m, ok := l.idMap[id]
	l.mapMutex.Unlock()

	if !ok {
		log.Errorf("ReleaseLock called on id (%d) with no mutex", id)
		return
	}

	m.Unlock()
}

func (l *IdLocker) WithLock(id int, f func() error) error {
	l.AcquireLock(id)
	defer l.ReleaseLock(id)
	return f()
}

// Len returns the number of ids that have a mutex.
func (l *IdLocker) Len() int {
	l.mapMutex.Lock()
	defer l.mapMutex.Unlock()
	return len(l.idMap)
}
