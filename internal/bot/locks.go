package bot

import "sync"

// userLocks выстраивает апдейты одного пользователя в очередь в порядке
// поступления. Разные пользователи обрабатываются параллельно.
type userLocks struct {
	mu   sync.Mutex
	tail map[int64]chan struct{}
}

func newUserLocks() *userLocks {
	return &userLocks{tail: make(map[int64]chan struct{})}
}

// ticket is a reserved place in a user's queue.
type ticket struct {
	locks *userLocks
	key   int64
	prev  chan struct{}
	done  chan struct{}
}

// reserve takes the next place for key without blocking. The update loop
// calls it synchronously so the order of reservations is the arrival order.
func (l *userLocks) reserve(key int64) *ticket {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := &ticket{locks: l, key: key, prev: l.tail[key], done: make(chan struct{})}
	l.tail[key] = t.done
	return t
}

// lock reserves and waits; the returned func releases.
func (l *userLocks) lock(key int64) func() {
	t := l.reserve(key)
	t.wait()
	return t.release
}

func (t *ticket) wait() {
	if t.prev != nil {
		<-t.prev
	}
}

func (t *ticket) release() {
	t.locks.mu.Lock()
	if t.locks.tail[t.key] == t.done {
		delete(t.locks.tail, t.key)
	}
	t.locks.mu.Unlock()
	close(t.done)
}

// size is the number of users with queued or running work.
func (l *userLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tail)
}
