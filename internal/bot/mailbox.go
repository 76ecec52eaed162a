package bot

import "sync"

// mailbox is an unbounded FIFO queue with a single consumer. push never
// blocks, so a slow handler cannot stall the poll loop.
type mailbox[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
	notify chan struct{}
}

func newMailbox[T any]() *mailbox[T] {
	return &mailbox[T]{notify: make(chan struct{}, 1)}
}

// push enqueues v. It returns false once the mailbox is closed.
func (m *mailbox[T]) push(v T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false
	}
	m.items = append(m.items, v)
	select {
	case m.notify <- struct{}{}:
	default:
	}
	return true
}

// pop blocks until an item is available. After close it keeps returning
// queued items and then reports false.
func (m *mailbox[T]) pop() (T, bool) {
	var zero T
	for {
		m.mu.Lock()
		if len(m.items) > 0 {
			v := m.items[0]
			m.items[0] = zero
			m.items = m.items[1:]
			m.mu.Unlock()
			return v, true
		}
		if m.closed {
			m.mu.Unlock()
			return zero, false
		}
		m.mu.Unlock()
		<-m.notify
	}
}

func (m *mailbox[T]) close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	close(m.notify)
}

func (m *mailbox[T]) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
