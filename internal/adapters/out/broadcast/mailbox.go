package broadcast

import (
	"sync"

	"printdelivery/internal/core/domain/model/dispatch"
)

// mailbox is a bounded drop-oldest queue with a one-slot wake-up signal.
type mailbox struct {
	mu     sync.Mutex
	items  []dispatch.Event
	size   int
	signal chan struct{}
}

func newMailbox(size int) *mailbox {
	return &mailbox{
		items:  make([]dispatch.Event, 0, size),
		size:   size,
		signal: make(chan struct{}, 1),
	}
}

// push enqueues ev and reports whether an older event had to be dropped.
func (m *mailbox) push(ev dispatch.Event) bool {
	m.mu.Lock()
	dropped := false
	if len(m.items) == m.size {
		copy(m.items, m.items[1:])
		m.items = m.items[:len(m.items)-1]
		dropped = true
	}
	m.items = append(m.items, ev)
	m.mu.Unlock()

	select {
	case m.signal <- struct{}{}:
	default:
	}
	return dropped
}

// drain takes everything queued so far.
func (m *mailbox) drain() []dispatch.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) == 0 {
		return nil
	}
	out := make([]dispatch.Event, len(m.items))
	copy(out, m.items)
	m.items = m.items[:0]
	return out
}
