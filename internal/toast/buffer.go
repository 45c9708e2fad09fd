// Package toast holds short-lived user notifications.
package toast

import (
	"sync"
	"time"
)

// Level selects how a toast is styled.
type Level int

const (
	Success Level = iota
	Danger
	Info
)

type Toast struct {
	Message string
	Level   Level
	At      time.Time
}

// Buffer is a fixed-capacity ring of toasts. When full, the oldest toast
// is evicted. All methods are safe for concurrent use.
type Buffer struct {
	mu    sync.RWMutex
	items []Toast
	cap   int
	head  int // index of the oldest element
	count int
	ttl   time.Duration
}

// NewBuffer creates a buffer holding up to capacity toasts, each visible
// for ttl after it is pushed.
func NewBuffer(capacity int, ttl time.Duration) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	return &Buffer{
		items: make([]Toast, capacity),
		cap:   capacity,
		ttl:   ttl,
	}
}

func (b *Buffer) Push(t Toast) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count == b.cap {
		b.items[b.head] = t
		b.head = (b.head + 1) % b.cap
		return
	}
	b.items[(b.head+b.count)%b.cap] = t
	b.count++
}

// Active returns toasts that have not yet expired at now, oldest first.
func (b *Buffer) Active(now time.Time) []Toast {
	var out []Toast
	for _, t := range b.All() {
		if now.Sub(t.At) < b.ttl {
			out = append(out, t)
		}
	}
	return out
}

// All returns every retained toast, oldest first.
func (b *Buffer) All() []Toast {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.listLocked()
}

func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// listLocked returns all toasts in push order. Caller must hold at least a
// read lock.
func (b *Buffer) listLocked() []Toast {
	if b.count == 0 {
		return nil
	}
	out := make([]Toast, b.count)
	for i := 0; i < b.count; i++ {
		out[i] = b.items[(b.head+i)%b.cap]
	}
	return out
}
