// Package events carries the live workflow-progress stream: one
// NodeExecutionResult snapshot per status transition, fanned out to any
// number of subscribers.
//
// The stream is a live feed, not a durable log. Subscribers may attach
// after a run starts and miss earlier events; a slow subscriber drops
// events rather than blocking the executor's bookkeeping. Durability is
// the checkpoint store's job.
package events

import (
	"sync"

	"github.com/skyops/flowgrid/internal/model"
)

const defaultBuffer = 64

// Bus fans out progress events to subscribers. The zero value is not
// usable; call NewBus.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan model.NodeExecutionResult
	nextID int
	closed bool
}

// NewBus creates an empty progress bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan model.NodeExecutionResult)}
}

// Subscribe registers a new consumer and returns its channel plus a cancel
// function. The channel is closed on cancel or when the bus closes.
func (b *Bus) Subscribe() (<-chan model.NodeExecutionResult, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan model.NodeExecutionResult, defaultBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber without blocking: a full
// subscriber buffer drops the event for that subscriber only.
func (b *Bus) Publish(r model.NodeExecutionResult) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- r:
		default:
		}
	}
}

// Close shuts the bus down and closes all subscriber channels. Publish and
// Subscribe become no-ops afterwards.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
