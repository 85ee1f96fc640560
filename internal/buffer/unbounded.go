// Package buffer provides an unbounded queue for bridging stream producers
// and consumers.
package buffer

import (
	"sync"
)

// Unbounded decouples a producer from its consumer: Push never blocks, no
// matter how slowly (or whether) the consumer reads. A background goroutine
// drains the queue into the output channel in batches, swapping the whole
// pending slice out under the lock so delivery never holds it.
//
//	buf := buffer.NewUnbounded[Chunk]()
//	go func() {
//	    for c := range buf.Out() {
//	        handle(c)
//	    }
//	}()
//	buf.Push(c1) // never blocks
//	buf.Close()  // Out() closes once drained
type Unbounded[T any] struct {
	mu      sync.Mutex
	pending []T
	wake    chan struct{}
	closed  bool
	out     chan T
}

// NewUnbounded creates an Unbounded ready to accept items.
func NewUnbounded[T any]() *Unbounded[T] {
	b := &Unbounded[T]{
		wake: make(chan struct{}, 1),
		out:  make(chan T, 1),
	}
	go b.drain()
	return b
}

// drain delivers batches until the buffer is closed and empty. Each pass
// takes everything pending in one swap, so a fast producer amortizes to one
// lock acquisition per batch rather than per item.
func (b *Unbounded[T]) drain() {
	for {
		batch, last := b.swap()
		for _, item := range batch {
			b.out <- item
		}
		if last {
			close(b.out)
			return
		}
		<-b.wake
	}
}

// swap takes the whole pending slice. last is true once the buffer is closed
// and this batch is the final one.
func (b *Unbounded[T]) swap() ([]T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	batch := b.pending
	b.pending = nil
	return batch, b.closed
}

// signal wakes the drain goroutine; the channel has capacity one so a
// pending wakeup coalesces with new ones.
func (b *Unbounded[T]) signal() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// Push enqueues an item without blocking. Safe from any goroutine. Pushes
// after Close are dropped.
func (b *Unbounded[T]) Push(item T) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.pending = append(b.pending, item)
	b.mu.Unlock()
	b.signal()
}

// Out returns the consumer channel. It closes after Close once every queued
// item has been delivered.
func (b *Unbounded[T]) Out() <-chan T {
	return b.out
}

// Close stops accepting items. Safe to call multiple times.
func (b *Unbounded[T]) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()
	b.signal()
}
