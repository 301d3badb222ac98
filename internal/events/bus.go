// Package events fans contract events out to in-process consumers.
package events

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/transportdapp/transport-ledger-backend/internal/model"
)

const defaultBuffer = 1024

// Bus is a non-blocking fanout: Publish never stalls the ledger. A consumer
// that falls behind its buffer loses events; drops are counted and logged so
// an archive consumer knows to backfill.
type Bus struct {
	mu      sync.RWMutex
	logger  *zap.Logger
	buffer  int
	subs    []chan model.ContractEvent
	closed  bool
	dropped atomic.Uint64
}

// NewBus creates a bus with the given per-subscriber buffer (0 uses the
// default).
func NewBus(buffer int, logger *zap.Logger) *Bus {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Bus{
		logger: logger.With(zap.String("component", "eventbus")),
		buffer: buffer,
	}
}

// Subscribe registers a consumer. The channel is closed by Close.
func (b *Bus) Subscribe() <-chan model.ContractEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan model.ContractEvent, b.buffer)
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, ch)
	return ch
}

// Publish delivers the event to every subscriber that has buffer room.
func (b *Bus) Publish(ev model.ContractEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.dropped.Add(1)
			b.logger.Warn("subscriber buffer full, event dropped",
				zap.Uint64("seq", ev.Seq),
				zap.String("type", string(ev.Type)),
			)
		}
	}
}

// Dropped returns how many events were lost to full subscriber buffers.
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

// Close closes all subscriber channels. Publish becomes a no-op.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
