// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// FlushObserver is notified after every flush attempt.
type FlushObserver func(err error, rows int, started time.Time)

// Batcher buffers items and flushes them either by size or interval. Rows of
// a failed flush stay buffered and are retried on the next trigger, so a
// transient sink outage loses nothing; inflow backpressure is the cap.
type Batcher[T any] struct {
	flushCallback func(context.Context, []T) error
	observer      FlushObserver
	itemsCh       chan T
	flushSize     int
	flushInterval time.Duration
	rl            ratelimit.Limiter
	logger        *zap.Logger

	wg   sync.WaitGroup
	stop chan struct{}
}

// New constructs a Batcher. observer may be nil.
func New[T any](
	logger *zap.Logger,
	flushCallback func(context.Context, []T) error,
	observer FlushObserver,
	flushSize int,
	flushInterval time.Duration,
	rps int,
) *Batcher[T] {
	return &Batcher[T]{
		logger:        logger,
		flushCallback: flushCallback,
		observer:      observer,
		itemsCh:       make(chan T, flushSize*2),
		flushSize:     flushSize,
		flushInterval: flushInterval,
		rl:            ratelimit.New(rps),
		stop:          make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop stops the background flushing loop after a final flush.
func (b *Batcher[T]) Stop() {
	close(b.stop)
	b.wg.Wait()
}

// Add queues an item for batching, respecting context cancellation.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case b.itemsCh <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.flushSize)

	flush := func() {
		if len(buf) == 0 {
			return
		}

		b.rl.Take()
		started := time.Now()
		err := b.flushCallback(ctx, buf)
		if b.observer != nil {
			b.observer(err, len(buf), started)
		}
		if err != nil {
			b.logger.Error("batch not flushed, keeping rows for retry",
				zap.Error(err), zap.Int("size", len(buf)))
			return
		}
		b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		buf = buf[:0]
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return

		case <-b.stop:
			b.drain(&buf)
			flush()
			return

		case item := <-b.itemsCh:
			buf = append(buf, item)
			if len(buf) >= b.flushSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}

// drain pulls any queued items into the buffer before the final flush.
func (b *Batcher[T]) drain(buf *[]T) {
	for {
		select {
		case item := <-b.itemsCh:
			*buf = append(*buf, item)
		default:
			return
		}
	}
}
