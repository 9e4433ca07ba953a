// Package abatchq implements a concurrent priority queue that pops the best
// batchSize elements together as one ascending batch. Unlike its
// insertion-ordered sibling (pkg/batchq), this queue is safe for concurrent
// use and its Pop blocks until a full batch is available, so producers and
// consumers can run on separate goroutines.
package abatchq

import (
	"context"
	"sync"

	"flite/util/helpers"
	"flite/util/logger"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

var (
	// ErrInvalidBatchSize is returned when the batch size is below 1 or,
	// with a bounded queue, above MaxSize (a full batch could then never
	// accumulate).
	ErrInvalidBatchSize = errors.New("invalid batch size")

	// ErrClosed is returned by Push after Close, and by Pop once the
	// queue is closed and drained.
	ErrClosed = errors.New("queue is closed")
)

// Options configure a queue. MaxSize 0 means unbounded. Workers is the pool
// size used by Consume; 0 selects 1.
type Options struct {
	BatchSize int
	MaxSize   int
	Workers   int
}

var defaultOptions = Options{
	BatchSize: 1,
	Workers:   1,
}

type Queue[T any] struct {
	mu        sync.Mutex
	h         minHeap[T]
	batchSize int
	maxSize   int
	workers   int
	closed    bool

	// wake is closed and renewed whenever elements arrive or the
	// configuration changes; space likewise when capacity frees up.
	// Waiters grab the current channel under the lock and select on it
	// together with their context.
	wake  chan struct{}
	space chan struct{}
}

// New returns a queue ordered by <.
func New[T constraints.Ordered](opts *Options) (*Queue[T], error) {
	return NewFunc[T](func(a, b T) bool { return a < b }, opts)
}

// NewFunc returns a queue ordered by the given less func. A nil opts selects
// batch size 1, no size bound and a single worker.
func NewFunc[T any](less func(a, b T) bool, opts *Options) (*Queue[T], error) {
	if opts == nil {
		opts = &defaultOptions
	}
	if opts.BatchSize < 1 {
		return nil, errors.Wrapf(ErrInvalidBatchSize, "got %d", opts.BatchSize)
	}
	if opts.MaxSize > 0 && opts.BatchSize > opts.MaxSize {
		return nil, errors.Wrapf(
			ErrInvalidBatchSize,
			"batch size %d exceeds max size %d", opts.BatchSize, opts.MaxSize,
		)
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	return &Queue[T]{
		h:         minHeap[T]{less: less},
		batchSize: opts.BatchSize,
		maxSize:   opts.MaxSize,
		workers:   workers,
		wake:      make(chan struct{}),
		space:     make(chan struct{}),
	}, nil
}

func (q *Queue[T]) wakeLocked() {
	close(q.wake)
	q.wake = make(chan struct{})
}

func (q *Queue[T]) spaceLocked() {
	close(q.space)
	q.space = make(chan struct{})
}

// Push inserts v, blocking while the queue is at MaxSize until a pop frees
// capacity or ctx is done.
func (q *Queue[T]) Push(ctx context.Context, v T) error {
	for {
		q.mu.Lock()
		if q.closed {
			q.mu.Unlock()
			return ErrClosed
		}
		if q.maxSize == 0 || q.h.Len() < q.maxSize {
			q.h.push(v)
			q.wakeLocked()
			q.mu.Unlock()
			return nil
		}
		wait := q.space
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wait:
		}
	}
}

// Pop blocks until batchSize elements are available and removes the
// batchSize smallest, returned in ascending order. Once the queue is closed
// Pop hands out whatever remains in short batches, then fails with
// ErrClosed.
func (q *Queue[T]) Pop(ctx context.Context) ([]T, error) {
	for {
		q.mu.Lock()
		switch {
		case q.h.Len() >= q.batchSize:
			batch := q.h.popN(q.batchSize)
			q.spaceLocked()
			q.mu.Unlock()
			return batch, nil

		case q.closed && q.h.Len() > 0:
			batch := q.h.popN(q.h.Len())
			q.mu.Unlock()
			return batch, nil

		case q.closed:
			q.mu.Unlock()
			return nil, ErrClosed
		}
		wait := q.wake
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-wait:
		}
	}
}

// TryPop removes up to batchSize best elements without blocking. ok is false
// when the queue is empty.
func (q *Queue[T]) TryPop() (batch []T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := helpers.Min(q.batchSize, q.h.Len())
	if n == 0 {
		return nil, false
	}
	batch = q.h.popN(n)
	q.spaceLocked()
	return batch, true
}

// Resize changes the batch size for subsequent pops, waking blocked poppers
// since a smaller batch may already be satisfiable.
func (q *Queue[T]) Resize(batchSize int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if batchSize < 1 {
		return errors.Wrapf(ErrInvalidBatchSize, "got %d", batchSize)
	}
	if q.maxSize > 0 && batchSize > q.maxSize {
		return errors.Wrapf(
			ErrInvalidBatchSize,
			"batch size %d exceeds max size %d", batchSize, q.maxSize,
		)
	}

	q.batchSize = batchSize
	q.wakeLocked()
	return nil
}

// Consume feeds popped batches to handler on a worker pool until stop is
// called. stop waits for the dispatch loop to exit before releasing the
// pool; remaining elements are dispatched first if the queue was closed.
func (q *Queue[T]) Consume(handler func(batch []T)) (stop func(), err error) {
	pool, err := ants.NewPool(q.workers)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start worker pool")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			batch, err := q.Pop(ctx)
			if err != nil {
				return
			}
			if err := pool.Submit(func() { handler(batch) }); err != nil {
				logger.L.Errorf("abatchq: dropping batch of %d: %v", len(batch), err)
				return
			}
		}
	}()

	return func() {
		cancel()
		<-done
		pool.Release()
	}, nil
}

// Close wakes every blocked Push and Pop. Pushes fail immediately; pops
// drain the remaining elements, then fail.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.wakeLocked()
	q.spaceLocked()
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.h.Len()
}

func (q *Queue[T]) BatchSize() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.batchSize
}

// Print logs the queue state for debugging.
func (q *Queue[T]) Print() {
	q.mu.Lock()
	defer q.mu.Unlock()
	logger.L.Debugf(
		"abatchq: len=%d batchSize=%d maxSize=%d workers=%d closed=%v",
		q.h.Len(), q.batchSize, q.maxSize, q.workers, q.closed,
	)
}
