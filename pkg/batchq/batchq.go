// Package batchq implements a FIFO queue whose pop operation returns the
// oldest batchSize elements together as one slice. Ordering is insertion
// order, not element comparison.
package batchq

import (
	"flite/util/helpers"
	"flite/util/logger"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidBatchSize is returned when a batch size below 1 is given.
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrFull is returned by Push and PushAll when MaxSize is set and the
	// queue cannot take the new elements.
	ErrFull = errors.New("queue is full")

	// ErrShortBatch is returned by PopStrict when fewer than batchSize
	// elements remain.
	ErrShortBatch = errors.New("not enough elements left to fill a batch")
)

// Options configure a queue. MaxSize 0 means unbounded.
type Options struct {
	BatchSize int
	MaxSize   int
}

var defaultOptions = Options{
	BatchSize: 1,
}

// Queue is a single-owner, single-goroutine container. The backing slice is
// consumed through a start index that advances on pop; the dead prefix is
// compacted away once it outgrows the live part.
type Queue[T any] struct {
	elems     []T
	start     int
	batchSize int
	maxSize   int
}

// New returns a queue with the given options. A nil opts selects batch size
// 1 and no size bound.
func New[T any](opts *Options) (*Queue[T], error) {
	if opts == nil {
		opts = &defaultOptions
	}
	if opts.BatchSize < 1 {
		return nil, errors.Wrapf(ErrInvalidBatchSize, "got %d", opts.BatchSize)
	}
	return &Queue[T]{
		batchSize: opts.BatchSize,
		maxSize:   opts.MaxSize,
	}, nil
}

// Push appends one element, failing with ErrFull when MaxSize is reached.
func (q *Queue[T]) Push(v T) error {
	if q.maxSize > 0 && q.Len() >= q.maxSize {
		return errors.Wrapf(ErrFull, "max size %d", q.maxSize)
	}
	q.elems = append(q.elems, v)
	return nil
}

// PushAll appends every element or none: if the remaining capacity cannot
// take them all, the queue is left untouched and ErrFull is returned.
func (q *Queue[T]) PushAll(vs ...T) error {
	if q.maxSize > 0 && q.Len()+len(vs) > q.maxSize {
		return errors.Wrapf(ErrFull, "%d elements do not fit, max size %d", len(vs), q.maxSize)
	}
	q.elems = append(q.elems, vs...)
	return nil
}

// Pop removes and returns up to batchSize oldest elements; fewer when the
// queue runs short, an empty slice when it is empty.
func (q *Queue[T]) Pop() []T {
	n := helpers.Min(q.batchSize, q.Len())
	return q.take(n)
}

// PopStrict removes and returns exactly batchSize oldest elements, failing
// with ErrShortBatch (and leaving the queue untouched) when fewer remain.
func (q *Queue[T]) PopStrict() ([]T, error) {
	if q.Len() < q.batchSize {
		return nil, errors.Wrapf(ErrShortBatch, "have %d, batch size %d", q.Len(), q.batchSize)
	}
	return q.take(q.batchSize), nil
}

func (q *Queue[T]) take(n int) []T {
	batch := make([]T, n)
	copy(batch, q.elems[q.start:q.start+n])
	q.start += n

	if q.start > len(q.elems)-q.start {
		q.compact()
	}
	return batch
}

// compact drops the consumed prefix so popped elements can be collected.
func (q *Queue[T]) compact() {
	live := copy(q.elems, q.elems[q.start:])
	var zero T
	for i := live; i < len(q.elems); i++ {
		q.elems[i] = zero
	}
	q.elems = q.elems[:live]
	q.start = 0
}

// SetBatchSize changes the batch size for subsequent pops.
func (q *Queue[T]) SetBatchSize(n int) error {
	if n < 1 {
		return errors.Wrapf(ErrInvalidBatchSize, "got %d", n)
	}
	q.batchSize = n
	return nil
}

func (q *Queue[T]) BatchSize() int {
	return q.batchSize
}

func (q *Queue[T]) Len() int {
	return len(q.elems) - q.start
}

func (q *Queue[T]) IsEmpty() bool {
	return q.Len() == 0
}

// Clear removes every element without resetting the batch size.
func (q *Queue[T]) Clear() {
	q.start = len(q.elems)
	q.compact()
}

// Print logs the queue state for debugging.
func (q *Queue[T]) Print() {
	logger.L.Debugf(
		"batchq: len=%d batchSize=%d maxSize=%d backing=%d",
		q.Len(), q.batchSize, q.maxSize, len(q.elems),
	)
}
