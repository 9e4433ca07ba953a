// Package unrolled implements an unrolled linked list: a sequence stored as a
// chain of fixed-capacity nodes, giving array-like locality with linked-list
// incremental growth. Nodes are split on overflow the same way B+ tree leaf
// nodes are, so pushes at either end stay amortized O(1).
package unrolled

import (
	"flite/util/helpers"
	"flite/util/logger"

	"github.com/pkg/errors"
)

// List is a single-owner, single-goroutine container. Callers sharing one
// instance across goroutines must serialize access externally.
type List[T comparable] struct {
	head, tail   *node[T]
	nodeCapacity int
	loadFactor   float64
	size         int
}

// New returns a list with the given geometry, bulk-loaded with initial
// elements in order. A nil opts selects NodeCapacity 10 and LoadFactor 0.5.
// Initial elements are packed into runs of about LoadFactor*NodeCapacity per
// node rather than full nodes, leaving slack for later insertions.
func New[T comparable](opts *Options, initial ...T) (*List[T], error) {
	if opts == nil {
		opts = &defaultOptions
	}
	if opts.NodeCapacity < 1 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "got %d", opts.NodeCapacity)
	}
	if opts.LoadFactor <= 0 || opts.LoadFactor > 0.5 {
		return nil, errors.Wrapf(ErrInvalidLoadFactor, "got %v", opts.LoadFactor)
	}

	list := &List[T]{
		nodeCapacity: opts.NodeCapacity,
		loadFactor:   opts.LoadFactor,
	}
	if len(initial) > 0 {
		list.bulkLoad(initial)
	}
	return list, nil
}

// bulkLoad partitions vals into runs of about loadFactor*nodeCapacity
// elements, one node per run. The remainder after integer division is handed
// out one element at a time to the earliest nodes.
func (l *List[T]) bulkLoad(vals []T) {
	runSize := int(l.loadFactor * float64(l.nodeCapacity))
	if runSize < 1 {
		runSize = 1
	}
	// fewer elements than one full run still make exactly one node
	runSize = helpers.Min(runSize, len(vals))

	nodeCount := len(vals) / runSize
	if nodeCount < 1 {
		nodeCount = 1
	}
	remainder := len(vals) - nodeCount*runSize

	counts := make([]int, nodeCount)
	for i := range counts {
		counts[i] = runSize
	}
	for i := 0; remainder > 0; i++ {
		counts[i%nodeCount]++
		remainder--
	}

	offset := 0
	var prev *node[T]
	for _, count := range counts {
		n := newNode[T](l.nodeCapacity)
		copy(n.slots, vals[offset:offset+count])
		n.filled = count
		offset += count

		if prev == nil {
			l.head = n
		} else {
			prev.next = n
		}
		prev = n
	}
	l.tail = prev
	l.size = len(vals)
}

// PushBack appends v to the end of the list, splitting the tail node if it
// is full.
func (l *List[T]) PushBack(v T) {
	switch {
	case l.head == nil:
		n := newNode[T](l.nodeCapacity)
		n.append(v)
		l.head, l.tail = n, n

	case !l.tail.isFull():
		l.tail.append(v)

	default:
		l.splitBack().append(v)
	}
	l.size++
}

// splitBack moves the upper half of the full tail node into a fresh node
// linked after it and returns the new tail. The old tail keeps ceil(C/2)
// elements, so pushes continuing in the same direction get at least C/2
// cheap appends before the next split.
func (l *List[T]) splitBack() *node[T] {
	keep := (l.nodeCapacity + 1) / 2

	n := newNode[T](l.nodeCapacity)
	copy(n.slots, l.tail.slots[keep:])
	n.filled = l.nodeCapacity - keep
	l.tail.clearFrom(keep)

	l.tail.next = n
	l.tail = n
	return n
}

// PushFront prepends v to the front of the list, splitting the head node if
// it is full.
func (l *List[T]) PushFront(v T) {
	switch {
	case l.head == nil:
		n := newNode[T](l.nodeCapacity)
		n.append(v)
		l.head, l.tail = n, n

	case !l.head.isFull():
		l.head.prepend(v)

	default:
		l.splitFront().prepend(v)
	}
	l.size++
}

// splitFront moves the lower floor(C/2) elements of the full head node into a
// fresh node linked before it and returns the new head.
func (l *List[T]) splitFront() *node[T] {
	take := l.nodeCapacity / 2

	n := newNode[T](l.nodeCapacity)
	copy(n.slots, l.head.slots[:take])
	n.filled = take

	copy(l.head.slots, l.head.slots[take:])
	l.head.clearFrom(l.nodeCapacity - take)

	n.next = l.head
	l.head = n
	return n
}

// Contains reports whether v is present in the list, scanning nodes in chain
// order. O(size) worst case.
func (l *List[T]) Contains(v T) bool {
	for n := l.head; n != nil; n = n.next {
		if n.contains(v) {
			return true
		}
	}
	return false
}

// Each calls fn for every element in order, stopping early if fn returns
// false. Every call starts a fresh traversal.
func (l *List[T]) Each(fn func(v T) bool) {
	for n := l.head; n != nil; n = n.next {
		for i := 0; i < n.filled; i++ {
			if !fn(n.slots[i]) {
				return
			}
		}
	}
}

// ToSlice returns the elements in order as a freshly allocated slice.
func (l *List[T]) ToSlice() []T {
	out := make([]T, 0, l.size)
	l.Each(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

func (l *List[T]) IsEmpty() bool {
	return l.head == nil
}

func (l *List[T]) Size() int {
	return l.size
}

func (l *List[T]) NodeCapacity() int {
	return l.nodeCapacity
}

func (l *List[T]) LoadFactor() float64 {
	return l.loadFactor
}

// Print logs the chain layout for debugging.
func (l *List[T]) Print() {
	logger.L.Debugf(
		"unrolled list: size=%d nodeCapacity=%d loadFactor=%v",
		l.size, l.nodeCapacity, l.loadFactor,
	)
	i := 0
	for n := l.head; n != nil; n = n.next {
		logger.L.Debugf("node[%d]: filled=%d elems=%v", i, n.filled, n.slots[:n.filled])
		i++
	}
}
