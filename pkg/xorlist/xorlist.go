// Package xorlist implements a doubly traversable list that stores a single
// link per node: the XOR of its two neighbors' ids. Nodes live in an arena
// and are addressed by integer ids, since masked machine pointers are not
// visible to the garbage collector. Walking from either end recovers each
// next id as link ^ previousID.
package xorlist

import (
	"flite/util/logger"

	"github.com/pkg/errors"
)

var ErrEmpty = errors.New("empty list")

// id 0 is the nil sentinel; arena slot 0 is never used for an element.
type node[T comparable] struct {
	val  T
	link int
}

// List is a single-owner, single-goroutine container.
type List[T comparable] struct {
	arena      []node[T]
	free       []int
	head, tail int
	size       int
}

// New returns a list holding the initial elements in order.
func New[T comparable](initial ...T) *List[T] {
	l := &List[T]{
		arena: make([]node[T], 1, 1+len(initial)),
	}
	for _, v := range initial {
		l.PushBack(v)
	}
	return l
}

func (l *List[T]) alloc(v T) int {
	if n := len(l.free); n > 0 {
		id := l.free[n-1]
		l.free = l.free[:n-1]
		l.arena[id] = node[T]{val: v}
		return id
	}
	l.arena = append(l.arena, node[T]{val: v})
	return len(l.arena) - 1
}

func (l *List[T]) release(id int) {
	var zero node[T]
	l.arena[id] = zero
	l.free = append(l.free, id)
}

func (l *List[T]) PushBack(v T) {
	id := l.alloc(v)
	if l.size == 0 {
		l.head, l.tail = id, id
	} else {
		l.arena[l.tail].link ^= id
		l.arena[id].link = l.tail
		l.tail = id
	}
	l.size++
}

func (l *List[T]) PushFront(v T) {
	id := l.alloc(v)
	if l.size == 0 {
		l.head, l.tail = id, id
	} else {
		l.arena[l.head].link ^= id
		l.arena[id].link = l.head
		l.head = id
	}
	l.size++
}

// PopFront removes and returns the first element.
func (l *List[T]) PopFront() (T, error) {
	return l.pop(&l.head, &l.tail)
}

// PopBack removes and returns the last element.
func (l *List[T]) PopBack() (T, error) {
	return l.pop(&l.tail, &l.head)
}

// pop removes the node at *near. near and far are the two ends of the list.
func (l *List[T]) pop(near, far *int) (T, error) {
	if l.size == 0 {
		var zero T
		return zero, ErrEmpty
	}

	id := *near
	v := l.arena[id].val
	next := l.arena[id].link // the end node's link is its single neighbor

	if next == 0 {
		*near, *far = 0, 0
	} else {
		l.arena[next].link ^= id
		*near = next
	}

	l.release(id)
	l.size--
	return v, nil
}

// each walks the chain starting at from, calling fn with each value until fn
// returns false.
func (l *List[T]) each(from int, fn func(v T) bool) {
	prev := 0
	for cur := from; cur != 0; {
		if !fn(l.arena[cur].val) {
			return
		}
		next := l.arena[cur].link ^ prev
		prev = cur
		cur = next
	}
}

func (l *List[T]) Contains(v T) bool {
	found := false
	l.each(l.head, func(cur T) bool {
		found = cur == v
		return !found
	})
	return found
}

// ToSlice returns the elements front to back.
func (l *List[T]) ToSlice() []T {
	out := make([]T, 0, l.size)
	l.each(l.head, func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// ToSliceReverse returns the elements back to front, walking the same links
// from the other end.
func (l *List[T]) ToSliceReverse() []T {
	out := make([]T, 0, l.size)
	l.each(l.tail, func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

func (l *List[T]) IsEmpty() bool {
	return l.size == 0
}

func (l *List[T]) Size() int {
	return l.size
}

// Print logs the arena layout for debugging.
func (l *List[T]) Print() {
	logger.L.Debugf(
		"xorlist: size=%d arena=%d free=%d head=%d tail=%d",
		l.size, len(l.arena)-1, len(l.free), l.head, l.tail,
	)
	logger.L.Debugf("elems: %v", l.ToSlice())
}
