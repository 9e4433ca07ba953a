package unrolled

// node is a fixed-capacity segment of the list. Occupied slots always form
// the prefix [0, filled); the rest hold zero values.
type node[T comparable] struct {
	slots  []T
	filled int
	next   *node[T]
}

func newNode[T comparable](capacity int) *node[T] {
	return &node[T]{
		slots: make([]T, capacity),
	}
}

func (n *node[T]) isFull() bool {
	return n.filled == len(n.slots)
}

// append places v right after the occupied prefix.
// The caller must ensure the node is not full.
func (n *node[T]) append(v T) {
	n.slots[n.filled] = v
	n.filled++
}

// prepend shifts the occupied prefix one slot right and places v at index 0.
// The caller must ensure the node is not full.
func (n *node[T]) prepend(v T) {
	for i := n.filled; i > 0; i-- {
		n.slots[i] = n.slots[i-1]
	}
	n.slots[0] = v
	n.filled++
}

func (n *node[T]) contains(v T) bool {
	for i := 0; i < n.filled; i++ {
		if n.slots[i] == v {
			return true
		}
	}
	return false
}

// clearFrom zeroes slots [from, filled) so moved-out elements are not
// retained, then shrinks the prefix to from.
func (n *node[T]) clearFrom(from int) {
	var zero T
	for i := from; i < n.filled; i++ {
		n.slots[i] = zero
	}
	n.filled = from
}
