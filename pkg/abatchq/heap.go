package abatchq

import "container/heap"

// minHeap adapts a slice and an ordering func to heap.Interface. Methods are
// only called under the queue's lock.
type minHeap[T any] struct {
	items []T
	less  func(a, b T) bool
}

func (h *minHeap[T]) Len() int {
	return len(h.items)
}

func (h *minHeap[T]) Less(i, j int) bool {
	return h.less(h.items[i], h.items[j])
}

func (h *minHeap[T]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

func (h *minHeap[T]) Push(x any) {
	h.items = append(h.items, x.(T))
}

func (h *minHeap[T]) Pop() any {
	last := len(h.items) - 1
	v := h.items[last]
	var zero T
	h.items[last] = zero
	h.items = h.items[:last]
	return v
}

func (h *minHeap[T]) push(v T) {
	heap.Push(h, v)
}

// popN removes the n smallest elements in ascending order.
// The caller must ensure n <= Len().
func (h *minHeap[T]) popN(n int) []T {
	batch := make([]T, n)
	for i := range batch {
		batch[i] = heap.Pop(h).(T)
	}
	return batch
}
