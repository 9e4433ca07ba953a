// Package hat implements a hashed array tree: a growable array stored as a
// directory of fixed-size leaf arrays. Element addresses decompose into a
// directory index and a leaf index by shift and mask, so no append ever moves
// more than one leaf worth of data except at full-capacity regrowth.
package hat

import (
	"flite/util/logger"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidPower is returned by New when power is less than 1.
	ErrInvalidPower = errors.New("power must be positive")

	ErrOutOfBounds = errors.New("out of bounds")
)

// HAT holds up to 2^(2*power) elements: a directory of 2^power leaves, each
// 2^power slots, allocated on demand. Single-owner, no internal locking.
type HAT[T comparable] struct {
	power  int
	leaves [][]T
	size   int
}

// New returns a hashed array tree with leaf size 2^power, appending initial
// elements in order. The power grows as needed to fit the initial elements.
func New[T comparable](power int, initial ...T) (*HAT[T], error) {
	if power < 1 {
		return nil, errors.Wrapf(ErrInvalidPower, "got %d", power)
	}

	for 1<<(2*power) < len(initial) {
		power++
	}

	h := &HAT[T]{
		power:  power,
		leaves: make([][]T, 1<<power),
	}
	for _, v := range initial {
		h.Append(v)
	}
	return h, nil
}

// Append adds v at the end, quadrupling capacity by doubling the leaf size
// once the directory is exhausted. Amortized O(1).
func (h *HAT[T]) Append(v T) {
	if h.size == h.Capacity() {
		h.grow()
	}

	leaf, slot := h.locate(h.size)
	if h.leaves[leaf] == nil {
		h.leaves[leaf] = make([]T, 1<<h.power)
	}
	h.leaves[leaf][slot] = v
	h.size++
}

// grow doubles the leaf size and repacks every element into the new geometry.
func (h *HAT[T]) grow() {
	old := *h
	h.power++
	h.leaves = make([][]T, 1<<h.power)
	h.size = 0
	for i := 0; i < old.size; i++ {
		leaf, slot := old.locate(i)
		h.Append(old.leaves[leaf][slot])
	}
}

func (h *HAT[T]) locate(index int) (leaf, slot int) {
	return index >> h.power, index & (1<<h.power - 1)
}

// Get returns the element at index. Negative indices wrap from the end, so
// -1 addresses the last element.
func (h *HAT[T]) Get(index int) (T, error) {
	i, err := h.normalize(index)
	if err != nil {
		var zero T
		return zero, err
	}
	leaf, slot := h.locate(i)
	return h.leaves[leaf][slot], nil
}

// Set replaces the element at index. Only occupied positions can be set;
// growth happens through Append.
func (h *HAT[T]) Set(index int, v T) error {
	i, err := h.normalize(index)
	if err != nil {
		return err
	}
	leaf, slot := h.locate(i)
	h.leaves[leaf][slot] = v
	return nil
}

func (h *HAT[T]) normalize(index int) (int, error) {
	i := index
	if i < 0 {
		i += h.size
	}
	if i < 0 || i >= h.size {
		return 0, errors.Wrapf(ErrOutOfBounds, "index %d, size %d", index, h.size)
	}
	return i, nil
}

func (h *HAT[T]) Contains(v T) bool {
	for i := 0; i < h.size; i++ {
		leaf, slot := h.locate(i)
		if h.leaves[leaf][slot] == v {
			return true
		}
	}
	return false
}

func (h *HAT[T]) ToSlice() []T {
	out := make([]T, h.size)
	for i := range out {
		leaf, slot := h.locate(i)
		out[i] = h.leaves[leaf][slot]
	}
	return out
}

func (h *HAT[T]) Size() int {
	return h.size
}

// Capacity returns the maximum element count before the next regrowth.
func (h *HAT[T]) Capacity() int {
	return 1 << (2 * h.power)
}

func (h *HAT[T]) Power() int {
	return h.power
}

func (h *HAT[T]) IsFull() bool {
	return h.size == h.Capacity()
}

// Print logs the directory layout for debugging.
func (h *HAT[T]) Print() {
	logger.L.Debugf("hat: size=%d power=%d capacity=%d", h.size, h.power, h.Capacity())
	for i, leaf := range h.leaves {
		if leaf != nil {
			logger.L.Debugf("leaf[%d]: %v", i, leaf)
		}
	}
}
