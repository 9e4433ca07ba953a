package unrolled

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidCapacity is returned by New when the node capacity
	// is less than 1.
	ErrInvalidCapacity = errors.New("node capacity must be positive")

	// ErrInvalidLoadFactor is returned by New when the load factor
	// is outside (0, 0.5].
	ErrInvalidLoadFactor = errors.New("load factor must be in (0, 0.5]")
)
