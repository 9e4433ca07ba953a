package unrolled

// Options control the geometry of the list. NodeCapacity is the fixed slot
// count of every node. LoadFactor is the target occupancy fraction used only
// while partitioning the initial elements during construction; it is not
// re-enforced between splits.
type Options struct {
	NodeCapacity int
	LoadFactor   float64
}

var defaultOptions = Options{
	NodeCapacity: 10,
	LoadFactor:   0.5,
}
