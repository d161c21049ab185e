package clustree

import (
	"fmt"
)

// Tree is a clustering tree over integer values.
//
// Nodes are stored in a flat array, addressed by position; position 0 is
// always the root. Unused positions are nil. A node keeps its position until
// it is relocated by a split of one of its ancestors or by a rebuild.
type Tree struct {
	cfg    Config
	nodes  []node
	height int // root at depth 1, leaves at depth == height
	// counters for Stats
	splits   int
	rebuilds int
	// guards against mutation while a traversal is in progress
	walkers   int
	inserting bool
}

// New creates a tree with a single, empty leaf as root.
func New(cfg Config) (*Tree, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	t := &Tree{
		cfg:    cfg,
		height: 1,
	}
	t.nodes = make([]node, arraySize(1, cfg.BranchingFactor))
	t.nodes[0] = newLeaf(t.capacity())
	return t, nil
}

// Config returns a copy of the effective tree configuration.
func (t *Tree) Config() Config {
	return t.cfg
}

// Height returns the tree height. A tree with a leaf root has height 1.
func (t *Tree) Height() int {
	if t == nil {
		return 0
	}
	return t.height
}

// Points returns the number of data points inserted so far.
func (t *Tree) Points() int64 {
	if t == nil || t.nodes[0] == nil {
		return 0
	}
	return t.nodes[0].entries().pointSum
}

// Value returns the representative value of the whole tree, i.e. the
// point-weighted mean of all clusters (rounded), or 0 for an empty tree.
func (t *Tree) Value() int {
	if t == nil || t.nodes[0] == nil {
		return 0
	}
	return t.nodes[0].entries().representativeValue()
}

// Insert adds one data point with the given value. The value is either
// absorbed by the closest cluster or opens a new cluster, possibly splitting
// nodes on the way up.
//
// Insert panics if called from within a traversal of the same tree.
func (t *Tree) Insert(value int) error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrIllegalArguments)
	}
	if value < MinValue || value > MaxValue {
		return fmt.Errorf("%w: %d", ErrValueOutOfRange, value)
	}
	assert(t.walkers == 0, "tree mutated during traversal")
	assert(!t.inserting, "re-entrant insertion")
	t.inserting = true
	defer func() { t.inserting = false }()
	ctx := newDescent(t.height)
	t.insert(ctx, 0, 1, value)
	return nil
}

func (t *Tree) capacity() int {
	return t.cfg.BranchingFactor + 1
}

func (t *Tree) branching() int {
	return t.cfg.BranchingFactor
}

// --- Statistics ------------------------------------------------------------

// Stats summarizes the shape of a tree.
type Stats struct {
	Height   int
	Nodes    int   // occupied array positions
	Leaves   int   // number of leaf nodes
	Clusters int   // number of leaf slots
	Points   int64 // total number of data points
	Splits   int   // node splits since creation, including root splits
	Rebuilds int   // root splits, i.e. height increments
	// Occupancy per level: Occupancy[d-1] is the fraction of positions
	// reserved for depth d which hold a node.
	Occupancy []float64
}

// Stats collects statistics for t.
func (t *Tree) Stats() Stats {
	if t == nil {
		return Stats{}
	}
	st := Stats{
		Height:   t.height,
		Points:   t.Points(),
		Splits:   t.splits,
		Rebuilds: t.rebuilds,
	}
	perLevel := make([]int, t.height)
	for n := range t.Traverse() {
		st.Nodes++
		perLevel[n.Depth-1]++
		if n.Leaf {
			st.Leaves++
			st.Clusters += len(n.Values)
		}
	}
	st.Occupancy = make([]float64, t.height)
	for d := 1; d <= t.height; d++ {
		reserved := capacityBetween(d, d, t.branching())
		st.Occupancy[d-1] = float64(perLevel[d-1]) / float64(reserved)
	}
	return st
}
