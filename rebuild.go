package clustree

// rebuilder carries the scratch state of a single rebuild.
type rebuilder struct {
	old    []node // array of the tree before the root split
	nodes  []node // new array
	height int    // new height
	bf     int
	// childIDHistory[d-1] is the slot taken to reach depth d on the path
	// from the new root to the node currently placed
	childIDHistory []int
}

// rebuild is called when the root has been split into a and b. It builds an
// array for a tree one level higher, with a fresh root holding a and b as
// children, and places every node below them by their new reserved
// positions. Nodes keep their contents; only child positions are updated.
// Positions follow the same pre-order reservation layout that splits use,
// child = parent + 1 + slot*span(child depth), not a level-by-level layout.
func (t *Tree) rebuild(ctx *descent, a, b node) {
	ctx.rebuilt = true
	height := t.height + 1
	T().Debugf("rebuild started for height %d", height)
	r := &rebuilder{
		old:            t.nodes,
		nodes:          make([]node, arraySize(height, t.branching())),
		height:         height,
		bf:             t.branching(),
		childIDHistory: make([]int, height),
	}
	root := newInner(t.capacity())
	r.nodes[0] = root
	for slot, n := range []node{a, b} {
		pos := r.place(n, slot, 2)
		e := n.entries()
		root.insertChild(pos, e.representativeValue())
		root.setPointCount(slot, e.pointSum)
	}
	t.nodes = r.nodes
	t.height = height
	t.rebuilds++
	T().Debugf("rebuild complete, %d positions reserved", len(t.nodes))
}

// place puts n, reached through slot at depth, into the new array and
// recursively places its children, which are still referenced by their
// positions in the old array. It returns the new position of n.
func (r *rebuilder) place(n node, slot, depth int) int {
	r.childIDHistory[depth-1] = slot
	pos := reservedPosition(r.childIDHistory, depth, r.height, r.bf)
	assert(r.nodes[pos] == nil, "rebuild: position collision")
	r.nodes[pos] = n
	if inner, ok := n.(*innerNode); ok {
		for i, c := range inner.children {
			child := r.old[c]
			assert(child != nil, "rebuild: dangling child position")
			inner.children[i] = r.place(child, i, depth+1)
		}
	}
	return pos
}
