package clustree

// step records one level of a descent: the node at position was entered
// through slot.
type step struct {
	position int
	slot     int
}

// descent is the context of a single top-level insertion. It is created by
// Insert and never shared between insertions.
type descent struct {
	path []step // ancestors of the current node, root first
	// frontier is the smallest depth at which a node has been split during
	// this insertion, 0 if there was no split. Splits cascade upwards from
	// the leaf, therefore all nodes at depth >= frontier have been replaced.
	frontier int
	rebuilt  bool
}

func newDescent(height int) *descent {
	return &descent{path: make([]step, 0, height)}
}

func (ctx *descent) push(position, slot int) {
	ctx.path = append(ctx.path, step{position: position, slot: slot})
}

func (ctx *descent) pop() step {
	assert(len(ctx.path) > 0, "split of non-root node without parent on path")
	top := ctx.path[len(ctx.path)-1]
	ctx.path = ctx.path[:len(ctx.path)-1]
	return top
}

// replaced reports whether the node at depth has been substituted by a split
// or a rebuild during this insertion. Such nodes must not be updated from
// their children any more; their aggregates are correct by construction.
func (ctx *descent) replaced(depth int) bool {
	return ctx.rebuilt || (ctx.frontier > 0 && depth >= ctx.frontier)
}

// insert descends to the leaf closest to value and inserts it there. On the
// way back up every ancestor which has not been replaced updates the slot
// of the child it descended into.
func (t *Tree) insert(ctx *descent, pos, depth int, value int) {
	switch n := t.nodes[pos].(type) {
	case *leafNode:
		assert(depth == t.height, "leaf found above bottom level")
		t.insertIntoLeaf(ctx, pos, depth, n, value)
	case *innerNode:
		slot := n.closestSlot(value)
		child := n.child(slot)
		ctx.push(pos, slot)
		t.insert(ctx, child, depth+1, value)
		if ctx.replaced(depth) {
			return
		}
		// no split reached this level, so the child is still at its position
		c := t.nodes[child].entries()
		n.updateValue(slot, c.representativeValue())
		n.setPointCount(slot, c.pointSum)
	default:
		panic("insert: no node at position on descent path")
	}
}

func (t *Tree) insertIntoLeaf(ctx *descent, pos, depth int, leaf *leafNode, value int) {
	if leaf.count() > 0 {
		slot := leaf.closestSlot(value)
		if leaf.isCloseEnough(slot, value, t.cfg.ClosenessThreshold) {
			leaf.absorb(slot, value)
			return
		}
	}
	leaf.insertValue(value, 1)
	if leaf.splitRequired() {
		t.split(ctx, pos, depth)
	}
}
