package clustree

// split splits the overflowing node at pos, located at depth. If the parent
// overflows as a consequence, the split ascends until no more nodes require
// splitting. A split of the root rebuilds the tree.
func (t *Tree) split(ctx *descent, pos, depth int) {
	for {
		ctx.frontier = depth
		t.splits++
		a, b := t.partition(t.nodes[pos])
		if pos == 0 {
			assert(len(ctx.path) == 0, "root split with non-empty descent path")
			t.rebuild(ctx, a, b)
			return
		}
		parentStep := ctx.pop()
		parent, ok := t.nodes[parentStep.position].(*innerNode)
		assert(ok, "parent on descent path is not an inner node")
		t.placeSplit(pos, depth, parentStep.slot, parent, a, b)
		if !parent.splitRequired() {
			return
		}
		pos, depth = parentStep.position, depth-1
	}
}

// partition distributes the slots of n between two fresh nodes of the same
// kind, using the farthest pair of n as seeds. Every slot goes to the seed it
// is closest to; ties go to the second node. Each seed always stays with its
// own node, so neither result exceeds the branching factor.
//
// Children of inner nodes keep their current positions; placing them is up
// to the caller.
func (t *Tree) partition(n node) (node, node) {
	e := n.entries()
	s1, s2 := e.farthestPair()
	if s1 == s2 { // all slots coincide
		s1, s2 = 0, e.count()-1
	}
	toFirst := func(i int, d1, d2 int64) bool {
		switch i {
		case s1:
			return true
		case s2:
			return false
		}
		return d1 < d2
	}
	switch n := n.(type) {
	case *leafNode:
		a, b := newLeaf(t.capacity()), newLeaf(t.capacity())
		for i, v := range n.values {
			if toFirst(i, distance(v, n.values[s1]), distance(v, n.values[s2])) {
				a.insertValue(v, n.points[i])
			} else {
				b.insertValue(v, n.points[i])
			}
		}
		T().Debugf("split leaf %v into %v | %v", n.values, a.values, b.values)
		return a, b
	case *innerNode:
		a, b := newInner(t.capacity()), newInner(t.capacity())
		seed1 := t.nodes[n.child(s1)].entries().representativeValue()
		seed2 := t.nodes[n.child(s2)].entries().representativeValue()
		for i, c := range n.children {
			ce := t.nodes[c].entries()
			v := ce.representativeValue()
			target := b
			if toFirst(i, distance(v, seed1), distance(v, seed2)) {
				target = a
			}
			target.insertChild(c, v)
			target.setPointCount(target.count()-1, ce.pointSum)
		}
		T().Debugf("split inner node %v into %v | %v", n.values, a.values, b.values)
		return a, b
	}
	panic("partition: unknown node type")
}

// placeSplit puts the split result (a, b) of the node at pos, depth into the
// array. a takes over pos, so the parent's child position stays valid. b goes
// into the next free slot of the parent, i.e. right behind the range reserved
// for all of its siblings to the right of pos. Children of both nodes are
// moved into the ranges reserved for their new slots.
func (t *Tree) placeSplit(pos, depth, slot int, parent *innerNode, a, b node) {
	bf := t.branching()
	bpos := pos + span(depth, t.height, bf)*(parent.count()-slot)
	assert(t.nodes[bpos] == nil, "split target position is occupied")
	// b first: its children leave the range which a compacts into
	if inner, ok := b.(*innerNode); ok {
		t.relocateChildren(inner, bpos, depth)
	}
	t.nodes[bpos] = b
	if inner, ok := a.(*innerNode); ok {
		t.relocateChildren(inner, pos, depth)
	}
	t.nodes[pos] = a
	T().Debugf("split node @%d (depth %d) -> @%d, @%d", pos, depth, pos, bpos)
	ae, be := a.entries(), b.entries()
	parent.updateChild(slot, pos, ae.representativeValue())
	parent.setPointCount(slot, ae.pointSum)
	parent.insertChild(bpos, be.representativeValue())
	parent.setPointCount(parent.count()-1, be.pointSum)
}

// relocateChildren moves the subtrees of the children of n, located at pos and
// depth, to the positions reserved for their slots. Children are expected in
// ascending order of their current positions, and the target slot of a child
// never exceeds its current slot within the same range.
func (t *Tree) relocateChildren(n *innerNode, pos, depth int) {
	s := span(depth+1, t.height, t.branching())
	for i, old := range n.children {
		target := pos + 1 + i*s
		if target != old {
			t.relocate(old, target-old)
			n.children[i] = target
		}
	}
}

// relocate shifts the subtree rooted at pos by delta positions. Source and
// target ranges must not overlap; vacated positions are cleared.
func (t *Tree) relocate(pos, delta int) {
	n := t.nodes[pos]
	assert(n != nil, "relocation of empty position")
	t.nodes[pos] = nil
	if inner, ok := n.(*innerNode); ok {
		for i, c := range inner.children {
			t.relocate(c, delta)
			inner.children[i] = c + delta
		}
	}
	assert(t.nodes[pos+delta] == nil, "relocation target is occupied")
	t.nodes[pos+delta] = n
}
