package clustree

import "math"

// Position arithmetic for the flat node array.
//
// All functions are pure functions of depth, height and branching factor.
// Depths are 1-based: the root lives at depth 1, leaves at depth == height.
// Every node reserves room for b+1 children (b = branching factor), the extra
// one being the transient overflow slot before a split.

// capacityBelow is the maximum number of descendants of a node at depth in a
// tree of the given height:
//
//	Σ_{i=depth}^{height-1} (b+1)^(height-i)
func capacityBelow(depth, height, b int) int {
	width := 0
	for i := depth; i < height; i++ {
		width = checkedAdd(width, ipow(b+1, height-i))
	}
	return width
}

// span is the size of the address range reserved for a subtree rooted at
// depth, including its root.
func span(depth, height, b int) int {
	return 1 + capacityBelow(depth, height, b)
}

// arraySize is the number of positions a tree of the given height needs.
func arraySize(height, b int) int {
	return span(1, height, b)
}

// childPosition is the position of the child in slot of the node at parent,
// where the child is located at childDepth.
func childPosition(parent, slot, childDepth, height, b int) int {
	return parent + 1 + slot*span(childDepth, height, b)
}

// reservedPosition computes a node's position from the history of child
// slots taken on the way down from the root. history[d-1] holds the slot
// taken to reach depth d; history[0] is unused (the root has no slot).
func reservedPosition(history []int, depth, height, b int) int {
	pos := 0
	for d := 2; d <= depth; d++ {
		pos += 1 + history[d-1]*span(d, height, b)
	}
	return pos
}

// capacityAbove counts the node positions on all levels above depth, in
// level order.
func capacityAbove(depth, b int) int {
	above := 0
	for i := 1; i < depth; i++ {
		above = checkedAdd(above, ipow(b+1, i-1))
	}
	return above
}

// capacityBetween counts the node positions on levels start to end,
// inclusively.
func capacityBetween(start, end, b int) int {
	return capacityAbove(end+1, b) - capacityAbove(start, b)
}

// subtreeDepthOf decomposes the levels of a tree of the given height by
// repeated halving and returns the local depth (1 or 2) of depth within its
// innermost block. It returns -1 if depth exceeds height.
func subtreeDepthOf(height, depth int) int {
	if depth > height {
		return -1
	}
	if height <= 2 {
		return depth
	}
	half := height / 2
	if depth > half {
		return subtreeDepthOf(height-half, depth-half)
	}
	return subtreeDepthOf(half, depth)
}

// parentBlockOf determines the first and last level of the block of levels
// containing depth. Call it with start = 0 and end = tree height.
func parentBlockOf(start, end, depth int) (int, int) {
	if end-start < 4 {
		return start, end
	}
	mid := (end + start - 1) / 2
	if depth <= mid {
		return parentBlockOf(start, mid, depth)
	}
	return parentBlockOf(mid+1, end, depth)
}

func ipow(base, exp int) int {
	r := 1
	for range exp {
		assert(r <= math.MaxInt/base, "capacity arithmetic overflows int")
		r *= base
	}
	return r
}

func checkedAdd(a, b int) int {
	assert(a <= math.MaxInt-b, "capacity arithmetic overflows int")
	return a + b
}
