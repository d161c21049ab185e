package clustree

import "fmt"

// Check validates structural tree invariants:
//
//   - the array is sized for the current height and holds the root at 0,
//   - all leaves are at depth == height, inner nodes above,
//   - no node exceeds the branching factor,
//   - children live at the positions reserved for their slots,
//   - recorded child values and point counts match the children,
//   - aggregates match slot contents,
//   - every occupied position is reachable from the root.
//
// This checker is intentionally strict and meant for tests and debugging.
func (t *Tree) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrCorruptTree)
	}
	if t.height < 1 {
		return fmt.Errorf("%w: height must be positive, is %d", ErrCorruptTree, t.height)
	}
	if size := arraySize(t.height, t.branching()); len(t.nodes) != size {
		return fmt.Errorf("%w: array size %d != %d for height %d",
			ErrCorruptTree, len(t.nodes), size, t.height)
	}
	if t.nodes[0] == nil {
		return fmt.Errorf("%w: no root", ErrCorruptTree)
	}
	reachable, err := t.checkNode(0, 1)
	if err != nil {
		return err
	}
	occupied := 0
	for _, n := range t.nodes {
		if n != nil {
			occupied++
		}
	}
	if occupied != reachable {
		return fmt.Errorf("%w: %d occupied positions, %d reachable",
			ErrCorruptTree, occupied, reachable)
	}
	return nil
}

func (t *Tree) checkNode(pos, depth int) (int, error) {
	n := t.nodes[pos]
	if n == nil {
		return 0, fmt.Errorf("%w: empty position %d referenced", ErrCorruptTree, pos)
	}
	if n.isLeaf() != (depth == t.height) {
		return 0, fmt.Errorf("%w: node @%d at depth %d of %d has wrong kind (leaf=%v)",
			ErrCorruptTree, pos, depth, t.height, n.isLeaf())
	}
	e := n.entries()
	if e.count() > t.branching() {
		return 0, fmt.Errorf("%w: node @%d holds %d slots, branching factor is %d",
			ErrCorruptTree, pos, e.count(), t.branching())
	}
	if e.count() == 0 && pos != 0 {
		return 0, fmt.Errorf("%w: empty non-root node @%d", ErrCorruptTree, pos)
	}
	if len(e.points) != e.count() {
		return 0, fmt.Errorf("%w: node @%d slot arrays misaligned", ErrCorruptTree, pos)
	}
	var vsum, psum int64
	for i, v := range e.values {
		if e.points[i] < 1 {
			return 0, fmt.Errorf("%w: slot %d of node @%d has %d points",
				ErrCorruptTree, i, pos, e.points[i])
		}
		vsum += int64(v) * e.points[i]
		psum += e.points[i]
	}
	if vsum != e.valueSum || psum != e.pointSum {
		return 0, fmt.Errorf("%w: aggregates of node @%d are (%d,%d), slots sum up to (%d,%d)",
			ErrCorruptTree, pos, e.valueSum, e.pointSum, vsum, psum)
	}
	inner, ok := n.(*innerNode)
	if !ok {
		return 1, nil
	}
	if len(inner.children) != e.count() {
		return 0, fmt.Errorf("%w: node @%d has %d children for %d slots",
			ErrCorruptTree, pos, len(inner.children), e.count())
	}
	total := 1
	for i, c := range inner.children {
		if want := childPosition(pos, i, depth+1, t.height, t.branching()); c != want {
			return 0, fmt.Errorf("%w: child %d of node @%d is @%d, reserved position is @%d",
				ErrCorruptTree, i, pos, c, want)
		}
		cnt, err := t.checkNode(c, depth+1)
		if err != nil {
			return 0, err
		}
		ce := t.nodes[c].entries()
		if e.values[i] != ce.representativeValue() || e.points[i] != ce.pointSum {
			return 0, fmt.Errorf("%w: slot %d of node @%d records (%d,%d), child has (%d,%d)",
				ErrCorruptTree, i, pos, e.values[i], e.points[i],
				ce.representativeValue(), ce.pointSum)
		}
		total += cnt
	}
	return total, nil
}
