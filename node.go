package clustree

import "math"

// node is either a *leafNode or an *innerNode. Both share slot storage and the
// running aggregates; only inner nodes carry child positions.
//
// Nodes do not point to their parents. Parents are found through the descent
// path of the insertion in progress.
type node interface {
	isLeaf() bool
	entries() *slots
}

// slots holds up to capacity = branching factor + 1 entries. The extra entry
// is the transient overflow slot which signals a required split.
type slots struct {
	values []int   // cluster centroids (leaf) or child representatives (inner)
	points []int64 // points absorbed per value (leaf) or per subtree (inner)
	// valueSum is Σ values[i]*points[i], pointSum is Σ points[i]
	valueSum int64
	pointSum int64
	// seeds is the farthest pair seen so far. It is updated on append only,
	// absorption does not re-evaluate it.
	seeds    [2]int
	seedDist int64
}

func makeSlots(capacity int) slots {
	assert(capacity > 1, "node capacity must be at least 2")
	return slots{
		values: make([]int, 0, capacity),
		points: make([]int64, 0, capacity),
	}
}

func (s *slots) count() int {
	return len(s.values)
}

func (s *slots) capacity() int {
	return cap(s.values)
}

// append adds a new slot and checks all previous slots to see if the new
// slot is part of the farthest pair.
func (s *slots) append(value int, points int64) {
	assert(len(s.values) < cap(s.values), "node capacity exceeded beyond overflow slot")
	n := len(s.values)
	for i := range n {
		if d := distance(s.values[i], value); d > s.seedDist {
			s.seedDist = d
			s.seeds = [2]int{i, n}
		}
	}
	s.values = append(s.values, value)
	s.points = append(s.points, points)
	s.valueSum += int64(value) * points
	s.pointSum += points
}

// setPointCount overwrites the point count of an occupied slot. It is a no-op
// for slots beyond the current count.
func (s *slots) setPointCount(slot int, points int64) {
	if slot >= len(s.values) {
		return
	}
	old := s.points[slot]
	s.valueSum += int64(s.values[slot]) * (points - old)
	s.pointSum += points - old
	s.points[slot] = points
}

// updateValue replaces the value of a slot. The slot's point count is reset
// to 1; callers are expected to follow up with setPointCount.
func (s *slots) updateValue(slot int, value int) {
	assert(slot < len(s.values), "updateValue on unoccupied slot")
	s.valueSum -= int64(s.values[slot]) * s.points[slot]
	s.pointSum -= s.points[slot]
	s.values[slot] = value
	s.points[slot] = 1
	s.valueSum += int64(value)
	s.pointSum++
}

// closestSlot returns the index of the slot closest to value. Ties resolve
// to the lowest index. For an empty node 0 is returned.
func (s *slots) closestSlot(value int) int {
	best, bestDist := 0, int64(math.MaxInt64)
	for i, v := range s.values {
		if d := distance(v, value); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// splitRequired is true if the overflow slot is occupied.
func (s *slots) splitRequired() bool {
	return len(s.values) > cap(s.values)-1
}

// representativeValue is the point-weighted mean of all slot values, or 0 for
// an empty node.
func (s *slots) representativeValue() int {
	if s.pointSum == 0 {
		return 0
	}
	return int(roundDiv(s.valueSum, s.pointSum))
}

// farthestPair returns the seed slots for a split.
func (s *slots) farthestPair() (int, int) {
	return s.seeds[0], s.seeds[1]
}

// --- Leaf nodes ------------------------------------------------------------

type leafNode struct {
	slots
}

func newLeaf(capacity int) *leafNode {
	return &leafNode{slots: makeSlots(capacity)}
}

func (l *leafNode) isLeaf() bool     { return true }
func (l *leafNode) entries() *slots { return &l.slots }

// insertValue appends a new cluster. No absorption is performed.
func (l *leafNode) insertValue(value int, points int64) {
	l.append(value, points)
}

// absorb merges one new data point into the cluster at slot, moving the
// centroid to the weighted running mean. The seed pair is left untouched.
func (l *leafNode) absorb(slot int, value int) {
	assert(slot < len(l.values), "absorb into unoccupied slot")
	old, pts := int64(l.values[slot]), l.points[slot]
	merged := roundDiv(old*pts+int64(value), pts+1)
	l.valueSum -= old * pts
	l.values[slot] = int(merged)
	l.points[slot] = pts + 1
	l.valueSum += merged * (pts + 1)
	l.pointSum++
}

// isCloseEnough checks if value may be absorbed by the cluster at slot.
func (l *leafNode) isCloseEnough(slot int, value int, threshold int) bool {
	return distance(l.values[slot], value) < int64(threshold)
}

// --- Inner nodes -----------------------------------------------------------

type innerNode struct {
	slots
	children []int // absolute array positions, slot-aligned with values
}

func newInner(capacity int) *innerNode {
	return &innerNode{
		slots:    makeSlots(capacity),
		children: make([]int, 0, capacity),
	}
}

func (n *innerNode) isLeaf() bool     { return false }
func (n *innerNode) entries() *slots { return &n.slots }

// insertChild appends a child with a point count of 1. Callers correct the
// count with setPointCount right away.
func (n *innerNode) insertChild(position int, value int) {
	n.append(value, 1)
	n.children = append(n.children, position)
}

// updateChild re-targets a slot to a (possibly new) child position and value.
// Like updateValue it resets the slot's point count to 1.
func (n *innerNode) updateChild(slot int, position int, value int) {
	n.updateValue(slot, value)
	n.children[slot] = position
}

func (n *innerNode) child(slot int) int {
	return n.children[slot]
}

// --- Arithmetic helpers ----------------------------------------------------

func distance(a, b int) int64 {
	d := int64(a) - int64(b)
	if d < 0 {
		return -d
	}
	return d
}

// roundDiv divides num by a positive den and rounds half away from zero.
func roundDiv(num, den int64) int64 {
	assert(den > 0, "roundDiv requires a positive divisor")
	q, r := num/den, num%den
	if r < 0 {
		r = -r
	}
	if r >= den-r {
		if num < 0 {
			q--
		} else {
			q++
		}
	}
	return q
}
