package clustree

import "testing"

func TestLeafInsertValueAggregates(t *testing.T) {
	leaf := newLeaf(3)
	leaf.insertValue(10, 1)
	leaf.insertValue(20, 3)
	if leaf.count() != 2 {
		t.Fatalf("expected 2 slots, have %d", leaf.count())
	}
	if leaf.valueSum != 70 || leaf.pointSum != 4 {
		t.Fatalf("unexpected aggregates (%d,%d)", leaf.valueSum, leaf.pointSum)
	}
	if v := leaf.representativeValue(); v != 18 { // 70/4 = 17.5
		t.Errorf("expected representative 18, is %d", v)
	}
}

func TestEmptyNodeRepresentativeIsZero(t *testing.T) {
	if v := newLeaf(3).representativeValue(); v != 0 {
		t.Errorf("expected 0 for empty leaf, is %d", v)
	}
	if v := newInner(3).representativeValue(); v != 0 {
		t.Errorf("expected 0 for empty inner node, is %d", v)
	}
}

func TestAbsorbWeightedMean(t *testing.T) {
	leaf := newLeaf(3)
	leaf.insertValue(10, 1)
	leaf.absorb(0, 11)
	if leaf.values[0] != 11 || leaf.points[0] != 2 {
		t.Fatalf("expected cluster (11,2), is (%d,%d)", leaf.values[0], leaf.points[0])
	}
	leaf.absorb(0, 20) // (11*2+20)/3 = 14
	if leaf.values[0] != 14 || leaf.points[0] != 3 {
		t.Fatalf("expected cluster (14,3), is (%d,%d)", leaf.values[0], leaf.points[0])
	}
	if leaf.valueSum != 42 || leaf.pointSum != 3 {
		t.Errorf("unexpected aggregates (%d,%d)", leaf.valueSum, leaf.pointSum)
	}
}

func TestAbsorbKeepsStaleSeeds(t *testing.T) {
	leaf := newLeaf(4)
	leaf.insertValue(0, 1)
	leaf.insertValue(10, 1)
	leaf.insertValue(4, 1)
	if s1, s2 := leaf.farthestPair(); s1 != 0 || s2 != 1 {
		t.Fatalf("expected seeds (0,1), are (%d,%d)", s1, s2)
	}
	leaf.absorb(1, 0) // moves slot 1 from 10 to 5
	if s1, s2 := leaf.farthestPair(); s1 != 0 || s2 != 1 || leaf.seedDist != 10 {
		t.Errorf("seeds must not be re-evaluated on absorb, are (%d,%d) dist=%d",
			s1, s2, leaf.seedDist)
	}
}

func TestFarthestPairIncremental(t *testing.T) {
	leaf := newLeaf(4)
	for _, v := range []int{10, 12, 50} {
		leaf.insertValue(v, 1)
	}
	if s1, s2 := leaf.farthestPair(); s1 != 0 || s2 != 2 {
		t.Errorf("expected seeds (0,2), are (%d,%d)", s1, s2)
	}
	if leaf.seedDist != 40 {
		t.Errorf("expected seed distance 40, is %d", leaf.seedDist)
	}
}

func TestRoundDiv(t *testing.T) {
	tests := []struct {
		num, den, want int64
	}{
		{21, 2, 11},
		{20, 2, 10},
		{70, 4, 18},
		{69, 4, 17},
		{-21, 2, -11},
		{-69, 4, -17},
		{-70, 4, -18},
		{1, 3, 0},
		{2, 3, 1},
		{0, 5, 0},
	}
	for _, tt := range tests {
		if got := roundDiv(tt.num, tt.den); got != tt.want {
			t.Errorf("roundDiv(%d,%d) = %d, want %d", tt.num, tt.den, got, tt.want)
		}
	}
}

func TestClosestSlotTieBreak(t *testing.T) {
	leaf := newLeaf(4)
	for _, v := range []int{10, 14, 12} {
		leaf.insertValue(v, 1)
	}
	if s := leaf.closestSlot(12); s != 2 {
		t.Errorf("expected exact match in slot 2, got %d", s)
	}
	if s := leaf.closestSlot(11); s != 0 {
		t.Errorf("expected tie for 11 to resolve to slot 0, got %d", s)
	}
	if s := leaf.closestSlot(13); s != 1 {
		t.Errorf("expected tie for 13 to resolve to slot 1, got %d", s)
	}
}

func TestIsCloseEnoughIsStrict(t *testing.T) {
	leaf := newLeaf(3)
	leaf.insertValue(10, 1)
	if leaf.isCloseEnough(0, 12, 2) {
		t.Errorf("distance 2 must not be close enough for threshold 2")
	}
	if !leaf.isCloseEnough(0, 11, 2) || !leaf.isCloseEnough(0, 9, 2) {
		t.Errorf("distance 1 must be close enough for threshold 2")
	}
}

func TestSplitRequired(t *testing.T) {
	leaf := newLeaf(3) // branching factor 2
	leaf.insertValue(1, 1)
	leaf.insertValue(5, 1)
	if leaf.splitRequired() {
		t.Fatalf("2 slots must not require a split for branching factor 2")
	}
	leaf.insertValue(9, 1)
	if !leaf.splitRequired() {
		t.Fatalf("3 slots must require a split for branching factor 2")
	}
}

func TestCapacityExceededPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic when exceeding the overflow slot")
		}
	}()
	leaf := newLeaf(2)
	leaf.insertValue(1, 1)
	leaf.insertValue(2, 1)
	leaf.insertValue(3, 1)
}

func TestSetPointCount(t *testing.T) {
	inner := newInner(3)
	inner.insertChild(1, 10)
	inner.setPointCount(0, 4)
	if inner.points[0] != 4 || inner.pointSum != 4 || inner.valueSum != 40 {
		t.Fatalf("unexpected slot state points=%d aggregates=(%d,%d)",
			inner.points[0], inner.valueSum, inner.pointSum)
	}
	inner.setPointCount(1, 7) // beyond count: no-op
	if inner.pointSum != 4 || inner.valueSum != 40 {
		t.Errorf("setPointCount beyond count changed aggregates to (%d,%d)",
			inner.valueSum, inner.pointSum)
	}
}

func TestUpdateValueThenSetPointCount(t *testing.T) {
	inner := newInner(3)
	inner.insertChild(1, 10)
	inner.setPointCount(0, 2)
	inner.insertChild(2, 30)
	inner.setPointCount(1, 3)
	inner.updateValue(0, 12)
	if inner.points[0] != 1 {
		t.Fatalf("updateValue must reset point count to 1, is %d", inner.points[0])
	}
	if inner.valueSum != 12+90 || inner.pointSum != 4 {
		t.Fatalf("unexpected intermediate aggregates (%d,%d)", inner.valueSum, inner.pointSum)
	}
	inner.setPointCount(0, 5)
	if inner.valueSum != 60+90 || inner.pointSum != 8 {
		t.Errorf("unexpected aggregates (%d,%d)", inner.valueSum, inner.pointSum)
	}
	inner.updateChild(1, 7, 31)
	inner.setPointCount(1, 3)
	if inner.child(1) != 7 || inner.values[1] != 31 || inner.valueSum != 60+93 {
		t.Errorf("updateChild did not re-target slot 1: pos=%d value=%d sum=%d",
			inner.child(1), inner.values[1], inner.valueSum)
	}
}
