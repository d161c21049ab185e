package clustree

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// traceToTest redirects the core tracer to the test log. The returned
// teardown mutes it again, as t must not be logged to after the test ends.
func traceToTest(t *testing.T, level tracing.TraceLevel) func() {
	gtrace.CoreTracer = gotestingadapter.New(t)
	gtrace.CoreTracer.SetTraceLevel(level)
	return func() {
		gtrace.CoreTracer = gtrace.NoOpTrace
	}
}

func newTestTree(t *testing.T, b, threshold int) *Tree {
	t.Helper()
	tree, err := New(Config{BranchingFactor: b, ClosenessThreshold: threshold})
	if err != nil {
		t.Fatalf("unexpected New error: %v", err)
	}
	return tree
}

func insertAll(t *testing.T, tree *Tree, values ...int) {
	t.Helper()
	for _, v := range values {
		if err := tree.Insert(v); err != nil {
			t.Fatalf("insert %d failed: %v", v, err)
		}
	}
}

func collectViews(tree *Tree) []NodeView {
	var views []NodeView
	for n := range tree.Traverse() {
		views = append(views, n)
	}
	return views
}

func sortedClusters(tree *Tree) []Cluster {
	return sortClusters(slices.Collect(tree.Clusters()))
}

func sortClusters(cl []Cluster) []Cluster {
	slices.SortFunc(cl, func(a, b Cluster) int {
		if a.Value != b.Value {
			return a.Value - b.Value
		}
		return int(a.Points - b.Points)
	})
	return cl
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	for _, cfg := range []Config{
		{BranchingFactor: 1, ClosenessThreshold: 2},
		{BranchingFactor: -3, ClosenessThreshold: 2},
		{BranchingFactor: 2, ClosenessThreshold: -1},
		{BranchingFactor: MaxBranchingFactor + 1},
	} {
		if _, err := New(cfg); !errors.Is(err, ErrIllegalArguments) {
			t.Errorf("expected ErrIllegalArguments for %+v, got %v", cfg, err)
		}
	}
}

func TestNewNormalizesConfig(t *testing.T) {
	tree, err := New(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg := tree.Config()
	if cfg.BranchingFactor != DefaultBranchingFactor || cfg.ClosenessThreshold != DefaultClosenessThreshold {
		t.Errorf("expected defaults, have %+v", cfg)
	}
	if tree.Height() != 1 || tree.Points() != 0 || tree.Value() != 0 {
		t.Errorf("unexpected empty tree state height=%d points=%d", tree.Height(), tree.Points())
	}
	if err := tree.Check(); err != nil {
		t.Errorf("expected empty tree to be valid, got %v", err)
	}
}

func TestInsertRejectsOutOfRange(t *testing.T) {
	tree := newTestTree(t, 2, 2)
	if err := tree.Insert(MaxValue + 1); !errors.Is(err, ErrValueOutOfRange) {
		t.Errorf("expected ErrValueOutOfRange, got %v", err)
	}
	if err := tree.Insert(MinValue - 1); !errors.Is(err, ErrValueOutOfRange) {
		t.Errorf("expected ErrValueOutOfRange, got %v", err)
	}
	if tree.Points() != 0 {
		t.Errorf("rejected values must not be counted")
	}
}

func TestScenarioSingleValue(t *testing.T) {
	teardown := traceToTest(t, tracing.LevelDebug)
	defer teardown()
	//
	tree := newTestTree(t, 2, 2)
	insertAll(t, tree, 10)
	views := collectViews(tree)
	if len(views) != 1 {
		t.Fatalf("expected a single node, have %d", len(views))
	}
	root := views[0]
	if !root.Leaf || !slices.Equal(root.Values, []int{10}) || !slices.Equal(root.Points, []int64{1}) {
		t.Errorf("unexpected root %v", root)
	}
}

func TestScenarioNoAbsorptionAtThreshold(t *testing.T) {
	teardown := traceToTest(t, tracing.LevelDebug)
	defer teardown()
	//
	tree := newTestTree(t, 2, 2)
	insertAll(t, tree, 10, 12)
	root := collectViews(tree)[0]
	if !slices.Equal(root.Values, []int{10, 12}) || !slices.Equal(root.Points, []int64{1, 1}) {
		t.Errorf("expected clusters [10 12] [1 1], have %v", root)
	}
	if tree.Height() != 1 {
		t.Errorf("expected no split, height is %d", tree.Height())
	}
}

func TestScenarioRootSplit(t *testing.T) {
	teardown := traceToTest(t, tracing.LevelDebug)
	defer teardown()
	//
	tree := newTestTree(t, 2, 2)
	insertAll(t, tree, 10, 12, 50)
	if tree.Height() != 2 {
		t.Fatalf("expected height 2 after root split, is %d", tree.Height())
	}
	views := collectViews(tree)
	if len(views) != 3 {
		t.Fatalf("expected 3 nodes, have %d", len(views))
	}
	root, a, b := views[0], views[1], views[2]
	if root.Leaf || root.Value != 24 || root.Position != 0 {
		t.Errorf("unexpected root %v", root)
	}
	if !slices.Equal(root.Points, []int64{2, 1}) || !slices.Equal(root.Values, []int{11, 50}) {
		t.Errorf("unexpected root slots %v", root)
	}
	if a.Position != 1 || a.Value != 11 || !slices.Equal(a.Values, []int{10, 12}) {
		t.Errorf("unexpected first child %v", a)
	}
	if b.Position != 2 || b.Value != 50 || !slices.Equal(b.Values, []int{50}) {
		t.Errorf("unexpected second child %v", b)
	}
	if err := tree.Check(); err != nil {
		t.Errorf("tree invalid after root split: %v", err)
	}
}

func TestScenarioAbsorption(t *testing.T) {
	teardown := traceToTest(t, tracing.LevelDebug)
	defer teardown()
	//
	tree := newTestTree(t, 2, 2)
	insertAll(t, tree, 10, 11)
	root := collectViews(tree)[0]
	if !slices.Equal(root.Values, []int{11}) || !slices.Equal(root.Points, []int64{2}) {
		t.Errorf("expected single cluster 11 with 2 points, have %v", root)
	}
}

func TestNonRootLeafSplit(t *testing.T) {
	teardown := traceToTest(t, tracing.LevelDebug)
	defer teardown()
	//
	tree := newTestTree(t, 3, 2)
	insertAll(t, tree, 10, 20, 30, 40, 50, 60)
	if tree.Height() != 2 {
		t.Fatalf("expected height 2, is %d", tree.Height())
	}
	want := []struct {
		pos    int
		values []int
	}{
		{0, []int{15, 35, 55}},
		{1, []int{10, 20}},
		{2, []int{30, 40}},
		{3, []int{50, 60}},
	}
	views := collectViews(tree)
	if len(views) != len(want) {
		t.Fatalf("expected %d nodes, have %d", len(want), len(views))
	}
	for i, w := range want {
		if views[i].Position != w.pos || !slices.Equal(views[i].Values, w.values) {
			t.Errorf("node %d: expected @%d %v, have %v", i, w.pos, w.values, views[i])
		}
	}
	if views[0].Value != 35 {
		t.Errorf("expected root value 35, is %d", views[0].Value)
	}
	st := tree.Stats()
	if st.Splits != 2 || st.Rebuilds != 1 || st.Leaves != 3 || st.Clusters != 6 {
		t.Errorf("unexpected stats %+v", st)
	}
	if err := tree.Check(); err != nil {
		t.Errorf("tree invalid: %v", err)
	}
}

func TestRebuildToHeightThree(t *testing.T) {
	teardown := traceToTest(t, tracing.LevelDebug)
	defer teardown()
	//
	tree := newTestTree(t, 2, 2)
	insertAll(t, tree, 10, 12, 50, 100)
	before := sortedClusters(tree)
	insertAll(t, tree, 200)
	if tree.Height() != 3 {
		t.Fatalf("expected height 3, is %d", tree.Height())
	}
	want := []struct {
		pos, depth, value int
		values            []int
	}{
		{0, 1, 74, []int{43, 200}},
		{1, 2, 43, []int{11, 75}},
		{2, 3, 11, []int{10, 12}},
		{3, 3, 75, []int{50, 100}},
		{5, 2, 200, []int{200}},
		{6, 3, 200, []int{200}},
	}
	views := collectViews(tree)
	if len(views) != len(want) {
		t.Fatalf("expected %d nodes, have %d", len(want), len(views))
	}
	for i, w := range want {
		v := views[i]
		if v.Position != w.pos || v.Depth != w.depth || v.Value != w.value || !slices.Equal(v.Values, w.values) {
			t.Errorf("node %d: expected @%d depth %d value %d %v, have %v (depth %d)",
				i, w.pos, w.depth, w.value, w.values, v, v.Depth)
		}
	}
	after := sortedClusters(tree)
	expected := sortClusters(append(before, Cluster{Value: 200, Points: 1}))
	if !slices.Equal(after, expected) {
		t.Errorf("rebuild changed cluster contents: before %v, after %v", before, after)
	}
	if err := tree.Check(); err != nil {
		t.Errorf("tree invalid after rebuild: %v", err)
	}
}

func TestRepeatedValueIsAbsorbed(t *testing.T) {
	tree := newTestTree(t, 3, 4)
	for range 1000 {
		insertAll(t, tree, 42)
	}
	cl := slices.Collect(tree.Clusters())
	if len(cl) != 1 || cl[0] != (Cluster{Value: 42, Points: 1000}) {
		t.Errorf("expected one cluster (42,1000), have %v", cl)
	}
	if tree.Height() != 1 {
		t.Errorf("expected height 1, is %d", tree.Height())
	}
}

func TestRandomInsertionsKeepInvariants(t *testing.T) {
	teardown := traceToTest(t, tracing.LevelInfo)
	defer teardown()
	//
	tests := []struct {
		b, threshold, lo, hi, n int
	}{
		{2, 2, 0, 100, 300},
		{2, 5, -500, 500, 300},
		{3, 2, 0, 1000, 400},
		{4, 10, -10000, 10000, 400},
		{5, 3, 0, 300, 500},
	}
	for _, tt := range tests {
		rnd := rand.New(rand.NewPCG(uint64(tt.b), uint64(tt.n)))
		tree := newTestTree(t, tt.b, tt.threshold)
		var inputs []int
		for i := range tt.n {
			v := tt.lo + rnd.IntN(tt.hi-tt.lo)
			inputs = append(inputs, v)
			height := tree.Height()
			before := sortedClusters(tree)
			insertAll(t, tree, v)
			if err := tree.Check(); err != nil {
				t.Fatalf("b=%d: invariant violated after inserting %v: %v", tt.b, inputs, err)
			}
			if got := tree.Points(); got != int64(i+1) {
				t.Fatalf("b=%d: expected %d points in root, have %d", tt.b, i+1, got)
			}
			var leafPoints int64
			for c := range tree.Clusters() {
				leafPoints += c.Points
			}
			if leafPoints != int64(i+1) {
				t.Fatalf("b=%d: expected %d points in leaves, have %d", tt.b, i+1, leafPoints)
			}
			if tree.Height() != height {
				if tree.Height() != height+1 {
					t.Fatalf("b=%d: height jumped from %d to %d", tt.b, height, tree.Height())
				}
				expected := sortClusters(append(before, Cluster{Value: v, Points: 1}))
				if !slices.Equal(expected, sortedClusters(tree)) {
					t.Fatalf("b=%d: rebuild changed cluster contents", tt.b)
				}
			}
		}
		t.Logf("b=%d: %d values, height %d, %d clusters", tt.b, tt.n, tree.Height(), tree.Stats().Clusters)
	}
}

func TestTraverseIsRestartable(t *testing.T) {
	tree := newTestTree(t, 2, 2)
	insertAll(t, tree, 5, 30, 60, 90, 120, 3, 45)
	seq := tree.Traverse()
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if len(first) == 0 || len(first) != len(second) {
		t.Fatalf("traversals differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].String() != second[i].String() {
			t.Errorf("traversals differ at %d: %v vs %v", i, first[i], second[i])
		}
	}
	// breaking early must release the traversal guard
	for range seq {
		break
	}
	insertAll(t, tree, 7)
}

func TestInsertDuringTraversalPanics(t *testing.T) {
	tree := newTestTree(t, 2, 2)
	insertAll(t, tree, 5, 30, 60)
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic for insertion during traversal")
		}
	}()
	for range tree.Traverse() {
		_ = tree.Insert(99)
	}
}

func TestNilTreeAccessors(t *testing.T) {
	var tree *Tree
	if tree.Height() != 0 || tree.Points() != 0 || tree.Value() != 0 {
		t.Errorf("expected zero values for nil tree")
	}
	if st := tree.Stats(); st.Height != 0 || st.Nodes != 0 || st.Occupancy != nil {
		t.Errorf("expected empty stats for nil tree, have %+v", st)
	}
	if err := tree.Insert(1); !errors.Is(err, ErrIllegalArguments) {
		t.Errorf("expected ErrIllegalArguments for nil tree, have %v", err)
	}
}

func TestStatsOccupancy(t *testing.T) {
	tree := newTestTree(t, 2, 2)
	insertAll(t, tree, 10, 12, 50)
	st := tree.Stats()
	if st.Height != 2 || st.Nodes != 3 || st.Points != 3 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if len(st.Occupancy) != 2 || st.Occupancy[0] != 1.0 {
		t.Fatalf("unexpected occupancy %v", st.Occupancy)
	}
	if got := st.Occupancy[1]; got < 0.66 || got > 0.67 {
		t.Errorf("expected 2 of 3 positions occupied at depth 2, have %f", got)
	}
}
