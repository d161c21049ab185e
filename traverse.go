package clustree

import (
	"fmt"
	"iter"
)

// NodeView is a read-only snapshot of a single node, as produced by
// Traverse. Slices are copies and may be retained by clients.
type NodeView struct {
	Position int     // position in the flat node array
	Depth    int     // 1 for the root
	Leaf     bool    // leaf or inner node
	Value    int     // representative value of the node
	Values   []int   // cluster centroids or child representatives
	Points   []int64 // points per cluster or per child subtree
	Children []int   // child positions, nil for leaves
}

func (v NodeView) String() string {
	return fmt.Sprintf("%d: %d - %v %v", v.Position, v.Value, v.Values, v.Points)
}

// Cluster is an occupied leaf slot.
type Cluster struct {
	Value  int
	Points int64
}

// Traverse returns an iterator over all nodes in pre-order, starting at the
// root. Each call returns a fresh, restartable sequence.
//
// The tree must not be modified while a traversal is in progress.
func (t *Tree) Traverse() iter.Seq[NodeView] {
	return func(yield func(NodeView) bool) {
		if t == nil || t.nodes[0] == nil {
			return
		}
		t.walkers++
		defer func() { t.walkers-- }()
		t.traverseNode(0, 1, yield)
	}
}

func (t *Tree) traverseNode(pos, depth int, yield func(NodeView) bool) bool {
	n := t.nodes[pos]
	assert(n != nil, "traversal reached empty position")
	e := n.entries()
	view := NodeView{
		Position: pos,
		Depth:    depth,
		Leaf:     n.isLeaf(),
		Value:    e.representativeValue(),
		Values:   append([]int(nil), e.values...),
		Points:   append([]int64(nil), e.points...),
	}
	inner, isInner := n.(*innerNode)
	if isInner {
		view.Children = append([]int(nil), inner.children...)
	}
	if !yield(view) {
		return false
	}
	if isInner {
		for _, c := range inner.children {
			if !t.traverseNode(c, depth+1, yield) {
				return false
			}
		}
	}
	return true
}

// Clusters returns an iterator over all leaf clusters, in tree order.
func (t *Tree) Clusters() iter.Seq[Cluster] {
	return func(yield func(Cluster) bool) {
		for n := range t.Traverse() {
			if !n.Leaf {
				continue
			}
			for i, v := range n.Values {
				if !yield(Cluster{Value: v, Points: n.Points[i]}) {
					return
				}
			}
		}
	}
}
