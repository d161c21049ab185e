package clustree

import (
	"fmt"
	"io"
)

// Tree2Dot outputs the internal structure of a tree in Graphviz DOT format
// (for debugging purposes).
//
// Nodes are labelled with their array position and representative value.
// Levels are grouped into the blocks of the halving decomposition used by the
// addressing arithmetic, and coloured by their local depth within a block.
func Tree2Dot(t *Tree, w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	nodelist, edgelist := "", ""
	for n := range t.Traverse() {
		styles := nodeDotStyles(n, subtreeDepthOf(t.Height(), n.Depth))
		if n.Leaf {
			label := fmt.Sprintf("@%d: %d\\n%v\\n%v", n.Position, n.Value, n.Values, n.Points)
			nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" %s];\n", n.Position, label, styles)
			continue
		}
		label := fmt.Sprintf("@%d\\n%d", n.Position, n.Value)
		nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" %s];\n", n.Position, label, styles)
		for i, c := range n.Children {
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\" [label=%d];\n", n.Position, c, n.Points[i])
		}
	}
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, blockRanks(t))
	io.WriteString(w, "}\n")
}

func nodeDotStyles(n NodeView, local int) string {
	s := ",style=filled"
	if n.Leaf {
		s += ",shape=box"
	} else {
		s += ",color=black,shape=circle"
	}
	if local == 2 {
		s += fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[1])
	} else {
		s += fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[0])
	}
	return s
}

// blockRanks aligns the nodes of each level and separates the level blocks
// by comments.
func blockRanks(t *Tree) string {
	levels := make([][]int, t.Height())
	for n := range t.Traverse() {
		levels[n.Depth-1] = append(levels[n.Depth-1], n.Position)
	}
	s := ""
	lastStart, lastEnd := -1, -1
	for d, positions := range levels {
		start, end := parentBlockOf(0, t.Height(), d+1)
		if start != lastStart || end != lastEnd {
			s += fmt.Sprintf("// levels %d..%d\n", start, end)
			lastStart, lastEnd = start, end
		}
		s += "{rank=same;"
		for _, p := range positions {
			s += fmt.Sprintf(" \"%d\";", p)
		}
		s += "}\n"
	}
	return s
}

var hexcolors = [...]string{"white", "#a3d7e4"}
