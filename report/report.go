/*
Package report renders clustering trees as HTML documents.

The tree structure maps onto nested lists: every node is a list item,
children of an inner node form a nested unordered list. Leaf items carry one
span per cluster.

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/npillmayer/clustree"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// T traces to the global tracer selected for clustree.
func T() tracing.Trace {
	return tracing.Select("clustree")
}

// Document creates an HTML document node for a tree.
func Document(t *clustree.Tree, title string) (*html.Node, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil tree", clustree.ErrIllegalArguments)
	}
	doc := &html.Node{Type: html.DocumentNode}
	root := element(atom.Html)
	doc.AppendChild(root)
	head := element(atom.Head)
	root.AppendChild(head)
	ttl := element(atom.Title)
	ttl.AppendChild(text(title))
	head.AppendChild(ttl)
	body := element(atom.Body)
	root.AppendChild(body)
	h1 := element(atom.H1)
	h1.AppendChild(text(title))
	body.AppendChild(h1)
	summary := element(atom.P, attr("class", "summary"))
	summary.AppendChild(text(fmt.Sprintf("height %d, %d points, value %d",
		t.Height(), t.Points(), t.Value())))
	body.AppendChild(summary)
	top := element(atom.Ul, attr("class", "clustree"))
	body.AppendChild(top)
	lists := map[int]*html.Node{0: top} // list to append a node to, by position
	for n := range t.Traverse() {
		list, ok := lists[n.Position]
		if !ok {
			return nil, fmt.Errorf("%w: node @%d without parent", clustree.ErrCorruptTree, n.Position)
		}
		delete(lists, n.Position)
		li := nodeItem(n)
		list.AppendChild(li)
		if n.Leaf {
			continue
		}
		ul := element(atom.Ul)
		li.AppendChild(ul)
		for _, c := range n.Children {
			lists[c] = ul
		}
	}
	T().Debugf("created HTML document for tree of height %d", t.Height())
	return doc, nil
}

// Render writes an HTML document for a tree to w.
func Render(t *clustree.Tree, title string, w io.Writer) error {
	doc, err := Document(t, title)
	if err != nil {
		return err
	}
	return html.Render(w, doc)
}

func nodeItem(n clustree.NodeView) *html.Node {
	class := "inner"
	if n.Leaf {
		class = "leaf"
	}
	li := element(atom.Li,
		attr("class", class),
		attr("data-position", strconv.Itoa(n.Position)),
		attr("data-depth", strconv.Itoa(n.Depth)))
	li.AppendChild(text(fmt.Sprintf("@%d: %d", n.Position, n.Value)))
	if !n.Leaf {
		return li
	}
	for i, v := range n.Values {
		span := element(atom.Span,
			attr("class", "cluster"),
			attr("data-points", strconv.FormatInt(n.Points[i], 10)))
		span.AppendChild(text(strconv.Itoa(v)))
		li.AppendChild(text(" "))
		li.AppendChild(span)
	}
	return li
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
