package clustree

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
)

func TestTree2Dot(t *testing.T) {
	teardown := traceToTest(t, tracing.LevelInfo)
	defer teardown()
	//
	tree := newTestTree(t, 2, 2)
	insertAll(t, tree, 10, 12, 50, 100, 200)
	var sb strings.Builder
	Tree2Dot(tree, &sb)
	dot := sb.String()
	if !strings.HasPrefix(dot, "strict digraph {") || !strings.HasSuffix(dot, "}\n") {
		t.Fatalf("output is not a DOT digraph:\n%s", dot)
	}
	for _, want := range []string{
		`"0" -> "1" [label=4];`,
		`"0" -> "5" [label=1];`,
		`"1" -> "3" [label=2];`,
		`"5" -> "6" [label=1];`,
		`"2" [label="@2: 11\n[10 12]\n[1 1]"`,
		`{rank=same; "1"; "5";}`,
		`{rank=same; "2"; "3"; "6";}`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("expected DOT output to contain %s", want)
		}
	}
	t.Logf("\n%s", dot)
}
