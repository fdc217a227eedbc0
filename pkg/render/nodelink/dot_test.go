package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/acotour/pkg/aco"
	"github.com/matzehuels/acotour/pkg/geom"
)

var triangle = []geom.Point{{0, 0}, {0, 3}, {4, 0}}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(triangle, aco.Tour{0, 1, 2, 0}, Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Error("ToDOT() output missing graph declaration")
	}
	for _, want := range []string{`"0" -- "1"`, `"1" -- "2"`, `"2" -- "0"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing edge %s", want)
		}
	}
	if strings.Count(dot, " -- ") != 3 {
		t.Errorf("ToDOT() edge count = %d, want 3", strings.Count(dot, " -- "))
	}
}

func TestToDOT_PinnedPositions(t *testing.T) {
	dot := ToDOT(triangle, nil, Options{Size: 8})

	// The larger span (4) is fitted to 8 inches.
	for _, want := range []string{
		`pos="0.0000,0.0000!"`,
		`pos="0.0000,6.0000!"`,
		`pos="8.0000,0.0000!"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s", want)
		}
	}
}

func TestToDOT_StartNode(t *testing.T) {
	dot := ToDOT(triangle, aco.Tour{2, 0, 1, 2}, Options{})

	for _, line := range strings.Split(dot, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), `"2" [`) {
			if !strings.Contains(line, "fillcolor=black") {
				t.Errorf("start node not highlighted: %s", line)
			}
			return
		}
	}
	t.Error("node 2 not found")
}

func TestToDOT_SkipsInvalidEdges(t *testing.T) {
	dot := ToDOT(triangle, aco.Tour{0, 7, 1}, Options{})
	if strings.Contains(dot, `"7"`) {
		t.Error("ToDOT() emitted out-of-range node")
	}
}

func TestFmtLabel(t *testing.T) {
	if got := fmtLabel(3, geom.Point{1.5, 2}, false); got != "3" {
		t.Errorf("fmtLabel() simple = %q", got)
	}
	if got := fmtLabel(3, geom.Point{1.5, 2}, true); got != "3\n(1.5, 2)" {
		t.Errorf("fmtLabel() detailed = %q", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if !strings.HasSuffix(out, "<g/></svg>") {
		t.Errorf("normalizeViewBox() dropped content: %s", out)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping graphviz render in short mode")
	}
	dot := ToDOT(triangle, aco.Tour{0, 1, 2, 0}, Options{})
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output is not SVG")
	}
}
