package search_test

import (
	"testing"

	"github.com/padperform/padperform/chart"
	"github.com/padperform/padperform/search"
	"github.com/padperform/padperform/stepgraph"
)

func TestCostVector_CompareLexicographic(t *testing.T) {
	a := search.CostVector{Fallback: 1}
	b := search.CostVector{Fallback: 2}
	if !a.Less(b) {
		t.Fatal("expected a < b on Fallback alone")
	}

	a = search.CostVector{Fallback: 1, Misleading: 5}
	b = search.CostVector{Fallback: 1, Misleading: 1}
	if a.Less(b) {
		t.Fatal("higher Misleading at equal Fallback should not be Less")
	}
	if !b.Less(a) {
		t.Fatal("lower Misleading at equal Fallback should be Less")
	}
}

func TestCostVector_AddSumsAllButTieBreak(t *testing.T) {
	a := search.CostVector{Fallback: 1, TieBreak: 0.1}
	b := search.CostVector{Fallback: 2, TieBreak: 0.9}
	sum := a.Add(b)
	if sum.Fallback != 3 {
		t.Errorf("Fallback = %v; want 3", sum.Fallback)
	}
	if sum.TieBreak != 0.9 {
		t.Errorf("TieBreak = %v; want b's TieBreak (0.9), got %v", sum.TieBreak, sum.TieBreak)
	}
}

func TestArena_NewRootAndChild(t *testing.T) {
	a := search.NewArena()
	var gn stepgraph.GraphNode
	root := a.NewRoot(gn, 4, 0, 0)
	if root.Parent != -1 {
		t.Errorf("root.Parent = %d; want -1 (noParent)", root.Parent)
	}

	child := &search.Node{IncomingLink: chart.GraphLink{}}
	a.NewChild(root, child)
	if !root.HasChildren() {
		t.Fatal("expected root to have a child after NewChild")
	}
	path := a.PathTo(child.ID)
	if len(path) != 2 {
		t.Fatalf("PathTo returned %d nodes; want 2", len(path))
	}
	if path[0].ID != root.ID || path[1].ID != child.ID {
		t.Fatalf("PathTo order wrong: %+v", path)
	}
}

func TestArena_UnlinkCollapsesChildlessParent(t *testing.T) {
	a := search.NewArena()
	var gn stepgraph.GraphNode
	root := a.NewRoot(gn, 4, 0, 0)
	mid := &search.Node{IncomingLink: chart.GraphLink{}}
	a.NewChild(root, mid)
	leaf := &search.Node{IncomingLink: chart.GraphLink{}}
	a.NewChild(mid, leaf)

	a.Unlink(mid, leaf.IncomingLink, leaf.ID)
	if root.HasChildren() {
		t.Fatal("expected root to have lost its only descendant chain after unlinking the leaf")
	}
}
