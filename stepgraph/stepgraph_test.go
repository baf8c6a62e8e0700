package stepgraph_test

import (
	"testing"

	"github.com/padperform/padperform/chart"
	"github.com/padperform/padperform/pad"
	"github.com/padperform/padperform/stepgraph"
)

func mustPad(t *testing.T) *pad.Pad {
	t.Helper()
	p, err := pad.NewPad4Panel()
	if err != nil {
		t.Fatalf("NewPad4Panel: %v", err)
	}
	return p
}

func TestBuildFromPad_NilPad(t *testing.T) {
	if _, err := stepgraph.BuildFromPad(nil); err != stepgraph.ErrNilPad {
		t.Fatalf("expected ErrNilPad, got %v", err)
	}
}

func TestBuildFromPad_HasSeedFooting(t *testing.T) {
	g, err := stepgraph.BuildFromPad(mustPad(t))
	if err != nil {
		t.Fatalf("BuildFromPad: %v", err)
	}
	footing := chart.Footing{pad.Lane4Left, pad.Lane4Right}
	nodes := g.NodesByFooting(footing)
	if len(nodes) == 0 {
		t.Fatal("expected at least one node at the Left/Right seed footing")
	}
}

func TestBuildFromPad_SameArrowSelfLoop(t *testing.T) {
	g, err := stepgraph.BuildFromPad(mustPad(t))
	if err != nil {
		t.Fatalf("BuildFromPad: %v", err)
	}
	start := chart.Footing{pad.Lane4Left, pad.Lane4Right}
	nodes := g.NodesByFooting(start)
	n := nodes[0]
	found := false
	for _, link := range g.OutgoingLinks(n) {
		st, ok := link.FootStepType(chart.FootLeft)
		if ok && st == chart.StepSameArrow {
			succs, _ := g.Successors(n, link)
			for _, s := range succs {
				if s == n {
					found = true
				}
			}
		}
	}
	if !found {
		t.Error("expected a SameArrow tap to leave the node unchanged")
	}
}

func TestBuildFromPad_NewArrowReachesDistinctNode(t *testing.T) {
	g, err := stepgraph.BuildFromPad(mustPad(t))
	if err != nil {
		t.Fatalf("BuildFromPad: %v", err)
	}
	start := chart.Footing{pad.Lane4Left, pad.Lane4Right}
	nodes := g.NodesByFooting(start)
	n := nodes[0]
	foundNew := false
	for _, link := range g.OutgoingLinks(n) {
		st, ok := link.FootStepType(chart.FootLeft)
		if ok && st == chart.StepNewArrow {
			succs, _ := g.Successors(n, link)
			for _, s := range succs {
				if s != n {
					foundNew = true
				}
			}
		}
	}
	if !foundNew {
		t.Error("expected a NewArrow tap to reach a distinct node")
	}
}

func TestGraphNode_Validate_RejectsSameArrowConflict(t *testing.T) {
	var state [chart.NumFeet][chart.NumPortions]chart.ArrowState
	state[chart.FootLeft][chart.PortionHeel] = chart.ArrowState{Arrow: 0}
	state[chart.FootRight][chart.PortionHeel] = chart.ArrowState{Arrow: 0}
	if _, err := stepgraph.NewGraphNode(state); err != stepgraph.ErrSameArrowConflict {
		t.Fatalf("expected ErrSameArrowConflict, got %v", err)
	}
}

func TestFacingSide_CrossedIsInward(t *testing.T) {
	p := mustPad(t)
	var state [chart.NumFeet][chart.NumPortions]chart.ArrowState
	state[chart.FootLeft][chart.PortionHeel] = chart.ArrowState{Arrow: pad.Lane4Right}
	state[chart.FootRight][chart.PortionHeel] = chart.ArrowState{Arrow: pad.Lane4Left}
	state[chart.FootLeft][chart.PortionToe] = chart.ArrowState{Arrow: -1}
	state[chart.FootRight][chart.PortionToe] = chart.ArrowState{Arrow: -1}
	n, err := stepgraph.NewGraphNode(state)
	if err != nil {
		t.Fatalf("NewGraphNode: %v", err)
	}
	if got := stepgraph.FacingSide(n, p, 0.1, 0.9); got != stepgraph.FacingInward {
		t.Errorf("FacingSide = %v; want FacingInward", got)
	}
}
