package search_test

import (
	"testing"

	"github.com/padperform/padperform/chart"
	"github.com/padperform/padperform/fallback"
	"github.com/padperform/padperform/pad"
	"github.com/padperform/padperform/padconfig"
	"github.com/padperform/padperform/search"
	"github.com/padperform/padperform/stepgraph"
)

func mustGraph(t *testing.T) (*stepgraph.Graph, *pad.Pad) {
	t.Helper()
	p, err := pad.NewPad4Panel()
	if err != nil {
		t.Fatalf("NewPad4Panel: %v", err)
	}
	g, err := stepgraph.BuildFromPad(p)
	if err != nil {
		t.Fatalf("BuildFromPad: %v", err)
	}
	return g, p
}

func seedRoot(t *testing.T, g *stepgraph.Graph) stepgraph.GraphNode {
	t.Helper()
	roots := g.NodesByFooting(chart.Footing{pad.Lane4Left, pad.Lane4Right})
	if len(roots) == 0 {
		t.Fatal("no seed node at Left/Right footing")
	}
	return roots[0]
}

// firstSingleStepLink returns the first single-foot, non-release outgoing
// link from n, for use as a minimal expressed event in tests.
func firstSingleStepLink(t *testing.T, g *stepgraph.Graph, n stepgraph.GraphNode) chart.GraphLink {
	t.Helper()
	for _, l := range g.OutgoingLinks(n) {
		if l.IsSingleStep() {
			return l
		}
	}
	t.Fatal("no single-step outgoing link found")
	return chart.GraphLink{}
}

func primedCache() *fallback.Cache {
	c := fallback.NewCache()
	c.Prime(nil, nil)
	return c
}

func TestSatisfy_NilGraph(t *testing.T) {
	_, _, err := search.Satisfy(nil, padconfig.DefaultConfig(), nil, primedCache(), nil, 1, "t")
	if err != search.ErrNilGraph {
		t.Fatalf("expected ErrNilGraph, got %v", err)
	}
}

func TestSatisfy_NoRootTiers(t *testing.T) {
	g, _ := mustGraph(t)
	_, _, err := search.Satisfy(g, padconfig.DefaultConfig(), nil, primedCache(), nil, 1, "t")
	if err != search.ErrNoRootTiers {
		t.Fatalf("expected ErrNoRootTiers, got %v", err)
	}
}

func TestSatisfy_RequiresPrimedCache(t *testing.T) {
	g, _ := mustGraph(t)
	root := seedRoot(t, g)
	_, _, err := search.Satisfy(g, padconfig.DefaultConfig(), [][]stepgraph.GraphNode{{root}}, fallback.NewCache(), nil, 1, "t")
	if err != search.ErrCachePrimeRequired {
		t.Fatalf("expected ErrCachePrimeRequired, got %v", err)
	}
}

func TestSatisfy_SingleStepProducesActions(t *testing.T) {
	g, _ := mustGraph(t)
	root := seedRoot(t, g)
	link := firstSingleStepLink(t, g, root)

	expressed := []chart.ExpressedEvent{{Position: 1, Time: 1, Link: link}}
	events, telemetry, err := search.Satisfy(g, padconfig.DefaultConfig(), [][]stepgraph.GraphNode{{root}}, primedCache(), expressed, 7, "t")
	if err != nil {
		t.Fatalf("Satisfy: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("expected at least one performed event")
	}
	for _, e := range events {
		if e.Position != 1 {
			t.Errorf("event at unexpected position %d", e.Position)
		}
	}
	if telemetry.RootTierUsed != 0 {
		t.Errorf("RootTierUsed = %d; want 0", telemetry.RootTierUsed)
	}
}

func TestSatisfy_Deterministic(t *testing.T) {
	g, _ := mustGraph(t)
	root := seedRoot(t, g)
	link := firstSingleStepLink(t, g, root)
	expressed := []chart.ExpressedEvent{{Position: 1, Time: 1, Link: link}}

	events1, _, err := search.Satisfy(g, padconfig.DefaultConfig(), [][]stepgraph.GraphNode{{root}}, primedCache(), expressed, 99, "t")
	if err != nil {
		t.Fatalf("Satisfy (run 1): %v", err)
	}
	events2, _, err := search.Satisfy(g, padconfig.DefaultConfig(), [][]stepgraph.GraphNode{{root}}, primedCache(), expressed, 99, "t")
	if err != nil {
		t.Fatalf("Satisfy (run 2): %v", err)
	}
	if len(events1) != len(events2) {
		t.Fatalf("event count differs across runs: %d vs %d", len(events1), len(events2))
	}
	for i := range events1 {
		if events1[i] != events2[i] {
			t.Fatalf("event %d differs: %+v vs %+v", i, events1[i], events2[i])
		}
	}
}

// TestSatisfy_AlternatingSingleFootSteps reproduces the "alternating
// single-foot steps" scenario: four NewArrow taps (L,R,L,R) from a neutral
// Down/Up ready stance. DistributionCost (always active, independent of
// StepTightening) pushes each step toward a lane that hasn't hosted one yet,
// so the four steps are forced to visit all four lanes exactly once; which
// specific lane a tied pair resolves to is left to the seeded tie-break,
// matching this scenario's own "or symmetrical mirror given identical cost"
// allowance.
func TestSatisfy_AlternatingSingleFootSteps(t *testing.T) {
	g, _ := mustGraph(t)
	roots := g.NodesByFooting(chart.Footing{pad.Lane4Down, pad.Lane4Up})
	if len(roots) == 0 {
		t.Fatal("no seed node at Down/Up footing")
	}
	root := roots[0]

	leftNew := singleStepLink(chart.FootLeft, chart.StepNewArrow, chart.ActionTap)
	rightNew := singleStepLink(chart.FootRight, chart.StepNewArrow, chart.ActionTap)
	expressed := []chart.ExpressedEvent{
		{Position: 0, Time: 0, Link: leftNew},
		{Position: 48, Time: 1, Link: rightNew},
		{Position: 96, Time: 2, Link: leftNew},
		{Position: 144, Time: 3, Link: rightNew},
	}

	events, telemetry, err := search.Satisfy(g, padconfig.DefaultConfig(), [][]stepgraph.GraphNode{{root}}, primedCache(), expressed, 1, "t")
	if err != nil {
		t.Fatalf("Satisfy: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 performed events, got %d", len(events))
	}
	seen := map[int]bool{}
	for _, e := range events {
		if e.Action != chart.ActionOutTap {
			t.Errorf("Action = %v; want ActionOutTap", e.Action)
		}
		if seen[e.Lane] {
			t.Errorf("lane %d reused; expected all four lanes distinct, got %+v", e.Lane, events)
		}
		seen[e.Lane] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected all 4 lanes visited, got %v", seen)
	}
	if telemetry.FinalCost.Ambiguous != 0 {
		t.Errorf("Ambiguous = %d; want 0 (no jump precedes these steps)", telemetry.FinalCost.Ambiguous)
	}
}

// TestSatisfy_SameArrowRepeats reproduces the "same-arrow repeats" scenario:
// four consecutive left-foot SameArrow taps from rest L=0,R=3 must all land
// on lane 0.
func TestSatisfy_SameArrowRepeats(t *testing.T) {
	g, _ := mustGraph(t)
	root := seedRoot(t, g) // L=Left(0), R=Right(3)

	link := singleStepLink(chart.FootLeft, chart.StepSameArrow, chart.ActionTap)
	expressed := []chart.ExpressedEvent{
		{Position: 0, Time: 0, Link: link},
		{Position: 1, Time: 1, Link: link},
		{Position: 2, Time: 2, Link: link},
		{Position: 3, Time: 3, Link: link},
	}

	events, _, err := search.Satisfy(g, padconfig.DefaultConfig(), [][]stepgraph.GraphNode{{root}}, primedCache(), expressed, 1, "t")
	if err != nil {
		t.Fatalf("Satisfy: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 performed events, got %d", len(events))
	}
	for i, e := range events {
		if e.Lane != pad.Lane4Left {
			t.Errorf("event %d Lane = %d; want %d (Left)", i, e.Lane, pad.Lane4Left)
		}
		if e.Action != chart.ActionOutTap {
			t.Errorf("event %d Action = %v; want ActionOutTap", i, e.Action)
		}
	}
}

// TestSatisfy_JumpThenRelease reproduces the "jump then release" scenario:
// a simultaneous two-foot NewArrow jump, followed by a single left-foot
// NewArrow tap. A jump's taps don't hold, so the following step needs no
// explicit release link. Per this scenario's own acceptance criteria, either
// the ambiguous-step count is 1 (both feet were equally bracketable to the
// follow-up lane) or the misleading-step count is 0.
func TestSatisfy_JumpThenRelease(t *testing.T) {
	g, _ := mustGraph(t)
	root := seedRoot(t, g) // L=Left(0), R=Right(3)

	var jump chart.GraphLink
	jump.Cells[chart.FootLeft][chart.PortionHeel] = chart.Cell{StepType: chart.StepNewArrow, Action: chart.ActionTap, Valid: true}
	jump.Cells[chart.FootRight][chart.PortionHeel] = chart.Cell{StepType: chart.StepNewArrow, Action: chart.ActionTap, Valid: true}

	expressed := []chart.ExpressedEvent{
		{Position: 0, Time: 0, Link: jump},
		{Position: 24, Time: 1, Link: singleStepLink(chart.FootLeft, chart.StepNewArrow, chart.ActionTap)},
	}

	_, telemetry, err := search.Satisfy(g, padconfig.DefaultConfig(), [][]stepgraph.GraphNode{{root}}, primedCache(), expressed, 1, "t")
	if err != nil {
		t.Fatalf("Satisfy: %v", err)
	}
	if telemetry.FinalCost.Ambiguous != 1 && telemetry.FinalCost.Misleading != 0 {
		t.Errorf("expected Ambiguous == 1 or Misleading == 0, got Ambiguous=%d Misleading=%d",
			telemetry.FinalCost.Ambiguous, telemetry.FinalCost.Misleading)
	}
}

// TestSatisfy_CrossoverSequenceMatchesPadTable reproduces the "crossover
// sequence" scenario: a step forced to classify as CrossoverFront reaches a
// graph-node whose foot arrangement is exactly what the pad's
// crossover-front pairing table predicts. It also exercises the fix making
// CrossoverFront and CrossoverBehind independently reachable when a pad
// marks the same (foot, otherArrow, destination) triple true in both
// tables: both step-types must appear as distinct outgoing links to the
// same destination footing.
func TestSatisfy_CrossoverSequenceMatchesPadTable(t *testing.T) {
	g, p := mustGraph(t)

	// Left foot currently on Down(1), right foot holding Right(3); stepping
	// Left onto Left(0) is exactly the triple the pad marks true in both
	// CrossoverFront and CrossoverBehind.
	roots := g.NodesByFooting(chart.Footing{pad.Lane4Down, pad.Lane4Right})
	if len(roots) == 0 {
		t.Fatal("no seed node at Down/Right footing")
	}
	root := roots[0]

	if !p.CrossoverFront[chart.FootLeft][pad.Lane4Right][pad.Lane4Left] {
		t.Fatal("test assumption violated: Left-onto-Left over Right should be a front crossover")
	}

	var sawFront, sawBehind bool
	destFooting := chart.Footing{pad.Lane4Left, pad.Lane4Right}
	for _, link := range g.OutgoingLinks(root) {
		st, ok := link.FootStepType(chart.FootLeft)
		if !ok || !link.IsSingleStep() {
			continue
		}
		succs, ok := g.Successors(root, link)
		if !ok {
			continue
		}
		for _, succ := range succs {
			if succ.Arrow(chart.FootLeft, chart.PortionHeel) != pad.Lane4Left {
				continue
			}
			if succ.Arrow(chart.FootRight, chart.PortionHeel) != destFooting[chart.FootRight] {
				continue
			}
			switch st {
			case chart.StepCrossoverFront:
				sawFront = true
			case chart.StepCrossoverBehind:
				sawBehind = true
			}
		}
	}
	if !sawFront {
		t.Error("expected a reachable StepCrossoverFront link onto Left while Right holds Right")
	}
	if !sawBehind {
		t.Error("expected a reachable StepCrossoverBehind link onto Left while Right holds Right")
	}
}

func TestSatisfy_NoFeasiblePathOnBlankExpressedLink(t *testing.T) {
	g, _ := mustGraph(t)
	root := seedRoot(t, g)

	// A blank expressed link has nothing to fall back from (expand(blank)
	// is defined as nil, not "just the blank candidate"), so the frontier
	// at this depth has zero candidates and the search cannot proceed.
	expressed := []chart.ExpressedEvent{{Position: 1, Time: 1, Link: chart.GraphLink{}}}
	_, _, err := search.Satisfy(g, padconfig.DefaultConfig(), [][]stepgraph.GraphNode{{root}}, primedCache(), expressed, 1, "t")
	if err == nil {
		t.Fatal("expected an error for a blank expressed link")
	}
	nf, ok := err.(*search.NoFeasiblePathError)
	if !ok {
		t.Fatalf("expected *NoFeasiblePathError, got %v (%T)", err, err)
	}
	if nf.Position != 0 {
		t.Errorf("Position = %d; want 0", nf.Position)
	}
}
