package search_test

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/padperform/padperform/chart"
	"github.com/padperform/padperform/pad"
	"github.com/padperform/padperform/padlog"
	"github.com/padperform/padperform/search"
	"github.com/padperform/padperform/stepgraph"
)

// fixturePath builds a small, hand-assembled three-step path: left foot
// steps Left (lane 0) at position 1, right foot steps Right (lane 3) at
// position 2, left foot steps Left again at position 3. Down (1) and Up (2)
// never host a step, which makes this fixture usable for MineNoArrow
// assertions without depending on stepgraph.BuildFromPad's full enumeration.
func fixturePath(t *testing.T) []*search.Node {
	t.Helper()

	root := &search.Node{
		ID:       0,
		Parent:   -1,
		Position: 0,
	}

	step1Node := mustGraphNode(t, pad.Lane4Left, pad.Lane4Right)
	n1 := &search.Node{
		ID:       1,
		Parent:   0,
		Position: 1,
		GraphNode: step1Node,
		IncomingLink: singleStepLink(chart.FootLeft, chart.StepNewArrow, chart.ActionTap),
	}

	step2Node := mustGraphNode(t, pad.Lane4Left, pad.Lane4Right)
	n2 := &search.Node{
		ID:       2,
		Parent:   1,
		Position: 2,
		GraphNode: step2Node,
		IncomingLink: singleStepLink(chart.FootRight, chart.StepNewArrow, chart.ActionTap),
	}

	step3Node := mustGraphNode(t, pad.Lane4Left, pad.Lane4Right)
	n3 := &search.Node{
		ID:       3,
		Parent:   2,
		Position: 3,
		GraphNode: step3Node,
		IncomingLink: singleStepLink(chart.FootLeft, chart.StepSameArrow, chart.ActionTap),
	}

	return []*search.Node{root, n1, n2, n3}
}

func mustGraphNode(t *testing.T, left, right int) stepgraph.GraphNode {
	t.Helper()
	var state [chart.NumFeet][chart.NumPortions]chart.ArrowState
	state[chart.FootLeft][chart.PortionHeel] = chart.ArrowState{Arrow: left}
	state[chart.FootLeft][chart.PortionToe] = chart.ArrowState{Arrow: -1}
	state[chart.FootRight][chart.PortionHeel] = chart.ArrowState{Arrow: right}
	state[chart.FootRight][chart.PortionToe] = chart.ArrowState{Arrow: -1}
	gn, err := stepgraph.NewGraphNode(state)
	if err != nil {
		t.Fatalf("NewGraphNode: %v", err)
	}
	return gn
}

func singleStepLink(foot chart.Foot, st chart.StepType, action chart.FootAction) chart.GraphLink {
	var link chart.GraphLink
	link.Cells[foot][chart.PortionHeel] = chart.Cell{StepType: st, Action: action, Valid: true}
	return link
}

func TestPlaceMines_BeforeArrow(t *testing.T) {
	path := fixturePath(t)
	mines := []chart.MineEvent{
		{Position: 3, Kind: chart.MineBeforeArrow, PairedFoot: chart.FootRight, NthClosest: 1},
	}
	events, errs := search.PlaceMines(path, mines, mustPad(t), 1)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 mine event, got %d", len(events))
	}
	if events[0].Lane != pad.Lane4Right {
		t.Errorf("Lane = %d; want %d (right foot's most recent step before position 3)", events[0].Lane, pad.Lane4Right)
	}
	if events[0].Action != chart.ActionOutMine {
		t.Errorf("Action = %v; want ActionOutMine", events[0].Action)
	}
}

func TestPlaceMines_AfterArrow(t *testing.T) {
	path := fixturePath(t)
	mines := []chart.MineEvent{
		{Position: 1, Kind: chart.MineAfterArrow, PairedFoot: chart.FootRight, NthClosest: 1},
	}
	events, errs := search.PlaceMines(path, mines, mustPad(t), 1)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 mine event, got %d", len(events))
	}
	if events[0].Lane != pad.Lane4Right {
		t.Errorf("Lane = %d; want %d (right foot's next step after position 1)", events[0].Lane, pad.Lane4Right)
	}
}

func TestPlaceMines_NoArrow(t *testing.T) {
	path := fixturePath(t)
	mines := []chart.MineEvent{
		{Position: 2, Kind: chart.MineNoArrow},
	}
	events, errs := search.PlaceMines(path, mines, mustPad(t), 1)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 mine event, got %d", len(events))
	}
	if events[0].Lane != pad.Lane4Down && events[0].Lane != pad.Lane4Up {
		t.Errorf("Lane = %d; want an unhosted lane (Down=%d or Up=%d)", events[0].Lane, pad.Lane4Down, pad.Lane4Up)
	}
}

func TestPlaceMines_NoArrowExhausted(t *testing.T) {
	path := fixturePath(t)
	mines := []chart.MineEvent{
		{Position: 5, Kind: chart.MineNoArrow},
		{Position: 5, Kind: chart.MineNoArrow},
		{Position: 5, Kind: chart.MineNoArrow},
	}
	_, errs := search.PlaceMines(path, mines, mustPad(t), 1)
	if len(errs) == 0 {
		t.Fatal("expected at least one error once unhosted lanes run out within the same position group")
	}
}

func TestPlaceMines_NthClosestOutOfRange(t *testing.T) {
	path := fixturePath(t)
	mines := []chart.MineEvent{
		{Position: 3, Kind: chart.MineBeforeArrow, PairedFoot: chart.FootLeft, NthClosest: 5},
	}
	_, errs := search.PlaceMines(path, mines, mustPad(t), 1)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error for an out-of-range NthClosest, got %d", len(errs))
	}
}

// specPath builds the path [0, 3, 1, 2] at positions [0, 48, 96, 144],
// alternating feet L,R,L,R.
func specPath(t *testing.T) []*search.Node {
	t.Helper()
	return []*search.Node{
		{
			ID: 0, Parent: -1, Position: 0,
			GraphNode:    mustGraphNode(t, pad.Lane4Left, pad.Lane4Right),
			IncomingLink: singleStepLink(chart.FootLeft, chart.StepNewArrow, chart.ActionTap),
		},
		{
			ID: 1, Parent: 0, Position: 48,
			GraphNode:    mustGraphNode(t, pad.Lane4Left, pad.Lane4Right),
			IncomingLink: singleStepLink(chart.FootRight, chart.StepNewArrow, chart.ActionTap),
		},
		{
			ID: 2, Parent: 1, Position: 96,
			GraphNode:    mustGraphNode(t, pad.Lane4Down, pad.Lane4Right),
			IncomingLink: singleStepLink(chart.FootLeft, chart.StepNewArrow, chart.ActionTap),
		},
		{
			ID: 3, Parent: 2, Position: 144,
			GraphNode:    mustGraphNode(t, pad.Lane4Down, pad.Lane4Up),
			IncomingLink: singleStepLink(chart.FootRight, chart.StepNewArrow, chart.ActionTap),
		},
	}
}

// TestPlaceMines_SpecBeforeArrowScenario reproduces the "Mine BeforeArrow"
// scenario: on the step path [0, 3, 1, 2] at positions [0, 48, 96, 144], a
// BeforeArrow mine paired to the right foot at position 72 places on lane 3
// (the right foot's most recent step before that position).
func TestPlaceMines_SpecBeforeArrowScenario(t *testing.T) {
	path := specPath(t)
	mines := []chart.MineEvent{
		{Position: 72, Kind: chart.MineBeforeArrow, PairedFoot: chart.FootRight, NthClosest: 1},
	}
	events, errs := search.PlaceMines(path, mines, mustPad(t), 1)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 mine event, got %d", len(events))
	}
	if events[0].Lane != pad.Lane4Right {
		t.Errorf("Lane = %d; want %d (lane 3)", events[0].Lane, pad.Lane4Right)
	}
}

// TestPlaceMines_SpecNoArrowOnFullyUsedPath reproduces this scenario's
// companion claim: a NoArrow mine on a path that has already used all four
// lanes has no unhosted lane to place on, is skipped, and logs a warning.
func TestPlaceMines_SpecNoArrowOnFullyUsedPath(t *testing.T) {
	path := specPath(t)
	var buf bytes.Buffer
	logger := padlog.NewStdWithLogger(log.New(&buf, "", 0))

	mines := []chart.MineEvent{
		{Position: 200, Kind: chart.MineNoArrow},
	}
	events, errs := search.PlaceMines(path, mines, mustPad(t), 1, search.WithLogger(logger))
	if len(events) != 0 {
		t.Fatalf("expected no placed mine, got %+v", events)
	}
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(errs), errs)
	}
	out := buf.String()
	if !strings.Contains(out, "WARN") {
		t.Errorf("expected a WARN-level log line, got %q", out)
	}
	if !strings.Contains(out, "skipping mine") {
		t.Errorf("expected the skipped-mine warning text, got %q", out)
	}
}

func mustPad(t *testing.T) *pad.Pad {
	t.Helper()
	p, err := pad.NewPad4Panel()
	if err != nil {
		t.Fatalf("NewPad4Panel: %v", err)
	}
	return p
}
