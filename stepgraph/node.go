package stepgraph

import (
	"errors"

	"github.com/padperform/padperform/chart"
)

// Sentinel errors for graph-node construction and lookup.
var (
	// ErrSameArrowConflict indicates two foot-portions were assigned the
	// same arrow with incompatible actions (one resting, one releasing,
	// etc.).
	ErrSameArrowConflict = errors.New("stepgraph: two foot-portions cannot occupy the same arrow incompatibly")

	// ErrReleaseWithoutHold indicates a release was attempted on an arrow
	// the relevant foot-portion was not already holding.
	ErrReleaseWithoutHold = errors.New("stepgraph: release on an arrow that is not held")
)

// GraphNode is a foot-positioning state: for each foot and each portion,
// which arrow it rests on and whether it is holding that arrow.
//
// GraphNode is a plain comparable value (no pointers, no slices) so it can
// be used directly as a map key for dominance pruning and node interning.
type GraphNode struct {
	State [chart.NumFeet][chart.NumPortions]chart.ArrowState
}

// NewGraphNode builds a GraphNode from an explicit per-foot, per-portion
// arrow assignment and validates the same-arrow/release invariants.
func NewGraphNode(state [chart.NumFeet][chart.NumPortions]chart.ArrowState) (GraphNode, error) {
	n := GraphNode{State: state}
	if err := n.Validate(); err != nil {
		return GraphNode{}, err
	}
	return n, nil
}

// Validate checks that no two foot-portions occupy the same arrow in a way
// that would be physically impossible (e.g. one foot-portion holding an
// arrow while another rests on it without holding — two simultaneous
// footings on one arrow are only coherent if both are "holding" the same
// bracketed bar, which this model does not represent; any duplicate arrow
// assignment across distinct foot-portions is rejected).
func (n GraphNode) Validate() error {
	seen := make(map[int]bool, chart.NumFeet*chart.NumPortions)
	for f := 0; f < chart.NumFeet; f++ {
		for p := 0; p < chart.NumPortions; p++ {
			arrow := n.State[f][p].Arrow
			if arrow < 0 {
				continue // unassigned portion (e.g. a foot not yet placed)
			}
			if seen[arrow] {
				return ErrSameArrowConflict
			}
			seen[arrow] = true
		}
	}
	return nil
}

// Footing returns the arrow each foot is primarily associated with: for a
// non-bracket foot this is its single occupied arrow; for a bracket foot
// this is the heel arrow (the search core treats footing as a per-foot,
// not per-portion, summary for transition/facing purposes).
func (n GraphNode) Footing() chart.Footing {
	var f chart.Footing
	for foot := 0; foot < chart.NumFeet; foot++ {
		f[foot] = n.State[foot][chart.PortionHeel].Arrow
	}
	return f
}

// IsBracket reports whether foot has both portions on distinct, valid arrows.
func (n GraphNode) IsBracket(foot chart.Foot) bool {
	heel := n.State[foot][chart.PortionHeel].Arrow
	toe := n.State[foot][chart.PortionToe].Arrow
	return heel >= 0 && toe >= 0 && heel != toe
}

// IsHolding reports whether foot-portion (foot, portion) is currently
// holding its arrow.
func (n GraphNode) IsHolding(foot chart.Foot, portion chart.Portion) bool {
	return n.State[foot][portion].Holding
}

// Arrow returns the arrow foot-portion (foot, portion) occupies, or -1 if unassigned.
func (n GraphNode) Arrow(foot chart.Foot, portion chart.Portion) int {
	return n.State[foot][portion].Arrow
}

// Apply returns the GraphNode reached by applying link to n: each valid,
// non-release cell moves that foot-portion to the link's target arrow
// (carried separately since GraphLink itself doesn't name a destination
// arrow — callers derive the target node during graph construction and
// pass it directly; Apply exists for the simpler single-portion case used
// by tests and the mine-placement pass, which only needs stepped/released
// state transitions, not arrow selection). For each cell: Tap clears the
// holding flag after the step, Hold sets it, Release clears the portion's
// occupancy.
func (n GraphNode) Apply(link chart.GraphLink, targets [chart.NumFeet][chart.NumPortions]int) GraphNode {
	out := n
	for f := 0; f < chart.NumFeet; f++ {
		for p := 0; p < chart.NumPortions; p++ {
			c := link.Cells[f][p]
			if !c.Valid {
				continue
			}
			switch c.Action {
			case chart.ActionRelease:
				out.State[f][p] = chart.ArrowState{Arrow: -1, Holding: false}
			case chart.ActionHold:
				out.State[f][p] = chart.ArrowState{Arrow: targets[f][p], Holding: true}
			case chart.ActionTap:
				out.State[f][p] = chart.ArrowState{Arrow: targets[f][p], Holding: false}
			}
		}
	}
	return out
}
