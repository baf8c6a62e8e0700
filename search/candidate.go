package search

import (
	"math/rand"
	"sort"

	"github.com/padperform/padperform/chart"
	"github.com/padperform/padperform/pad"
	"github.com/padperform/padperform/padconfig"
	"github.com/padperform/padperform/stepgraph"
)

// buildCandidateView assembles everything the cost subroutines need to
// score one (link, successor) pair against parent.
func buildCandidateView(
	g *stepgraph.Graph,
	p *pad.Pad,
	cfg *padconfig.Config,
	parent *Node,
	link chart.GraphLink,
	index int,
	candidates []chart.GraphLink,
	isBlank bool,
	succ stepgraph.GraphNode,
	actions []chart.PerformedEvent,
	ev chart.ExpressedEvent,
	rng *rand.Rand,
) candidateView {
	cv := candidateView{
		Link:          link,
		LinkIndex:     index,
		NumSiblings:   len(candidates),
		IsBlank:       isBlank,
		Actions:       actions,
		successorNode: succ,
		TieBreak:      rng.Float64(),
	}

	if len(candidates) > 0 {
		cv.DroppedFoot, cv.DroppedArrows = driftFromPreferred(candidates[0], link)
	}

	left, right := stepgraph.FootPositions(succ, p)
	facing := stepgraph.FacingSide(succ, p, cfg.Facing.InwardPercentageCutoff, cfg.Facing.OutwardPercentageCutoff)
	facingInt := 0
	switch facing {
	case stepgraph.FacingInward:
		facingInt = -1
	case stepgraph.FacingOutward:
		facingInt = 1
	}

	sv := successorView{
		LeftPos:      left,
		RightPos:     right,
		LeftBracket:  succ.IsBracket(chart.FootLeft),
		RightBracket: succ.IsBracket(chart.FootRight),
		Facing:       facingInt,
		IsRelease:    link.IsRelease(),
		timeHook:     ev.Time,
		lateralHook:  (left.X + right.X) / 2,
	}
	for f := 0; f < chart.NumFeet; f++ {
		st, ok := link.FootStepType(chart.Foot(f))
		sv.MovedFoot[f] = ok
		sv.StepType[f] = st
		sv.SameArrow[f] = ok && st == chart.StepSameArrow
		sv.MovedLane[f] = -1
		if ok {
			sv.MovedLane[f] = succ.Arrow(chart.Foot(f), chart.PortionHeel)
		}
	}
	cv.Successor = sv

	cv.SimplerSiblingSameActions = anySimplerSiblingMatches(g, parent.GraphNode, candidates, index, actions, ev)
	cv.FlippedSiblingSameActions, cv.FollowsCoincidentJump, cv.BothFeetEquallyBracketable =
		ambiguityPreconditions(g, p, parent, link, succ, actions, ev)

	return cv
}

// driftFromPreferred compares cand against the most-preferred link,
// reporting which feet were entirely dropped (had a non-release cell in
// preferred but none in cand) and how many individual cells were
// substituted to a different step-type.
func driftFromPreferred(preferred, cand chart.GraphLink) (dropped [chart.NumFeet]bool, arrows int) {
	for f := 0; f < chart.NumFeet; f++ {
		_, pOk := preferred.FootStepType(chart.Foot(f))
		_, cOk := cand.FootStepType(chart.Foot(f))
		switch {
		case pOk && !cOk:
			dropped[f] = true
		case pOk && cOk:
			for p := 0; p < chart.NumPortions; p++ {
				pc, cc := preferred.Cells[f][p], cand.Cells[f][p]
				if pc.Valid && cc.Valid && pc.Action != chart.ActionRelease && pc.StepType != cc.StepType {
					arrows++
				}
			}
		}
	}
	return dropped, arrows
}

// simplicityRank orders step-types from most same-arrow-leaning (0) to
// least (higher), used by the misleading-step heuristic.
func simplicityRank(st chart.StepType) int {
	switch st {
	case chart.StepSameArrow:
		return 0
	case chart.StepBracketSame:
		return 1
	case chart.StepNewArrow, chart.StepBracketNew:
		return 2
	case chart.StepFootSwap, chart.StepInvert:
		return 3
	default:
		return 4
	}
}

func isSimpler(a, b chart.GraphLink) bool {
	simpler := false
	for f := 0; f < chart.NumFeet; f++ {
		aSt, aOk := a.FootStepType(chart.Foot(f))
		bSt, bOk := b.FootStepType(chart.Foot(f))
		if !aOk || !bOk {
			continue
		}
		r := simplicityRank(aSt) - simplicityRank(bSt)
		if r > 0 {
			return false
		}
		if r < 0 {
			simpler = true
		}
	}
	return simpler
}

func sameActionSet(a, b []chart.PerformedEvent) bool {
	if len(a) != len(b) {
		return false
	}
	as, bs := append([]chart.PerformedEvent(nil), a...), append([]chart.PerformedEvent(nil), b...)
	byLaneThenAction := func(s []chart.PerformedEvent) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].Lane != s[j].Lane {
				return s[i].Lane < s[j].Lane
			}
			return int(s[i].Action) < int(s[j].Action)
		}
	}
	sort.Slice(as, byLaneThenAction(as))
	sort.Slice(bs, byLaneThenAction(bs))
	for i := range as {
		if as[i].Lane != bs[i].Lane || as[i].Action != bs[i].Action {
			return false
		}
	}
	return true
}

// anySimplerSiblingMatches reports whether a more same-arrow-leaning
// sibling link, reachable from the same parent, emits the identical
// action set. Such a candidate is misleading: a simpler footing was
// available that would have looked identical to the player.
func anySimplerSiblingMatches(g *stepgraph.Graph, parent stepgraph.GraphNode, candidates []chart.GraphLink, thisIndex int, actions []chart.PerformedEvent, ev chart.ExpressedEvent) bool {
	this := candidates[thisIndex]
	for j, other := range candidates {
		if j == thisIndex || !isSimpler(other, this) {
			continue
		}
		var succs []stepgraph.GraphNode
		if other.IsBlank() {
			succs = []stepgraph.GraphNode{parent}
		} else {
			s, ok := g.Successors(parent, other)
			if !ok {
				continue
			}
			succs = s
		}
		for _, s := range succs {
			if sameActionSet(actions, deriveActions(parent, s, other, ev)) {
				return true
			}
		}
	}
	return false
}

// ambiguityPreconditions computes the three facts ambiguousCost needs:
// whether a footing-flipped variant reaches a different node
// with the same actions, whether the parent's incoming link was a jump
// whose releases coincided with this step, and whether both feet are
// equally bracketed in the successor (both in a bracket, or neither; the
// pad's bracketable tables for this step's lane are not consulted).
func ambiguityPreconditions(g *stepgraph.Graph, p *pad.Pad, parent *Node, link chart.GraphLink, succ stepgraph.GraphNode, actions []chart.PerformedEvent, ev chart.ExpressedEvent) (flippedMatches, followsJump, equallyBracketable bool) {
	flipped := link.FlipFeet()
	if !link.IsBlank() && flipped != link {
		if succs, ok := g.Successors(parent.GraphNode, flipped); ok {
			for _, s := range succs {
				if s == succ {
					continue
				}
				if sameActionSet(actions, deriveActions(parent.GraphNode, s, flipped, ev)) {
					flippedMatches = true
					break
				}
			}
		}
	}

	followsJump = parent.IncomingLink.IsJump() && !parent.IncomingLink.IsRelease() && jumpReleasedTogether(parent)
	equallyBracketable = succ.IsBracket(chart.FootLeft) == succ.IsBracket(chart.FootRight)

	return flippedMatches, followsJump, equallyBracketable
}

// jumpReleasedTogether reports whether the parent node's incoming jump
// released both feet at the same recorded position (approximated via the
// last recorded release times on the parent snapshot).
func jumpReleasedTogether(parent *Node) bool {
	return parent.LastTimeFootReleased[chart.FootLeft] == parent.LastTimeFootReleased[chart.FootRight]
}

// instantiateChild builds the not-yet-arena-registered child Node for cv,
// carrying forward parent's sliding-window snapshots and running every
// cost subroutine to produce the step/cumulative cost vectors.
func instantiateChild(
	parent *Node,
	p *pad.Pad,
	cfg *padconfig.Config,
	pcfg *padconfig.PatternConfig,
	cv candidateView,
	ev chart.ExpressedEvent,
) *Node {
	child := &Node{
		GraphNode:    successorGraphNode(cv),
		IncomingLink: cv.Link,
		Depth:        parent.Depth + 1,
		Position:     ev.Position,
		Time:         ev.Time,
		Actions:      cv.Actions,
		StepCounts:   append([]int(nil), parent.StepCounts...),
	}

	child.LastTimeFootStepped = parent.LastTimeFootStepped
	child.LastTimeFootReleased = parent.LastTimeFootReleased
	child.LastArrowsSteppedBy = parent.LastArrowsSteppedBy
	child.TotalSteps = parent.TotalSteps
	child.TotalStepsInPattern = parent.TotalStepsInPattern + 1
	child.TotalSameArrow = parent.TotalSameArrow
	child.TotalNewArrow = parent.TotalNewArrow
	child.SameArrowRun = parent.SameArrowRun
	child.LateralBodyPosition = cv.Successor.lateralHook
	child.LateralMovementDir = parent.LateralMovementDir
	child.LastLateralStartTime = parent.LastLateralStartTime
	child.LastLateralStartPosition = parent.LastLateralStartPosition
	child.LateralMovementNumSteps = parent.LateralMovementNumSteps
	child.LastTransitionStepNode = parent.LastTransitionStepNode
	child.HasLastTransitionStepNode = parent.HasLastTransitionStepNode
	child.TransitionedLeft = parent.TransitionedLeft

	if !cv.Successor.IsRelease {
		child.TotalSteps = parent.TotalSteps + 1
		for f := 0; f < chart.NumFeet; f++ {
			if !cv.Successor.MovedFoot[f] {
				child.SameArrowRun[f] = 0
				continue
			}
			child.LastTimeFootStepped[f] = ev.Time
			child.LastArrowsSteppedBy[f][chart.PortionHeel] = child.GraphNode.Arrow(chart.Foot(f), chart.PortionHeel)
			if cv.Successor.SameArrow[f] {
				child.TotalSameArrow++
				child.SameArrowRun[f]++
			} else {
				child.TotalNewArrow++
				child.SameArrowRun[f] = 0
			}
			if lane := cv.Successor.MovedLane[f]; lane >= 0 && lane < len(child.StepCounts) {
				child.StepCounts[lane]++
			}
		}
	} else {
		for f := 0; f < chart.NumFeet; f++ {
			if hasReleaseCell(cv.Link, chart.Foot(f)) {
				child.LastTimeFootReleased[f] = ev.Time
			}
		}
	}

	facing, inward, outward := facingCost(parent, cv, cfg, child.TotalStepsInPattern)
	child.TotalInwardSteps = inward
	child.TotalOutwardSteps = outward

	early, late, transitioned, side := earlyLateTransitionCost(parent, cv, p, cfg)
	if transitioned || !child.HasLastTransitionStepNode {
		s := side
		child.TransitionedLeft = &s
		child.HasLastTransitionStepNode = true
	}

	step := CostVector{
		Fallback:          fallbackCost(cv),
		Misleading:        misleadingCost(cv),
		Ambiguous:         ambiguousCost(cv),
		SameArrowOverflow: sameArrowOverflowCost(parent, cv, pcfg),
		Stretch:           stretchCost(cv, p, cfg),
		Facing:            facing,
		TravelDistance:    travelDistanceCost(parent, cv, p, cfg),
		TravelSpeed:       travelSpeedCost(parent, cv, p, cfg),
		PatternType:       patternTypeCost(parent, cv, pcfg),
		LateralBodySpeed:  lateralBodySpeedCost(parent, cv, cfg, averageNPS(parent, ev.Time)),
		EarlyTransition:   early,
		LateTransition:    late,
		Distribution:      distributionCost(parent, cv, cfg),
		TieBreak:          tieBreak(cv),
	}
	child.Step = step
	child.Cost = parent.Cost.Add(step)

	return child
}

func successorGraphNode(cv candidateView) stepgraph.GraphNode {
	return cv.successorNode
}

func hasReleaseCell(link chart.GraphLink, f chart.Foot) bool {
	for p := 0; p < chart.NumPortions; p++ {
		c := link.Cells[f][p]
		if c.Valid && c.Action == chart.ActionRelease {
			return true
		}
	}
	return false
}

func averageNPS(parent *Node, currentTime float64) float64 {
	if parent.TotalSteps == 0 || currentTime <= 0 {
		return 0
	}
	return float64(parent.TotalSteps) / currentTime
}
