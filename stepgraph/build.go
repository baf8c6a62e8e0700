package stepgraph

import (
	"github.com/padperform/padperform/chart"
	"github.com/padperform/padperform/pad"
)

// BuildFromPad enumerates every foot-positioning state reachable from a set
// of seed stances (every pair of distinct arrows the two feet could stand
// on at rest) and every legal step-link between them, via a breadth-first
// frontier expansion over structural GraphNode values.
//
// The resulting Graph is what the search core walks: nothing downstream
// constructs new graph-nodes mid-search, it only looks up successors the
// Graph already computed here.
func BuildFromPad(p *pad.Pad) (*Graph, error) {
	if p == nil {
		return nil, ErrNilPad
	}
	g := newGraph(p)

	var queue []GraphNode
	seen := make(map[GraphNode]bool)

	for l := 0; l < p.NumArrows; l++ {
		for r := 0; r < p.NumArrows; r++ {
			if l == r {
				continue
			}
			if !p.ValidPairing[chart.FootLeft][r][l] || !p.ValidPairing[chart.FootRight][l][r] {
				continue
			}
			seed := GraphNode{}
			seed.State[chart.FootLeft][chart.PortionHeel] = chart.ArrowState{Arrow: l}
			seed.State[chart.FootLeft][chart.PortionToe] = chart.ArrowState{Arrow: -1}
			seed.State[chart.FootRight][chart.PortionHeel] = chart.ArrowState{Arrow: r}
			seed.State[chart.FootRight][chart.PortionToe] = chart.ArrowState{Arrow: -1}
			if seen[seed] {
				continue
			}
			seen[seed] = true
			queue = append(queue, seed)
			g.nodes[seed] = struct{}{}
		}
	}

	for i := 0; i < len(queue); i++ {
		n := queue[i]
		for _, tr := range transitionsFrom(n, p) {
			g.addEdge(n, tr.link, tr.to)
			if !seen[tr.to] {
				seen[tr.to] = true
				queue = append(queue, tr.to)
			}
		}
	}

	return g, nil
}

// transition is one candidate (link, destination) pair out of a node.
type transition struct {
	link chart.GraphLink
	to   GraphNode
}

// transitionsFrom enumerates every legal transition out of n: single-foot
// steps (same-arrow, new-arrow, crossover, invert), releases, brackets,
// jumps, and foot-swaps.
//
// A bracketed foot's two portions always step together as a unit
// (bracketMoves); releases are per portion (releaseMoves), so one side of a
// held bracket can be released while the other stays held.
func transitionsFrom(n GraphNode, p *pad.Pad) []transition {
	var out []transition

	single := singleFootMoves(n, p)
	for _, m := range single {
		out = append(out, m.asTransition(n))
	}

	out = append(out, releaseMoves(n)...)
	out = append(out, bracketMoves(n, p)...)
	out = append(out, jumpMoves(single, n)...)
	out = append(out, footSwapMoves(n, p)...)

	return out
}

// footMove is a candidate single-foot (non-bracket) move: foot f's heel
// portion steps to arrow `to` with the given step-type and action.
type footMove struct {
	foot     chart.Foot
	to       int
	stepType chart.StepType
	action   chart.FootAction
}

func (m footMove) asTransition(n GraphNode) transition {
	var link chart.GraphLink
	link.Cells[m.foot][chart.PortionHeel] = chart.Cell{StepType: m.stepType, Action: m.action, Valid: true}
	to := n
	if m.action == chart.ActionRelease {
		to.State[m.foot][chart.PortionHeel] = chart.ArrowState{Arrow: -1, Holding: false}
	} else {
		to.State[m.foot][chart.PortionHeel] = chart.ArrowState{Arrow: m.to, Holding: m.action == chart.ActionHold}
	}
	return transition{link: link, to: to}
}

// singleFootMoves returns every legal non-bracket Tap/Hold move for each
// foot whose heel portion is not currently holding (a holding foot must
// release before stepping again).
func singleFootMoves(n GraphNode, p *pad.Pad) []footMove {
	var out []footMove
	for f := 0; f < chart.NumFeet; f++ {
		foot := chart.Foot(f)
		if n.State[foot][chart.PortionHeel].Holding {
			continue
		}
		other := foot.Other()
		otherArrow := n.State[other][chart.PortionHeel].Arrow
		curArrow := n.State[foot][chart.PortionHeel].Arrow
		for y := 0; y < p.NumArrows; y++ {
			if occupiedByOtherFoot(n, foot, y) {
				continue
			}
			for _, st := range classifyStepTypes(p, foot, otherArrow, curArrow, y) {
				out = append(out, footMove{foot: foot, to: y, stepType: st, action: chart.ActionTap})
				out = append(out, footMove{foot: foot, to: y, stepType: st, action: chart.ActionHold})
			}
		}
	}
	return out
}

// classifyStepTypes determines every step-type a candidate single-foot move
// could be classified as. A pad can legally mark the same (foot,
// otherArrow, y) triple as both a front and a behind crossover — the two
// body-twist executions of the same geometric transition — in which case
// both are returned as distinct candidates rather than one masking the
// other. Returns nil if the move is not legal at all. Ambiguity detection
// downstream relies on this classification being deterministic and total
// over legal moves.
func classifyStepTypes(p *pad.Pad, foot chart.Foot, otherArrow, curArrow, y int) []chart.StepType {
	if y == curArrow {
		return []chart.StepType{chart.StepSameArrow}
	}
	if otherArrow < 0 {
		// No other foot placed yet (shouldn't happen once seeded, but
		// guards against degenerate states): any arrow is a plain new step.
		return []chart.StepType{chart.StepNewArrow}
	}
	var out []chart.StepType
	if p.CrossoverFront[foot][otherArrow][y] {
		out = append(out, chart.StepCrossoverFront)
	}
	if p.CrossoverBehind[foot][otherArrow][y] {
		out = append(out, chart.StepCrossoverBehind)
	}
	if len(out) > 0 {
		return out
	}
	if p.Inverted[foot][otherArrow][y] {
		return []chart.StepType{chart.StepInvert}
	}
	if p.ValidPairing[foot][otherArrow][y] {
		return []chart.StepType{chart.StepNewArrow}
	}
	return nil
}

// occupiedByOtherFoot reports whether arrow y is currently occupied by any
// portion of the foot other than `foot`.
func occupiedByOtherFoot(n GraphNode, foot chart.Foot, y int) bool {
	other := foot.Other()
	return n.State[other][chart.PortionHeel].Arrow == y || n.State[other][chart.PortionToe].Arrow == y
}

// releaseMoves returns a release transition for every foot-portion
// currently holding.
func releaseMoves(n GraphNode) []transition {
	var out []transition
	for f := 0; f < chart.NumFeet; f++ {
		for pIdx := 0; pIdx < chart.NumPortions; pIdx++ {
			foot, portion := chart.Foot(f), chart.Portion(pIdx)
			if !n.State[foot][portion].Holding {
				continue
			}
			var link chart.GraphLink
			link.Cells[foot][portion] = chart.Cell{Action: chart.ActionRelease, Valid: true}
			to := n
			to.State[foot][portion] = chart.ArrowState{Arrow: -1, Holding: false}
			out = append(out, transition{link: link, to: to})
		}
	}
	return out
}

// bracketMoves returns every legal bracket step: a single foot's heel and
// toe move together onto two distinct, unoccupied arrows.
func bracketMoves(n GraphNode, p *pad.Pad) []transition {
	var out []transition
	for f := 0; f < chart.NumFeet; f++ {
		foot := chart.Foot(f)
		if n.State[foot][chart.PortionHeel].Holding || n.State[foot][chart.PortionToe].Holding {
			continue
		}
		other := foot.Other()
		otherArrow := n.State[other][chart.PortionHeel].Arrow
		if otherArrow < 0 {
			continue
		}
		for heel := 0; heel < p.NumArrows; heel++ {
			if !p.BracketableHeel[foot][otherArrow][heel] || occupiedByOtherFoot(n, foot, heel) {
				continue
			}
			for toe := 0; toe < p.NumArrows; toe++ {
				if toe == heel || !p.BracketableToe[foot][otherArrow][toe] || occupiedByOtherFoot(n, foot, toe) {
					continue
				}
				curHeel := n.State[foot][chart.PortionHeel].Arrow
				curToe := n.State[foot][chart.PortionToe].Arrow
				st := chart.StepBracketNew
				if heel == curHeel && toe == curToe {
					st = chart.StepBracketSame
				}
				for _, action := range []chart.FootAction{chart.ActionTap, chart.ActionHold} {
					var link chart.GraphLink
					link.Cells[foot][chart.PortionHeel] = chart.Cell{StepType: st, Action: action, Valid: true}
					link.Cells[foot][chart.PortionToe] = chart.Cell{StepType: st, Action: action, Valid: true}
					to := n
					to.State[foot][chart.PortionHeel] = chart.ArrowState{Arrow: heel, Holding: action == chart.ActionHold}
					to.State[foot][chart.PortionToe] = chart.ArrowState{Arrow: toe, Holding: action == chart.ActionHold}
					out = append(out, transition{link: link, to: to})
				}
			}
		}
	}
	return out
}

// jumpMoves combines pairs of independently-legal single-foot moves (one
// per foot) targeting distinct arrows into a single simultaneous link.
func jumpMoves(moves []footMove, n GraphNode) []transition {
	var left, right []footMove
	for _, m := range moves {
		if m.foot == chart.FootLeft {
			left = append(left, m)
		} else {
			right = append(right, m)
		}
	}
	var out []transition
	for _, lm := range left {
		for _, rm := range right {
			if lm.to == rm.to {
				continue
			}
			var link chart.GraphLink
			link.Cells[chart.FootLeft][chart.PortionHeel] = chart.Cell{StepType: lm.stepType, Action: lm.action, Valid: true}
			link.Cells[chart.FootRight][chart.PortionHeel] = chart.Cell{StepType: rm.stepType, Action: rm.action, Valid: true}
			to := n
			to.State[chart.FootLeft][chart.PortionHeel] = chart.ArrowState{Arrow: lm.to, Holding: lm.action == chart.ActionHold}
			to.State[chart.FootRight][chart.PortionHeel] = chart.ArrowState{Arrow: rm.to, Holding: rm.action == chart.ActionHold}
			out = append(out, transition{link: link, to: to})
		}
	}
	return out
}

// footSwapMoves returns the foot-swap transition when both feet are free to
// step (not holding) and each foot's current arrow is a legal destination
// for the other.
func footSwapMoves(n GraphNode, p *pad.Pad) []transition {
	if n.State[chart.FootLeft][chart.PortionHeel].Holding || n.State[chart.FootRight][chart.PortionHeel].Holding {
		return nil
	}
	leftArrow := n.State[chart.FootLeft][chart.PortionHeel].Arrow
	rightArrow := n.State[chart.FootRight][chart.PortionHeel].Arrow
	if leftArrow < 0 || rightArrow < 0 {
		return nil
	}
	if !p.ValidPairing[chart.FootLeft][leftArrow][rightArrow] || !p.ValidPairing[chart.FootRight][rightArrow][leftArrow] {
		return nil
	}
	var link chart.GraphLink
	link.Cells[chart.FootLeft][chart.PortionHeel] = chart.Cell{StepType: chart.StepFootSwap, Action: chart.ActionTap, Valid: true}
	link.Cells[chart.FootRight][chart.PortionHeel] = chart.Cell{StepType: chart.StepFootSwap, Action: chart.ActionTap, Valid: true}
	to := n
	to.State[chart.FootLeft][chart.PortionHeel] = chart.ArrowState{Arrow: rightArrow}
	to.State[chart.FootRight][chart.PortionHeel] = chart.ArrowState{Arrow: leftArrow}
	return []transition{{link: link, to: to}}
}
