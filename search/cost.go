package search

import (
	"math"

	"github.com/padperform/padperform/chart"
	"github.com/padperform/padperform/pad"
	"github.com/padperform/padperform/padconfig"
	"github.com/padperform/padperform/stepgraph"
)

// candidateView describes one not-yet-linked successor under consideration
// during frontier expansion: enough information for every cost subroutine
// to score it against its parent, without requiring the candidate to have
// been registered in the Arena yet.
type candidateView struct {
	Link        chart.GraphLink
	LinkIndex   int
	NumSiblings int
	IsBlank     bool

	// DroppedFoot[f] is true when every cell belonging to foot f was
	// substituted away by the fallback expansion relative to the
	// most-preferred link at this frontier step.
	DroppedFoot [chart.NumFeet]bool
	// DroppedArrows counts individually-substituted cells relative to the
	// most-preferred link.
	DroppedArrows int

	Successor     successorView
	successorNode stepgraph.GraphNode
	Actions       []chart.PerformedEvent

	// FollowsCoincidentJump is true when the parent node's incoming link
	// was a jump whose two feet released at the same position as this
	// candidate, one of the ambiguity preconditions.
	FollowsCoincidentJump bool
	// BothFeetEquallyBracketable holds the companion precondition for
	// ambiguity: in the successor, both feet are in a bracket or neither
	// is. The pad's bracketable tables for this step's lane are not
	// consulted.
	BothFeetEquallyBracketable bool

	// SimplerSiblingSameActions is true when some other candidate reachable
	// from the same parent, whose step-type is more same-arrow-leaning,
	// produces an identical action set (the misleading-step case).
	SimplerSiblingSameActions bool
	// FlippedSiblingSameActions is true when a footing-flipped variant of
	// this link reaches a different graph-node but emits the same actions.
	FlippedSiblingSameActions bool

	// TieBreak is the uniform [0,1) draw assigned to this candidate.
	TieBreak float64
}

// successorView carries the pieces of the post-step state the cost
// subroutines need without requiring a fully constructed Node.
type successorView struct {
	LeftPos, RightPos   pad.Position
	LeftBracket         bool
	RightBracket        bool
	Facing              int // -1 inward, 0 neutral, 1 outward (per stepgraph.Facing)
	IsRelease           bool
	MovedFoot           [chart.NumFeet]bool
	MovedLane           [chart.NumFeet]int
	StepType            [chart.NumFeet]chart.StepType
	SameArrow           [chart.NumFeet]bool

	timeHook    float64
	lateralHook float64
}

// fallbackCost penalizes candidates further down the fallback preference
// order, blank links, and dropped feet/arrows.
func fallbackCost(cv candidateView) float64 {
	var cost float64
	if cv.NumSiblings > 1 {
		cost += float64(cv.LinkIndex) / float64(cv.NumSiblings-1)
	}
	if cv.IsBlank {
		cost += 1000
	}
	for _, dropped := range cv.DroppedFoot {
		if dropped {
			cost += 900
		}
	}
	cost += float64(cv.DroppedArrows) * 100
	return cost
}

// misleadingCost penalizes a candidate whose action set duplicates a
// simpler sibling's.
func misleadingCost(cv candidateView) int {
	if cv.SimplerSiblingSameActions {
		return 1
	}
	return 0
}

// ambiguousCost penalizes a candidate whose footing is indistinguishable
// from a flipped sibling's given the preceding jump.
func ambiguousCost(cv candidateView) int {
	if cv.FlippedSiblingSameActions && cv.FollowsCoincidentJump && cv.BothFeetEquallyBracketable {
		return 1
	}
	return 0
}

// sameArrowOverflowCost is only nonzero in pattern-generation mode, once
// the configured per-foot run length is exceeded.
func sameArrowOverflowCost(parent *Node, cv candidateView, pcfg *padconfig.PatternConfig) int {
	if pcfg == nil || !pcfg.LimitSameArrowsInARowPerFoot {
		return 0
	}
	overflow := 0
	for f := 0; f < chart.NumFeet; f++ {
		run := parent.SameArrowRun[f]
		if cv.Successor.SameArrow[f] {
			run++
		} else {
			run = 0
		}
		if run > pcfg.MaxSameArrowsInARowPerFoot {
			overflow++
		}
	}
	return overflow
}

// stretchCost penalizes a footing that stretches beyond the configured
// comfortable distance.
func stretchCost(cv candidateView, p *pad.Pad, cfg *padconfig.Config) float64 {
	st := cfg.StepTightening
	if !st.StretchTighteningEnabled {
		return 0
	}
	d := p.CompensatedDistance(cv.Successor.LeftPos, cv.Successor.RightPos,
		cv.Successor.LeftBracket, cv.Successor.RightBracket,
		st.LateralMinPanelDistance, st.LongitudinalMinPanelDistance)
	if d < st.StretchDistanceMin {
		return 0
	}
	return clamp01((d - st.StretchDistanceMin) / (st.StretchDistanceMax - st.StretchDistanceMin))
}

// facingCost accumulates inward/outward counters on the candidate and
// converts the running percentage to an integer penalty once it exceeds
// the configured maximum.
func facingCost(parent *Node, cv candidateView, cfg *padconfig.Config, totalStepsInPattern int) (int, int, int) {
	inward, outward := parent.TotalInwardSteps, parent.TotalOutwardSteps
	if cv.Successor.IsRelease {
		return 0, inward, outward
	}
	switch cv.Successor.Facing {
	case -1:
		inward++
	case 1:
		outward++
	}
	cost := 0
	if totalStepsInPattern > 0 {
		f := cfg.Facing
		if float64(inward)/float64(totalStepsInPattern) > f.MaxInwardPercentage {
			cost++
		}
		if float64(outward)/float64(totalStepsInPattern) > f.MaxOutwardPercentage {
			cost++
		}
	}
	return cost, inward, outward
}

// travelDistanceCost penalizes a foot traveling further than the
// configured comfortable distance, regardless of how much time it had to
// cover that distance (see travelSpeedCost for the time-sensitive term).
func travelDistanceCost(parent *Node, cv candidateView, p *pad.Pad, cfg *padconfig.Config) float64 {
	st := cfg.StepTightening
	if !st.DistanceTighteningEnabled {
		return 0
	}
	var total float64
	for f := 0; f < chart.NumFeet; f++ {
		if !cv.Successor.MovedFoot[f] {
			continue
		}
		prevTime := parent.LastTimeFootStepped[f]
		if prevTime <= 0 && parent.TotalSteps == 0 {
			continue
		}
		d := distanceOneFootMoved(parent, cv, p, f)
		total += clamp01((d - st.DistanceMin) / (st.DistanceMax - st.DistanceMin))
	}
	return total
}

// travelSpeedCost penalizes a foot required to cover distance faster than
// the configured comfortable speed.
func travelSpeedCost(parent *Node, cv candidateView, p *pad.Pad, cfg *padconfig.Config) float64 {
	st := cfg.StepTightening
	if !st.SpeedTighteningEnabled {
		return 0
	}
	var total float64
	for f := 0; f < chart.NumFeet; f++ {
		if !cv.Successor.MovedFoot[f] {
			continue
		}
		dt := cv.Successor.timeAt() - parent.LastTimeFootStepped[f]
		if dt <= 0 {
			continue
		}
		d := distanceOneFootMoved(parent, cv, p, f)
		if d < st.SpeedTighteningMinDistance {
			continue
		}
		timePenalty := clamp01((st.SpeedMaxTimeSeconds - dt) / (st.SpeedMaxTimeSeconds - st.SpeedMinTimeSeconds))
		total += timePenalty * d
	}
	return total
}

// patternTypeCost penalizes deviation from the configured same-arrow vs.
// new-arrow step-type ratio.
func patternTypeCost(parent *Node, cv candidateView, pcfg *padconfig.PatternConfig) float64 {
	if pcfg == nil {
		return 0
	}
	sameArrow, newArrow := parent.TotalSameArrow, parent.TotalNewArrow
	for f := 0; f < chart.NumFeet; f++ {
		if cv.Successor.SameArrow[f] {
			sameArrow++
		} else if cv.Successor.MovedFoot[f] {
			newArrow++
		}
	}
	total := sameArrow + newArrow
	if total == 0 {
		return 0
	}
	weightTotal := pcfg.SameArrowStepWeight + pcfg.NewArrowStepWeight
	if weightTotal == 0 {
		return 0
	}
	wantSame := pcfg.SameArrowStepWeight / weightTotal
	wantNew := pcfg.NewArrowStepWeight / weightTotal
	gotSame := float64(sameArrow) / float64(total)
	gotNew := float64(newArrow) / float64(total)
	return math.Abs(gotSame-wantSame) + math.Abs(gotNew-wantNew)
}

// lateralBodySpeedCost penalizes the body's lateral travel speed once the
// step rate crosses the configured threshold.
func lateralBodySpeedCost(parent *Node, cv candidateView, cfg *padconfig.Config, chartAverageNPS float64) float64 {
	lt := cfg.LateralTightening
	if !lt.Enabled {
		return 0
	}
	dt := cv.Successor.timeAt() - parent.LastLateralStartTime
	if dt <= 0 {
		return 0
	}
	steps := parent.LateralMovementNumSteps + 1
	nps := float64(steps) / dt
	threshold := math.Max(lt.AbsoluteNPS, chartAverageNPS*lt.RelativeNPS)
	if nps <= threshold {
		return 0
	}
	bodySpeed := math.Abs(parent.LateralBodyPosition-cv.Successor.lateralPositionAfter()) / dt
	if bodySpeed <= lt.Speed {
		return 0
	}
	return bodySpeed - lt.Speed
}

// earlyLateTransitionCost penalizes a side transition that happens too
// soon after the previous one, or a run on one side that goes on too long.
func earlyLateTransitionCost(parent *Node, cv candidateView, p *pad.Pad, cfg *padconfig.Config) (early, late int, transitioned bool, side bool) {
	t := cfg.Transitions
	if !t.Enabled || p.Width() < float64(t.MinimumPadWidth) {
		return 0, 0, false, false
	}
	meanX := (cv.Successor.LeftPos.X + cv.Successor.RightPos.X) / 2
	cutoff := p.MinX() + t.TransitionCutoffPercentage*p.Width()
	curSide := meanX >= cutoff

	if parent.TransitionedLeft == nil {
		return 0, 0, false, curSide
	}
	prevSide := *parent.TransitionedLeft
	stepsSince := parent.TotalSteps
	if curSide != prevSide {
		if stepsSince < t.StepsPerTransitionMin {
			early = t.StepsPerTransitionMin - stepsSince
		}
		return early, 0, true, curSide
	}
	if stepsSince > t.StepsPerTransitionMax {
		late = stepsSince - t.StepsPerTransitionMax
	}
	return 0, late, false, curSide
}

// distributionCost penalizes deviation from the configured per-lane step
// distribution.
func distributionCost(parent *Node, cv candidateView, cfg *padconfig.Config) float64 {
	counts := append([]int(nil), parent.StepCounts...)
	for f := 0; f < chart.NumFeet; f++ {
		if lane := cv.Successor.MovedLane[f]; cv.Successor.MovedFoot[f] && lane >= 0 && lane < len(counts) {
			counts[lane]++
		}
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 || len(counts) == 0 {
		return 0
	}
	weights := weightsFor(cv, cfg, len(counts))
	var sum float64
	for lane, c := range counts {
		want := weights[lane] * float64(total)
		sum += math.Abs(float64(c) - want)
	}
	return sum / float64(len(counts))
}

func weightsFor(cv candidateView, cfg *padconfig.Config, numLanes int) []float64 {
	weights := make([]float64, numLanes)
	uniform := 1.0 / float64(numLanes)
	for i := range weights {
		weights[i] = uniform
	}
	for _, st := range cv.Successor.StepType {
		if lanes, ok := cfg.ArrowWeights[st]; ok && len(lanes) == numLanes {
			copy(weights, lanes)
		}
	}
	return weights
}

// tieBreak is the last-resort term: a uniform draw that breaks ties left
// by every other cost term.
func tieBreak(cv candidateView) float64 { return cv.TieBreak }

// distanceOneFootMoved returns the compensated travel distance for foot f
// between its previous resting position (tracked on parent) and its new
// position in cv, using the other foot's current position as the stable
// anchor for the bracket/non-bracket compensation rule.
func distanceOneFootMoved(parent *Node, cv candidateView, p *pad.Pad, f int) float64 {
	var from, to pad.Position
	var toBracket bool
	if f == int(chart.FootLeft) {
		from = leftFromParent(parent, p)
		to = cv.Successor.LeftPos
		toBracket = cv.Successor.LeftBracket
	} else {
		from = rightFromParent(parent, p)
		to = cv.Successor.RightPos
		toBracket = cv.Successor.RightBracket
	}
	return p.CompensatedDistance(from, to, false, toBracket, 0, 0)
}

func leftFromParent(parent *Node, p *pad.Pad) pad.Position {
	left, _ := stepgraph.FootPositions(parent.GraphNode, p)
	return left
}

func rightFromParent(parent *Node, p *pad.Pad) pad.Position {
	_, right := stepgraph.FootPositions(parent.GraphNode, p)
	return right
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// timeAt is filled in by the driver before scoring; it exists as a method
// so cost.go stays decoupled from the driver's own event-timing plumbing.
func (s successorView) timeAt() float64 { return s.timeHook }

func (s successorView) lateralPositionAfter() float64 { return s.lateralHook }
