package search

import (
	"math/rand"
	"sort"

	"github.com/padperform/padperform/chart"
	"github.com/padperform/padperform/padconfig"
	"github.com/padperform/padperform/stepgraph"
)

// maxValidDenominator is the finest beat subdivision padconfig recognizes;
// Δ (the spacing between generated placeholder positions) is this divided
// by the configured BeatSubDivision.
const maxValidDenominator = 192

// trailingPlaceholders is the number of extra placeholder steps appended
// beyond endPos so the search can land on a lane compatible with the
// following footing under normal tightening rules.
const trailingPlaceholders = 2

// Generate produces a pattern between startPos and endPos. Timing for
// placeholders is interpolated linearly between the supplied events'
// (Position, Time) pairs — the tempo/stop timeline itself is an
// out-of-scope external collaborator, so this is deliberately a
// simplified stand-in for "compute times from the combined tempo/stop
// timeline": with zero or one event supplied, a unit time-per-position is
// assumed.
func Generate(
	g *stepgraph.Graph,
	pcfg *padconfig.PatternConfig,
	cfg *padconfig.Config,
	startPos, endPos int,
	inclusive bool,
	seed int64,
	prevFoot chart.Foot,
	prevTime float64,
	prevFooting, nextFooting chart.Footing,
	laneCounts []int,
	events []chart.TimedEvent,
	logID string,
	opts ...Option,
) ([]chart.PerformedEvent, *Telemetry, error) {
	o := buildOptions(opts...)
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if pcfg == nil || cfg == nil {
		return nil, nil, ErrNilConfig
	}

	positions := placeholderPositions(startPos, endPos, inclusive, pcfg.BeatSubDivision)
	if len(positions) < 2 {
		o.logger.Errorf("[%s] range too small: %d placeholders", logID, len(positions))
		return nil, nil, ErrRangeTooSmall
	}
	times := interpolateTimes(positions, events, prevTime)

	startFoot := resolveStartingFoot(pcfg, prevFoot, seed)
	startFooting := resolveStartingFooting(pcfg, prevFooting, len(g.Pad.Positions))

	roots := g.NodesByFooting(startFooting)
	if len(roots) == 0 {
		return nil, nil, newNoFeasiblePath(positions[0])
	}
	rootGraphNode := roots[0]

	numLanes := len(g.Pad.Positions)
	arena := NewArena()
	root := arena.NewRoot(rootGraphNode, numLanes, positions[0], times[0])
	if len(laneCounts) == numLanes {
		copy(root.StepCounts, laneCounts)
	}

	frontier := []*Node{root}
	curFoot := startFoot

	for d := 1; d < len(positions); d++ {
		if err := checkCancelled(o); err != nil {
			return nil, nil, err
		}
		isTrailing := d >= len(positions)-trailingPlaceholders

		var next []*Node
		for _, parent := range frontier {
			links := candidateLinksFor(g, parent.GraphNode, curFoot, pcfg, parent.SameArrowRun[curFoot])
			if isTrailing {
				links = filterTrailingLinks(links, pcfg, curFoot, nextFooting)
			}
			if len(links) == 0 {
				continue
			}
			ev := chart.ExpressedEvent{Position: positions[d], Time: times[d]}
			next = append(next, expandFrontierNode(arena, parent, links, g, cfg, pcfg, ev, deriveStepSeed(seed, d))...)
		}
		next = dominancePrune(arena, next)
		if len(next) == 0 {
			return nil, nil, newNoFeasiblePath(positions[d])
		}
		frontier = next
		curFoot = curFoot.Other()
	}

	survivors := filterEndLane(frontier, pcfg, nextFooting)
	if len(survivors) == 0 {
		o.logger.Errorf("[%s] cannot end at desired location", logID)
		return nil, nil, ErrCannotEndAtDesiredLocation
	}

	best := survivors[0]
	for _, n := range survivors[1:] {
		if n.Cost.Less(best.Cost) {
			best = n
		}
	}

	path := arena.PathTo(best.ID)
	if len(path) > trailingPlaceholders {
		path = path[:len(path)-trailingPlaceholders]
	}
	performed := walkToPerformedEvents(path)
	return performed, &Telemetry{NodesExpanded: len(arena.nodes), FinalCost: best.Cost}, nil
}

// placeholderPositions computes start, start+Δ, ... through endPos (plus
// trailing extension), honoring the inclusive flag.
func placeholderPositions(start, end int, inclusive bool, beatSubDivision int) []int {
	if beatSubDivision <= 0 {
		return nil
	}
	delta := maxValidDenominator / beatSubDivision
	if delta <= 0 {
		delta = 1
	}
	var out []int
	for p := start; p < end || (inclusive && p == end); p += delta {
		out = append(out, p)
		if p == end {
			break
		}
	}
	last := start
	if len(out) > 0 {
		last = out[len(out)-1]
	}
	for i := 0; i < trailingPlaceholders; i++ {
		last += delta
		out = append(out, last)
	}
	return out
}

// interpolateTimes assigns a wall-clock time to each position by linear
// interpolation between the nearest bracketing events; with fewer than two
// events it assumes unit time-per-position starting from prevTime.
func interpolateTimes(positions []int, events []chart.TimedEvent, prevTime float64) []float64 {
	times := make([]float64, len(positions))
	if len(events) < 2 {
		for i, p := range positions {
			times[i] = prevTime + float64(p-positions[0])
		}
		return times
	}
	sorted := append([]chart.TimedEvent(nil), events...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	for i, p := range positions {
		times[i] = interpolateOne(sorted, p)
	}
	return times
}

func interpolateOne(sorted []chart.TimedEvent, pos int) float64 {
	if pos <= sorted[0].Position {
		return sorted[0].Time
	}
	last := sorted[len(sorted)-1]
	if pos >= last.Position {
		return last.Time
	}
	for i := 1; i < len(sorted); i++ {
		if pos <= sorted[i].Position {
			a, b := sorted[i-1], sorted[i]
			if b.Position == a.Position {
				return a.Time
			}
			frac := float64(pos-a.Position) / float64(b.Position-a.Position)
			return a.Time + frac*(b.Time-a.Time)
		}
	}
	return last.Time
}

func resolveStartingFoot(pcfg *padconfig.PatternConfig, prevFoot chart.Foot, seed int64) chart.Foot {
	switch pcfg.StartingFootChoice {
	case padconfig.StartingFootSpecified:
		if pcfg.StartingFootSpecified == int(chart.FootRight) {
			return chart.FootRight
		}
		return chart.FootLeft
	case padconfig.StartingFootAutomatic:
		return prevFoot.Other()
	default: // StartingFootRandom
		if rand.New(rand.NewSource(seed)).Intn(2) == 0 {
			return chart.FootLeft
		}
		return chart.FootRight
	}
}

func resolveStartingFooting(pcfg *padconfig.PatternConfig, prevFooting chart.Footing, numLanes int) chart.Footing {
	// A foot set to StartingLaneSpecified starts on its configured lane when
	// that lane exists on the pad, and on its previous lane otherwise.
	// AutomaticSame/New/SameOrNew all resolve to the previous footing here:
	// the search itself will walk to a new lane on its first step when the
	// chosen step-type calls for one, which is the observable difference
	// AutomaticNewLane would otherwise force up front.
	footing := prevFooting
	for f := 0; f < chart.NumFeet; f++ {
		fc := pcfg.FootChoices[f]
		if fc.StartChoice == padconfig.StartingLaneSpecified && fc.StartLane >= 0 && fc.StartLane < numLanes {
			footing[f] = fc.StartLane
		}
	}
	return footing
}

// candidateLinksFor returns the outgoing single-foot links for foot at n
// whose step-type is SameArrow or NewArrow, honoring the per-foot
// same-arrow run-length cap.
func candidateLinksFor(g *stepgraph.Graph, n stepgraph.GraphNode, foot chart.Foot, pcfg *padconfig.PatternConfig, sameArrowRun int) []chart.GraphLink {
	capReached := pcfg.LimitSameArrowsInARowPerFoot && sameArrowRun >= pcfg.MaxSameArrowsInARowPerFoot
	var out []chart.GraphLink
	for _, link := range g.OutgoingLinks(n) {
		if !link.IsSingleStep() {
			continue
		}
		st, ok := link.FootStepType(foot)
		if !ok {
			continue
		}
		if st != chart.StepSameArrow && st != chart.StepNewArrow {
			continue
		}
		if st == chart.StepSameArrow && capReached {
			continue
		}
		out = append(out, link)
	}
	return out
}

// filterTrailingLinks narrows candidates for the two trailing placeholder
// steps per the configured end-foot-choice.
func filterTrailingLinks(links []chart.GraphLink, pcfg *padconfig.PatternConfig, foot chart.Foot, nextFooting chart.Footing) []chart.GraphLink {
	choice := pcfg.FootChoices[foot].EndChoice
	wantLane := nextFooting[foot]
	var out []chart.GraphLink
	for _, link := range links {
		st, _ := link.FootStepType(foot)
		switch choice {
		case padconfig.EndingLaneAutomaticNewToFollowing:
			if st == chart.StepNewArrow {
				out = append(out, link)
			}
		case padconfig.EndingLaneAutomaticSameToFollowing:
			if st == chart.StepSameArrow {
				out = append(out, link)
			}
		case padconfig.EndingLaneAutomaticIgnoreFollowing:
			out = append(out, link)
		default: // EndingLaneAutomaticSameOrNewAsFollowing
			out = append(out, link)
		}
	}
	if wantLane == chart.NoArrow {
		return links
	}
	if len(out) == 0 {
		return links
	}
	return out
}

// filterEndLane keeps only frontier nodes whose foot lanes satisfy the
// configured end-lane choice relative to nextFooting.
func filterEndLane(frontier []*Node, pcfg *padconfig.PatternConfig, nextFooting chart.Footing) []*Node {
	var out []*Node
	for _, n := range frontier {
		ok := true
		for f := 0; f < chart.NumFeet; f++ {
			want := nextFooting[f]
			if want == chart.NoArrow {
				continue
			}
			choice := pcfg.FootChoices[f].EndChoice
			got := n.GraphNode.Arrow(chart.Foot(f), chart.PortionHeel)
			switch choice {
			case padconfig.EndingLaneAutomaticIgnoreFollowing:
				continue
			default:
				if got != want && choice != padconfig.EndingLaneAutomaticSameOrNewAsFollowing {
					ok = false
				}
			}
		}
		if ok {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return frontier
	}
	return out
}
