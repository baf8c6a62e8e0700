package search

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/padperform/padperform/chart"
	"github.com/padperform/padperform/pad"
)

// mineCandidate is one (position, lane, foot) record recovered from a
// finalized path, used to resolve BeforeArrow/AfterArrow mine placement.
type mineCandidate struct {
	Position int
	Lane     int
	Foot     chart.Foot
}

// PlaceMines scans the finalized step path once for steps/releases and
// never-hosted lanes, then dispatches each mine event by kind. Failures
// are non-fatal — the offending mine is skipped, logged as a warning via
// the configured padlog.Logger, and returned in the error slice rather
// than aborting the whole pass.
func PlaceMines(path []*Node, mines []chart.MineEvent, p *pad.Pad, seed int64, opts ...Option) ([]chart.PerformedEvent, []error) {
	o := buildOptions(opts...)
	steps, _ := recordsFromPath(path)
	hosted := hostedLanes(steps, p.NumArrows)
	rng := rand.New(rand.NewSource(seed))

	var out []chart.PerformedEvent
	var errs []error
	occupied := map[int]bool{}
	lastPos, first := 0, true

	for _, m := range mines {
		if first || m.Position != lastPos {
			occupied = map[int]bool{}
			lastPos, first = m.Position, false
		}
		lane, err := resolveMineLane(m, steps, hosted, occupied, p.NumArrows, rng)
		if err != nil {
			wrapped := fmt.Errorf("mine at position %d: %w", m.Position, err)
			errs = append(errs, wrapped)
			o.logger.Warnf("skipping mine: %v", wrapped)
			continue
		}
		occupied[lane] = true
		out = append(out, chart.PerformedEvent{Position: m.Position, Lane: lane, Action: chart.ActionOutMine})
	}
	return out, errs
}

// ErrMineNoCandidate indicates a mine could not be placed: the configured
// nth-closest index exceeded the candidates available, or every
// never-hosted lane was already taken.
var ErrMineNoCandidate = fmt.Errorf("search: no candidate lane for mine")

func resolveMineLane(m chart.MineEvent, steps []mineCandidate, hosted map[int]bool, occupied map[int]bool, numArrows int, rng *rand.Rand) (int, error) {
	switch m.Kind {
	case chart.MineBeforeArrow:
		return pickOrdered(stepsBefore(steps, m.Position), m.PairedFoot, m.NthClosest, occupied, rng)
	case chart.MineAfterArrow:
		return pickOrdered(stepsAfter(steps, m.Position), m.PairedFoot, m.NthClosest, occupied, rng)
	case chart.MineNoArrow:
		return pickUnhosted(numArrows, hosted, occupied)
	default:
		return 0, ErrMineNoCandidate
	}
}

// recordsFromPath walks path's incoming links, recovering the lane and
// foot behind each step/release (information the flattened PerformedEvent
// stream intentionally drops).
func recordsFromPath(path []*Node) (steps, releases []mineCandidate) {
	for i, n := range path {
		if n.IncomingLink.IsBlank() {
			continue
		}
		for f := 0; f < chart.NumFeet; f++ {
			for pp := 0; pp < chart.NumPortions; pp++ {
				c := n.IncomingLink.Cells[f][pp]
				if !c.Valid {
					continue
				}
				if c.Action == chart.ActionRelease {
					if i == 0 {
						continue
					}
					lane := path[i-1].GraphNode.Arrow(chart.Foot(f), chart.Portion(pp))
					if lane >= 0 {
						releases = append(releases, mineCandidate{Position: n.Position, Lane: lane, Foot: chart.Foot(f)})
					}
					continue
				}
				lane := n.GraphNode.Arrow(chart.Foot(f), chart.Portion(pp))
				if lane >= 0 {
					steps = append(steps, mineCandidate{Position: n.Position, Lane: lane, Foot: chart.Foot(f)})
				}
			}
		}
	}
	return steps, releases
}

func hostedLanes(steps []mineCandidate, numArrows int) map[int]bool {
	h := make(map[int]bool, numArrows)
	for _, s := range steps {
		h[s.Lane] = true
	}
	return h
}

func stepsBefore(steps []mineCandidate, position int) []mineCandidate {
	var out []mineCandidate
	for _, s := range steps {
		if s.Position < position {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position > out[j].Position })
	return out
}

func stepsAfter(steps []mineCandidate, position int) []mineCandidate {
	var out []mineCandidate
	for _, s := range steps {
		if s.Position > position {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

// pickOrdered groups candidates (already ordered nearest-first) by
// position, filters each group to the paired foot when that leaves a
// nonempty set, shuffles same-position ties deterministically, drops
// occupied lanes, and returns the nth surviving lane.
func pickOrdered(ordered []mineCandidate, foot chart.Foot, nth int, occupied map[int]bool, rng *rand.Rand) (int, error) {
	var flattened []mineCandidate
	for _, group := range groupByPosition(ordered) {
		filtered := filterByFoot(group, foot)
		rng.Shuffle(len(filtered), func(i, j int) { filtered[i], filtered[j] = filtered[j], filtered[i] })
		flattened = append(flattened, filtered...)
	}
	var lanes []int
	seen := map[int]bool{}
	for _, c := range flattened {
		if occupied[c.Lane] || seen[c.Lane] {
			continue
		}
		seen[c.Lane] = true
		lanes = append(lanes, c.Lane)
	}
	if nth < 1 || nth > len(lanes) {
		return 0, ErrMineNoCandidate
	}
	return lanes[nth-1], nil
}

func groupByPosition(ordered []mineCandidate) [][]mineCandidate {
	var groups [][]mineCandidate
	for _, c := range ordered {
		if len(groups) > 0 && groups[len(groups)-1][0].Position == c.Position {
			groups[len(groups)-1] = append(groups[len(groups)-1], c)
			continue
		}
		groups = append(groups, []mineCandidate{c})
	}
	return groups
}

func filterByFoot(group []mineCandidate, foot chart.Foot) []mineCandidate {
	var out []mineCandidate
	for _, c := range group {
		if c.Foot == foot {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return append([]mineCandidate(nil), group...)
	}
	return out
}

func pickUnhosted(numArrows int, hosted, occupied map[int]bool) (int, error) {
	for lane := 0; lane < numArrows; lane++ {
		if !hosted[lane] && !occupied[lane] {
			return lane, nil
		}
	}
	return 0, ErrMineNoCandidate
}
