package search

import (
	"math/rand"
	"sort"

	"github.com/padperform/padperform/chart"
	"github.com/padperform/padperform/fallback"
	"github.com/padperform/padperform/padconfig"
	"github.com/padperform/padperform/stepgraph"
)

// Satisfy walks g to find the lowest-cost performance of expressed. Tiers
// are tried from most- to least-preferred; within a tier,
// roots are shuffled deterministically by seed. The returned Telemetry's
// RootTierUsed is the 0-based tier index that produced the path; a nonzero
// value is logged as an informational fallback notice.
// The fallback cache must already be primed (via cache.Prime) with the
// replacement table Satisfy should use; priming happens once per
// replacement table, independent of any single Satisfy call.
func Satisfy(
	g *stepgraph.Graph,
	cfg *padconfig.Config,
	rootTiers [][]stepgraph.GraphNode,
	cache *fallback.Cache,
	expressed []chart.ExpressedEvent,
	seed int64,
	logID string,
	opts ...Option,
) ([]chart.PerformedEvent, *Telemetry, error) {
	o := buildOptions(opts...)
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if len(rootTiers) == 0 {
		return nil, nil, ErrNoRootTiers
	}
	if cache == nil || !cache.Primed() {
		return nil, nil, ErrCachePrimeRequired
	}

	furthest := 0
	numLanes := len(g.Pad.Positions)

	for tier, roots := range rootTiers {
		order := shuffledIndices(len(roots), deriveTierSeed(seed, tier))
		for _, idx := range order {
			root := roots[idx]
			arena := NewArena()
			rootNode := arena.NewRoot(root, numLanes, 0, 0)

			leaf, reached, err := runSingleRoot(o, arena, rootNode, g, cfg, nil, cache, expressed, seed)
			if reached > furthest {
				furthest = reached
			}
			if err == ErrCancelled {
				return nil, nil, err
			}
			if err != nil {
				continue
			}

			if tier > 0 {
				o.logger.Infof("[%s] satisfied on fallback root tier %d", logID, tier)
			}
			path := arena.PathTo(leaf.ID)
			events := walkToPerformedEvents(path)
			return events, &Telemetry{NodesExpanded: len(arena.nodes), RootTierUsed: tier, FinalCost: leaf.Cost}, nil
		}
	}
	o.logger.Errorf("[%s] no feasible path, furthest position %d", logID, furthest)
	return nil, nil, newNoFeasiblePath(furthest)
}

// runSingleRoot expands rootNode's frontier across every expressed event and
// returns the single surviving leaf, or the index of the furthest event it
// managed to reach before the frontier emptied.
func runSingleRoot(
	o *options,
	arena *Arena,
	rootNode *Node,
	g *stepgraph.Graph,
	cfg *padconfig.Config,
	pcfg *padconfig.PatternConfig,
	cache *fallback.Cache,
	expressed []chart.ExpressedEvent,
	seed int64,
) (*Node, int, error) {
	frontier := []*Node{rootNode}

	for d, ev := range expressed {
		if err := checkCancelled(o); err != nil {
			return nil, d, err
		}

		candidates, err := cache.Expand(ev.Link)
		if err != nil {
			return nil, d, err
		}

		var next []*Node
		for _, parent := range frontier {
			if err := checkCancelled(o); err != nil {
				return nil, d, err
			}
			next = append(next, expandFrontierNode(arena, parent, candidates, g, cfg, pcfg, ev, deriveStepSeed(seed, d))...)
		}

		next = dominancePrune(arena, next)
		if len(next) == 0 {
			return nil, d, newNoFeasiblePath(d)
		}
		frontier = next
	}

	best := frontier[0]
	for _, n := range frontier[1:] {
		if n.Cost.Less(best.Cost) {
			best = n
		}
	}
	return best, len(expressed), nil
}

// expandFrontierNode enumerates every surviving child of parent for a
// single expressed event.
func expandFrontierNode(
	arena *Arena,
	parent *Node,
	candidates []chart.GraphLink,
	g *stepgraph.Graph,
	cfg *padconfig.Config,
	pcfg *padconfig.PatternConfig,
	ev chart.ExpressedEvent,
	tieSeed int64,
) []*Node {
	rng := rand.New(rand.NewSource(tieSeed))
	var out []*Node

	for i, link := range candidates {
		var successors []stepgraph.GraphNode
		isBlank := link.IsBlank()
		if isBlank {
			successors = []stepgraph.GraphNode{parent.GraphNode}
		} else {
			succs, ok := g.Successors(parent.GraphNode, link)
			if !ok {
				continue
			}
			successors = succs
		}

		for _, succ := range successors {
			actions := deriveActions(parent.GraphNode, succ, link, ev)
			if actionsConflict(actions) {
				continue
			}

			cv := buildCandidateView(g, g.Pad, cfg, parent, link, i, candidates, isBlank, succ, actions, ev, rng)
			child := instantiateChild(parent, g.Pad, cfg, pcfg, cv, ev)
			out = append(out, arena.NewChild(parent, child))
		}
	}
	return out
}

// actionsConflict reports whether the same lane is both stepped on and
// released within the same action set.
func actionsConflict(actions []chart.PerformedEvent) bool {
	stepped := map[int]bool{}
	released := map[int]bool{}
	for _, a := range actions {
		if a.Action.IsRelease() {
			released[a.Lane] = true
		} else {
			stepped[a.Lane] = true
		}
	}
	for lane := range stepped {
		if released[lane] {
			return true
		}
	}
	return false
}

// deriveActions converts a link's valid cells into lane-level performed
// actions, using the successor's arrow assignment for steps/holds and the
// parent's for releases (since the successor has already cleared it), and
// decorating each action per ev's InstanceVariants (roll, fake, lift
// rendering).
func deriveActions(parent, succ stepgraph.GraphNode, link chart.GraphLink, ev chart.ExpressedEvent) []chart.PerformedEvent {
	var out []chart.PerformedEvent
	for f := 0; f < chart.NumFeet; f++ {
		for p := 0; p < chart.NumPortions; p++ {
			c := link.Cells[f][p]
			if !c.Valid {
				continue
			}
			variant := variantFor(ev, f, p)
			var lane int
			var action chart.PerformedAction
			switch c.Action {
			case chart.ActionRelease:
				lane = parent.Arrow(chart.Foot(f), chart.Portion(p))
				action = chart.ActionOutHoldEnd
				if variant == chart.VariantLift {
					action = chart.ActionOutLift
				}
			case chart.ActionHold:
				lane = succ.Arrow(chart.Foot(f), chart.Portion(p))
				action = chart.ActionOutHoldStart
				if variant == chart.VariantRoll {
					action = chart.ActionOutRollStart
				}
			case chart.ActionTap:
				lane = succ.Arrow(chart.Foot(f), chart.Portion(p))
				action = chart.ActionOutTap
				if variant == chart.VariantFake {
					action = chart.ActionOutFake
				}
			}
			if lane < 0 {
				continue
			}
			out = append(out, chart.PerformedEvent{Position: ev.Position, Lane: lane, Action: action})
		}
	}
	return out
}

// dominancePrune keeps, for each distinct GraphNode among candidates, only
// the lowest-cost node, unlinking the rest from their parents and
// collapsing dead-end ancestors.
func dominancePrune(arena *Arena, candidates []*Node) []*Node {
	best := make(map[stepgraph.GraphNode]*Node, len(candidates))
	for _, n := range candidates {
		cur, ok := best[n.GraphNode]
		if !ok || n.Cost.Less(cur.Cost) {
			best[n.GraphNode] = n
		}
	}
	keep := make(map[NodeID]bool, len(best))
	for _, n := range best {
		keep[n.ID] = true
	}
	for _, n := range candidates {
		if keep[n.ID] {
			continue
		}
		parent := arena.Get(n.Parent)
		if parent != nil {
			arena.Unlink(parent, n.IncomingLink, n.ID)
		}
	}
	out := make([]*Node, 0, len(best))
	for _, n := range best {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func shuffledIndices(n int, seed int64) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rand.New(rand.NewSource(seed)).Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	return idx
}

func deriveTierSeed(seed int64, tier int) int64 {
	return seed*1000003 + int64(tier) + 1
}

func deriveStepSeed(seed int64, depth int) int64 {
	return seed*1000033 + int64(depth) + 7
}

func walkToPerformedEvents(path []*Node) []chart.PerformedEvent {
	var out []chart.PerformedEvent
	for _, n := range path {
		out = append(out, n.Actions...)
	}
	return out
}
