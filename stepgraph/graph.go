package stepgraph

import (
	"errors"
	"sort"
	"sync"

	"github.com/padperform/padperform/chart"
	"github.com/padperform/padperform/pad"
)

// Sentinel errors for graph construction.
var (
	// ErrNilPad indicates a nil *pad.Pad was passed to BuildFromPad.
	ErrNilPad = errors.New("stepgraph: pad is nil")
)

// Graph is the directed multigraph of reachable foot-positioning states.
// It is built once by BuildFromPad and is read-only thereafter; a single
// sync.RWMutex guards the adjacency map, since stepgraph.Graph never
// mutates vertices independently of edges.
type Graph struct {
	Pad *pad.Pad

	mu    sync.RWMutex
	nodes map[GraphNode]struct{}
	adj   map[GraphNode]map[chart.GraphLink][]GraphNode
}

// newGraph returns an empty Graph bound to p.
func newGraph(p *pad.Pad) *Graph {
	return &Graph{
		Pad:   p,
		nodes: make(map[GraphNode]struct{}),
		adj:   make(map[GraphNode]map[chart.GraphLink][]GraphNode),
	}
}

// HasNode reports whether n has been interned into the graph.
func (g *Graph) HasNode(n GraphNode) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.nodes[n]
	return ok
}

// NodesByFooting returns every known node whose Footing() equals footing,
// in a deterministic order (sorted by each foot-portion's arrow/holding
// state). Used to build the root tiers for Satisfy.
func (g *Graph) NodesByFooting(footing chart.Footing) []GraphNode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []GraphNode
	for n := range g.nodes {
		if n.Footing() == footing {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return nodeLess(out[i], out[j]) })
	return out
}

// AllNodes returns every known node in deterministic order.
func (g *Graph) AllNodes() []GraphNode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]GraphNode, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return nodeLess(out[i], out[j]) })
	return out
}

// OutgoingLinks returns the distinct links with at least one successor from
// n, in a deterministic order.
func (g *Graph) OutgoingLinks(n GraphNode) []chart.GraphLink {
	g.mu.RLock()
	defer g.mu.RUnlock()
	byLink := g.adj[n]
	out := make([]chart.GraphLink, 0, len(byLink))
	for l := range byLink {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return linkLess(out[i], out[j]) })
	return out
}

// Successors returns the successor nodes reachable from n via link, in
// deterministic order, and whether the (n, link) pair is present at all.
func (g *Graph) Successors(n GraphNode, link chart.GraphLink) ([]GraphNode, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	succs, ok := g.adj[n][link]
	if !ok {
		return nil, false
	}
	out := make([]GraphNode, len(succs))
	copy(out, succs)
	return out, true
}

// addEdge interns both endpoints and records the link's successor. Multiple
// calls with the same (from, link) accumulate successors: one link may
// legally reach more than one successor node, e.g. the destination is
// determined jointly with additional context the link alone doesn't
// capture.
func (g *Graph) addEdge(from GraphNode, link chart.GraphLink, to GraphNode) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes[from] = struct{}{}
	g.nodes[to] = struct{}{}
	if g.adj[from] == nil {
		g.adj[from] = make(map[chart.GraphLink][]GraphNode)
	}
	for _, existing := range g.adj[from][link] {
		if existing == to {
			return
		}
	}
	g.adj[from][link] = append(g.adj[from][link], to)
}

// nodeLess gives GraphNode a total order for deterministic iteration.
func nodeLess(a, b GraphNode) bool {
	for f := 0; f < chart.NumFeet; f++ {
		for p := 0; p < chart.NumPortions; p++ {
			as, bs := a.State[f][p], b.State[f][p]
			if as.Arrow != bs.Arrow {
				return as.Arrow < bs.Arrow
			}
			if as.Holding != bs.Holding {
				return !as.Holding
			}
		}
	}
	return false
}

// linkLess gives GraphLink a total order for deterministic iteration,
// comparing cells in (foot, portion) order.
func linkLess(a, b chart.GraphLink) bool {
	for f := 0; f < chart.NumFeet; f++ {
		for p := 0; p < chart.NumPortions; p++ {
			ca, cb := a.Cells[f][p], b.Cells[f][p]
			if ca.Valid != cb.Valid {
				return !ca.Valid
			}
			if !ca.Valid {
				continue
			}
			if ca.StepType != cb.StepType {
				return ca.StepType < cb.StepType
			}
			if ca.Action != cb.Action {
				return ca.Action < cb.Action
			}
		}
	}
	return false
}

// FootPositions returns the (left, right) planar positions implied by n's
// footing, using the heel arrow of each foot as its representative point.
func FootPositions(n GraphNode, p *pad.Pad) (left, right pad.Position) {
	leftArrow := n.State[chart.FootLeft][chart.PortionHeel].Arrow
	rightArrow := n.State[chart.FootRight][chart.PortionHeel].Arrow
	if leftArrow >= 0 {
		left = p.Positions[leftArrow]
	}
	if rightArrow >= 0 {
		right = p.Positions[rightArrow]
	}
	return left, right
}

// Facing classifies a node's orientation relative to the pad's axis of
// symmetry.
type Facing int

const (
	// FacingNeutral is neither inward nor outward.
	FacingNeutral Facing = iota
	// FacingInward means the feet's relative arrangement points toward
	// each other (e.g. crossed orientation).
	FacingInward
	// FacingOutward means the feet's relative arrangement points away
	// from each other.
	FacingOutward
)
