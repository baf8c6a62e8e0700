// Package padperform turns a dance-pad step chart into a performed chart:
// a concrete assignment of which foot strikes which arrow at each event,
// found by a weighted best-first search over a step graph.
//
// What is padperform?
//
//	A deterministic, seed-reproducible core that consumes:
//	  - a Pad Model  (pad.Pad)       — arrow geometry and foot relations
//	  - a Step Graph (stepgraph.Graph) — reachable foot-positioning states
//	  - an expressed chart          (chart.ExpressedEvent)
//
//	and produces a time-ordered PerformedEvent stream by walking the step
//	graph along the lowest-cost path under a fourteen-term lexicographic
//	cost vector.
//
// Under the hood, everything is organized under task-focused subpackages:
//
//	pad/       — static per-pad geometry and foot-relation tables
//	stepgraph/ — foot-positioning states and their legal transitions
//	fallback/  — step-type substitution cache for the expressed chart
//	chart/     — the shared event/step-type/foot-action data model
//	padconfig/ — cost-model and pattern-generation configuration
//	padlog/    — the narrow logging seam used by search
//	search/    — the search node, search driver, cost model, and
//	             output assembly: the core of the library
//
// Both entry points, Satisfy and Generate, live in the search package.
//
//	go get github.com/padperform/padperform
package padperform
