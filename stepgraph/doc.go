// Package stepgraph enumerates every reachable foot-positioning state on a
// pad and the legal step-links between them: the directed multigraph the
// search core walks.
//
// A GraphNode is an immutable value holding only the foot state; its
// successors live in the Graph's adjacency map, populated once during
// BuildFromPad and never touched again. Everything downstream (fallback,
// search) treats a *Graph as a read-only input once built.
package stepgraph
