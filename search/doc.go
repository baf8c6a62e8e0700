// Package search is the weighted best-first graph search over foot-
// positioning states. It walks a stepgraph.Graph, scoring every candidate
// transition with a fourteen-term lexicographic cost vector, and exposes
// two entry points: Satisfy (perform an already-expressed chart) and
// Generate (produce a pattern bounded by two endpoints).
package search
