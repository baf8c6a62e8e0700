package search

import (
	"sort"

	"github.com/padperform/padperform/chart"
)

// Assemble flattens a finalized path's per-node actions, merges in the
// already-placed mine events, and orders the combined stream with
// CompareEvents.
func Assemble(path []*Node, mines []chart.PerformedEvent) []chart.PerformedEvent {
	out := walkToPerformedEvents(path)
	out = append(out, mines...)
	sort.SliceStable(out, func(i, j int) bool { return chart.CompareEvents(out[i], out[j]) < 0 })
	return out
}
