// Package fallback expands an abstract expressed-chart link into a ranked
// list of concrete candidate links the search core may attempt:
// deterministic order, most-preferred first, substitutions drawn from a
// configured replacement table, and a trailing blank link when nothing
// else will do.
//
// The cache is process-wide state primed once per replacement table: Prime
// populates it before the first Satisfy call; Expand afterward serves the
// primed entries and computes and stores, under the write lock, the entry
// for any link Prime was not given.
package fallback
