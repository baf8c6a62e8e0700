// Package padconfig defines the configuration schema the cost model and
// pattern generator read: transition/facing/tightening thresholds, arrow
// weights, and pattern-generation parameters.
//
// Config follows a functional-option composition pattern (DefaultConfig /
// NewConfig + Option) and normalizes sentinel "unset" values in its
// Normalize pass; PatternConfig and ExpressedChartConfig are plain structs
// with no options and no Normalize. All three validate eagerly with
// Validate() before any search runs.
package padconfig
