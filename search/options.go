package search

import (
	"context"

	"github.com/padperform/padperform/padlog"
)

// options holds the functional-option configuration shared by Satisfy and
// Generate (mirrors padconfig's Option pattern, itself grounded on
// dijkstra.DefaultOptions).
type options struct {
	ctx    context.Context
	logger padlog.Logger
}

func defaultOptions() *options {
	return &options{ctx: context.Background(), logger: padlog.NewNoop()}
}

// Option customizes a Satisfy/Generate invocation.
type Option func(*options)

// WithCancel installs a context checked for cooperative cancellation
// between events and between children.
func WithCancel(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// WithLogger installs the padlog.Logger used for non-fatal notices (root
// tier fallback, skipped mines).
func WithLogger(l padlog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts ...Option) *options {
	o := defaultOptions()
	for _, apply := range opts {
		apply(o)
	}
	return o
}

func checkCancelled(o *options) error {
	select {
	case <-o.ctx.Done():
		return ErrCancelled
	default:
		return nil
	}
}

// Telemetry summarizes a completed Satisfy/Generate call: per-cost-term
// totals and node-expansion counts, useful for tuning heuristics the way
// the cost model intends them to be tuned.
type Telemetry struct {
	NodesExpanded int
	NodesPruned   int
	RootTierUsed  int
	FinalCost     CostVector
}
