// Package pad holds the static, immutable per-pad geometry the rest of the
// library reasons about: where each arrow sits, which pairs of arrows a
// given foot may bracket, cross over, or stretch between, and the
// compensated-distance measure the cost model uses to score movement.
//
// A Pad never changes after construction; every other package treats a
// *Pad as a read-only input.
package pad
