package padconfig

import "errors"

// Sentinel errors for config validation: ranges inverted, negative
// required-non-negative values, unknown enum values, mismatched array
// sizes.
var (
	// ErrNegativeValue indicates a field required to be non-negative was negative.
	ErrNegativeValue = errors.New("padconfig: value must be non-negative")

	// ErrInvertedRange indicates a min/max pair had min > max.
	ErrInvertedRange = errors.New("padconfig: range minimum exceeds maximum")

	// ErrOutOfUnitRange indicates a percentage/fraction field was outside [0, 1].
	ErrOutOfUnitRange = errors.New("padconfig: value must be within [0, 1]")

	// ErrUnknownEnum indicates an enum field held a value outside its defined set.
	ErrUnknownEnum = errors.New("padconfig: unrecognized enum value")

	// ErrMismatchedArraySize indicates a per-lane array's length did not
	// match the pad's NumArrows.
	ErrMismatchedArraySize = errors.New("padconfig: array size does not match number of arrows")

	// ErrAllWeightsZero indicates every weight in an ArrowWeights entry was zero.
	ErrAllWeightsZero = errors.New("padconfig: all weights are zero, cannot normalize")

	// ErrInvalidBeatSubdivision indicates BeatSubDivision is not a valid
	// denominator (must divide the configured maximum evenly).
	ErrInvalidBeatSubdivision = errors.New("padconfig: beat subdivision is not a valid denominator")
)
