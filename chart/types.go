// Package chart defines the shared wire-level data model exchanged between
// the fallback cache, the step graph, and the search core: step types, foot
// actions, the link matrix a step-event carries, the expressed and mine
// events that make up an input chart, and the performed events the search
// core emits.
//
// None of the types here know how to search or build a graph; they are the
// vocabulary every other package is written in terms of.
package chart

import "errors"

// Sentinel errors for chart data validation.
var (
	// ErrBadFoot indicates a Foot value outside [FootLeft, FootRight].
	ErrBadFoot = errors.New("chart: foot index out of range")

	// ErrBadPortion indicates a Portion value outside [PortionHeel, PortionToe].
	ErrBadPortion = errors.New("chart: portion index out of range")

	// ErrBracketInconsistent indicates a link's two portions for one foot
	// carry different step-types while both are valid.
	ErrBracketInconsistent = errors.New("chart: bracket portions carry different step-types")

	// ErrReleaseConflict indicates a release cell coexists with a non-release,
	// non-opposite-bracket-tap cell on the same foot.
	ErrReleaseConflict = errors.New("chart: release cell conflicts with sibling cell")
)

// NumFeet is the number of feet a dancer has: always two.
const NumFeet = 2

// NumPortions is the number of portions a foot can independently place: heel
// and toe, relevant only for bracket steps.
const NumPortions = 2

// Foot identifies which foot a cell of a GraphLink belongs to.
type Foot int

const (
	// FootLeft is the left foot.
	FootLeft Foot = iota
	// FootRight is the right foot.
	FootRight
)

// String implements fmt.Stringer.
func (f Foot) String() string {
	switch f {
	case FootLeft:
		return "Left"
	case FootRight:
		return "Right"
	default:
		return "Foot(?)"
	}
}

// Other returns the opposite foot.
func (f Foot) Other() Foot {
	if f == FootLeft {
		return FootRight
	}
	return FootLeft
}

// Valid reports whether f is FootLeft or FootRight.
func (f Foot) Valid() bool { return f == FootLeft || f == FootRight }

// Portion identifies which part of a foot a cell of a GraphLink governs.
type Portion int

const (
	// PortionHeel is the heel portion of a foot.
	PortionHeel Portion = iota
	// PortionToe is the toe portion of a foot.
	PortionToe
)

// String implements fmt.Stringer.
func (p Portion) String() string {
	switch p {
	case PortionHeel:
		return "Heel"
	case PortionToe:
		return "Toe"
	default:
		return "Portion(?)"
	}
}

// Valid reports whether p is PortionHeel or PortionToe.
func (p Portion) Valid() bool { return p == PortionHeel || p == PortionToe }

// StepType is the abstract character of a step, drawn from the expressed
// chart or substituted by the fallback cache.
type StepType int

const (
	// StepSameArrow is a step onto the arrow the foot-portion already rests on.
	StepSameArrow StepType = iota
	// StepNewArrow is a step onto an arrow the foot-portion was not resting on.
	StepNewArrow
	// StepCrossoverFront is a crossover with the stepping foot in front.
	StepCrossoverFront
	// StepCrossoverBehind is a crossover with the stepping foot behind.
	StepCrossoverBehind
	// StepInvert is an inverted-footing step (twisted stance).
	StepInvert
	// StepFootSwap is a step where the two feet exchange arrows.
	StepFootSwap
	// StepBracketSame is a bracket step onto arrows already held by that foot.
	StepBracketSame
	// StepBracketNew is a bracket step onto at least one new arrow.
	StepBracketNew
)

// String implements fmt.Stringer.
func (s StepType) String() string {
	switch s {
	case StepSameArrow:
		return "SameArrow"
	case StepNewArrow:
		return "NewArrow"
	case StepCrossoverFront:
		return "CrossoverFront"
	case StepCrossoverBehind:
		return "CrossoverBehind"
	case StepInvert:
		return "Invert"
	case StepFootSwap:
		return "FootSwap"
	case StepBracketSame:
		return "BracketSame"
	case StepBracketNew:
		return "BracketNew"
	default:
		return "StepType(?)"
	}
}

// IsBracket reports whether s is one of the bracket step-types.
func (s StepType) IsBracket() bool {
	return s == StepBracketSame || s == StepBracketNew
}

// IsCrossover reports whether s is a crossover step-type.
func (s StepType) IsCrossover() bool {
	return s == StepCrossoverFront || s == StepCrossoverBehind
}

// FootAction is what a foot-portion does during a step.
type FootAction int

const (
	// ActionTap is an instantaneous strike.
	ActionTap FootAction = iota
	// ActionHold is the start of a sustained hold.
	ActionHold
	// ActionRelease is the end of a sustained hold.
	ActionRelease
)

// String implements fmt.Stringer.
func (a FootAction) String() string {
	switch a {
	case ActionTap:
		return "Tap"
	case ActionHold:
		return "Hold"
	case ActionRelease:
		return "Release"
	default:
		return "FootAction(?)"
	}
}

// IsRelease reports whether a is ActionRelease.
func (a FootAction) IsRelease() bool { return a == ActionRelease }

// InstanceVariant distinguishes how a step instance should be rendered by
// an emitter, independent of its step-type or foot-action.
type InstanceVariant int

const (
	// VariantDefault is a plain step: no special rendering.
	VariantDefault InstanceVariant = iota
	// VariantRoll renders a hold as a roll (repeated judgment).
	VariantRoll
	// VariantFake renders a step as unjudged decoration.
	VariantFake
	// VariantLift renders a release as a lift (no arrow required underfoot).
	VariantLift
)
