package chart

// Cell is one entry of a GraphLink's 2x2 matrix: what a single foot-portion
// does during a step, or an empty cell if that portion does not move.
type Cell struct {
	// StepType is meaningless when Valid is false.
	StepType StepType
	// Action is meaningless when Valid is false.
	Action FootAction
	// Valid marks whether this foot-portion participates in the step at all.
	Valid bool
	// Stretch qualifies a NewArrow/crossover cell as a stretch variant: the
	// two feet span an unusually large distance. It does not change
	// StepType classification, only the stretch-cost contribution (see
	// search package, cost item 5).
	Stretch bool
	// Swing qualifies a step as a swing variant (a deliberately delayed
	// weight transfer); carried through to output assembly but does not
	// affect search cost.
	Swing bool
}

// GraphLink is a 2x2 matrix of cells, one per foot x foot-portion, describing
// what each foot does to move between two GraphNodes. Row = Foot, column =
// Portion: Cells[FootLeft][PortionHeel] is the left heel's cell.
//
// A GraphLink with no valid cells is the blank link: it represents skipping
// the step entirely and its zero value satisfies IsBlank.
type GraphLink struct {
	Cells [NumFeet][NumPortions]Cell
}

// IsBlank reports whether no cell of the link is valid.
func (l GraphLink) IsBlank() bool {
	for f := 0; f < NumFeet; f++ {
		for p := 0; p < NumPortions; p++ {
			if l.Cells[f][p].Valid {
				return false
			}
		}
	}
	return true
}

// ValidCellCount returns how many of the four cells are valid.
func (l GraphLink) ValidCellCount() int {
	n := 0
	for f := 0; f < NumFeet; f++ {
		for p := 0; p < NumPortions; p++ {
			if l.Cells[f][p].Valid {
				n++
			}
		}
	}
	return n
}

// ValidNonReleaseCellCount returns the number of valid cells whose action is
// not ActionRelease.
func (l GraphLink) ValidNonReleaseCellCount() int {
	n := 0
	for f := 0; f < NumFeet; f++ {
		for p := 0; p < NumPortions; p++ {
			c := l.Cells[f][p]
			if c.Valid && c.Action != ActionRelease {
				n++
			}
		}
	}
	return n
}

// ValidReleaseCellCount returns the number of valid cells whose action is
// ActionRelease.
func (l GraphLink) ValidReleaseCellCount() int {
	return l.ValidCellCount() - l.ValidNonReleaseCellCount()
}

// IsJump reports whether both feet have at least one valid, non-release cell.
func (l GraphLink) IsJump() bool {
	for f := 0; f < NumFeet; f++ {
		if !l.footHasNonReleaseCell(Foot(f)) {
			return false
		}
	}
	return true
}

// IsRelease reports whether every valid cell is a release.
func (l GraphLink) IsRelease() bool {
	any := false
	for f := 0; f < NumFeet; f++ {
		for p := 0; p < NumPortions; p++ {
			c := l.Cells[f][p]
			if !c.Valid {
				continue
			}
			any = true
			if c.Action != ActionRelease {
				return false
			}
		}
	}
	return any
}

// IsBracket reports whether either foot has both portions valid (a bracket
// step for that foot).
func (l GraphLink) IsBracket() bool {
	for f := 0; f < NumFeet; f++ {
		if l.Cells[f][PortionHeel].Valid && l.Cells[f][PortionToe].Valid {
			return true
		}
	}
	return false
}

// IsSingleStep reports whether exactly one cell is valid and it is not a release.
func (l GraphLink) IsSingleStep() bool {
	return l.ValidCellCount() == 1 && l.ValidNonReleaseCellCount() == 1
}

// IsFootSwap reports whether both feet have exactly one non-release valid
// cell and the recorded step-type for both is StepFootSwap.
func (l GraphLink) IsFootSwap() bool {
	for f := 0; f < NumFeet; f++ {
		found := false
		for p := 0; p < NumPortions; p++ {
			c := l.Cells[f][p]
			if c.Valid && c.Action != ActionRelease {
				if c.StepType != StepFootSwap {
					return false
				}
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// footHasNonReleaseCell reports whether foot f has at least one valid cell
// whose action is not ActionRelease.
func (l GraphLink) footHasNonReleaseCell(f Foot) bool {
	for p := 0; p < NumPortions; p++ {
		c := l.Cells[f][p]
		if c.Valid && c.Action != ActionRelease {
			return true
		}
	}
	return false
}

// FootStepType returns the step-type foot f performs in this link and
// whether that foot has any valid non-release cell at all. Bracket
// consistency (enforced by Validate) guarantees both valid portions of a
// foot share a step-type, so the first one found is authoritative.
func (l GraphLink) FootStepType(f Foot) (StepType, bool) {
	for p := 0; p < NumPortions; p++ {
		c := l.Cells[f][p]
		if c.Valid && c.Action != ActionRelease {
			return c.StepType, true
		}
	}
	return 0, false
}

// FlipFeet returns a copy of l with the two foot rows swapped. Used by the
// search core's ambiguity detection: a footing-flipped variant of an
// incoming link may reach a different graph-node while emitting the same
// lane actions.
func (l GraphLink) FlipFeet() GraphLink {
	var out GraphLink
	out.Cells[FootLeft] = l.Cells[FootRight]
	out.Cells[FootRight] = l.Cells[FootLeft]
	return out
}

// Validate checks the structural invariants a GraphLink must satisfy (spec
// §3 GraphLink invariants): bracket consistency (both valid portions of one
// foot carry the same step-type) and release-conflict (a release cell may
// not coexist with a non-release, non-opposite-bracket-tap cell on the same
// foot).
func (l GraphLink) Validate() error {
	for f := 0; f < NumFeet; f++ {
		heel, toe := l.Cells[f][PortionHeel], l.Cells[f][PortionToe]
		if heel.Valid && toe.Valid {
			if heel.Action != ActionRelease && toe.Action != ActionRelease && heel.StepType != toe.StepType {
				return ErrBracketInconsistent
			}
			releases := 0
			if heel.Action == ActionRelease {
				releases++
			}
			if toe.Action == ActionRelease {
				releases++
			}
			// A lone release alongside a tap on the other portion of the
			// same bracket is permitted (releasing one panel while tapping
			// the other); two cells where exactly one is a release and the
			// other is a hold is not.
			if releases == 1 {
				other := heel
				if heel.Action == ActionRelease {
					other = toe
				}
				if other.Action == ActionHold {
					return ErrReleaseConflict
				}
			}
		}
	}
	return nil
}
