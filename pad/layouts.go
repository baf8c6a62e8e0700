package pad

import "github.com/padperform/padperform/chart"

// Lane indices for the 4-panel layout: Left, Down, Up, Right.
const (
	Lane4Left = iota
	Lane4Down
	Lane4Up
	Lane4Right
)

// NewPad4Panel returns the canonical single 4-panel dance pad: Left, Down,
// Up, Right arranged in a plus shape, panel half-extents of 0.5 units.
func NewPad4Panel() (*Pad, error) {
	b, err := NewBuilder(4, 0.5, 0.5)
	if err != nil {
		return nil, err
	}
	b.SetPosition(Lane4Left, 0, 1).
		SetPosition(Lane4Down, 1, 0).
		SetPosition(Lane4Up, 1, 2).
		SetPosition(Lane4Right, 2, 1)

	b.SetMirror(Lane4Left, Lane4Right).SetMirror(Lane4Right, Lane4Left).
		SetMirror(Lane4Down, Lane4Down).SetMirror(Lane4Up, Lane4Up)
	b.SetFlip(Lane4Left, Lane4Left).SetFlip(Lane4Right, Lane4Right).
		SetFlip(Lane4Down, Lane4Up).SetFlip(Lane4Up, Lane4Down)

	// Adjacent lanes (sqrt(2) apart, e.g. Left and Down) are bracketable by
	// either foot-portion; opposite lanes (2 apart, Left/Right or Down/Up)
	// are not.
	adjacent := [][2]int{
		{Lane4Left, Lane4Down}, {Lane4Left, Lane4Up},
		{Lane4Right, Lane4Down}, {Lane4Right, Lane4Up},
	}
	for f := 0; f < chart.NumFeet; f++ {
		for _, pr := range adjacent {
			a, c := pr[0], pr[1]
			b.SetRelation(b.pad.BracketableHeel[f], a, c, true)
			b.SetRelation(b.pad.BracketableHeel[f], c, a, true)
			b.SetRelation(b.pad.BracketableToe[f], a, c, true)
			b.SetRelation(b.pad.BracketableToe[f], c, a, true)
		}
	}

	// Non-crossover valid pairings: left foot on Left/Down/Up, right foot
	// on Down/Up/Right is the non-crossed baseline; every lane pairs
	// validly with every other lane except itself on this small pad.
	for f := 0; f < chart.NumFeet; f++ {
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				if i != j {
					b.SetRelation(b.pad.ValidPairing[f], i, j, true)
				}
			}
		}
	}

	// Crossovers: only the Left/Right lane pair is marked, as both a front
	// and a behind crossover, for each foot; Down and Up never take part in
	// a crossover on this pad.
	b.SetRelation(b.pad.CrossoverFront[chart.FootLeft], Lane4Right, Lane4Left, true)
	b.SetRelation(b.pad.CrossoverBehind[chart.FootLeft], Lane4Right, Lane4Left, true)
	b.SetRelation(b.pad.CrossoverFront[chart.FootRight], Lane4Left, Lane4Right, true)
	b.SetRelation(b.pad.CrossoverBehind[chart.FootRight], Lane4Left, Lane4Right, true)

	return b.Build()
}

// Lane indices for an 8-panel ("doubles") layout: two 4-panel pads placed
// side by side.
const (
	Lane8LeftLeft = iota
	Lane8LeftDown
	Lane8LeftUp
	Lane8LeftRight
	Lane8RightLeft
	Lane8RightDown
	Lane8RightUp
	Lane8RightRight
)

// NewPad8Panel returns two 4-panel pads placed side by side along X, each
// retaining its own internal relations. Bracket and crossover relations stay
// within a half; ValidPairing is also set between every lane of one half
// and every lane of the other.
func NewPad8Panel() (*Pad, error) {
	b, err := NewBuilder(8, 0.5, 0.5)
	if err != nil {
		return nil, err
	}
	// Left half at the same coordinates as the 4-panel pad; right half
	// offset by 3 units along X.
	offsets := []struct {
		lane int
		x, y float64
	}{
		{Lane8LeftLeft, 0, 1}, {Lane8LeftDown, 1, 0}, {Lane8LeftUp, 1, 2}, {Lane8LeftRight, 2, 1},
		{Lane8RightLeft, 3, 1}, {Lane8RightDown, 4, 0}, {Lane8RightUp, 4, 2}, {Lane8RightRight, 5, 1},
	}
	for _, o := range offsets {
		b.SetPosition(o.lane, o.x, o.y)
	}

	b.SetMirror(Lane8LeftLeft, Lane8RightRight).SetMirror(Lane8RightRight, Lane8LeftLeft)
	b.SetMirror(Lane8LeftDown, Lane8RightDown).SetMirror(Lane8RightDown, Lane8LeftDown)
	b.SetMirror(Lane8LeftUp, Lane8RightUp).SetMirror(Lane8RightUp, Lane8LeftUp)
	b.SetMirror(Lane8LeftRight, Lane8RightLeft).SetMirror(Lane8RightLeft, Lane8LeftRight)
	for _, o := range offsets {
		b.SetFlip(o.lane, o.lane)
	}
	b.SetFlip(Lane8LeftDown, Lane8LeftUp).SetFlip(Lane8LeftUp, Lane8LeftDown)
	b.SetFlip(Lane8RightDown, Lane8RightUp).SetFlip(Lane8RightUp, Lane8RightDown)

	halves := [][4]int{
		{Lane8LeftLeft, Lane8LeftDown, Lane8LeftUp, Lane8LeftRight},
		{Lane8RightLeft, Lane8RightDown, Lane8RightUp, Lane8RightRight},
	}
	adjacentOffsets := [][2]int{{0, 1}, {0, 2}, {3, 1}, {3, 2}}
	for f := 0; f < chart.NumFeet; f++ {
		for _, half := range halves {
			for _, pr := range adjacentOffsets {
				a, c := half[pr[0]], half[pr[1]]
				b.SetRelation(b.pad.BracketableHeel[f], a, c, true)
				b.SetRelation(b.pad.BracketableHeel[f], c, a, true)
				b.SetRelation(b.pad.BracketableToe[f], a, c, true)
				b.SetRelation(b.pad.BracketableToe[f], c, a, true)
			}
			for i := 0; i < 4; i++ {
				for j := 0; j < 4; j++ {
					if i != j {
						b.SetRelation(b.pad.ValidPairing[f], half[i], half[j], true)
					}
				}
			}
		}
	}
	// Cross-half pairing is valid too (the two feet can straddle the gap).
	for f := 0; f < chart.NumFeet; f++ {
		for _, l := range halves[0] {
			for _, r := range halves[1] {
				b.SetRelation(b.pad.ValidPairing[f], l, r, true)
				b.SetRelation(b.pad.ValidPairing[f], r, l, true)
			}
		}
	}

	b.SetRelation(b.pad.CrossoverFront[chart.FootLeft], Lane8LeftRight, Lane8LeftLeft, true)
	b.SetRelation(b.pad.CrossoverBehind[chart.FootLeft], Lane8LeftRight, Lane8LeftLeft, true)
	b.SetRelation(b.pad.CrossoverFront[chart.FootRight], Lane8LeftLeft, Lane8LeftRight, true)
	b.SetRelation(b.pad.CrossoverBehind[chart.FootRight], Lane8LeftLeft, Lane8LeftRight, true)
	b.SetRelation(b.pad.CrossoverFront[chart.FootLeft], Lane8RightRight, Lane8RightLeft, true)
	b.SetRelation(b.pad.CrossoverBehind[chart.FootLeft], Lane8RightRight, Lane8RightLeft, true)
	b.SetRelation(b.pad.CrossoverFront[chart.FootRight], Lane8RightLeft, Lane8RightRight, true)
	b.SetRelation(b.pad.CrossoverBehind[chart.FootRight], Lane8RightLeft, Lane8RightRight, true)

	// Stretch variants: the far cross-half pairing (LeftLeft <-> RightRight)
	// is also marked as a stretch pairing, in addition to its plain
	// cross-half ValidPairing entry above.
	for f := 0; f < chart.NumFeet; f++ {
		b.SetRelation(b.pad.ValidPairingStretch[f], Lane8LeftLeft, Lane8RightRight, true)
		b.SetRelation(b.pad.ValidPairingStretch[f], Lane8RightRight, Lane8LeftLeft, true)
	}

	return b.Build()
}
