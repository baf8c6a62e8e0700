package pad

import (
	"errors"
	"math"

	"github.com/padperform/padperform/chart"
)

// Sentinel errors for pad construction.
var (
	// ErrNoArrows indicates a pad was constructed with zero arrows.
	ErrNoArrows = errors.New("pad: must have at least one arrow")

	// ErrBadLaneIndex indicates a mirror/flip table referenced an
	// out-of-range lane.
	ErrBadLaneIndex = errors.New("pad: mirror/flip lane index out of range")
)

// Position is an arrow's location on the pad, in arbitrary planar units.
type Position struct {
	X, Y float64
}

// Pad is the static, per-pad-layout geometry: arrow positions, mirror/flip
// lane maps, and the per-foot boolean relation tables between every pair of
// arrows.
type Pad struct {
	NumArrows int
	Positions []Position

	MirrorLane []int
	FlipLane   []int

	// Per-foot NumArrows x NumArrows relation tables. relation[foot][a][b].
	BracketableHeel  [chart.NumFeet][][]bool
	BracketableToe   [chart.NumFeet][][]bool
	ValidPairing     [chart.NumFeet][][]bool
	CrossoverFront   [chart.NumFeet][][]bool
	CrossoverBehind  [chart.NumFeet][][]bool
	Inverted         [chart.NumFeet][][]bool
	BracketableHeelStretch [chart.NumFeet][][]bool
	BracketableToeStretch  [chart.NumFeet][][]bool
	ValidPairingStretch    [chart.NumFeet][][]bool
	CrossoverFrontStretch  [chart.NumFeet][][]bool
	CrossoverBehindStretch [chart.NumFeet][][]bool
	InvertedStretch        [chart.NumFeet][][]bool

	// PanelHalfWidth/PanelHalfHeight are used by CompensatedDistance to
	// shrink each panel's footprint before measuring the gap between two
	// non-bracket positions.
	PanelHalfWidth  float64
	PanelHalfHeight float64

	// travel[a][b] is the raw center-to-center distance between arrows a
	// and b, precomputed once at construction time.
	travel [][]float64
}

// Builder incrementally assembles a Pad's relation tables. Use NewBuilder,
// set Positions/PanelHalfWidth/PanelHalfHeight, flip individual relation
// cells with the Set* methods, and call Build to validate and finalize.
type Builder struct {
	pad *Pad
}

// NewBuilder returns a Builder for a pad with numArrows arrows, all
// relation tables initialized to false and mirror/flip maps initialized to
// identity (lane i maps to itself) until overridden.
func NewBuilder(numArrows int, panelHalfWidth, panelHalfHeight float64) (*Builder, error) {
	if numArrows <= 0 {
		return nil, ErrNoArrows
	}
	p := &Pad{
		NumArrows:       numArrows,
		Positions:       make([]Position, numArrows),
		MirrorLane:      identityLanes(numArrows),
		FlipLane:        identityLanes(numArrows),
		PanelHalfWidth:  panelHalfWidth,
		PanelHalfHeight: panelHalfHeight,
	}
	for f := 0; f < chart.NumFeet; f++ {
		p.BracketableHeel[f] = newTable(numArrows)
		p.BracketableToe[f] = newTable(numArrows)
		p.ValidPairing[f] = newTable(numArrows)
		p.CrossoverFront[f] = newTable(numArrows)
		p.CrossoverBehind[f] = newTable(numArrows)
		p.Inverted[f] = newTable(numArrows)
		p.BracketableHeelStretch[f] = newTable(numArrows)
		p.BracketableToeStretch[f] = newTable(numArrows)
		p.ValidPairingStretch[f] = newTable(numArrows)
		p.CrossoverFrontStretch[f] = newTable(numArrows)
		p.CrossoverBehindStretch[f] = newTable(numArrows)
		p.InvertedStretch[f] = newTable(numArrows)
	}
	return &Builder{pad: p}, nil
}

func identityLanes(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func newTable(n int) [][]bool {
	t := make([][]bool, n)
	for i := range t {
		t[i] = make([]bool, n)
	}
	return t
}

// SetPosition sets arrow lane's (x, y) position.
func (b *Builder) SetPosition(lane int, x, y float64) *Builder {
	b.pad.Positions[lane] = Position{X: x, Y: y}
	return b
}

// SetMirror sets the mirror-lane map entry for lane.
func (b *Builder) SetMirror(lane, mirrored int) *Builder {
	b.pad.MirrorLane[lane] = mirrored
	return b
}

// SetFlip sets the flip-lane map entry for lane.
func (b *Builder) SetFlip(lane, flipped int) *Builder {
	b.pad.FlipLane[lane] = flipped
	return b
}

// SetRelation sets one cell of a named relation table, symmetric across
// (a, b) only if the caller sets both orderings — relations here are not
// assumed symmetric (e.g. CrossoverFront for foot F at (a,b) need not equal
// CrossoverFront at (b,a)).
func (b *Builder) SetRelation(table [][]bool, a, b2 int, v bool) *Builder {
	table[a][b2] = v
	return b
}

// Build validates lane indices and precomputes the travel-distance table.
func (b *Builder) Build() (*Pad, error) {
	p := b.pad
	for _, l := range p.MirrorLane {
		if l < 0 || l >= p.NumArrows {
			return nil, ErrBadLaneIndex
		}
	}
	for _, l := range p.FlipLane {
		if l < 0 || l >= p.NumArrows {
			return nil, ErrBadLaneIndex
		}
	}
	p.travel = newFloatTable(p.NumArrows)
	for i := 0; i < p.NumArrows; i++ {
		for j := 0; j < p.NumArrows; j++ {
			p.travel[i][j] = rawDistance(p.Positions[i], p.Positions[j])
		}
	}
	return p, nil
}

func newFloatTable(n int) [][]float64 {
	t := make([][]float64, n)
	for i := range t {
		t[i] = make([]float64, n)
	}
	return t
}

func rawDistance(a, b Position) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Travel returns the precomputed raw center-to-center distance between
// arrows a and b.
func (p *Pad) Travel(a, b int) float64 {
	return p.travel[a][b]
}

// CompensatedDistance computes "distance with compensation": the minimum
// effective movement between two foot positions when neither, one, or both
// sides are brackets.
//
//   - Neither a bracket: shrink each panel by (PanelHalfWidth-lateralMin,
//     PanelHalfHeight-longitudinalMin) on each axis and measure the gap
//     between the shrunk boxes (zero if they overlap).
//   - Exactly one is a bracket: shrink only the non-bracket side.
//   - Both are brackets: raw center-to-center distance.
//
// The result is always in [0, rawDistance(a, b)] (Testable Property 8).
func (p *Pad) CompensatedDistance(a, b Position, aIsBracket, bIsBracket bool, lateralMin, longitudinalMin float64) float64 {
	if aIsBracket && bIsBracket {
		return rawDistance(a, b)
	}

	shrinkX := p.PanelHalfWidth - lateralMin
	shrinkY := p.PanelHalfHeight - longitudinalMin
	if shrinkX < 0 {
		shrinkX = 0
	}
	if shrinkY < 0 {
		shrinkY = 0
	}

	// Box half-extents per side: a non-bracket side shrinks, a bracket side
	// keeps its full panel footprint (it already spans two panels, so there
	// is no benefit to reasoning about a "shrunk" single-panel box there).
	aHalfX, aHalfY := p.PanelHalfWidth, p.PanelHalfHeight
	if !aIsBracket {
		aHalfX, aHalfY = shrinkX, shrinkY
	}
	bHalfX, bHalfY := p.PanelHalfWidth, p.PanelHalfHeight
	if !bIsBracket {
		bHalfX, bHalfY = shrinkX, shrinkY
	}

	gapX := math.Abs(a.X-b.X) - aHalfX - bHalfX
	gapY := math.Abs(a.Y-b.Y) - aHalfY - bHalfY
	if gapX < 0 {
		gapX = 0
	}
	if gapY < 0 {
		gapY = 0
	}

	d := math.Sqrt(gapX*gapX + gapY*gapY)
	raw := rawDistance(a, b)
	if d > raw {
		d = raw
	}
	return d
}

// Width returns the pad's horizontal extent (max X minus min X across
// Positions), used by the search core's transition side/cutoff logic.
func (p *Pad) Width() float64 {
	if len(p.Positions) == 0 {
		return 0
	}
	minX, maxX := p.Positions[0].X, p.Positions[0].X
	for _, pos := range p.Positions[1:] {
		if pos.X < minX {
			minX = pos.X
		}
		if pos.X > maxX {
			maxX = pos.X
		}
	}
	return maxX - minX
}

// MinX returns the smallest X coordinate among all arrow positions.
func (p *Pad) MinX() float64 {
	if len(p.Positions) == 0 {
		return 0
	}
	minX := p.Positions[0].X
	for _, pos := range p.Positions[1:] {
		if pos.X < minX {
			minX = pos.X
		}
	}
	return minX
}
