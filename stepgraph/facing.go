package stepgraph

import "github.com/padperform/padperform/pad"

// FacingSide classifies n's orientation relative to the pad's axis of
// symmetry: a crossed stance (the left foot physically to the right of the
// right foot) whose lateral spread is at least the inward cutoff fraction
// of the pad's width faces inward; an uncrossed stance whose lateral spread
// is at least the outward cutoff fraction faces outward; anything else is
// neutral.
//
// inwardCutoff and outwardCutoff are fractions of pad width (0..1), taken
// from padconfig.Config.Facing.{Inward,Outward}PercentageCutoff.
func FacingSide(n GraphNode, p *pad.Pad, inwardCutoff, outwardCutoff float64) Facing {
	left, right := FootPositions(n, p)
	width := p.Width()
	if width <= 0 {
		return FacingNeutral
	}
	if left.X > right.X {
		spread := (left.X - right.X) / width
		if spread >= inwardCutoff {
			return FacingInward
		}
		return FacingNeutral
	}
	spread := (right.X - left.X) / width
	if spread >= outwardCutoff {
		return FacingOutward
	}
	return FacingNeutral
}
