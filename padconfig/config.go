package padconfig

import "github.com/padperform/padperform/chart"

// unset is the sentinel used at the serialization boundary for "field not
// provided"; Normalize replaces it with a concrete default before Validate
// ever sees it.
const unset = -1.0

// TransitionsConfig gates and tunes the transition cost subroutines.
type TransitionsConfig struct {
	Enabled                    bool
	StepsPerTransitionMin      int
	StepsPerTransitionMax      int
	MinimumPadWidth            int
	TransitionCutoffPercentage float64
}

// FacingConfig gates and tunes the facing cost subroutine.
type FacingConfig struct {
	MaxInwardPercentage     float64
	InwardPercentageCutoff  float64
	MaxOutwardPercentage    float64
	OutwardPercentageCutoff float64
}

// LateralTighteningConfig gates and tunes the lateral-body-speed cost
// subroutine.
type LateralTighteningConfig struct {
	Enabled     bool
	RelativeNPS float64
	AbsoluteNPS float64
	Speed       float64
}

// StepTighteningConfig gates and tunes the travel-distance, travel-speed
// and stretch cost subroutines.
type StepTighteningConfig struct {
	SpeedTighteningEnabled     bool
	SpeedMinTimeSeconds        float64
	SpeedMaxTimeSeconds        float64
	SpeedTighteningMinDistance float64

	DistanceTighteningEnabled bool
	DistanceMin               float64
	DistanceMax               float64

	StretchTighteningEnabled bool
	StretchDistanceMin       float64
	StretchDistanceMax       float64

	LateralMinPanelDistance       float64
	LongitudinalMinPanelDistance  float64
}

// ArrowWeights maps a step-type to a per-lane weight vector. Weights are
// normalized to sum to 1 per step-type by Normalize.
type ArrowWeights map[chart.StepType][]float64

// Normalize rescales every entry of w to sum to 1, returning
// ErrAllWeightsZero for any step-type whose weights are all zero.
func (w ArrowWeights) Normalize() error {
	for st, lanes := range w {
		var sum float64
		for _, v := range lanes {
			sum += v
		}
		if sum == 0 {
			if len(lanes) == 0 {
				continue
			}
			return ErrAllWeightsZero
		}
		for i := range lanes {
			lanes[i] /= sum
		}
		w[st] = lanes
	}
	return nil
}

// Config is the cost-model configuration.
type Config struct {
	Transitions        TransitionsConfig
	Facing             FacingConfig
	LateralTightening  LateralTighteningConfig
	StepTightening     StepTighteningConfig
	ArrowWeights       ArrowWeights
}

// DefaultConfig returns permissive defaults: tightening features disabled,
// transitions disabled, facing limits at 100% (never triggers).
func DefaultConfig() *Config {
	return &Config{
		Transitions: TransitionsConfig{
			Enabled:                    false,
			StepsPerTransitionMin:      0,
			StepsPerTransitionMax:      1 << 30,
			MinimumPadWidth:            0,
			TransitionCutoffPercentage: 0.5,
		},
		Facing: FacingConfig{
			MaxInwardPercentage:     1.0,
			InwardPercentageCutoff:  1.0,
			MaxOutwardPercentage:    1.0,
			OutwardPercentageCutoff: 1.0,
		},
		LateralTightening: LateralTighteningConfig{
			Enabled:     false,
			RelativeNPS: 0,
			AbsoluteNPS: 0,
			Speed:       0,
		},
		StepTightening: StepTighteningConfig{
			SpeedTighteningEnabled:     false,
			SpeedMinTimeSeconds:        0,
			SpeedMaxTimeSeconds:        1,
			DistanceTighteningEnabled:  false,
			DistanceMin:                0,
			DistanceMax:                1,
			StretchTighteningEnabled:   false,
			StretchDistanceMin:         0,
			StretchDistanceMax:         1,
		},
		ArrowWeights: ArrowWeights{},
	}
}

// Option customizes a Config before validation.
type Option func(*Config)

// NewConfig applies defaults then each Option in order, matching
// dijkstra.DefaultOptions + functional-option composition.
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// WithTransitions overrides the TransitionsConfig.
func WithTransitions(t TransitionsConfig) Option {
	return func(c *Config) { c.Transitions = t }
}

// WithFacing overrides the FacingConfig.
func WithFacing(f FacingConfig) Option {
	return func(c *Config) { c.Facing = f }
}

// WithLateralTightening overrides the LateralTighteningConfig.
func WithLateralTightening(l LateralTighteningConfig) Option {
	return func(c *Config) { c.LateralTightening = l }
}

// WithStepTightening overrides the StepTighteningConfig.
func WithStepTightening(s StepTighteningConfig) Option {
	return func(c *Config) { c.StepTightening = s }
}

// WithArrowWeights overrides ArrowWeights.
func WithArrowWeights(w ArrowWeights) Option {
	return func(c *Config) { c.ArrowWeights = w }
}

// Normalize fills any sentinel-unset numeric fields with their documented
// defaults and normalizes ArrowWeights. Call before Validate.
func (c *Config) Normalize() error {
	if c.Transitions.StepsPerTransitionMin == unset {
		c.Transitions.StepsPerTransitionMin = 0
	}
	if c.Transitions.StepsPerTransitionMax == unset {
		c.Transitions.StepsPerTransitionMax = 1 << 30
	}
	if c.Transitions.MinimumPadWidth == unset {
		c.Transitions.MinimumPadWidth = 0
	}
	if c.Transitions.TransitionCutoffPercentage == unset {
		c.Transitions.TransitionCutoffPercentage = 0.5
	}
	if c.Facing.MaxInwardPercentage == unset {
		c.Facing.MaxInwardPercentage = 1.0
	}
	if c.Facing.MaxOutwardPercentage == unset {
		c.Facing.MaxOutwardPercentage = 1.0
	}
	return c.ArrowWeights.Normalize()
}

// Validate checks every field's range/invariant, returning a wrapped
// sentinel on the first violation.
func (c *Config) Validate() error {
	t := c.Transitions
	if t.StepsPerTransitionMin < 0 || t.StepsPerTransitionMax < 0 || t.MinimumPadWidth < 0 {
		return ErrNegativeValue
	}
	if t.StepsPerTransitionMin > t.StepsPerTransitionMax {
		return ErrInvertedRange
	}
	if t.TransitionCutoffPercentage < 0 || t.TransitionCutoffPercentage > 1 {
		return ErrOutOfUnitRange
	}

	f := c.Facing
	for _, v := range []float64{f.MaxInwardPercentage, f.InwardPercentageCutoff, f.MaxOutwardPercentage, f.OutwardPercentageCutoff} {
		if v < 0 || v > 1 {
			return ErrOutOfUnitRange
		}
	}

	lt := c.LateralTightening
	if lt.RelativeNPS < 0 || lt.AbsoluteNPS < 0 || lt.Speed < 0 {
		return ErrNegativeValue
	}

	st := c.StepTightening
	if st.SpeedMinTimeSeconds > st.SpeedMaxTimeSeconds {
		return ErrInvertedRange
	}
	if st.SpeedTighteningMinDistance < 0 {
		return ErrNegativeValue
	}
	if st.DistanceMin > st.DistanceMax {
		return ErrInvertedRange
	}
	if st.StretchDistanceMin > st.StretchDistanceMax {
		return ErrInvertedRange
	}
	if st.LateralMinPanelDistance < 0 || st.LongitudinalMinPanelDistance < 0 {
		return ErrNegativeValue
	}

	return nil
}
