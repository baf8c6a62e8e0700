package padconfig

// StartingFootChoice selects how Generate picks the first foot to step.
type StartingFootChoice int

const (
	// StartingFootRandom picks uniformly at random from the seed.
	StartingFootRandom StartingFootChoice = iota
	// StartingFootAutomatic picks the opposite of the previous step's foot.
	StartingFootAutomatic
	// StartingFootSpecified uses PatternConfig.StartingFootSpecified.
	StartingFootSpecified
)

// StartingLaneChoice selects how Generate picks each foot's starting lane.
type StartingLaneChoice int

const (
	// StartingLaneAutomaticSame infers the same lane as the previous footing.
	StartingLaneAutomaticSame StartingLaneChoice = iota
	// StartingLaneAutomaticNew infers a new lane relative to the previous footing.
	StartingLaneAutomaticNew
	// StartingLaneAutomaticSameOrNew infers either, by cost.
	StartingLaneAutomaticSameOrNew
	// StartingLaneSpecified uses the configured specified lane (falling
	// back to the previous footing's lane if invalid).
	StartingLaneSpecified
)

// EndingLaneChoice selects how Generate's two trailing placeholder steps
// are forced to end.
type EndingLaneChoice int

const (
	// EndingLaneAutomaticNewToFollowing forces a NewArrow step toward the following footing.
	EndingLaneAutomaticNewToFollowing EndingLaneChoice = iota
	// EndingLaneAutomaticSameToFollowing forces a SameArrow step toward the following footing.
	EndingLaneAutomaticSameToFollowing
	// EndingLaneAutomaticIgnoreFollowing ignores the following footing entirely.
	EndingLaneAutomaticIgnoreFollowing
	// EndingLaneAutomaticSameOrNewAsFollowing allows either, by cost.
	EndingLaneAutomaticSameOrNewAsFollowing
)

// FootChoiceConfig bundles a foot's start/end lane choice with its
// specified-lane fallback.
type FootChoiceConfig struct {
	StartChoice   StartingLaneChoice
	StartLane     int
	EndChoice     EndingLaneChoice
	EndLane       int
}

// PatternConfig configures Generate.
type PatternConfig struct {
	BeatSubDivision int

	StartingFootChoice    StartingFootChoice
	StartingFootSpecified int // 0 = left, 1 = right

	FootChoices [2]FootChoiceConfig // indexed by chart.Foot

	SameArrowStepWeight float64
	NewArrowStepWeight  float64

	LimitSameArrowsInARowPerFoot bool
	MaxSameArrowsInARowPerFoot   int

	StepTypeCheckPeriod int
}

// DefaultPatternConfig returns a config with automatic start/end choices
// and an even SameArrow/NewArrow split.
func DefaultPatternConfig() *PatternConfig {
	return &PatternConfig{
		BeatSubDivision:              4,
		StartingFootChoice:           StartingFootAutomatic,
		StartingFootSpecified:        0,
		SameArrowStepWeight:          1,
		NewArrowStepWeight:           1,
		LimitSameArrowsInARowPerFoot: false,
		MaxSameArrowsInARowPerFoot:   1 << 30,
		StepTypeCheckPeriod:          1,
	}
}

// ValidBeatSubDivisions lists the denominators this repo accepts, mirroring
// common rhythm-game subdivisions (quarter, eighth, twelfth, sixteenth,
// twenty-fourth, thirty-second, forty-eighth, sixty-fourth, one-ninety-second).
var ValidBeatSubDivisions = []int{1, 2, 3, 4, 6, 8, 12, 16, 24, 32, 48, 64, 192}

// Validate checks PatternConfig's invariants.
func (c *PatternConfig) Validate() error {
	valid := false
	for _, v := range ValidBeatSubDivisions {
		if c.BeatSubDivision == v {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidBeatSubdivision
	}
	if c.StartingFootSpecified != 0 && c.StartingFootSpecified != 1 {
		return ErrUnknownEnum
	}
	if c.SameArrowStepWeight < 0 || c.NewArrowStepWeight < 0 {
		return ErrNegativeValue
	}
	if c.MaxSameArrowsInARowPerFoot < 0 {
		return ErrNegativeValue
	}
	if c.StepTypeCheckPeriod < 0 {
		return ErrNegativeValue
	}
	for _, fc := range c.FootChoices {
		if fc.StartLane < -1 || fc.EndLane < -1 {
			return ErrNegativeValue
		}
	}
	return nil
}
