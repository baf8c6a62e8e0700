package padconfig_test

import (
	"testing"

	"github.com/padperform/padperform/chart"
	"github.com/padperform/padperform/padconfig"
)

func TestDefaultConfig_ValidatesClean(t *testing.T) {
	c := padconfig.DefaultConfig()
	if err := c.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestConfig_Validate_InvertedTransitionRange(t *testing.T) {
	c := padconfig.DefaultConfig()
	c.Transitions.StepsPerTransitionMin = 10
	c.Transitions.StepsPerTransitionMax = 2
	if err := c.Validate(); err != padconfig.ErrInvertedRange {
		t.Fatalf("expected ErrInvertedRange, got %v", err)
	}
}

func TestConfig_Validate_OutOfUnitRange(t *testing.T) {
	c := padconfig.DefaultConfig()
	c.Facing.MaxInwardPercentage = 1.5
	if err := c.Validate(); err != padconfig.ErrOutOfUnitRange {
		t.Fatalf("expected ErrOutOfUnitRange, got %v", err)
	}
}

func TestConfig_Validate_NegativeLateralTightening(t *testing.T) {
	c := padconfig.DefaultConfig()
	c.LateralTightening.Speed = -1
	if err := c.Validate(); err != padconfig.ErrNegativeValue {
		t.Fatalf("expected ErrNegativeValue, got %v", err)
	}
}

func TestArrowWeights_Normalize(t *testing.T) {
	w := padconfig.ArrowWeights{
		chart.StepNewArrow: {1, 1, 2},
	}
	if err := w.Normalize(); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	sum := 0.0
	for _, v := range w[chart.StepNewArrow] {
		sum += v
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("normalized weights sum = %f; want ~1", sum)
	}
}

func TestArrowWeights_Normalize_AllZero(t *testing.T) {
	w := padconfig.ArrowWeights{
		chart.StepNewArrow: {0, 0, 0},
	}
	if err := w.Normalize(); err != padconfig.ErrAllWeightsZero {
		t.Fatalf("expected ErrAllWeightsZero, got %v", err)
	}
}

func TestPatternConfig_Validate_BadBeatSubDivision(t *testing.T) {
	p := padconfig.DefaultPatternConfig()
	p.BeatSubDivision = 5
	if err := p.Validate(); err != padconfig.ErrInvalidBeatSubdivision {
		t.Fatalf("expected ErrInvalidBeatSubdivision, got %v", err)
	}
}

func TestPatternConfig_Validate_Default(t *testing.T) {
	p := padconfig.DefaultPatternConfig()
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestExpressedChartConfig_Validate_BPMOrdering(t *testing.T) {
	c := &padconfig.ExpressedChartConfig{
		DefaultBracketParsingMethod:                     padconfig.BracketParsingBalanced,
		BracketParsingDetermination:                     padconfig.DetermineMethodDynamically,
		BalancedBracketsPerMinuteForAggressiveBrackets:   10,
		BalancedBracketsPerMinuteForNoBrackets:           20,
	}
	if err := c.Validate(); err != padconfig.ErrInvertedRange {
		t.Fatalf("expected ErrInvertedRange, got %v", err)
	}
}
