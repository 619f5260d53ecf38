package strategy

import (
	"fmt"

	"github.com/quantfold/playbook/internal/domain"
	"github.com/quantfold/playbook/internal/risk"
)

// AggroMicroScalpConfig is the loosest variant: the micro band widens to the
// aggressive profile width and only one of the two lower timeframes needs a
// stretched stochastic. It carries the lowest confidence ceiling of all
// strategies and one third of standard risk.
type AggroMicroScalpConfig struct {
	BaseConfidence    float64   `yaml:"base_confidence"`    // 25
	DualExtremeBonus  float64   `yaml:"dual_extreme_bonus"` // 8 when both are stretched
	TightnessBonus    float64   `yaml:"tightness_bonus"`    // 7
	ConfidenceCeiling float64   `yaml:"confidence_ceiling"` // 40, lowest of all strategies
	RiskFraction      float64   `yaml:"risk_fraction"`      // 1/3
	RiskMultiples     []float64 `yaml:"risk_multiples"`     // 1R, 1.5R
}

// DefaultAggroMicroScalpConfig returns the aggressive micro-scalp weighting.
func DefaultAggroMicroScalpConfig() AggroMicroScalpConfig {
	return AggroMicroScalpConfig{
		BaseConfidence:    25.0,
		DualExtremeBonus:  8.0,
		TightnessBonus:    7.0,
		ConfidenceCeiling: 40.0,
		RiskFraction:      1.0 / 3.0,
		RiskMultiples:     []float64{1, 1.5},
	}
}

// AggroMicroScalp is the last rung of the aggressive cascade.
type AggroMicroScalp struct {
	config AggroMicroScalpConfig
}

func NewAggroMicroScalp() *AggroMicroScalp {
	return &AggroMicroScalp{config: DefaultAggroMicroScalpConfig()}
}

func (s *AggroMicroScalp) Name() string { return NameAggroMicroScalp }

func (s *AggroMicroScalp) Evaluate(in Input) Result {
	if !in.Profile.IsAggressive() {
		return invalid(NameAggroMicroScalp, "aggro micro scalp requires AGGRESSIVE mode")
	}

	m15, ok := in.Snapshots.Get(domain.TF15Min)
	if !ok {
		return invalid(NameAggroMicroScalp, "15m snapshot missing")
	}
	m5, ok := in.Snapshots.Get(domain.TF5Min)
	if !ok {
		return invalid(NameAggroMicroScalp, "5m snapshot missing")
	}

	band := in.Profile.MicroBandPct
	d15 := absPct(m15.EMA21DistPct)
	d5 := absPct(m5.EMA21DistPct)
	if d15 > band || d5 > band {
		return invalid(NameAggroMicroScalp,
			fmt.Sprintf("15m/5m EMA21 distance %.2f%%/%.2f%% exceeds ±%.2f%% band", d15, d5, band))
	}

	// Only one stretched stochastic is required, but the two must not point
	// opposite ways.
	oversold := m15.StochCondition == domain.StochOversold || m5.StochCondition == domain.StochOversold
	overbought := m15.StochCondition == domain.StochOverbought || m5.StochCondition == domain.StochOverbought
	var dir domain.Direction
	switch {
	case oversold && overbought:
		return invalid(NameAggroMicroScalp,
			fmt.Sprintf("15m stoch %s conflicts with 5m stoch %s", m15.StochCondition, m5.StochCondition))
	case oversold:
		dir = domain.Long
	case overbought:
		dir = domain.Short
	default:
		return invalid(NameAggroMicroScalp,
			fmt.Sprintf("neither 15m (%s) nor 5m (%s) stoch is stretched", m15.StochCondition, m5.StochCondition))
	}

	confidence := s.config.BaseConfidence
	if stochExtreme(m15.StochCondition, dir) && stochExtreme(m5.StochCondition, dir) {
		confidence += s.config.DualExtremeBonus
	}
	if d15 <= band/2 && d5 <= band/2 {
		confidence += s.config.TightnessBonus
	}
	confidence += in.Aux.ConfidenceModifier(dir)
	if confidence > s.config.ConfidenceCeiling {
		confidence = s.config.ConfidenceCeiling
	}

	g := risk.Compute(risk.Params{
		Direction:       dir,
		Anchor:          m15.EMA21,
		StopRef:         stopReference(dir, in.Snapshots, domain.TF15Min, domain.TF5Min),
		Multiples:       s.config.RiskMultiples,
		BandPct:         band,
		StopBufferPct:   in.Profile.StopBufferPct,
		FallbackStopPct: in.Profile.FallbackStopPct,
	})

	reason := fmt.Sprintf("aggressive micro scalp, %s off a stretched lower-timeframe stoch", dir)
	notes := []string{"one-third standard risk"}
	res := finish(NameAggroMicroScalp, dir, confidence, g, reason, s.config.RiskFraction, notes)
	res.Override = true
	res.Aggressive = true
	return res
}
