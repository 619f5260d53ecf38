package strategy

import (
	"fmt"

	"github.com/quantfold/playbook/internal/domain"
	"github.com/quantfold/playbook/internal/risk"
)

// MicroScalpConfig bounds the reduced-size EMA-confluence fallback. Confidence
// lives in a narrow 60-75 band; the ceiling is deliberate since this path only
// fires when every higher-priority strategy found nothing.
type MicroScalpConfig struct {
	BaseConfidence     float64   `yaml:"base_confidence"`      // 60
	TightnessBonus     float64   `yaml:"tightness_bonus"`      // up to 10
	StochStrengthBonus float64   `yaml:"stoch_strength_bonus"` // up to 5
	ConfidenceCeiling  float64   `yaml:"confidence_ceiling"`   // 75
	RiskMultiples      []float64 `yaml:"risk_multiples"`       // 1R, 1.5R
}

// DefaultMicroScalpConfig returns the standard micro-scalp weighting.
func DefaultMicroScalpConfig() MicroScalpConfig {
	return MicroScalpConfig{
		BaseConfidence:     60.0,
		TightnessBonus:     10.0,
		StochStrengthBonus: 5.0,
		ConfidenceCeiling:  75.0,
		RiskMultiples:      []float64{1, 1.5},
	}
}

// MicroScalp is the lower-timeframe override: both 15m and 5m pinned to their
// EMA21 inside the profile micro band with aligned stochastics, gated on a
// directional 1h. Results always carry override=true.
type MicroScalp struct {
	config MicroScalpConfig
}

func NewMicroScalp() *MicroScalp {
	return &MicroScalp{config: DefaultMicroScalpConfig()}
}

func (s *MicroScalp) Name() string { return NameMicroScalp }

func (s *MicroScalp) Evaluate(in Input) Result {
	h1, ok := in.Snapshots.Get(domain.TF1Hour)
	if !ok {
		return invalid(NameMicroScalp, "1h snapshot missing")
	}
	if h1.Trend == domain.TrendFlat {
		return invalid(NameMicroScalp, "1h trend is FLAT")
	}
	if h1.Pullback != domain.PullbackEntryZone && h1.Pullback != domain.PullbackRetracing {
		return invalid(NameMicroScalp,
			fmt.Sprintf("1h pullback %s, need ENTRY_ZONE or RETRACING", h1.Pullback))
	}
	dir := domain.DirectionFromTrend(h1.Trend)

	m15, ok := in.Snapshots.Get(domain.TF15Min)
	if !ok {
		return invalid(NameMicroScalp, "15m snapshot missing")
	}
	m5, ok := in.Snapshots.Get(domain.TF5Min)
	if !ok {
		return invalid(NameMicroScalp, "5m snapshot missing")
	}

	band := in.Profile.MicroBandPct
	d15 := absPct(m15.EMA21DistPct)
	d5 := absPct(m5.EMA21DistPct)
	if d15 > band || d5 > band {
		return invalid(NameMicroScalp,
			fmt.Sprintf("15m/5m EMA21 distance %.2f%%/%.2f%% exceeds ±%.2f%% band", d15, d5, band))
	}

	for _, snap := range []domain.TimeframeSnapshot{m15, m5} {
		if !stochFavorable(snap.StochCondition, dir) {
			return invalid(NameMicroScalp,
				fmt.Sprintf("%s stoch %s not aligned for %s entry", snap.Timeframe, snap.StochCondition, dir))
		}
	}

	confidence := s.config.BaseConfidence

	// Tightness: both timeframes well inside the band score full credit.
	switch {
	case d15 <= band/2 && d5 <= band/2:
		confidence += s.config.TightnessBonus
	case d15 <= band*0.75 && d5 <= band*0.75:
		confidence += s.config.TightnessBonus / 2
	}

	if stochExtreme(m15.StochCondition, dir) && stochExtreme(m5.StochCondition, dir) {
		confidence += s.config.StochStrengthBonus
	}

	confidence += in.Aux.ConfidenceModifier(dir)
	if confidence > s.config.ConfidenceCeiling {
		confidence = s.config.ConfidenceCeiling
	}

	g := risk.Compute(risk.Params{
		Direction:       dir,
		Anchor:          m15.EMA21,
		StopRef:         stopReference(dir, in.Snapshots, domain.TF15Min, domain.TF5Min, domain.TF1Hour),
		Multiples:       s.config.RiskMultiples,
		BandPct:         band,
		StopBufferPct:   in.Profile.StopBufferPct,
		FallbackStopPct: in.Profile.FallbackStopPct,
	})

	reason := fmt.Sprintf("1h %s with 15m/5m pinned inside ±%.2f%% EMA21 band", h1.Trend, band)
	notes := []string{"reduced-size lower-timeframe fallback"}
	res := finish(NameMicroScalp, dir, confidence, g, reason, 1.0, notes)
	res.Override = true
	return res
}
