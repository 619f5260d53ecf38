package strategy

import (
	"fmt"

	"github.com/quantfold/playbook/internal/domain"
	"github.com/quantfold/playbook/internal/risk"
)

// AggroScalpConfig loosens the 1h scalp for AGGRESSIVE mode: a FLAT 1h is
// admissible, the pullback band widens, and the stochastic only has to be on
// the favorable side of 75/25 rather than fully reversed. The confidence
// ceiling is half the standard scale and position risk is halved.
type AggroScalpConfig struct {
	BaseConfidence    float64   `yaml:"base_confidence"`    // 30
	TrendBonus        float64   `yaml:"trend_bonus"`        // 10 for a directional 1h
	StochBonus        float64   `yaml:"stoch_bonus"`        // 5 for a fully reversed stoch
	StructureBonus    float64   `yaml:"structure_bonus"`    // 5 for pullback structure
	ConfidenceCeiling float64   `yaml:"confidence_ceiling"` // 50, half the standard ceiling
	PullbackBandPct   float64   `yaml:"pullback_band_pct"`  // ±1.75% vs ±1.0% standard
	StochLongCeiling  float64   `yaml:"stoch_long_ceiling"` // %K must be ≤75 for longs
	StochShortFloor   float64   `yaml:"stoch_short_floor"`  // %K must be ≥25 for shorts
	RiskFraction      float64   `yaml:"risk_fraction"`      // 0.5
	RiskMultiples     []float64 `yaml:"risk_multiples"`     // 1.5R, 3R
}

// DefaultAggroScalpConfig returns the aggressive 1h scalp weighting.
func DefaultAggroScalpConfig() AggroScalpConfig {
	return AggroScalpConfig{
		BaseConfidence:    30.0,
		TrendBonus:        10.0,
		StochBonus:        5.0,
		StructureBonus:    5.0,
		ConfidenceCeiling: 50.0,
		PullbackBandPct:   1.75,
		StochLongCeiling:  75.0,
		StochShortFloor:   25.0,
		RiskFraction:      0.5,
		RiskMultiples:     []float64{1.5, 3},
	}
}

// AggroScalp is the AGGRESSIVE-only 1h fallback, including permitted
// counter-trend entries while the HTF bias conviction stays low.
type AggroScalp struct {
	config AggroScalpConfig
}

func NewAggroScalp() *AggroScalp {
	return &AggroScalp{config: DefaultAggroScalpConfig()}
}

func (s *AggroScalp) Name() string { return NameAggroScalp }

func (s *AggroScalp) Evaluate(in Input) Result {
	if !in.Profile.IsAggressive() {
		return invalid(NameAggroScalp, "1h aggro scalp requires AGGRESSIVE mode")
	}

	h1, ok := in.Snapshots.Get(domain.TF1Hour)
	if !ok {
		return invalid(NameAggroScalp, "1h snapshot missing")
	}

	// FLAT is admissible here; fall back to the bias, then the stoch extreme,
	// for a directional cue.
	dir := domain.DirectionFromTrend(h1.Trend)
	var notes []string
	if dir == domain.NoTrade {
		switch {
		case in.Bias.Direction == domain.Long || in.Bias.Direction == domain.Short:
			dir = in.Bias.Direction
			notes = append(notes, fmt.Sprintf("1h FLAT, direction taken from HTF bias %s", dir))
		case h1.StochCondition == domain.StochOversold:
			dir = domain.Long
			notes = append(notes, "1h FLAT, direction taken from oversold stoch")
		case h1.StochCondition == domain.StochOverbought:
			dir = domain.Short
			notes = append(notes, "1h FLAT, direction taken from overbought stoch")
		default:
			return invalid(NameAggroScalp, "1h trend is FLAT with no directional cue")
		}
	}

	dist := absPct(h1.EMA21DistPct)
	if dist > s.config.PullbackBandPct {
		return invalid(NameAggroScalp,
			fmt.Sprintf("1h EMA21 distance %.2f%% exceeds ±%.2f%% band", dist, s.config.PullbackBandPct))
	}

	// Stoch only has to sit on the favorable side of 75/25.
	if dir == domain.Long && h1.StochK > s.config.StochLongCeiling {
		return invalid(NameAggroScalp,
			fmt.Sprintf("1h stoch %%K %.1f above %.0f ceiling for long", h1.StochK, s.config.StochLongCeiling))
	}
	if dir == domain.Short && h1.StochK < s.config.StochShortFloor {
		return invalid(NameAggroScalp,
			fmt.Sprintf("1h stoch %%K %.1f below %.0f floor for short", h1.StochK, s.config.StochShortFloor))
	}

	// Counter-trend entries are refused once the HTF bias carries conviction.
	if !in.Bias.Agrees(dir) && in.Bias.Confidence >= in.Profile.MinBiasConfidence {
		return invalid(NameAggroScalp,
			fmt.Sprintf("HTF bias %s confidence %.0f%% at or above %.0f%% cutoff forbids counter-trend %s",
				in.Bias.Direction, in.Bias.Confidence, in.Profile.MinBiasConfidence, dir))
	}
	if !in.Bias.Agrees(dir) {
		notes = append(notes,
			fmt.Sprintf("counter-trend %s against low-conviction HTF bias %s (%.0f%%)", dir, in.Bias.Direction, in.Bias.Confidence))
	}

	confidence := s.config.BaseConfidence
	if h1.Trend != domain.TrendFlat {
		confidence += s.config.TrendBonus
	}
	if stochFavorable(h1.StochCondition, dir) {
		confidence += s.config.StochBonus
	}
	if h1.Pullback == domain.PullbackEntryZone || h1.Pullback == domain.PullbackRetracing {
		confidence += s.config.StructureBonus
	}
	confidence += in.Aux.ConfidenceModifier(dir)
	if confidence > s.config.ConfidenceCeiling {
		confidence = s.config.ConfidenceCeiling
	}

	g := risk.Compute(risk.Params{
		Direction:       dir,
		Anchor:          h1.EMA21,
		StopRef:         stopReference(dir, in.Snapshots, domain.TF1Hour),
		Multiples:       s.config.RiskMultiples,
		BandPct:         s.config.PullbackBandPct,
		StopBufferPct:   in.Profile.StopBufferPct,
		FallbackStopPct: in.Profile.FallbackStopPct,
	})

	reason := fmt.Sprintf("aggressive 1h scalp, %s inside ±%.2f%% pullback band", dir, s.config.PullbackBandPct)
	res := finish(NameAggroScalp, dir, confidence, g, reason, s.config.RiskFraction, notes)
	res.Override = true
	res.Aggressive = true
	return res
}
