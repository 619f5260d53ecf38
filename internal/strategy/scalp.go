package strategy

import (
	"fmt"

	"github.com/quantfold/playbook/internal/domain"
	"github.com/quantfold/playbook/internal/risk"
)

// ScalpConfig holds the weighting for the 15m/5m scalp inside a 4h/1h trend.
type ScalpConfig struct {
	TrendAlignBase float64   `yaml:"trend_align_base"` // 50
	DualStochBonus float64   `yaml:"dual_stoch_bonus"` // 25 when both curl, half for one
	TightEMABonus  float64   `yaml:"tight_ema_bonus"`  // 10
	TightBandPct   float64   `yaml:"tight_band_pct"`   // both within ±0.35% of EMA21
	EntryBandPct   float64   `yaml:"entry_band_pct"`   // 0.5
	RiskMultiples  []float64 `yaml:"risk_multiples"`   // 1.5R, 3R
}

// DefaultScalpConfig returns the standard scalp weighting.
func DefaultScalpConfig() ScalpConfig {
	return ScalpConfig{
		TrendAlignBase: 50.0,
		DualStochBonus: 25.0,
		TightEMABonus:  10.0,
		TightBandPct:   0.35,
		EntryBandPct:   0.5,
		RiskMultiples:  []float64{1.5, 3},
	}
}

// Scalp trades 15m/5m pullbacks in the direction of an aligned 4h/1h trend.
type Scalp struct {
	config ScalpConfig
}

func NewScalp() *Scalp {
	return &Scalp{config: DefaultScalpConfig()}
}

func (s *Scalp) Name() string { return NameScalp }

func (s *Scalp) Evaluate(in Input) Result {
	h4, ok := in.Snapshots.Get(domain.TF4Hour)
	if !ok {
		return invalid(NameScalp, "4h snapshot missing")
	}
	if h4.Trend == domain.TrendFlat {
		return invalid(NameScalp, "4h trend is FLAT")
	}
	dir := domain.DirectionFromTrend(h4.Trend)

	h1, ok := in.Snapshots.Get(domain.TF1Hour)
	if !ok {
		return invalid(NameScalp, "1h snapshot missing")
	}
	if domain.DirectionFromTrend(h1.Trend) != dir {
		return invalid(NameScalp,
			fmt.Sprintf("1h trend %s does not agree with 4h %s", h1.Trend, h4.Trend))
	}

	m15, ok := in.Snapshots.Get(domain.TF15Min)
	if !ok {
		return invalid(NameScalp, "15m snapshot missing")
	}
	m5, ok := in.Snapshots.Get(domain.TF5Min)
	if !ok {
		return invalid(NameScalp, "5m snapshot missing")
	}
	for _, snap := range []domain.TimeframeSnapshot{m15, m5} {
		if snap.Pullback != domain.PullbackEntryZone && snap.Pullback != domain.PullbackRetracing {
			return invalid(NameScalp,
				fmt.Sprintf("%s pullback %s, need ENTRY_ZONE or RETRACING", snap.Timeframe, snap.Pullback))
		}
	}

	var notes []string
	confidence := s.config.TrendAlignBase

	// Dual stochastic curl in the trade direction.
	curling := 0
	for _, snap := range []domain.TimeframeSnapshot{m15, m5} {
		if stochFavorable(snap.StochCondition, dir) {
			curling++
		}
	}
	confidence += s.config.DualStochBonus * float64(curling) / 2
	if curling < 2 {
		notes = append(notes, fmt.Sprintf("stoch curl on %d of 2 lower timeframes", curling))
	}

	// Both lower timeframes hugging their EMA21.
	if absPct(m15.EMA21DistPct) <= s.config.TightBandPct && absPct(m5.EMA21DistPct) <= s.config.TightBandPct {
		confidence += s.config.TightEMABonus
	}

	confidence += in.Aux.ConfidenceModifier(dir)

	g := risk.Compute(risk.Params{
		Direction:       dir,
		Anchor:          m15.EMA21,
		StopRef:         stopReference(dir, in.Snapshots, domain.TF15Min, domain.TF5Min),
		Multiples:       s.config.RiskMultiples,
		BandPct:         s.config.EntryBandPct,
		StopBufferPct:   in.Profile.StopBufferPct,
		FallbackStopPct: in.Profile.FallbackStopPct,
	})

	reason := fmt.Sprintf("4h/1h %s aligned, scalping the 15m/5m pullback", h4.Trend)
	return finish(NameScalp, dir, confidence, g, reason, 1.0, notes)
}

func absPct(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
