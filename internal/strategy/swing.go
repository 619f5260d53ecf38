package strategy

import (
	"fmt"

	"github.com/quantfold/playbook/internal/domain"
	"github.com/quantfold/playbook/internal/risk"
)

// SwingConfig holds scoring bonuses and geometry for the 3d/1d/4h swing
// strategy. Base confidence is high because the gatekeeper is the strictest
// of all strategies; bonuses top it up toward the ceiling.
type SwingConfig struct {
	BaseConfidence     float64   `yaml:"base_confidence"`      // 70
	StochAlignBonus    float64   `yaml:"stoch_align_bonus"`    // up to 10
	TightEntryBonus    float64   `yaml:"tight_entry_bonus"`    // up to 5 for 4h entry zone
	OverextensionBonus float64   `yaml:"overextension_bonus"`  // up to 5 for deep 3d stretch
	StrongStretchPct   float64   `yaml:"strong_stretch_pct"`   // ≥10% from 3d EMA21
	EntryBandPct       float64   `yaml:"entry_band_pct"`       // 1.5
	RiskMultiples      []float64 `yaml:"risk_multiples"`       // 3R, 4R, 5R
}

// DefaultSwingConfig returns the standard swing weighting.
func DefaultSwingConfig() SwingConfig {
	return SwingConfig{
		BaseConfidence:     70.0,
		StochAlignBonus:    10.0,
		TightEntryBonus:    5.0,
		OverextensionBonus: 5.0,
		StrongStretchPct:   10.0,
		EntryBandPct:       1.5,
		RiskMultiples:      []float64{3, 4, 5},
	}
}

// Swing trades multi-day reversion toward the 1d EMA21 after a 3d stretch.
type Swing struct {
	config SwingConfig
}

func NewSwing() *Swing {
	return &Swing{config: DefaultSwingConfig()}
}

func (s *Swing) Name() string { return NameSwing }

func (s *Swing) Evaluate(in Input) Result {
	d3, ok := in.Snapshots.Get(domain.TF3Day)
	if !ok {
		return invalid(NameSwing, "3d snapshot missing")
	}
	d1, ok := in.Snapshots.Get(domain.TF1Day)
	if !ok {
		return invalid(NameSwing, "1d snapshot missing")
	}
	h4, ok := in.Snapshots.Get(domain.TF4Hour)
	if !ok {
		return invalid(NameSwing, "4h snapshot missing")
	}

	if d3.Trend == domain.TrendFlat {
		return invalid(NameSwing, "3d trend is FLAT")
	}
	if d1.Trend == domain.TrendFlat {
		return invalid(NameSwing, "1d trend is FLAT")
	}
	if h4.Trend == domain.TrendFlat {
		return invalid(NameSwing, "4h trend is FLAT")
	}

	if d3.Pullback != domain.PullbackOverextended && d3.Pullback != domain.PullbackRetracing {
		return invalid(NameSwing,
			fmt.Sprintf("3d pullback %s, need OVEREXTENDED or RETRACING", d3.Pullback))
	}
	if d1.Pullback != domain.PullbackRetracing && d1.Pullback != domain.PullbackEntryZone {
		return invalid(NameSwing,
			fmt.Sprintf("1d pullback %s, need RETRACING or ENTRY_ZONE", d1.Pullback))
	}

	dir := domain.DirectionFromTrend(d3.Trend)

	var notes []string
	confidence := s.config.BaseConfidence

	// Strong stochastic alignment across 3d and 1d.
	aligned := 0
	for _, snap := range []domain.TimeframeSnapshot{d3, d1} {
		if stochFavorable(snap.StochCondition, dir) {
			aligned++
		}
	}
	confidence += s.config.StochAlignBonus * float64(aligned) / 2

	// Tight 4h entry.
	switch h4.Pullback {
	case domain.PullbackEntryZone:
		confidence += s.config.TightEntryBonus
	case domain.PullbackRetracing:
		confidence += s.config.TightEntryBonus / 2
	}

	// Deep 3d stretch gives the reversion more room.
	stretch := d3.EMA21DistPct
	if stretch < 0 {
		stretch = -stretch
	}
	if d3.Pullback == domain.PullbackOverextended && stretch >= s.config.StrongStretchPct {
		confidence += s.config.OverextensionBonus
		notes = append(notes, fmt.Sprintf("3d overextension %.1f%% from EMA21", stretch))
	}

	confidence += in.Aux.ConfidenceModifier(dir)

	g := risk.Compute(risk.Params{
		Direction:       dir,
		Anchor:          d1.EMA21,
		StopRef:         stopReference(dir, in.Snapshots, domain.TF3Day, domain.TF1Day, domain.TF4Hour),
		Multiples:       s.config.RiskMultiples,
		BandPct:         s.config.EntryBandPct,
		StopBufferPct:   in.Profile.StopBufferPct,
		FallbackStopPct: in.Profile.FallbackStopPct,
	})

	reason := fmt.Sprintf("3d %s with 1d pullback %s, swinging back to the 1d EMA21", d3.Trend, d1.Pullback)
	return finish(NameSwing, dir, confidence, g, reason, 1.0, notes)
}
