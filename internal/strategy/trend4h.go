package strategy

import (
	"fmt"

	"github.com/quantfold/playbook/internal/domain"
	"github.com/quantfold/playbook/internal/risk"
)

// Trend4HConfig holds the confidence weights and risk multiples for the 4h
// trend-following strategy.
type Trend4HConfig struct {
	TrendAlignWeight    float64   `yaml:"trend_align_weight"`    // 40
	ConfirmWeight       float64   `yaml:"confirm_weight"`        // 20 for 1h confirmation
	StochWeight         float64   `yaml:"stoch_weight"`          // 20
	StructureWeight     float64   `yaml:"structure_weight"`      // 10 for pullback structure
	ConfluenceWeight    float64   `yaml:"confluence_weight"`     // 10 for EMA200 confluence
	BiasConflictPenalty float64   `yaml:"bias_conflict_penalty"` // 15 when HTF bias opposes
	RiskMultiples       []float64 `yaml:"risk_multiples"`        // 1.5R, 2.5R
}

// DefaultTrend4HConfig returns the standard weighting.
func DefaultTrend4HConfig() Trend4HConfig {
	return Trend4HConfig{
		TrendAlignWeight:    40.0,
		ConfirmWeight:       20.0,
		StochWeight:         20.0,
		StructureWeight:     10.0,
		ConfluenceWeight:    10.0,
		BiasConflictPenalty: 15.0,
		RiskMultiples:       []float64{1.5, 2.5},
	}
}

// Trend4H trades pullbacks within an established 4h trend, confirmed on 1h.
type Trend4H struct {
	config Trend4HConfig
}

func NewTrend4H() *Trend4H {
	return &Trend4H{config: DefaultTrend4HConfig()}
}

func (s *Trend4H) Name() string { return NameTrend4H }

func (s *Trend4H) Evaluate(in Input) Result {
	h4, ok := in.Snapshots.Get(domain.TF4Hour)
	if !ok {
		return invalid(NameTrend4H, "4h snapshot missing")
	}

	// Gate: 4h trend must be directional unless the profile admits FLAT.
	if h4.Trend == domain.TrendFlat && !in.Profile.AllowFlatTrend {
		return invalid(NameTrend4H, "4h trend is FLAT")
	}

	dir := domain.DirectionFromTrend(h4.Trend)
	flatAnchor := false
	h1, hasH1 := in.Snapshots.Get(domain.TF1Hour)
	if dir == domain.NoTrade {
		// FLAT admitted: anchor the direction on 1h instead.
		if !hasH1 {
			return invalid(NameTrend4H, "4h trend is FLAT and 1h snapshot missing")
		}
		dir = domain.DirectionFromTrend(h1.Trend)
		if dir == domain.NoTrade {
			return invalid(NameTrend4H, "4h and 1h trends are both FLAT, no directional anchor")
		}
		flatAnchor = true
	}

	// Gate: 1h must not contradict the 4h direction.
	if hasH1 && domain.DirectionFromTrend(h1.Trend) == dir.Opposite() {
		return invalid(NameTrend4H,
			fmt.Sprintf("1h trend %s contradicts 4h %s", h1.Trend, h4.Trend))
	}

	var notes []string
	confidence := 0.0

	// Trend alignment, reduced when anchored on a FLAT 4h.
	if flatAnchor {
		confidence += s.config.TrendAlignWeight * 0.6
		notes = append(notes, "4h FLAT admitted by profile, direction anchored on 1h")
	} else {
		confidence += s.config.TrendAlignWeight
	}
	if !in.Bias.Agrees(dir) && in.Bias.Confidence >= in.Profile.MinBiasConfidence {
		confidence -= s.config.BiasConflictPenalty
		notes = append(notes,
			fmt.Sprintf("HTF bias %s (%.0f%%) opposes entry", in.Bias.Direction, in.Bias.Confidence))
	}

	// 1h confirmation.
	if hasH1 {
		switch domain.DirectionFromTrend(h1.Trend) {
		case dir:
			confidence += s.config.ConfirmWeight
		case domain.NoTrade:
			confidence += s.config.ConfirmWeight / 2
			notes = append(notes, "1h trend FLAT, partial confirmation")
		}
	} else {
		notes = append(notes, "1h snapshot missing, no confirmation credit")
	}

	// 4h stochastic alignment.
	switch {
	case stochFavorable(h4.StochCondition, dir):
		confidence += s.config.StochWeight
	case h4.StochCondition == domain.StochNeutral:
		confidence += s.config.StochWeight * 0.4
	}

	// Pullback structure on the anchor.
	if h4.Pullback == domain.PullbackRetracing || h4.Pullback == domain.PullbackEntryZone {
		confidence += s.config.StructureWeight
	}

	// EMA200 confluence: price on the trend side of the long average.
	if h4.EMA200 != nil {
		if (dir == domain.Long && h4.Price > *h4.EMA200) ||
			(dir == domain.Short && h4.Price < *h4.EMA200) {
			confidence += s.config.ConfluenceWeight
		}
	} else {
		notes = append(notes, "4h EMA200 unavailable, no confluence credit")
	}

	confidence += in.Aux.ConfidenceModifier(dir)

	g := risk.Compute(risk.Params{
		Direction:       dir,
		Anchor:          h4.EMA21,
		StopRef:         stopReference(dir, in.Snapshots, domain.TF4Hour, domain.TF1Hour),
		Multiples:       s.config.RiskMultiples,
		BandPct:         in.Profile.MaxPullbackPct,
		StopBufferPct:   in.Profile.StopBufferPct,
		FallbackStopPct: in.Profile.FallbackStopPct,
	})

	reason := fmt.Sprintf("4h %s with 1h confirmation, entering on pullback to EMA21", h4.Trend)
	if flatAnchor {
		reason = fmt.Sprintf("4h FLAT admitted, 1h %s anchor", h1.Trend)
	}
	return finish(NameTrend4H, dir, confidence, g, reason, 1.0, notes)
}
