package strategy

import (
	"fmt"

	"github.com/quantfold/playbook/internal/bias"
	"github.com/quantfold/playbook/internal/domain"
	"github.com/quantfold/playbook/internal/profile"
	"github.com/quantfold/playbook/internal/risk"
)

// Strategy names, stable identifiers in the composite decision.
const (
	NameTrend4H         = "TREND_4H"
	NameSwing           = "SWING_3D_1D_4H"
	NameScalp           = "SCALP_15M_5M"
	NameMicroScalp      = "MICRO_SCALP_OVERRIDE"
	NameAggroScalp      = "AGGRO_SCALP_1H"
	NameAggroMicroScalp = "AGGRO_MICRO_SCALP"
)

// Input is everything an evaluator may consult. Evaluators are pure functions
// over it; nothing here is mutated.
type Input struct {
	Symbol    string
	Snapshots domain.SnapshotSet
	Profile   profile.Profile
	Bias      bias.Bias
	Aux       domain.AuxSignals
}

// Evaluator is one strategy variant. Evaluate runs the gatekeeper phase first;
// any precondition failure short-circuits to an invalid result carrying the
// specific failed check, then scoring and geometry run only on a pass.
type Evaluator interface {
	Name() string
	Evaluate(in Input) Result
}

// Zone mirrors risk.Zone on the output contract.
type Zone struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// RiskReward carries the per-target reward multiples; tp2/tp3 are nil when the
// strategy configures fewer targets.
type RiskReward struct {
	TP1RR *float64 `json:"tp1_rr"`
	TP2RR *float64 `json:"tp2_rr"`
	TP3RR *float64 `json:"tp3_rr"`
}

// Invalidation names the level that voids the setup.
type Invalidation struct {
	Level       float64 `json:"level"`
	Description string  `json:"description"`
}

// Result is the outcome of one strategy evaluation. Valid is false exactly
// when Direction is NoTrade; Reason then names the failed gatekeeper with its
// measured value and threshold.
type Result struct {
	Strategy     string           `json:"strategy"`
	Valid        bool             `json:"valid"`
	Direction    domain.Direction `json:"direction"`
	Confidence   float64          `json:"confidence"`
	EntryZone    Zone             `json:"entry_zone"`
	StopLoss     float64          `json:"stop_loss"`
	Targets      [3]*float64      `json:"targets"` // padded with null for unused slots
	RiskReward   RiskReward       `json:"risk_reward"`
	Invalidation Invalidation     `json:"invalidation"`
	Reason       string           `json:"reason"`
	Override     bool             `json:"override"`
	Aggressive   bool             `json:"aggressive"`
	RiskFraction float64          `json:"risk_fraction"`
	Notes        []string         `json:"notes,omitempty"`
}

// Skipped records a strategy that was not evaluated, e.g. when the caller
// requested a specific strategy. The result is indistinguishable from a
// gatekeeper failure except for its reason text.
func Skipped(name, reason string) Result {
	return invalid(name, reason)
}

// invalid builds the gatekeeper-failure result for a strategy.
func invalid(name, reason string) Result {
	return Result{
		Strategy:  name,
		Valid:     false,
		Direction: domain.NoTrade,
		Reason:    reason,
	}
}

// stochFavorable reports whether the stochastic condition supports entering on
// the given side: oversold or bullish for longs, overbought or bearish for
// shorts.
func stochFavorable(cond domain.StochCondition, dir domain.Direction) bool {
	if dir == domain.Long {
		return cond == domain.StochOversold || cond == domain.StochBullish
	}
	return cond == domain.StochOverbought || cond == domain.StochBearish
}

// stochExtreme reports a fully stretched oscillator on the favorable side.
func stochExtreme(cond domain.StochCondition, dir domain.Direction) bool {
	if dir == domain.Long {
		return cond == domain.StochOversold
	}
	return cond == domain.StochOverbought
}

// stopReference picks the stop level across the anchor timeframes: the lowest
// available swing low for longs, the highest available swing high for shorts.
// A missing level on one timeframe falls through to the others; nil means no
// anchor timeframe had one.
func stopReference(dir domain.Direction, snapshots domain.SnapshotSet, tfs ...string) *float64 {
	var ref *float64
	for _, tf := range tfs {
		snap, ok := snapshots.Get(tf)
		if !ok {
			continue
		}
		var level *float64
		if dir == domain.Long {
			level = snap.SwingLow
		} else {
			level = snap.SwingHigh
		}
		if level == nil {
			continue
		}
		if ref == nil ||
			(dir == domain.Long && *level < *ref) ||
			(dir == domain.Short && *level > *ref) {
			v := *level
			ref = &v
		}
	}
	return ref
}

// finish assembles a valid result from the computed geometry.
func finish(name string, dir domain.Direction, confidence float64, g risk.Geometry, reason string, riskFraction float64, notes []string) Result {
	res := Result{
		Strategy:     name,
		Valid:        true,
		Direction:    dir,
		Confidence:   domain.ClampConfidence(confidence),
		EntryZone:    Zone{Min: g.EntryZone.Min, Max: g.EntryZone.Max},
		StopLoss:     g.StopLoss,
		Reason:       reason,
		RiskFraction: riskFraction,
		Notes:        append(notes, g.Notes...),
	}

	rrs := [3]**float64{&res.RiskReward.TP1RR, &res.RiskReward.TP2RR, &res.RiskReward.TP3RR}
	for i := range g.Targets {
		if i >= len(res.Targets) {
			break
		}
		t := g.Targets[i]
		res.Targets[i] = &t
		rr := g.RiskReward[i]
		*rrs[i] = &rr
	}

	side := "below"
	if dir == domain.Short {
		side = "above"
	}
	res.Invalidation = Invalidation{
		Level:       g.StopLoss,
		Description: fmt.Sprintf("close %s %.4f invalidates the setup", side, g.StopLoss),
	}

	return res
}
