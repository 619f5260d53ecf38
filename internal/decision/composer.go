package decision

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/quantfold/playbook/internal/bias"
	"github.com/quantfold/playbook/internal/domain"
	"github.com/quantfold/playbook/internal/metrics"
	"github.com/quantfold/playbook/internal/profile"
	"github.com/quantfold/playbook/internal/strategy"
)

// Request is one decision invocation. Requests are independent; the engine
// keeps no state across them.
type Request struct {
	Symbol    string             `json:"symbol"`
	Snapshots domain.SnapshotSet `json:"snapshots"`
	Mode      string             `json:"mode"`               // STANDARD or AGGRESSIVE
	Strategy  string             `json:"strategy,omitempty"` // optional: evaluate only this one
	Aux       domain.AuxSignals  `json:"aux"`
}

// Decision aggregates every strategy result plus the single selected best
// signal. It carries no wall clock so identical requests produce identical
// decisions.
type Decision struct {
	Symbol         string                     `json:"symbol"`
	Mode           string                     `json:"mode"`
	Bias           bias.Bias                  `json:"htf_bias"`
	Strategies     map[string]strategy.Result `json:"strategies"`
	BestSignal     string                     `json:"best_signal"` // empty when no setup exists
	AggressiveUsed bool                       `json:"aggressive_used"`
}

// Best returns the selected result, if any.
func (d Decision) Best() (strategy.Result, bool) {
	if d.BestSignal == "" {
		return strategy.Result{}, false
	}
	res, ok := d.Strategies[d.BestSignal]
	return res, ok
}

// Engine runs the evaluators in priority order and applies the fallback
// cascade. The profile table is read-only after construction, so a single
// Engine is safe for concurrent use.
type Engine struct {
	table      *profile.Table
	evaluators []strategy.Evaluator // cascade priority order
	metrics    *metrics.Registry
}

// NewEngine builds an engine over the given profile table. A nil table uses
// the built-in defaults.
func NewEngine(table *profile.Table) *Engine {
	if table == nil {
		table = profile.DefaultTable()
	}
	return &Engine{
		table: table,
		evaluators: []strategy.Evaluator{
			strategy.NewSwing(),
			strategy.NewTrend4H(),
			strategy.NewScalp(),
			strategy.NewMicroScalp(),
			strategy.NewAggroScalp(),
			strategy.NewAggroMicroScalp(),
		},
	}
}

// WithMetrics attaches a metrics registry. Metrics never influence the
// decision output.
func (e *Engine) WithMetrics(m *metrics.Registry) *Engine {
	e.metrics = m
	return e
}

// Decide evaluates the request and selects the best signal. All strategies
// are always evaluated so a NO_TRADE decision can explain precisely why no
// setup exists.
func (e *Engine) Decide(req Request) Decision {
	prof := e.table.Resolve(req.Mode)
	htf := bias.Compute(req.Snapshots)

	in := strategy.Input{
		Symbol:    req.Symbol,
		Snapshots: req.Snapshots,
		Profile:   prof,
		Bias:      htf,
		Aux:       req.Aux,
	}

	decision := Decision{
		Symbol:     req.Symbol,
		Mode:       prof.Name,
		Bias:       htf,
		Strategies: make(map[string]strategy.Result, len(e.evaluators)),
	}

	if req.Strategy != "" {
		e.decideForced(&decision, in, req.Strategy)
	} else {
		e.decideAuto(&decision, in, prof)
	}

	e.metrics.ObserveDecision(decision.BestSignal)
	log.Debug().
		Str("symbol", req.Symbol).
		Str("mode", prof.Name).
		Str("best_signal", decision.BestSignal).
		Bool("aggressive_used", decision.AggressiveUsed).
		Msg("decision composed")

	return decision
}

// decideForced evaluates only the requested strategy; the rest are recorded
// as skipped for introspection.
func (e *Engine) decideForced(decision *Decision, in strategy.Input, requested string) {
	found := false
	for _, ev := range e.evaluators {
		if ev.Name() != requested {
			decision.Strategies[ev.Name()] = strategy.Skipped(ev.Name(),
				fmt.Sprintf("not evaluated, %s requested explicitly", requested))
			continue
		}
		found = true
		res := ev.Evaluate(in)
		decision.Strategies[ev.Name()] = res
		e.metrics.ObserveEvaluation(ev.Name(), res.Valid, res.Confidence)
		if res.Valid {
			decision.BestSignal = ev.Name()
			decision.AggressiveUsed = res.Aggressive
		}
	}
	if !found {
		log.Warn().Str("strategy", requested).Msg("unknown strategy requested, nothing evaluated")
	}
}

// decideAuto runs the full cascade: swing, trend, scalp, micro override, then
// the aggressive fallbacks when the profile unlocks them. The first
// qualifying result is terminal; later evaluators still run for
// introspection.
func (e *Engine) decideAuto(decision *Decision, in strategy.Input, prof profile.Profile) {
	for _, ev := range e.evaluators {
		res := ev.Evaluate(in)
		decision.Strategies[ev.Name()] = res
		e.metrics.ObserveEvaluation(ev.Name(), res.Valid, res.Confidence)

		if !res.Valid || decision.BestSignal != "" {
			continue
		}

		switch ev.Name() {
		case strategy.NameSwing:
			if res.Confidence < prof.SwingConfidenceFloor {
				res.Notes = append(res.Notes, fmt.Sprintf(
					"confidence %.1f below %.1f floor, cascade continues", res.Confidence, prof.SwingConfidenceFloor))
				decision.Strategies[ev.Name()] = res
				continue
			}
			decision.BestSignal = ev.Name()
		case strategy.NameAggroScalp, strategy.NameAggroMicroScalp:
			// Evaluators refuse these outside AGGRESSIVE mode, so a valid
			// result here implies the profile unlocked them.
			decision.BestSignal = ev.Name()
			decision.AggressiveUsed = true
		default:
			decision.BestSignal = ev.Name()
		}
	}
}
