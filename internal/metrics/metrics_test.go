package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatherFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

func TestRegistry_ObserveEvaluation(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRegistry(reg)

	r.ObserveEvaluation("TREND_4H", true, 85)
	r.ObserveEvaluation("TREND_4H", false, 0)
	r.ObserveEvaluation("SWING_3D_1D_4H", false, 0)

	evals := gatherFamily(t, reg, "playbook_evaluations_total")
	require.NotNil(t, evals)
	total := 0.0
	for _, m := range evals.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	assert.Equal(t, 3.0, total)

	failures := gatherFamily(t, reg, "playbook_gate_failures_total")
	require.NotNil(t, failures)
	assert.Len(t, failures.GetMetric(), 2, "one failure series per strategy")

	conf := gatherFamily(t, reg, "playbook_confidence")
	require.NotNil(t, conf)
	require.Len(t, conf.GetMetric(), 1, "only valid evaluations record confidence")
	assert.Equal(t, uint64(1), conf.GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestRegistry_ObserveDecision(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRegistry(reg)

	r.ObserveDecision("TREND_4H")
	r.ObserveDecision("")

	decisions := gatherFamily(t, reg, "playbook_decisions_total")
	require.NotNil(t, decisions)

	byLabel := make(map[string]float64)
	for _, m := range decisions.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == "best_signal" {
				byLabel[l.GetValue()] = m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, byLabel["TREND_4H"])
	assert.Equal(t, 1.0, byLabel["none"], "empty best signal counts as none")
}

func TestRegistry_NilSafe(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.ObserveEvaluation("TREND_4H", true, 80)
		r.ObserveDecision("")
	})
}
