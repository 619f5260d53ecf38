package strategy

import (
	"strings"
	"testing"

	"github.com/quantfold/playbook/internal/bias"
	"github.com/quantfold/playbook/internal/domain"
)

func TestAggroScalp_LockedOutsideAggressiveMode(t *testing.T) {
	res := NewAggroScalp().Evaluate(stdInput(domain.SnapshotSet{
		domain.TF1Hour: mkSnap(domain.TF1Hour, domain.TrendUp),
	}))
	if res.Valid {
		t.Fatal("aggro scalp must refuse STANDARD mode")
	}
	if !strings.Contains(res.Reason, "AGGRESSIVE mode") {
		t.Errorf("reason %q must name the mode requirement", res.Reason)
	}
}

func TestAggroScalp_WideBandAndFlatTrend(t *testing.T) {
	h1 := mkSnap(domain.TF1Hour, domain.TrendFlat)
	h1.StochK = 20
	h1.StochCondition = domain.StochOversold
	h1.EMA21DistPct = 1.5 // outside the ±1.0% standard band, inside ±1.75%

	res := NewAggroScalp().Evaluate(aggroInput(domain.SnapshotSet{domain.TF1Hour: h1}))
	if !res.Valid {
		t.Fatalf("expected valid aggro scalp, got %q", res.Reason)
	}
	if res.Direction != domain.Long {
		t.Fatalf("direction = %s, want long from the oversold stoch", res.Direction)
	}
	if !res.Override || !res.Aggressive {
		t.Error("aggro results carry override and aggressive flags")
	}
	if res.RiskFraction != 0.5 {
		t.Errorf("risk fraction = %.2f, want half standard risk", res.RiskFraction)
	}
	if res.Confidence > 50 {
		t.Errorf("confidence = %.1f, exceeds the halved ceiling", res.Confidence)
	}
}

func TestAggroScalp_BandGateCitesMeasurement(t *testing.T) {
	h1 := mkSnap(domain.TF1Hour, domain.TrendUp)
	h1.EMA21DistPct = 2.5

	res := NewAggroScalp().Evaluate(aggroInput(domain.SnapshotSet{domain.TF1Hour: h1}))
	if res.Valid {
		t.Fatal("2.5% distance must fail the ±1.75% band")
	}
	if !strings.Contains(res.Reason, "2.50%") || !strings.Contains(res.Reason, "±1.75% band") {
		t.Errorf("reason %q must carry the measured distance and the band", res.Reason)
	}
}

func TestAggroScalp_StochSideGate(t *testing.T) {
	h1 := mkSnap(domain.TF1Hour, domain.TrendUp)
	h1.StochK = 82 // above the 75 favorable ceiling for longs

	res := NewAggroScalp().Evaluate(aggroInput(domain.SnapshotSet{domain.TF1Hour: h1}))
	if res.Valid {
		t.Fatal("stoch above 75 must fail the long gate")
	}
	if !strings.Contains(res.Reason, "82.0") || !strings.Contains(res.Reason, "75") {
		t.Errorf("reason %q must carry %%K and the threshold", res.Reason)
	}
}

func TestAggroScalp_CounterTrendCutoff(t *testing.T) {
	h1 := mkSnap(domain.TF1Hour, domain.TrendDown)
	h1.StochK = 60
	snaps := domain.SnapshotSet{domain.TF1Hour: h1}

	// Confident opposing bias refuses the counter-trend short.
	in := aggroInput(snaps)
	in.Bias = bias.Bias{Direction: domain.Long, Confidence: 80}
	res := NewAggroScalp().Evaluate(in)
	if res.Valid {
		t.Fatal("confident opposing HTF bias must refuse counter-trend entries")
	}
	if !strings.Contains(res.Reason, "counter-trend") {
		t.Errorf("reason %q must name the counter-trend refusal", res.Reason)
	}

	// A low-conviction bias lets the counter-trend entry through, noted.
	in.Bias = bias.Bias{Direction: domain.Long, Confidence: 30}
	res = NewAggroScalp().Evaluate(in)
	if !res.Valid {
		t.Fatalf("low-conviction bias permits counter-trend entries, got %q", res.Reason)
	}
	found := false
	for _, n := range res.Notes {
		if strings.Contains(n, "counter-trend") {
			found = true
		}
	}
	if !found {
		t.Error("counter-trend entries must be noted")
	}
}

func TestAggroMicroScalp_LockedOutsideAggressiveMode(t *testing.T) {
	res := NewAggroMicroScalp().Evaluate(stdInput(domain.SnapshotSet{}))
	if res.Valid || !strings.Contains(res.Reason, "AGGRESSIVE mode") {
		t.Fatalf("aggro micro scalp must refuse STANDARD mode, got %+v", res)
	}
}

func TestAggroMicroScalp_SingleStretchedStochSuffices(t *testing.T) {
	m15 := mkSnap(domain.TF15Min, domain.TrendUp)
	m15.EMA21DistPct = 0.5
	m15.StochCondition = domain.StochOversold

	m5 := mkSnap(domain.TF5Min, domain.TrendUp)
	m5.EMA21DistPct = 0.4
	m5.StochCondition = domain.StochNeutral // only one stretched timeframe needed

	res := NewAggroMicroScalp().Evaluate(aggroInput(domain.SnapshotSet{
		domain.TF15Min: m15,
		domain.TF5Min:  m5,
	}))
	if !res.Valid {
		t.Fatalf("one stretched stoch suffices in aggressive mode, got %q", res.Reason)
	}
	if res.Direction != domain.Long {
		t.Fatalf("direction = %s, want long", res.Direction)
	}
	if res.Confidence > 40 {
		t.Errorf("confidence = %.1f, exceeds the lowest ceiling of all strategies", res.Confidence)
	}
	if res.RiskFraction < 0.33 || res.RiskFraction > 0.34 {
		t.Errorf("risk fraction = %.3f, want one third", res.RiskFraction)
	}
	if !res.Override || !res.Aggressive {
		t.Error("aggro micro results carry override and aggressive flags")
	}
}

func TestAggroMicroScalp_ConflictingExtremesFail(t *testing.T) {
	m15 := mkSnap(domain.TF15Min, domain.TrendUp)
	m15.StochCondition = domain.StochOversold
	m5 := mkSnap(domain.TF5Min, domain.TrendUp)
	m5.StochCondition = domain.StochOverbought

	res := NewAggroMicroScalp().Evaluate(aggroInput(domain.SnapshotSet{
		domain.TF15Min: m15,
		domain.TF5Min:  m5,
	}))
	if res.Valid {
		t.Fatal("opposing stoch extremes must fail the gate")
	}
	if !strings.Contains(res.Reason, "conflicts") {
		t.Errorf("reason %q must name the conflict", res.Reason)
	}
}

func TestAggroMicroScalp_NoStretchFails(t *testing.T) {
	res := NewAggroMicroScalp().Evaluate(aggroInput(domain.SnapshotSet{
		domain.TF15Min: mkSnap(domain.TF15Min, domain.TrendUp),
		domain.TF5Min:  mkSnap(domain.TF5Min, domain.TrendUp),
	}))
	if res.Valid {
		t.Fatal("neither timeframe stretched must fail the gate")
	}
	if !strings.Contains(res.Reason, "stretched") {
		t.Errorf("reason %q must explain the missing stretch", res.Reason)
	}
}
