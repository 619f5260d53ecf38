package strategy

import (
	"strings"
	"testing"

	"github.com/quantfold/playbook/internal/domain"
)

func scalpShortSnaps() domain.SnapshotSet {
	h4 := mkSnap(domain.TF4Hour, domain.TrendDown)
	h1 := mkSnap(domain.TF1Hour, domain.TrendDown)

	m15 := mkSnap(domain.TF15Min, domain.TrendDown)
	m15.Pullback = domain.PullbackEntryZone
	m15.StochCondition = domain.StochBearish
	m15.EMA21DistPct = -0.2
	m15.SwingHigh = fp(102)

	m5 := mkSnap(domain.TF5Min, domain.TrendDown)
	m5.Pullback = domain.PullbackEntryZone
	m5.StochCondition = domain.StochBearish
	m5.EMA21DistPct = -0.15
	m5.SwingHigh = fp(101.5)

	return domain.SnapshotSet{
		domain.TF4Hour: h4,
		domain.TF1Hour: h1,
		domain.TF15Min: m15,
		domain.TF5Min:  m5,
	}
}

func TestScalp_GatekeeperFailures(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(domain.SnapshotSet)
		wantReason string
	}{
		{
			name: "flat 4h",
			mutate: func(s domain.SnapshotSet) {
				snap := s[domain.TF4Hour]
				snap.Trend = domain.TrendFlat
				s[domain.TF4Hour] = snap
			},
			wantReason: "4h trend is FLAT",
		},
		{
			name: "1h disagrees",
			mutate: func(s domain.SnapshotSet) {
				snap := s[domain.TF1Hour]
				snap.Trend = domain.TrendUp
				s[domain.TF1Hour] = snap
			},
			wantReason: "does not agree",
		},
		{
			name: "15m overextended",
			mutate: func(s domain.SnapshotSet) {
				snap := s[domain.TF15Min]
				snap.Pullback = domain.PullbackOverextended
				s[domain.TF15Min] = snap
			},
			wantReason: "15m pullback OVEREXTENDED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snaps := scalpShortSnaps()
			tt.mutate(snaps)
			res := NewScalp().Evaluate(stdInput(snaps))
			if res.Valid {
				t.Fatal("expected gatekeeper failure")
			}
			if !strings.Contains(res.Reason, tt.wantReason) {
				t.Errorf("reason %q does not mention %q", res.Reason, tt.wantReason)
			}
		})
	}
}

// Scenario: aligned 4h/1h downtrend with both lower timeframes in the entry
// zone and curling down yields a short with exactly 1.5R and 3R targets.
func TestScalp_AlignedDowntrendShort(t *testing.T) {
	res := NewScalp().Evaluate(stdInput(scalpShortSnaps()))
	if !res.Valid {
		t.Fatalf("expected valid scalp, got %q", res.Reason)
	}
	if res.Direction != domain.Short {
		t.Fatalf("direction = %s, want short", res.Direction)
	}

	// base 50 + dual stoch curl 25 + tight EMA 10
	if res.Confidence != 85 {
		t.Errorf("confidence = %.1f, want 85", res.Confidence)
	}

	if res.RiskReward.TP1RR == nil || *res.RiskReward.TP1RR != 1.5 {
		t.Error("tp1 must be 1.5R")
	}
	if res.RiskReward.TP2RR == nil || *res.RiskReward.TP2RR != 3 {
		t.Error("tp2 must be 3R")
	}
	if res.RiskReward.TP3RR != nil {
		t.Error("scalp has no third target")
	}

	// Stop comes from the higher of the 15m/5m swing highs.
	wantStop := 102.0 * 1.003
	if res.StopLoss != wantStop {
		t.Errorf("stop = %.4f, want %.4f", res.StopLoss, wantStop)
	}
	if res.StopLoss <= res.EntryZone.Max {
		t.Error("short stop must sit strictly above the entry zone")
	}
}

func TestScalp_SingleStochCurlScoresLess(t *testing.T) {
	snaps := scalpShortSnaps()
	m5 := snaps[domain.TF5Min]
	m5.StochCondition = domain.StochNeutral
	snaps[domain.TF5Min] = m5

	res := NewScalp().Evaluate(stdInput(snaps))
	if !res.Valid {
		t.Fatalf("one neutral stoch is not a gate failure: %q", res.Reason)
	}
	// base 50 + half curl 12.5 + tight EMA 10
	if res.Confidence != 72.5 {
		t.Errorf("confidence = %.1f, want 72.5", res.Confidence)
	}
	found := false
	for _, n := range res.Notes {
		if strings.Contains(n, "1 of 2") {
			found = true
		}
	}
	if !found {
		t.Error("partial stoch curl must be noted")
	}
}
