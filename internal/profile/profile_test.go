package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve_KnownModes(t *testing.T) {
	table := DefaultTable()

	std := table.Resolve("STANDARD")
	if std.Name != ModeStandard {
		t.Fatalf("Resolve(STANDARD) = %s", std.Name)
	}
	if std.MicroBandPct != 0.25 {
		t.Errorf("standard micro band = %.2f, want 0.25", std.MicroBandPct)
	}

	agg := table.Resolve("aggressive") // case-insensitive
	if agg.Name != ModeAggressive {
		t.Fatalf("Resolve(aggressive) = %s", agg.Name)
	}
	if !agg.IsAggressive() {
		t.Error("aggressive profile must report IsAggressive")
	}
}

func TestResolve_UnknownFailsClosedToStandard(t *testing.T) {
	table := DefaultTable()
	for _, mode := range []string{"", "TURBO", "standard ", "yolo"} {
		p := table.Resolve(mode)
		if mode == "standard " && p.Name != ModeStandard {
			t.Errorf("trimmed mode %q should resolve, got %s", mode, p.Name)
		}
		if p.Name != ModeStandard {
			t.Errorf("Resolve(%q) = %s, want STANDARD", mode, p.Name)
		}
	}
}

// Aggressive thresholds must be supersets of standard so the same snapshots
// can never qualify under STANDARD but fail under AGGRESSIVE.
func TestAggressiveThresholdsAreSupersets(t *testing.T) {
	table := DefaultTable()
	std := table.Resolve(ModeStandard)
	agg := table.Resolve(ModeAggressive)

	if agg.MaxPullbackPct < std.MaxPullbackPct {
		t.Errorf("aggressive pullback band %.2f narrower than standard %.2f", agg.MaxPullbackPct, std.MaxPullbackPct)
	}
	if agg.MicroBandPct < std.MicroBandPct {
		t.Errorf("aggressive micro band %.2f narrower than standard %.2f", agg.MicroBandPct, std.MicroBandPct)
	}
	if std.AllowFlatTrend && !agg.AllowFlatTrend {
		t.Error("aggressive must admit FLAT wherever standard does")
	}
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	content := []byte(`profiles:
  STANDARD:
    max_pullback_pct: 1.2
    micro_band_pct: 0.3
    allow_flat_trend: false
    min_bias_confidence: 60.0
    stop_buffer_pct: 0.25
    fallback_stop_pct: 2.5
    swing_confidence_floor: 72.0
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}

	std := table.Resolve(ModeStandard)
	if std.MaxPullbackPct != 1.2 {
		t.Errorf("loaded max_pullback_pct = %.2f, want 1.2", std.MaxPullbackPct)
	}
	if std.SwingConfidenceFloor != 72.0 {
		t.Errorf("loaded swing floor = %.1f, want 72", std.SwingConfidenceFloor)
	}

	// AGGRESSIVE keeps its built-in defaults when absent from the file.
	agg := table.Resolve(ModeAggressive)
	if agg.MicroBandPct != 0.75 {
		t.Errorf("aggressive micro band = %.2f, want default 0.75", agg.MicroBandPct)
	}
}

func TestLoadTable_RejectsMalformedProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	content := []byte(`profiles:
  STANDARD:
    max_pullback_pct: -1.0
    micro_band_pct: 0.25
    fallback_stop_pct: 3.0
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadTable(path); err == nil {
		t.Fatal("expected validation error for negative pullback band")
	}
}
