package profile

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Mode names understood by Resolve. Unknown names fail closed to STANDARD.
const (
	ModeStandard   = "STANDARD"
	ModeAggressive = "AGGRESSIVE"
)

// Profile is a named bundle of threshold constants consumed by the strategy
// evaluators. The table is built once at startup and treated as read-only.
type Profile struct {
	Name string `yaml:"name"`

	// MaxPullbackPct caps how far price may sit from the anchor EMA21 before a
	// pullback entry is considered overextended.
	MaxPullbackPct float64 `yaml:"max_pullback_pct"` // 1.0 standard, 1.75 aggressive

	// MicroBandPct is the EMA21 half-band for the micro-scalp confluence check.
	MicroBandPct float64 `yaml:"micro_band_pct"` // ±0.25% standard, ±0.75% aggressive

	// AllowFlatTrend admits a FLAT anchor trend where a strategy permits it.
	AllowFlatTrend bool `yaml:"allow_flat_trend"`

	// MinBiasConfidence is the HTF-bias confidence at or above which
	// counter-trend aggressive entries are refused.
	MinBiasConfidence float64 `yaml:"min_bias_confidence"` // 55

	// StopBufferPct is applied beyond the stop reference, away from the trade.
	StopBufferPct float64 `yaml:"stop_buffer_pct"` // 0.3

	// FallbackStopPct is the percent-of-price stop used when no usable swing
	// reference exists.
	FallbackStopPct float64 `yaml:"fallback_stop_pct"` // 3.0

	// SwingConfidenceFloor is the minimum swing confidence for the cascade to
	// accept the swing setup as terminal.
	SwingConfidenceFloor float64 `yaml:"swing_confidence_floor"` // 70
}

// Table holds the resolvable profiles keyed by mode name.
type Table struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// DefaultTable returns the built-in STANDARD and AGGRESSIVE profiles.
func DefaultTable() *Table {
	return &Table{
		Profiles: map[string]Profile{
			ModeStandard: {
				Name:                 ModeStandard,
				MaxPullbackPct:       1.0,
				MicroBandPct:         0.25,
				AllowFlatTrend:       false,
				MinBiasConfidence:    55.0,
				StopBufferPct:        0.3,
				FallbackStopPct:      3.0,
				SwingConfidenceFloor: 70.0,
			},
			ModeAggressive: {
				Name:                 ModeAggressive,
				MaxPullbackPct:       1.75,
				MicroBandPct:         0.75,
				AllowFlatTrend:       true,
				MinBiasConfidence:    55.0,
				StopBufferPct:        0.3,
				FallbackStopPct:      3.0,
				SwingConfidenceFloor: 70.0,
			},
		},
	}
}

// Resolve maps a mode name to its profile. Unknown or empty names fail closed
// to STANDARD so evaluators never run on undefined constants.
func (t *Table) Resolve(mode string) Profile {
	name := strings.ToUpper(strings.TrimSpace(mode))
	if p, ok := t.Profiles[name]; ok {
		return p
	}
	log.Warn().Str("mode", mode).Msg("unknown mode, failing closed to STANDARD")
	return t.Profiles[ModeStandard]
}

// IsAggressive reports whether the profile unlocks the aggressive fallbacks.
func (p Profile) IsAggressive() bool {
	return p.Name == ModeAggressive
}

// LoadTable reads a profile table from a yaml file and validates it. Entries
// missing from the file keep their built-in defaults.
func LoadTable(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var loaded Table
	if err := yaml.Unmarshal(b, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse profile table: %w", err)
	}

	table := DefaultTable()
	for name, p := range loaded.Profiles {
		name = strings.ToUpper(name)
		p.Name = name
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
		table.Profiles[name] = p
	}
	if _, ok := table.Profiles[ModeStandard]; !ok {
		return nil, fmt.Errorf("profile table must define %s", ModeStandard)
	}
	return table, nil
}

func (p Profile) validate() error {
	if p.MaxPullbackPct <= 0 {
		return fmt.Errorf("max_pullback_pct %.2f must be positive", p.MaxPullbackPct)
	}
	if p.MicroBandPct <= 0 {
		return fmt.Errorf("micro_band_pct %.2f must be positive", p.MicroBandPct)
	}
	if p.MinBiasConfidence < 0 || p.MinBiasConfidence > 100 {
		return fmt.Errorf("min_bias_confidence %.1f outside [0,100]", p.MinBiasConfidence)
	}
	if p.StopBufferPct < 0 {
		return fmt.Errorf("stop_buffer_pct %.2f must not be negative", p.StopBufferPct)
	}
	if p.FallbackStopPct <= 0 {
		return fmt.Errorf("fallback_stop_pct %.2f must be positive", p.FallbackStopPct)
	}
	if p.SwingConfidenceFloor < 0 || p.SwingConfidenceFloor > 100 {
		return fmt.Errorf("swing_confidence_floor %.1f outside [0,100]", p.SwingConfidenceFloor)
	}
	return nil
}
