package domain

// Timeframe labels accepted in a SnapshotSet, longest horizon first.
const (
	TF1Month = "1M"
	TF1Week  = "1w"
	TF3Day   = "3d"
	TF1Day   = "1d"
	TF4Hour  = "4h"
	TF1Hour  = "1h"
	TF15Min  = "15m"
	TF5Min   = "5m"
	TF3Min   = "3m"
	TF1Min   = "1m"
)

// Trend is the per-timeframe trend classification
type Trend string

const (
	TrendUp   Trend = "UPTREND"
	TrendDown Trend = "DOWNTREND"
	TrendFlat Trend = "FLAT"
)

// StochCondition is the derived stochastic oscillator state
type StochCondition string

const (
	StochOverbought StochCondition = "OVERBOUGHT"
	StochOversold   StochCondition = "OVERSOLD"
	StochBullish    StochCondition = "BULLISH"
	StochBearish    StochCondition = "BEARISH"
	StochNeutral    StochCondition = "NEUTRAL"
)

// PullbackState classifies how far price has retraced toward its EMA21 reference
type PullbackState string

const (
	PullbackEntryZone    PullbackState = "ENTRY_ZONE"
	PullbackOverextended PullbackState = "OVEREXTENDED"
	PullbackRetracing    PullbackState = "RETRACING"
	PullbackUnknown      PullbackState = "UNKNOWN"
)

// Direction is the trade side of a strategy result or HTF bias
type Direction string

const (
	Long    Direction = "long"
	Short   Direction = "short"
	NoTrade Direction = "no_trade"
	Neutral Direction = "neutral" // HTF bias only, never a trade side
)

// Opposite returns the opposing trade side; NoTrade and Neutral map to themselves.
func (d Direction) Opposite() Direction {
	switch d {
	case Long:
		return Short
	case Short:
		return Long
	default:
		return d
	}
}

// TimeframeSnapshot is one pre-computed indicator snapshot for a single interval.
// Snapshots are created fresh per analysis request and never mutated by the engine.
type TimeframeSnapshot struct {
	Timeframe      string         `json:"timeframe"`
	Trend          Trend          `json:"trend"`
	EMA21          float64        `json:"ema21"`
	EMA200         *float64       `json:"ema200,omitempty"` // absent for short-history intervals
	StochK         float64        `json:"stoch_k"`
	StochD         float64        `json:"stoch_d"`
	StochCondition StochCondition `json:"stoch_condition"`
	Pullback       PullbackState  `json:"pullback"`
	EMA21DistPct   float64        `json:"ema21_dist_pct"` // signed percent distance from EMA21
	SwingHigh      *float64       `json:"swing_high,omitempty"`
	SwingLow       *float64       `json:"swing_low,omitempty"`
	Price          float64        `json:"price"`
}

// SnapshotSet maps timeframe label to its snapshot
type SnapshotSet map[string]TimeframeSnapshot

// Get returns the snapshot for a timeframe label, reporting presence.
func (s SnapshotSet) Get(tf string) (TimeframeSnapshot, bool) {
	snap, ok := s[tf]
	return snap, ok
}

// Has reports whether every listed timeframe is present.
func (s SnapshotSet) Has(tfs ...string) bool {
	for _, tf := range tfs {
		if _, ok := s[tf]; !ok {
			return false
		}
	}
	return true
}

// DirectionFromTrend maps a trend classification to a trade side.
// FLAT yields NoTrade; callers decide whether FLAT is admissible.
func DirectionFromTrend(t Trend) Direction {
	switch t {
	case TrendUp:
		return Long
	case TrendDown:
		return Short
	default:
		return NoTrade
	}
}
