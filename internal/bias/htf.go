package bias

import (
	"fmt"

	"github.com/quantfold/playbook/internal/domain"
)

// votingTimeframes are the horizons considered for the HTF bias, longest
// first, with their vote weights. At most the top four present timeframes
// vote; at least two are required for a non-neutral bias.
var votingTimeframes = []struct {
	tf     string
	weight float64
}{
	{domain.TF1Month, 4},
	{domain.TF1Week, 3},
	{domain.TF3Day, 2},
	{domain.TF1Day, 1},
}

const (
	minVotingTimeframes = 2
	directionThreshold  = 0.25 // |weighted score| needed for a directional lean
	unanimityBonus      = 10.0
)

// Bias is the synthesized higher-timeframe directional lean. It is computed
// once per request and consumed read-only by the strategy evaluators.
type Bias struct {
	Direction  domain.Direction  `json:"direction"`  // long, short, or neutral
	Confidence float64           `json:"confidence"` // 0-100
	Votes      map[string]string `json:"votes"`      // timeframe -> vote breakdown
	Notes      []string          `json:"notes,omitempty"`
}

// Compute derives the HTF bias from the longest-horizon snapshots present.
// Deterministic for identical inputs: votes are tallied in fixed horizon order.
func Compute(snapshots domain.SnapshotSet) Bias {
	bias := Bias{
		Direction: domain.Neutral,
		Votes:     make(map[string]string),
	}

	var weightedSum, totalWeight float64
	voters := 0
	agreeing := 0
	var leadTrend domain.Trend

	for _, v := range votingTimeframes {
		snap, ok := snapshots.Get(v.tf)
		if !ok {
			continue
		}
		voters++

		switch snap.Trend {
		case domain.TrendUp:
			weightedSum += v.weight
			bias.Votes[v.tf] = "long"
		case domain.TrendDown:
			weightedSum -= v.weight
			bias.Votes[v.tf] = "short"
		default:
			bias.Votes[v.tf] = "neutral"
		}
		totalWeight += v.weight

		if leadTrend == "" {
			leadTrend = snap.Trend
		}
		if snap.Trend == leadTrend && snap.Trend != domain.TrendFlat {
			agreeing++
		}
	}

	if voters < minVotingTimeframes {
		bias.Notes = append(bias.Notes,
			fmt.Sprintf("HTF bias requires %d timeframes, only %d present", minVotingTimeframes, voters))
		return bias
	}

	score := weightedSum / totalWeight // [-1, +1]
	switch {
	case score >= directionThreshold:
		bias.Direction = domain.Long
	case score <= -directionThreshold:
		bias.Direction = domain.Short
	default:
		bias.Direction = domain.Neutral
	}

	confidence := abs(score) * 100
	if bias.Direction != domain.Neutral && agreeing == voters {
		confidence += unanimityBonus
		bias.Notes = append(bias.Notes, fmt.Sprintf("all %d HTF timeframes agree", voters))
	}
	bias.Confidence = domain.ClampConfidence(confidence)

	return bias
}

// Agrees reports whether a trade side runs with the bias. Neutral bias never
// disagrees.
func (b Bias) Agrees(dir domain.Direction) bool {
	return b.Direction == domain.Neutral || b.Direction == dir
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
