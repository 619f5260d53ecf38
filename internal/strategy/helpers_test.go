package strategy

import (
	"github.com/quantfold/playbook/internal/bias"
	"github.com/quantfold/playbook/internal/domain"
	"github.com/quantfold/playbook/internal/profile"
)

func fp(v float64) *float64 { return &v }

// mkSnap builds a neutral snapshot around price 100 that individual tests
// mutate into the shape they need.
func mkSnap(tf string, trend domain.Trend) domain.TimeframeSnapshot {
	return domain.TimeframeSnapshot{
		Timeframe:      tf,
		Trend:          trend,
		Price:          100,
		EMA21:          100,
		StochK:         50,
		StochD:         50,
		StochCondition: domain.StochNeutral,
		Pullback:       domain.PullbackRetracing,
		SwingLow:       fp(95),
		SwingHigh:      fp(105),
	}
}

func stdInput(snaps domain.SnapshotSet) Input {
	return Input{
		Symbol:    "BTCUSD",
		Snapshots: snaps,
		Profile:   profile.DefaultTable().Resolve(profile.ModeStandard),
		Bias:      bias.Bias{Direction: domain.Neutral},
	}
}

func aggroInput(snaps domain.SnapshotSet) Input {
	in := stdInput(snaps)
	in.Profile = profile.DefaultTable().Resolve(profile.ModeAggressive)
	return in
}
