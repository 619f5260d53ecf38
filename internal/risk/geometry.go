package risk

import (
	"fmt"

	"github.com/quantfold/playbook/internal/domain"
)

// Zone is a price band the trade should be entered within.
type Zone struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Params describes one geometry computation. StopRef is the swing-derived
// stop reference; nil means no usable swing level was found on any anchor
// timeframe and the percent-of-price fallback applies.
type Params struct {
	Direction       domain.Direction
	Anchor          float64   // entry reference price, typically the anchor EMA21
	StopRef         *float64  // swing low (long) or swing high (short)
	Multiples       []float64 // risk multiples, strictly increasing
	BandPct         float64   // entry-zone half width, percent of anchor
	StopBufferPct   float64   // buffer applied beyond the stop reference
	FallbackStopPct float64   // percent-of-price stop when StopRef is unusable
}

// Geometry is the computed entry/stop/target structure. RiskReward always
// equals the configured multiples by construction.
type Geometry struct {
	EntryZone    Zone      `json:"entry_zone"`
	StopLoss     float64   `json:"stop_loss"`
	Targets      []float64 `json:"targets"`
	RiskReward   []float64 `json:"risk_reward"`
	FallbackStop bool      `json:"fallback_stop"`
	Notes        []string  `json:"notes,omitempty"`
}

// Compute builds the risk geometry around the anchor price. The stop is
// guaranteed strictly on the loss side of the whole entry zone: a stop
// reference that is missing, inverted, or inside the entry band collapses the
// risk distance and triggers the documented percent-of-price fallback.
func Compute(p Params) Geometry {
	g := Geometry{
		EntryZone: Zone{
			Min: p.Anchor * (1 - p.BandPct/100),
			Max: p.Anchor * (1 + p.BandPct/100),
		},
	}

	long := p.Direction == domain.Long

	if p.StopRef != nil {
		if long {
			g.StopLoss = *p.StopRef * (1 - p.StopBufferPct/100)
		} else {
			g.StopLoss = *p.StopRef * (1 + p.StopBufferPct/100)
		}
	}

	degenerate := p.StopRef == nil ||
		(long && g.StopLoss >= g.EntryZone.Min) ||
		(!long && g.StopLoss <= g.EntryZone.Max)

	if degenerate {
		// Fallback stop must clear the entry band or the geometry inverts.
		fallbackPct := p.FallbackStopPct
		if fallbackPct <= p.BandPct {
			fallbackPct = p.BandPct + p.FallbackStopPct
		}
		if long {
			g.StopLoss = p.Anchor * (1 - fallbackPct/100)
		} else {
			g.StopLoss = p.Anchor * (1 + fallbackPct/100)
		}
		g.FallbackStop = true
		if p.StopRef == nil {
			g.Notes = append(g.Notes,
				fmt.Sprintf("no swing reference available, using %.1f%% fallback stop", fallbackPct))
		} else {
			g.Notes = append(g.Notes,
				fmt.Sprintf("swing reference %.4f inside entry band, using %.1f%% fallback stop", *p.StopRef, fallbackPct))
		}
	}

	riskDistance := p.Anchor - g.StopLoss
	if !long {
		riskDistance = g.StopLoss - p.Anchor
	}

	g.Targets = make([]float64, len(p.Multiples))
	g.RiskReward = make([]float64, len(p.Multiples))
	for i, m := range p.Multiples {
		if long {
			g.Targets[i] = p.Anchor + riskDistance*m
		} else {
			g.Targets[i] = p.Anchor - riskDistance*m
		}
		g.RiskReward[i] = m
	}

	return g
}
