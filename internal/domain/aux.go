package domain

// AuxSignals carries optional market-quality readings used only as confidence
// modifiers, never as gatekeepers. Both values are normalized to [-1, +1] where
// positive favors the long side.
type AuxSignals struct {
	Present            bool    `json:"present"`
	OrderBookImbalance float64 `json:"order_book_imbalance"` // bid depth vs ask depth, -1..+1
	TradeFlowBias      float64 `json:"trade_flow_bias"`      // recent taker buy vs sell flow, -1..+1
}

// maxAuxAdjustment caps the combined confidence contribution of aux signals.
const maxAuxAdjustment = 5.0

// ConfidenceModifier converts the aux readings into a signed confidence
// adjustment for the given trade side, clamped to ±5 points. Absent signals
// contribute zero.
func (a AuxSignals) ConfidenceModifier(dir Direction) float64 {
	if !a.Present {
		return 0
	}

	combined := (clamp(a.OrderBookImbalance, -1, 1) + clamp(a.TradeFlowBias, -1, 1)) / 2.0
	adj := combined * maxAuxAdjustment
	if dir == Short {
		adj = -adj
	}
	return clamp(adj, -maxAuxAdjustment, maxAuxAdjustment)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampConfidence bounds a confidence score to the contract range [0, 100].
func ClampConfidence(c float64) float64 {
	return clamp(c, 0, 100)
}
