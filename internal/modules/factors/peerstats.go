package factors

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// PeerComparison places one symbol's factor value within its peer
// group's distribution. Used for the comparative analysis views that
// consume the industry resolver's peer lists.
type PeerComparison struct {
	Symbol     string  `json:"symbol"`
	Value      float64 `json:"value"`
	PeerCount  int     `json:"peer_count"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	ZScore     float64 `json:"z_score"`
	Percentile float64 `json:"percentile"` // fraction of peers at or below the value, in [0, 1]
}

// ComparePeers computes where a symbol's factor value sits among its
// peers. Total function: a missing target, an empty peer set or a
// zero-variance distribution all degrade to neutral results (z-score 0,
// percentile 0.5), never an error.
func ComparePeers(symbol string, values map[string]float64) PeerComparison {
	target, hasTarget := values[symbol]

	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			xs = append(xs, v)
		}
	}
	sort.Float64s(xs)

	cmp := PeerComparison{
		Symbol:     symbol,
		PeerCount:  len(xs),
		ZScore:     0,
		Percentile: 0.5,
	}
	if len(xs) == 0 {
		return cmp
	}

	cmp.Mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		cmp.StdDev = stat.StdDev(xs, nil)
	}

	if !hasTarget || math.IsNaN(target) || math.IsInf(target, 0) {
		return cmp
	}
	cmp.Value = target

	if cmp.StdDev > 0 {
		cmp.ZScore = (target - cmp.Mean) / cmp.StdDev
	}

	// Fraction of peer values at or below the target.
	atOrBelow := sort.SearchFloat64s(xs, target)
	for atOrBelow < len(xs) && xs[atOrBelow] <= target {
		atOrBelow++
	}
	cmp.Percentile = float64(atOrBelow) / float64(len(xs))

	return cmp
}
