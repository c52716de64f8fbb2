package chart

import (
	"math"
	"sort"

	"github.com/showdownbot/chart-engine/internal/rules"
	"github.com/showdownbot/chart-engine/internal/stats"
)

// accuracyGuard keeps the relative error finite for zero real rates.
const accuracyGuard = 1e-9

// WeightedAccuracy compares a projection to the real line. Each weighted key
// scores 1 - |actual-projected|/actual, clamped to [0,1]; the result is the
// weighted mean. Keys are visited in sorted order so the sum is reproducible.
func WeightedAccuracy(real, projected stats.Line, weights map[string]float64) float64 {
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sum, total float64
	for _, k := range keys {
		w := weights[k]
		if w <= 0 {
			continue
		}
		sum += w * keyAccuracy(real.Get(k), projected.Get(k))
		total += w
	}
	if total == 0 {
		return 0
	}
	return sum / total
}

func keyAccuracy(actual, projected float64) float64 {
	acc := 1 - math.Abs(actual-projected)/math.Max(actual, accuracyGuard)
	return math.Min(math.Max(acc, 0), 1)
}

// scoreAccuracy applies the per-command weight and halves charts whose outs
// fall outside the normal band without an outlier exception.
func scoreAccuracy(pr *rules.PlayerRules, command float64, outSlots int, real, projected stats.Line) float64 {
	acc := WeightedAccuracy(real, projected, pr.AccuracyWeights) * pr.CommandWeight(command)
	if !pr.OutNorms.IsNormalOuts(command, outSlots) {
		acc /= 2
	}
	return acc
}
