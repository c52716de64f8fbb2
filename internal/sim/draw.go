package sim

import (
	"errors"
	"math"

	"github.com/showdownbot/chart-engine/internal/chart"
)

var (
	ErrInvalidProb    = errors.New("invalid probability p; must be 0..1")
	ErrEmptyChart     = errors.New("chart has no slot worth to draw from")
	ErrInvalidWeights = errors.New("category weights must be finite and non-negative")
)

// Draw is a Bernoulli trial: p <= 0 never hits, p >= 1 always hits,
// otherwise rng.Float64() < p.
func Draw(p float64, rng RandomSource) (bool, error) {
	if err := validateProb(p); err != nil {
		return false, err
	}
	if p <= 0 {
		return false, nil
	}
	if p >= 1 {
		return true, nil
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	return rng.Float64() < p, nil
}

// Pick samples one category with probability proportional to its value,
// walking cats in order.
func Pick(cats []chart.Category, values map[chart.Category]float64, rng RandomSource) (chart.Category, error) {
	var total float64
	for _, c := range cats {
		v := values[c]
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return "", ErrInvalidWeights
		}
		total += v
	}
	if total <= 0 {
		return "", ErrEmptyChart
	}
	if rng == nil {
		rng = DefaultRNG()
	}
	u := rng.Float64() * total
	var acc float64
	last := cats[0]
	for _, c := range cats {
		v := values[c]
		if v <= 0 {
			continue
		}
		acc += v
		last = c
		if u < acc {
			return c, nil
		}
	}
	// float rounding at the top edge
	return last, nil
}

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}
