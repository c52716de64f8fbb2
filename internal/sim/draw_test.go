package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showdownbot/chart-engine/internal/chart"
)

func TestDrawBounds(t *testing.T) {
	got, err := Draw(0, NewSeededRNG(1))
	require.NoError(t, err)
	assert.False(t, got, "p=0 should never hit")

	got, err = Draw(1, NewSeededRNG(1))
	require.NoError(t, err)
	assert.True(t, got, "p=1 should always hit")

	_, err = Draw(-0.1, nil)
	assert.ErrorIs(t, err, ErrInvalidProb)
	_, err = Draw(1.1, nil)
	assert.ErrorIs(t, err, ErrInvalidProb)
}

func TestDrawStatApprox(t *testing.T) {
	const p = 0.3
	const n = 100000
	rng := NewSeededRNG(42)
	hit := 0
	for i := 0; i < n; i++ {
		ok, err := Draw(p, rng)
		require.NoError(t, err)
		if ok {
			hit++
		}
	}
	assert.InDelta(t, p, float64(hit)/n, 0.01)
}

func TestPickFrequencies(t *testing.T) {
	cats := []chart.Category{chart.SO, chart.GB, chart.BB, chart.HR}
	values := map[chart.Category]float64{chart.SO: 5, chart.GB: 10, chart.BB: 0, chart.HR: 5}
	rng := NewSeededRNG(7)
	counts := map[chart.Category]int{}
	const n = 100000
	for i := 0; i < n; i++ {
		c, err := Pick(cats, values, rng)
		require.NoError(t, err)
		counts[c]++
	}
	assert.Zero(t, counts[chart.BB])
	assert.InDelta(t, 0.25, float64(counts[chart.SO])/n, 0.01)
	assert.InDelta(t, 0.50, float64(counts[chart.GB])/n, 0.01)
	assert.InDelta(t, 0.25, float64(counts[chart.HR])/n, 0.01)
}

func TestPickErrors(t *testing.T) {
	cats := []chart.Category{chart.SO}
	_, err := Pick(cats, map[chart.Category]float64{}, nil)
	assert.ErrorIs(t, err, ErrEmptyChart)
	_, err = Pick(cats, map[chart.Category]float64{chart.SO: -1}, nil)
	assert.ErrorIs(t, err, ErrInvalidWeights)
}
