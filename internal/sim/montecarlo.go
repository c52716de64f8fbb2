// Package sim replays charts as dice games to check their projections.
package sim

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/showdownbot/chart-engine/internal/chart"
	"github.com/showdownbot/chart-engine/internal/stats"
)

var ErrNoChart = errors.New("simulation needs a chart")

// Params describes one simulation run.
type Params struct {
	Chart *chart.Chart
	// Trials is the number of independent samples.
	Trials int
	// PlateAppearances per trial; 400 when zero.
	PlateAppearances int
	// RNG defaults to crypto random. A seeded source makes runs reproducible.
	RNG RandomSource
}

// Stats summarizes one metric across trials.
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
}

// Report holds per-400-PA results keyed like a stats.Line.
type Report struct {
	Trials           int              `json:"trials"`
	PlateAppearances int              `json:"plate_appearances"`
	Rates            map[string]Stats `json:"rates"`
}

// Means flattens the report to a stats.Line comparable with a projection.
func (r Report) Means() stats.Line {
	line := make(stats.Line, len(r.Rates))
	for k, s := range r.Rates {
		line[k] = s.Mean
	}
	return line
}

// Run plays Trials x PlateAppearances matchups of the chart against its
// opponent. Each plate appearance first draws who has the advantage
// (MyAdvantages/20), then rolls that side's chart.
func Run(p Params) (Report, error) {
	if p.Chart == nil {
		return Report{}, ErrNoChart
	}
	if p.Chart.Opponent == nil {
		return Report{}, chart.ErrMissingOpponent
	}
	if p.Trials <= 0 {
		return Report{}, nil
	}
	pa := p.PlateAppearances
	if pa <= 0 {
		pa = int(stats.PlateAppearances)
	}
	rng := p.RNG
	if rng == nil {
		rng = DefaultRNG()
	}

	samples := map[string][]float64{}
	for i := 0; i < p.Trials; i++ {
		line, err := simulateOne(p.Chart, pa, rng)
		if err != nil {
			return Report{}, err
		}
		for k, v := range line {
			samples[k] = append(samples[k], v)
		}
	}

	rates := make(map[string]Stats, len(samples))
	for k, xs := range samples {
		rates[k] = calcStats(xs)
	}
	return Report{Trials: p.Trials, PlateAppearances: pa, Rates: rates}, nil
}

// plateAppearance resolves one roll of the matchup.
func plateAppearance(c *chart.Chart, rng RandomSource) (chart.Category, error) {
	mine, err := Draw(c.MyAdvantages/20, rng)
	if err != nil {
		return "", err
	}
	side := c.Opponent
	if mine {
		side = c
	}
	return Pick(side.Categories, side.Values, rng)
}

// simulateOne returns one trial's results scaled to 400 PA.
func simulateOne(c *chart.Chart, pa int, rng RandomSource) (stats.Line, error) {
	counts := map[chart.Category]float64{}
	for i := 0; i < pa; i++ {
		cat, err := plateAppearance(c, rng)
		if err != nil {
			return nil, err
		}
		counts[cat]++
	}

	scale := stats.PlateAppearances / float64(pa)
	line := stats.Line{}
	for _, cat := range []chart.Category{chart.PU, chart.SO, chart.GB, chart.FB, chart.BB, chart.B1P, chart.B2, chart.B3, chart.HR} {
		line[cat.StatKey()] = counts[cat] * scale
	}
	line[stats.B1] = (counts[chart.B1] + counts[chart.B1P]) * scale

	h := line[stats.B1] + line[stats.B2] + line[stats.B3] + line[stats.HR]
	tb := line[stats.B1] + 2*line[stats.B2] + 3*line[stats.B3] + 4*line[stats.HR]
	ab := stats.PlateAppearances - line[stats.BB]
	line[stats.H] = h
	line[stats.OBP] = (h + line[stats.BB]) / stats.PlateAppearances
	if ab > 0 {
		line[stats.AVG] = h / ab
		line[stats.SLG] = tb / ab
	}
	return line, nil
}

// calcStats computes mean, population variance and percentiles.
func calcStats(xs []float64) Stats {
	if len(xs) == 0 {
		return Stats{}
	}
	mean, variance := stat.PopMeanVariance(xs, nil)
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return Stats{
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		P50:    stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		P90:    stat.Quantile(0.90, stat.LinInterp, sorted, nil),
		P99:    stat.Quantile(0.99, stat.LinInterp, sorted, nil),
	}
}
