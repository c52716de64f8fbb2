package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showdownbot/chart-engine/internal/valuerange"
)

func validClassic(t *testing.T) RawConfig {
	t.Helper()
	cfg, err := NewLoader(Embedded()).LoadMerged("CLASSIC", "")
	require.NoError(t, err)
	require.NoError(t, ValidateRaw(cfg))
	return cfg
}

func TestValidateRaw(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawConfig)
		want   string
	}{
		{
			name:   "missing set id",
			mutate: func(c *RawConfig) { c.Set = "" },
			want:   "RawConfig.Set failed required",
		},
		{
			name:   "unknown category",
			mutate: func(c *RawConfig) { c.Hitter.Categories = append([]string{"XX"}, c.Hitter.Categories...) },
			want:   "oneof",
		},
		{
			name:   "pitcher triple",
			mutate: func(c *RawConfig) { c.Pitcher.Categories = append(c.Pitcher.Categories, "3B") },
			want:   "pitcher.chart_categories cannot contain 3B",
		},
		{
			name: "baseline does not sum to 20",
			mutate: func(c *RawConfig) {
				c.Pitcher.Baseline.Values = map[string]float64{"SO": 5, "GB": 5, "FB": 5, "BB": 1, "1B": 2, "HR": 1}
				c.Pitcher.Baseline.Outs = 15
			},
			want: "pitcher.baseline.values must sum to 20",
		},
		{
			name:   "baseline outs mismatch",
			mutate: func(c *RawConfig) { c.Hitter.Baseline.Outs = 9 },
			want:   "hitter.baseline.outs=9.00",
		},
		{
			name:   "outs bounds inverted",
			mutate: func(c *RawConfig) { c.Hitter.Outs = OutsBounds{Min: 8, Max: 3} },
			want:   "gtefield",
		},
		{
			name:   "command weight above one",
			mutate: func(c *RawConfig) { c.Hitter.CommandWeights = []CommandWeight{{Command: 10, Weight: 1.2}} },
			want:   "lte=1",
		},
		{
			name:   "hitter without strikeout caps",
			mutate: func(c *RawConfig) { c.Hitter.SOCaps = nil },
			want:   "hitter.so_caps is required",
		},
		{
			name: "empty points range",
			mutate: func(c *RawConfig) {
				c.Hitter.Points.Ranges = map[string]valuerange.Range{
					"onbase_perc": {Min: 0.3, Max: 0.3}, "batting_avg": {Min: 0.2, Max: 0.3},
					"slugging_perc": {Min: 0.3, Max: 0.6}, "hr_per_650": {Min: 5, Max: 50}, "speed": {Min: 8, Max: 26},
				}
			},
			want: "hitter.points.ranges.onbase_perc",
		},
		{
			name:   "combo outside outs bounds",
			mutate: func(c *RawConfig) { c.Hitter.Combos = []CommandOuts{{Command: 10, Outs: 19}} },
			want:   "hitter.command_outs_combos 10-19",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validClassic(t)
			tt.mutate(&cfg)
			err := ValidateRaw(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
