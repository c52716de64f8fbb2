package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandWeight(t *testing.T) {
	rs, err := NewLoader(Embedded()).Resolve("CLASSIC", "")
	require.NoError(t, err)
	assert.Equal(t, 0.90, rs.Hitter.CommandWeight(7))
	assert.Equal(t, 1.0, rs.Hitter.CommandWeight(11))
	assert.Equal(t, 0.95, rs.Pitcher.CommandWeight(6))
}

func TestIsNormalOuts(t *testing.T) {
	n := OutNorms{
		Min: 5, Max: 7,
		Outliers: []Outlier{
			{CommandMin: 14, CommandMax: 20, OutsMin: 0, OutsMax: 4},
			{CommandMin: 0, CommandMax: 8, OutsMin: 8, OutsMax: 20},
		},
	}
	tests := []struct {
		command float64
		outs    int
		want    bool
	}{
		{10, 5, true},
		{10, 7, true},
		{10, 4, false},
		{10, 8, false},
		{15, 3, true},
		{13, 3, false},
		{7, 9, true},
		{9, 9, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.IsNormalOuts(tt.command, tt.outs), "%v-%v", tt.command, tt.outs)
	}
}

func TestResolveIsCachedAndKeyed(t *testing.T) {
	l := NewLoader(Embedded())
	a, err := l.Resolve("EXPANDED", "statcast")
	require.NoError(t, err)
	b, err := l.Resolve("EXPANDED", "statcast")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, "EXPANDED/statcast", a.Key())
	assert.Equal(t, []string{"steroid", "statcast", "pitch_clock"}, a.Eras)
	assert.Same(t, &a.Pitcher, a.For(true))
	assert.Same(t, &a.Hitter, a.For(false))
}
