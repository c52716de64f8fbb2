package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassicLayout(t *testing.T) {
	l := newLayout(false)
	assert.Equal(t, 20, l.size())
	assert.Equal(t, 20.0, l.span(1, 20))
	assert.Equal(t, 0.0, l.slotWorth(21))
}

func TestExpandedLayoutWorth(t *testing.T) {
	l := newLayout(true)
	assert.Equal(t, 30, l.size())
	assert.InDelta(t, 20.0, l.span(1, 30), 1e-12)
	assert.InDelta(t, 19.8, l.span(1, 20), 1e-12)
	assert.InDelta(t, 0.1, l.slotWorth(21), 1e-12)
	for i := 22; i < 30; i++ {
		assert.InDelta(t, l.slotWorth(i-1)/2, l.slotWorth(i), 1e-15, "slot %d", i)
	}
	assert.Greater(t, l.slotWorth(30), 0.0)
}

func TestTakeRounding(t *testing.T) {
	classic := newLayout(false)
	expanded := newLayout(true)
	tests := []struct {
		name      string
		l         layout
		start     int
		dir       int
		min, max  int
		target    float64
		wantSlots int
	}{
		{"classic half rounds up", classic, 1, 1, 0, 20, 2.5, 3},
		{"classic below half", classic, 1, 1, 0, 20, 2.49, 2},
		{"classic capped by max", classic, 1, 1, 0, 4, 9, 4},
		{"classic zero", classic, 5, 1, 0, 20, 0, 0},
		{"classic from top", classic, 20, -1, 0, 20, 3.2, 3},
		{"expanded two", expanded, 1, 1, 0, 20, 2, 2},
		{"expanded near half", expanded, 1, 1, 0, 20, 2.47, 2},
		{"expanded top minimum", expanded, 30, -1, 10, 30, 0, 10},
		{"expanded top two", expanded, 30, -1, 10, 30, 2.0, 12},
		{"stops at edge", classic, 19, 1, 0, 20, 10, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, w := tt.l.take(tt.start, tt.dir, tt.min, tt.max, tt.target)
			assert.Equal(t, tt.wantSlots, n)
			if tt.dir > 0 {
				assert.InDelta(t, tt.l.span(tt.start, tt.start+n-1), w, 1e-12)
			} else {
				assert.InDelta(t, tt.l.span(tt.start-n+1, tt.start), w, 1e-12)
			}
		})
	}
}
