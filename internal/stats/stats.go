// Package stats holds real-world rate stats normalized to 400 plate appearances.
package stats

import "math"

// PlateAppearances is the sample size every rate is scaled to.
const PlateAppearances = 400.0

// Keys shared by real stat lines, chart projections and accuracy weights.
const (
	PU  = "pu"
	SO  = "so"
	GB  = "gb"
	FB  = "fb"
	BB  = "bb"
	B1  = "1b"
	B1P = "1b+"
	B2  = "2b"
	B3  = "3b"
	HR  = "hr"
	SB  = "sb"
	H   = "h"
	AB  = "ab"
	TB  = "tb"

	OBP = "onbase_perc"
	AVG = "batting_avg"
	SLG = "slugging_perc"
	OPS = "ops"

	GOAO = "go_ao" // ground outs per air out
	IFFB = "if_fb" // share of air outs that are infield pop ups
	PA   = "pa"    // real plate appearances, not scaled
)

// Line maps a stat key to its value. Counting stats are per 400 PA.
type Line map[string]float64

// Get returns the stat or 0 when it is missing or not a finite number.
// Sparse historical data (no GO/AO, no caught stealing, ...) is normal
// input, so absence is never an error.
func (l Line) Get(key string) float64 {
	v, ok := l[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Lookup is Get that also reports presence.
func (l Line) Lookup(key string) (float64, bool) {
	v, ok := l[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Clone returns an independent copy.
func (l Line) Clone() Line {
	out := make(Line, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}
