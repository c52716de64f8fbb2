package chart

import (
	"math"

	"github.com/showdownbot/chart-engine/internal/rules"
	"github.com/showdownbot/chart-engine/internal/stats"
	"github.com/showdownbot/chart-engine/internal/valuerange"
)

const (
	// below this many real PA the soft strikeout cap is also the hard cap
	smallSamplePA = 100
	// strikeouts over the soft cap are scaled down, then floored
	strikeoutScale = 0.80
)

// allocator fills one chart's categories. Outs first in SO, PU, GB, FB
// order with FB taking what is left, then BB from the bottom of the
// on-base slots, then HR, 3B, 2B from the top. Singles take the middle.
type allocator struct {
	chart  *Chart
	rules  *rules.PlayerRules
	layout layout
	line   stats.Line
	has    map[Category]bool

	singlePlusDenominator float64
}

func newAllocator(c *Chart, pr *rules.PlayerRules, lay layout, line stats.Line) *allocator {
	has := make(map[Category]bool, len(c.Categories))
	for _, cat := range c.Categories {
		has[cat] = true
	}
	return &allocator{chart: c, rules: pr, layout: lay, line: line, has: has}
}

func (a *allocator) allocate() (map[Category]float64, map[Category]int) {
	values := make(map[Category]float64, len(a.chart.Categories))
	slots := make(map[Category]int, len(a.chart.Categories))
	for _, cat := range a.chart.Categories {
		values[cat] = 0
		slots[cat] = 0
	}

	// outs: slots 1..OutSlots
	var outs []Category
	for _, cat := range outFillOrder {
		if a.has[cat] {
			outs = append(outs, cat)
		}
	}
	cursor, left := 1, a.chart.OutSlots
	for i, cat := range outs {
		var n int
		if i == len(outs)-1 {
			n = left
		} else {
			target := a.chartValue(cat)
			if cat == SO && !a.chart.IsPitcher {
				target = capStrikeouts(target, a.rules.SOCaps, a.line.Get(stats.PA))
			}
			target = math.Min(target, math.Min(a.limit(cat), a.layout.span(cursor, cursor+left-1)))
			n, _ = a.layout.take(cursor, 1, 0, left, target)
		}
		slots[cat] = n
		values[cat] = a.layout.span(cursor, cursor+n-1)
		cursor += n
		left -= n
	}

	// on-base slots: lo..hi. On an expanded chart slots above 20 stay with HR.
	lo, hi := a.chart.OutSlots+1, a.layout.size()
	ascendingTop := classicSlots

	if a.has[BB] {
		target := math.Min(a.chartValue(BB), a.limit(BB))
		n, w := a.layout.take(lo, 1, 0, ascendingTop-lo+1, target)
		slots[BB], values[BB] = n, w
		lo += n
	}

	for _, cat := range hitFillOrder {
		if !a.has[cat] {
			continue
		}
		minSlots := 0
		if cat == HR {
			minSlots = a.layout.size() - classicSlots
		}
		target := math.Min(a.chartValue(cat), math.Min(a.limit(cat), a.layout.span(lo, hi)))
		n, w := a.layout.take(hi, -1, minSlots, hi-lo+1, target)
		slots[cat], values[cat] = n, w
		hi -= n
	}

	// singles: everything between, 1B+ on top
	singleSlots, singleWorth := hi-lo+1, a.layout.span(lo, hi)
	if singleSlots < 0 {
		singleSlots, singleWorth = 0, 0
	}
	if a.has[B1P] {
		a.singlePlusDenominator = singlePlusDenominator(a.rules, a.chart.Command)
		target := 0.0
		if a.singlePlusDenominator > 0 {
			target = math.Trunc(a.line.Get(stats.SB) / a.singlePlusDenominator)
		}
		target = math.Min(target, singleWorth)
		n, w := a.layout.take(hi, -1, 0, singleSlots, target)
		slots[B1P], values[B1P] = n, w
		singleSlots -= n
		singleWorth = a.layout.span(lo, lo+singleSlots-1)
	}
	slots[B1], values[B1] = singleSlots, singleWorth

	return values, slots
}

// chartValue isolates the chart's share of a real rate after netting out
// the opponent's contribution. Never negative.
func (a *allocator) chartValue(cat Category) float64 {
	my, their := a.chart.MyAdvantages, a.chart.OpponentAdvantages
	if my <= 0 {
		return 0
	}
	v := (a.realRate(cat) - their*a.chart.Opponent.value(cat)) / my
	return math.Max(0, v)
}

// realRate is the real result count per 400 PA for a category.
func (a *allocator) realRate(cat Category) float64 {
	switch cat {
	case PU, GB, FB:
		nonSO := math.Max(0, stats.PlateAppearances*(1-a.line.Get(stats.OBP))-a.line.Get(stats.SO))
		pu, gb, fb := outSplit(a.line, a.rules.Ratios, a.has[PU])
		switch cat {
		case PU:
			return nonSO * pu
		case GB:
			return nonSO * gb
		default:
			return nonSO * fb
		}
	default:
		return a.line.Get(cat.StatKey())
	}
}

// limit is the rule set's slot limit for a category, or the static one.
func (a *allocator) limit(cat Category) float64 {
	if v, ok := a.rules.SlotLimits[string(cat)]; ok {
		return v
	}
	return cat.SlotLimit()
}

// outSplit divides non-strikeout outs into pop ups, ground balls and fly
// balls. Without batted ball data the rule set defaults apply, scaled down
// for power hitters by their slugging relative to the league.
func outSplit(line stats.Line, r rules.Ratios, withPopups bool) (pu, gb, fb float64) {
	slgMult := 1.0
	if slg, ok := line.Lookup(stats.SLG); ok && slg > 0 && r.LeagueSLG > 0 {
		slgMult = slg / r.LeagueSLG
	}
	goao, ok := line.Lookup(stats.GOAO)
	if !ok || goao <= 0 {
		goao = r.DefaultGOAO / slgMult
	}
	gb = goao / (1 + goao)
	air := 1 - gb
	if withPopups {
		iffb, ok := line.Lookup(stats.IFFB)
		if !ok {
			iffb = r.DefaultIFFB / slgMult
		}
		pu = air * math.Min(math.Max(iffb, 0), 1)
	}
	return pu, gb, air - pu
}

// capStrikeouts applies the hitter soft/hard strikeout caps.
func capStrikeouts(v float64, caps *rules.SOCaps, pa float64) float64 {
	if caps == nil {
		return v
	}
	hard := caps.Hard
	if pa < smallSamplePA {
		hard = caps.Soft
	}
	if v > caps.Soft {
		v = math.Max(caps.Soft, math.Floor(v*strikeoutScale))
	}
	return math.Min(v, hard)
}

// singlePlusDenominator interpolates the rule set's denominator range by the
// command's percentile within the hitter command range.
func singlePlusDenominator(pr *rules.PlayerRules, command float64) float64 {
	if pr.SinglePlusDenominator == nil || len(pr.Commands) == 0 {
		return 0
	}
	lo, hi := pr.Commands[0], pr.Commands[0]
	for _, c := range pr.Commands[1:] {
		lo = math.Min(lo, c)
		hi = math.Max(hi, c)
	}
	pct := 0.0
	if r, err := valuerange.New(lo, hi); err == nil {
		pct = r.Percentile(command)
	}
	return pr.SinglePlusDenominator.Interpolate(pct)
}
