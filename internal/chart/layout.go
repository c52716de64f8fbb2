package chart

const (
	classicSlots  = 20
	expandedSlots = 30

	// worth of each of the first 20 slots on a 30 slot chart
	expandedBaseWorth = 0.99

	// absorbs float noise in the rounding walk
	roundingEpsilon = 1e-9
)

// layout holds the worth of every physical slot, 1-based.
// A classic chart is 20 slots worth 1 each. An expanded chart keeps the
// total at 20: slots 1..20 are worth 0.99 and the remaining 0.2 is spread
// over 21..30, starting at 0.1 and halving, with slot 30 taking the rest.
type layout struct {
	worth []float64
}

func newLayout(expanded bool) layout {
	if !expanded {
		w := make([]float64, classicSlots+1)
		for i := 1; i <= classicSlots; i++ {
			w[i] = 1
		}
		return layout{worth: w}
	}

	w := make([]float64, expandedSlots+1)
	for i := 1; i <= classicSlots; i++ {
		w[i] = expandedBaseWorth
	}
	left := classicSlots * (1 - expandedBaseWorth)
	step := left / 2
	for i := classicSlots + 1; i < expandedSlots; i++ {
		w[i] = step
		left -= step
		step /= 2
	}
	w[expandedSlots] = left
	return layout{worth: w}
}

// size is the number of physical slots.
func (l layout) size() int { return len(l.worth) - 1 }

// slotWorth returns the worth of slot i (1-based); 0 outside the chart.
func (l layout) slotWorth(i int) float64 {
	if i < 1 || i > l.size() {
		return 0
	}
	return l.worth[i]
}

// span sums the worth of slots from..to inclusive.
func (l layout) span(from, to int) float64 {
	var total float64
	for i := from; i <= to; i++ {
		total += l.slotWorth(i)
	}
	return total
}

// take walks slot by slot from start in direction dir (+1 or -1) and
// returns how many physical slots represent target worth, and their worth.
// It stops when the next slot would overshoot the target by more than half
// its own worth. On a classic chart this is round half up.
func (l layout) take(start, dir, minSlots, maxSlots int, target float64) (int, float64) {
	n, acc := 0, 0.0
	for i := start; n < maxSlots && i >= 1 && i <= l.size(); i += dir {
		w := l.worth[i]
		if n >= minSlots && acc+w/2 > target+roundingEpsilon {
			break
		}
		acc += w
		n++
	}
	return n, acc
}
