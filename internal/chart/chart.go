// Package chart builds Showdown outcome charts from real rate stats.
//
// A chart is built once for a (command, outs) candidate against a read-only
// opponent baseline and is never modified afterwards. Construction runs
// three derivations in order: slot allocation, accuracy, display ranges.
package chart

import (
	"errors"
	"fmt"
	"math"

	"github.com/showdownbot/chart-engine/internal/rules"
	"github.com/showdownbot/chart-engine/internal/stats"
)

var (
	ErrMissingOpponent = errors.New("chart has no opponent baseline")
	ErrInvalidOuts     = errors.New("out slots must be within 0..20")
	ErrMissingRuleSet  = errors.New("chart has no rule set")
)

// display strings
const (
	rangeDash  = "–"
	emptyRange = "—"
)

// Params are the inputs of a single chart.
type Params struct {
	Command   float64
	Outs      int // physical out slots, filled from slot 1
	IsPitcher bool
	RuleSet   *rules.RuleSet
	// Opponent is the baseline chart of the other player type. Shared, never modified.
	Opponent *Chart
	// Stats are real rates per 400 PA; missing keys count as 0.
	Stats stats.Line
}

// Chart is a fully built outcome table.
type Chart struct {
	Command    float64 `json:"command"`
	Outs       float64 `json:"outs"`      // worth of the out slots
	OutSlots   int     `json:"out_slots"` // physical out slots
	IsPitcher  bool    `json:"is_pitcher"`
	Set        string  `json:"set"`
	Era        string  `json:"era,omitempty"`
	IsExpanded bool    `json:"is_expanded"`
	Size       int     `json:"size"` // physical slots, 20 or 30

	// Categories in display order.
	Categories []Category           `json:"categories"`
	Values     map[Category]float64 `json:"values"` // slot worth held
	Slots      map[Category]int     `json:"slots"`  // physical slots held
	Results    map[int]Category     `json:"results,omitempty"`
	Ranges     map[Category]string  `json:"ranges,omitempty"`

	Accuracy              float64 `json:"accuracy"`
	SinglePlusDenominator float64 `json:"single_plus_denominator,omitempty"`
	MyAdvantages          float64 `json:"my_advantages"`
	OpponentAdvantages    float64 `json:"opponent_advantages"`

	IsBaseline bool   `json:"is_baseline,omitempty"`
	Opponent   *Chart `json:"-"`
}

// Build computes a chart for one command/outs candidate.
func Build(p Params) (*Chart, error) {
	if p.RuleSet == nil {
		return nil, ErrMissingRuleSet
	}
	if p.Opponent == nil {
		return nil, ErrMissingOpponent
	}
	if p.Outs < 0 || p.Outs > classicSlots {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOuts, p.Outs)
	}
	pr := p.RuleSet.For(p.IsPitcher)
	cats, err := categoriesFor(pr.Categories, p.IsPitcher)
	if err != nil {
		return nil, fmt.Errorf("set %s: %w", p.RuleSet.Key(), err)
	}

	lay := newLayout(p.RuleSet.Expanded)
	my, their := advantages(p.Command, p.Opponent.Command, p.IsPitcher)
	c := &Chart{
		Command:            p.Command,
		OutSlots:           p.Outs,
		Outs:               lay.span(1, p.Outs),
		IsPitcher:          p.IsPitcher,
		Set:                p.RuleSet.ID,
		Era:                p.RuleSet.Era,
		IsExpanded:         p.RuleSet.Expanded,
		Size:               lay.size(),
		Categories:         cats,
		MyAdvantages:       my,
		OpponentAdvantages: their,
		Opponent:           p.Opponent,
	}

	a := newAllocator(c, pr, lay, p.Stats)
	c.Values, c.Slots = a.allocate()
	c.SinglePlusDenominator = a.singlePlusDenominator
	c.Accuracy = scoreAccuracy(pr, c.Command, c.OutSlots, p.Stats, c.ProjectedStatsPer400PA())
	c.Results, c.Ranges = deriveRanges(cats, c.Slots, c.Size)
	return c, nil
}

// Baseline returns the average chart of a player type in a rule set.
// It serves as the opponent of every chart of the other type.
func Baseline(rs *rules.RuleSet, isPitcher bool) (*Chart, error) {
	if rs == nil {
		return nil, ErrMissingRuleSet
	}
	pr := rs.For(isPitcher)
	cats, err := categoriesFor(pr.Categories, isPitcher)
	if err != nil {
		return nil, fmt.Errorf("set %s baseline: %w", rs.Key(), err)
	}
	values := make(map[Category]float64, len(pr.Baseline.Values))
	for k, v := range pr.Baseline.Values {
		cat, err := ParseCategory(k)
		if err != nil {
			return nil, fmt.Errorf("set %s baseline: %w", rs.Key(), err)
		}
		if !cat.IsValidFor(isPitcher) {
			return nil, fmt.Errorf("set %s baseline: %w", rs.Key(), &CategoryError{Category: cat, IsPitcher: isPitcher})
		}
		values[cat] = v
	}
	lay := newLayout(rs.Expanded)
	outSlots, _ := lay.take(1, 1, 0, classicSlots, pr.Baseline.Outs)
	return &Chart{
		Command:    pr.Baseline.Command,
		Outs:       pr.Baseline.Outs,
		OutSlots:   outSlots,
		IsPitcher:  isPitcher,
		Set:        rs.ID,
		Era:        rs.Era,
		IsExpanded: rs.Expanded,
		Size:       lay.size(),
		Categories: cats,
		Values:     values,
		IsBaseline: true,
	}, nil
}

// Key identifies the command/outs candidate, e.g. "11-6".
func (c *Chart) Key() string {
	return candidateKey(c.Command, c.OutSlots)
}

func candidateKey(command float64, outs int) string {
	return fmt.Sprintf("%g-%d", command, outs)
}

// value is the slot worth held by a category; 0 when absent.
func (c *Chart) value(cat Category) float64 {
	if c == nil {
		return 0
	}
	return c.Values[cat]
}

// onbaseWorth is the worth of every non-out slot.
func (c *Chart) onbaseWorth() float64 {
	return classicSlots - c.Outs
}

// RangesList returns the display ranges in the rule set's category order.
func (c *Chart) RangesList() []string {
	out := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		r, ok := c.Ranges[cat]
		if !ok {
			r = emptyRange
		}
		out = append(out, r)
	}
	return out
}

// ProjectedStatsPer400PA replays the chart against its opponent:
// each category produces MyAdvantages*mine + OpponentAdvantages*theirs
// results per 400 PA. Ratio stats are derived from the counts.
func (c *Chart) ProjectedStatsPer400PA() stats.Line {
	my, their := c.MyAdvantages, c.OpponentAdvantages
	rate := func(cats ...Category) float64 {
		var total float64
		for _, cat := range cats {
			total += my*c.value(cat) + their*c.Opponent.value(cat)
		}
		return total
	}

	line := stats.Line{
		stats.PU:  rate(PU),
		stats.SO:  rate(SO),
		stats.GB:  rate(GB),
		stats.FB:  rate(FB),
		stats.BB:  rate(BB),
		stats.B1:  rate(B1, B1P),
		stats.B1P: rate(B1P),
		stats.B2:  rate(B2),
		stats.B3:  rate(B3),
		stats.HR:  rate(HR),
	}
	h := line[stats.B1] + line[stats.B2] + line[stats.B3] + line[stats.HR]
	tb := line[stats.B1] + 2*line[stats.B2] + 3*line[stats.B3] + 4*line[stats.HR]
	ab := stats.PlateAppearances - line[stats.BB]
	line[stats.H] = h
	line[stats.TB] = tb
	line[stats.AB] = ab
	line[stats.OBP] = (h + line[stats.BB]) / stats.PlateAppearances
	if ab > 0 {
		line[stats.AVG] = h / ab
		line[stats.SLG] = tb / ab
	}
	line[stats.OPS] = line[stats.OBP] + line[stats.SLG]
	return line
}

// advantages splits the 20 rolls of a matchup. A hitter gains one roll per
// point of command over the pitcher's control; a pitcher starts at 20 and
// loses one per point the hitter's command exceeds its control.
func advantages(command, oppCommand float64, isPitcher bool) (mine, theirs float64) {
	if isPitcher {
		mine = classicSlots - (oppCommand - command)
	} else {
		mine = command - oppCommand
	}
	mine = math.Min(math.Max(mine, 0), classicSlots)
	return mine, classicSlots - mine
}

// deriveRanges lays the categories out in display order from slot 1.
func deriveRanges(cats []Category, slots map[Category]int, size int) (map[int]Category, map[Category]string) {
	results := make(map[int]Category, size)
	ranges := make(map[Category]string, len(cats))
	next := 1
	for _, cat := range cats {
		n := slots[cat]
		if n <= 0 {
			ranges[cat] = emptyRange
			continue
		}
		start, end := next, next+n-1
		for i := start; i <= end; i++ {
			results[i] = cat
		}
		switch {
		case end >= size:
			ranges[cat] = fmt.Sprintf("%d+", start)
		case start == end:
			ranges[cat] = fmt.Sprintf("%d", start)
		default:
			ranges[cat] = fmt.Sprintf("%d%s%d", start, rangeDash, end)
		}
		next = end + 1
	}
	return results, ranges
}
