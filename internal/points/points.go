// Package points converts a chart's projected stat line into a card's
// point value. Pure arithmetic over the rule set's weight tables.
package points

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/showdownbot/chart-engine/internal/rules"
	"github.com/showdownbot/chart-engine/internal/stats"
	"github.com/showdownbot/chart-engine/internal/valuerange"
)

// Metric keys in the rule set's points.weights table.
const (
	OBP     = stats.OBP
	AVG     = stats.AVG
	SLG     = stats.SLG
	HR      = "hr_per_650"
	Speed   = "speed"
	IP      = "ip"
	Command = "command"

	// breakdown only
	Defense = "defense"
	Icons   = "icons"
)

const (
	seasonPA  = 650.0
	roundTo   = 10.0
	minPoints = 10
)

var (
	ErrUnknownPosition = errors.New("position has no defense table")
	ErrUnknownIcon     = errors.New("icon not available in set")
	ErrMissingRuleSet  = errors.New("points need a rule set")
)

// Input is what a card knows beyond its chart.
type Input struct {
	IsPitcher bool
	Command   float64
	// Projected is the chart's line per 400 PA.
	Projected stats.Line
	Speed     float64 // hitters
	IP        float64 // pitchers, innings per start
	// Positions maps a position ("SS", "LF/RF", ...) to its fielding rating.
	Positions map[string]float64
	Icons     []string
}

// Result is the point value with the score of every component.
type Result struct {
	Total int `json:"total"`
	// Raw is the sum after decay, before rounding.
	Raw       float64            `json:"raw"`
	Breakdown map[string]float64 `json:"breakdown"`
	Decayed   bool               `json:"decayed"`
}

// Calculate scores a card. Each weighted metric earns weight*percentile of
// its value in the set's range, lower being better for pitcher rate stats.
// Totals above the decay start are compressed, taking the reduction from the
// rate stat scores only, then rounded to the nearest 10 with a floor of 10.
func Calculate(rs *rules.RuleSet, in Input) (Result, error) {
	if rs == nil {
		return Result{}, ErrMissingRuleSet
	}
	pr := rs.For(in.IsPitcher).Points
	breakdown := make(map[string]float64, len(pr.Weights)+2)

	for _, metric := range sortedKeys(pr.Weights) {
		r, ok := pr.Ranges[metric]
		if !ok {
			return Result{}, fmt.Errorf("set %s: points metric %s has no range", rs.Key(), metric)
		}
		value, opts := metricValue(metric, in)
		breakdown[metric] = pr.Weights[metric] * r.Percentile(value, opts...)
	}

	if len(in.Positions) > 0 {
		d, err := defensePoints(pr, in.Positions)
		if err != nil {
			return Result{}, fmt.Errorf("set %s: %w", rs.Key(), err)
		}
		breakdown[Defense] = d
	}
	if len(in.Icons) > 0 {
		var total float64
		for _, icon := range in.Icons {
			v, ok := pr.Icons[icon]
			if !ok {
				return Result{}, fmt.Errorf("set %s: %w: %q", rs.Key(), ErrUnknownIcon, icon)
			}
			total += v
		}
		breakdown[Icons] = total
	}

	res := Result{Breakdown: breakdown}
	if pr.Decay != nil {
		res.Decayed = applyDecay(breakdown, *pr.Decay, rateMetrics(in.IsPitcher))
	}
	res.Raw = sum(breakdown)
	res.Total = roundPoints(res.Raw)
	return res, nil
}

func metricValue(metric string, in Input) (float64, []valuerange.Option) {
	var desc []valuerange.Option
	if in.IsPitcher {
		desc = append(desc, valuerange.Desc())
	}
	switch metric {
	case OBP, AVG, SLG:
		return in.Projected.Get(metric), desc
	case HR:
		return in.Projected.Get(stats.HR) / stats.PlateAppearances * seasonPA, desc
	case Speed:
		return in.Speed, nil
	case IP:
		return in.IP, nil
	case Command:
		return in.Command, nil
	default:
		return in.Projected.Get(metric), nil
	}
}

// rateMetrics absorb the decay reduction.
func rateMetrics(isPitcher bool) []string {
	if isPitcher {
		return []string{AVG, OBP, SLG}
	}
	return []string{AVG, OBP, SLG, HR}
}

// defensePoints scores every position with negative ratings allowed; the best
// position counts in full, the others at the secondary position factor.
func defensePoints(pr rules.PointsRules, positions map[string]float64) (float64, error) {
	scores := make([]float64, 0, len(positions))
	for _, pos := range sortedKeys(positions) {
		d, ok := pr.Defense[pos]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownPosition, pos)
		}
		scores = append(scores, d.Weight*d.Range.Percentile(positions[pos], valuerange.AllowNegative()))
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
	total := scores[0]
	for _, s := range scores[1:] {
		total += s * pr.SecondaryPositionFactor
	}
	return total, nil
}

// applyDecay compresses the part of the total above d.Start by d.Rate. The
// reduction is shared by the rate metrics in proportion to their scores.
func applyDecay(breakdown map[string]float64, d rules.Decay, rates []string) bool {
	total := sum(breakdown)
	if total <= d.Start {
		return false
	}
	reduction := (total - d.Start) * (1 - d.Rate)

	var rateTotal float64
	for _, m := range rates {
		rateTotal += math.Max(breakdown[m], 0)
	}
	if rateTotal <= 0 {
		return false
	}
	reduction = math.Min(reduction, rateTotal)
	for _, m := range rates {
		if v, ok := breakdown[m]; ok && v > 0 {
			breakdown[m] = v - reduction*v/rateTotal
		}
	}
	return true
}

func roundPoints(raw float64) int {
	p := int(math.Round(raw/roundTo) * roundTo)
	return max(p, minPoints)
}

func sum(m map[string]float64) float64 {
	var total float64
	for _, k := range sortedKeys(m) {
		total += m[k]
	}
	return total
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
