package chart

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/showdownbot/chart-engine/internal/rules"
	"github.com/showdownbot/chart-engine/internal/stats"
)

var ErrNoCandidatesFound = errors.New("no command/outs candidates to evaluate")

// AccuracyMap maps a "command-outs" key to the accuracy of that candidate.
type AccuracyMap map[string]float64

// SearchParams are the inputs of a command/outs search.
type SearchParams struct {
	Stats     stats.Line
	Opponent  *Chart
	RuleSet   *rules.RuleSet
	IsPitcher bool
	// Override skips the search; the chart is built as given with accuracy 1.
	Override *rules.CommandOuts
}

// Search builds a chart for every command in the rule set at the outs the
// real on-base rate implies, probes one neighbouring outs value per command,
// adds the rule set's explicit combos and returns the most accurate chart.
// Ties go to the candidate found first.
func Search(p SearchParams) (*Chart, AccuracyMap, error) {
	if p.RuleSet == nil {
		return nil, nil, ErrMissingRuleSet
	}
	if p.Opponent == nil {
		return nil, nil, ErrMissingOpponent
	}
	build := func(command float64, outs int) (*Chart, error) {
		return Build(Params{
			Command:   command,
			Outs:      outs,
			IsPitcher: p.IsPitcher,
			RuleSet:   p.RuleSet,
			Opponent:  p.Opponent,
			Stats:     p.Stats,
		})
	}

	if p.Override != nil {
		c, err := build(p.Override.Command, p.Override.Outs)
		if err != nil {
			return nil, nil, fmt.Errorf("override %s: %w", candidateKey(p.Override.Command, p.Override.Outs), err)
		}
		c.Accuracy = 1
		return c, AccuracyMap{c.Key(): c.Accuracy}, nil
	}

	pr := p.RuleSet.For(p.IsPitcher)
	lay := newLayout(p.RuleSet.Expanded)
	realOBP := p.Stats.Get(stats.OBP)

	accuracies := AccuracyMap{}
	built := map[string]*Chart{}
	var best *Chart
	consider := func(command float64, outs int) (*Chart, error) {
		key := candidateKey(command, outs)
		if c, ok := built[key]; ok {
			return c, nil
		}
		c, err := build(command, outs)
		if err != nil {
			return nil, fmt.Errorf("candidate %s: %w", key, err)
		}
		built[key] = c
		accuracies[key] = c.Accuracy
		if best == nil || c.Accuracy > best.Accuracy {
			best = c
		}
		return c, nil
	}

	commands := append([]float64(nil), pr.Commands...)
	sort.Float64s(commands)
	for _, command := range commands {
		outs := impliedOuts(lay, pr.Outs, p.Opponent, command, p.IsPitcher, realOBP)
		c, err := consider(command, outs)
		if err != nil {
			return nil, nil, err
		}
		// too much on-base means too few outs
		alt := outs - 1
		if c.ProjectedStatsPer400PA().Get(stats.OBP) > realOBP {
			alt = outs + 1
		}
		if alt >= pr.Outs.Min && alt <= pr.Outs.Max {
			if _, err := consider(command, alt); err != nil {
				return nil, nil, err
			}
		}
	}
	for _, co := range pr.Combos {
		if _, err := consider(co.Command, co.Outs); err != nil {
			return nil, nil, err
		}
	}

	if best == nil {
		return nil, nil, fmt.Errorf("set %s: %w", p.RuleSet.Key(), ErrNoCandidatesFound)
	}
	return best, accuracies, nil
}

// impliedOuts solves the on-base share of the chart from the real OBP and
// converts the remaining worth to physical out slots within the bounds.
func impliedOuts(lay layout, bounds rules.OutsBounds, opp *Chart, command float64, isPitcher bool, obp float64) int {
	my, their := advantages(command, opp.Command, isPitcher)
	onbase := 0.0
	if my > 0 {
		onbase = (stats.PlateAppearances*obp - their*opp.onbaseWorth()) / my
	}
	worth := math.Min(math.Max(classicSlots-onbase, 0), classicSlots)
	outs, _ := lay.take(1, 1, 0, classicSlots, worth)
	return min(max(outs, bounds.Min), bounds.Max)
}
