package chart

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/showdownbot/chart-engine/internal/rules"
	"github.com/showdownbot/chart-engine/internal/stats"
)

var testLoader = rules.NewLoader(rules.Embedded())

func ruleSet(t *testing.T, set string) *rules.RuleSet {
	t.Helper()
	rs, err := testLoader.Resolve(set, "")
	require.NoError(t, err)
	return rs
}

func opponentFor(t *testing.T, rs *rules.RuleSet, isPitcher bool) *Chart {
	t.Helper()
	opp, err := Baseline(rs, !isPitcher)
	require.NoError(t, err)
	return opp
}

// .360 OBP hitter over 600 PA
func hitterLine(t *testing.T) stats.Line {
	t.Helper()
	line, err := stats.Season{
		PA: 600, AB: 534, H: 150, Doubles: 30, Triples: 3, HR: 25,
		BB: 60, HBP: 6, SO: 110, SB: 12, GO: 150, AO: 140,
	}.Per400PA()
	require.NoError(t, err)
	return line
}

func pitcherLine(t *testing.T) stats.Line {
	t.Helper()
	line, err := stats.Season{
		PA: 800, AB: 735, H: 180, Doubles: 35, Triples: 4, HR: 20,
		BB: 60, HBP: 5, SO: 190, GO: 220, AO: 200, IFFB: 25,
	}.Per400PA()
	require.NoError(t, err)
	return line
}

func build(t *testing.T, rs *rules.RuleSet, isPitcher bool, command float64, outs int, line stats.Line) *Chart {
	t.Helper()
	c, err := Build(Params{
		Command:   command,
		Outs:      outs,
		IsPitcher: isPitcher,
		RuleSet:   rs,
		Opponent:  opponentFor(t, rs, isPitcher),
		Stats:     line,
	})
	require.NoError(t, err)
	return c
}
