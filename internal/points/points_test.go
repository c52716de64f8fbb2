package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showdownbot/chart-engine/internal/chart"
	"github.com/showdownbot/chart-engine/internal/rules"
	"github.com/showdownbot/chart-engine/internal/stats"
	"github.com/showdownbot/chart-engine/internal/valuerange"
)

func testRules(decay *rules.Decay) *rules.RuleSet {
	return &rules.RuleSet{
		ID: "T",
		Hitter: rules.PlayerRules{Points: rules.PointsRules{
			Weights: map[string]float64{OBP: 100, AVG: 50, SLG: 100, HR: 50, Speed: 50},
			Ranges: map[string]valuerange.Range{
				OBP:   {Min: 0.25, Max: 0.45},
				AVG:   {Min: 0.2, Max: 0.3},
				SLG:   {Min: 0.3, Max: 0.6},
				HR:    {Min: 5, Max: 50},
				Speed: {Min: 8, Max: 26},
			},
			Defense: map[string]rules.DefenseRule{
				"SS": {Weight: 60, Range: valuerange.Range{Min: 0, Max: 6}},
				"2B": {Weight: 50, Range: valuerange.Range{Min: 0, Max: 6}},
			},
			SecondaryPositionFactor: 0.5,
			Icons:                   map[string]float64{"S": 10},
			Decay:                   decay,
		}},
		Pitcher: rules.PlayerRules{Points: rules.PointsRules{
			Weights: map[string]float64{OBP: 100, IP: 50},
			Ranges: map[string]valuerange.Range{
				OBP: {Min: 0.25, Max: 0.40},
				IP:  {Min: 1, Max: 8},
			},
		}},
	}
}

func hitterInput() Input {
	return Input{
		Projected: stats.Line{OBP: 0.35, AVG: 0.3, SLG: 0.5, stats.HR: 16},
		Speed:     20,
		Positions: map[string]float64{"SS": 3, "2B": 6},
		Icons:     []string{"S"},
	}
}

func TestCalculateHitter(t *testing.T) {
	res, err := Calculate(testRules(nil), hitterInput())
	require.NoError(t, err)

	assert.InDelta(t, 50, res.Breakdown[OBP], 1e-9)
	assert.InDelta(t, 50, res.Breakdown[AVG], 1e-9)
	assert.InDelta(t, 200.0/3, res.Breakdown[SLG], 1e-9)
	assert.InDelta(t, 21.0/45*50, res.Breakdown[HR], 1e-9)
	assert.InDelta(t, 12.0/18*50, res.Breakdown[Speed], 1e-9)
	// 2B is the better position, SS counts half
	assert.InDelta(t, 50+30*0.5, res.Breakdown[Defense], 1e-9)
	assert.Equal(t, 10.0, res.Breakdown[Icons])

	assert.InDelta(t, 298.333, res.Raw, 1e-3)
	assert.Equal(t, 300, res.Total)
	assert.False(t, res.Decayed)
}

func TestDecayTakesFromRateStatsOnly(t *testing.T) {
	plain, err := Calculate(testRules(nil), hitterInput())
	require.NoError(t, err)
	res, err := Calculate(testRules(&rules.Decay{Rate: 0.5, Start: 200}), hitterInput())
	require.NoError(t, err)

	require.True(t, res.Decayed)
	want := 200 + (plain.Raw-200)*0.5
	assert.InDelta(t, want, res.Raw, 1e-9)
	assert.Equal(t, 250, res.Total)

	for _, k := range []string{Speed, Defense, Icons} {
		assert.Equal(t, plain.Breakdown[k], res.Breakdown[k], k)
	}
	// proportional: every rate metric keeps the same share
	ratio := res.Breakdown[OBP] / plain.Breakdown[OBP]
	for _, k := range []string{AVG, SLG, HR} {
		assert.InDelta(t, ratio, res.Breakdown[k]/plain.Breakdown[k], 1e-12, k)
	}
}

func TestCalculatePitcherDescending(t *testing.T) {
	res, err := Calculate(testRules(nil), Input{
		IsPitcher: true,
		Projected: stats.Line{OBP: 0.25},
		IP:        8,
	})
	require.NoError(t, err)
	assert.InDelta(t, 100, res.Breakdown[OBP], 1e-9)
	assert.InDelta(t, 50, res.Breakdown[IP], 1e-9)
	assert.Equal(t, 150, res.Total)

	worse, err := Calculate(testRules(nil), Input{IsPitcher: true, Projected: stats.Line{OBP: 0.5}, IP: 8})
	require.NoError(t, err)
	assert.Zero(t, worse.Breakdown[OBP])
}

func TestPointsFloor(t *testing.T) {
	res, err := Calculate(testRules(nil), Input{})
	require.NoError(t, err)
	assert.Equal(t, 10, res.Total)
}

func TestNegativeDefense(t *testing.T) {
	in := hitterInput()
	in.Positions = map[string]float64{"SS": -2}
	res, err := Calculate(testRules(nil), in)
	require.NoError(t, err)
	assert.InDelta(t, -20, res.Breakdown[Defense], 1e-9)
}

func TestCalculateErrors(t *testing.T) {
	in := hitterInput()
	in.Positions = map[string]float64{"DH": 0, "SS": 1}
	_, err := Calculate(testRules(nil), in)
	assert.ErrorIs(t, err, ErrUnknownPosition)

	in = hitterInput()
	in.Icons = []string{"CY"}
	_, err = Calculate(testRules(nil), in)
	assert.ErrorIs(t, err, ErrUnknownIcon)

	_, err = Calculate(nil, in)
	assert.ErrorIs(t, err, ErrMissingRuleSet)
}

func TestRoundPoints(t *testing.T) {
	tests := []struct {
		raw  float64
		want int
	}{
		{0, 10},
		{-40, 10},
		{14.9, 10},
		{15, 20},
		{244.9, 240},
		{245, 250},
		{731, 730},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundPoints(tt.raw), "%v", tt.raw)
	}
}

func TestCalculateFromChart(t *testing.T) {
	rs, err := rules.NewLoader(rules.Embedded()).Resolve("CLASSIC", "")
	require.NoError(t, err)
	opp, err := chart.Baseline(rs, true)
	require.NoError(t, err)
	line, err := stats.Season{PA: 650, AB: 560, H: 170, Doubles: 35, Triples: 2, HR: 40, BB: 80, HBP: 5, SO: 120, SB: 10}.Per400PA()
	require.NoError(t, err)

	c, _, err := chart.Search(chart.SearchParams{Stats: line, Opponent: opp, RuleSet: rs})
	require.NoError(t, err)

	res, err := Calculate(rs, Input{
		Command:   c.Command,
		Projected: c.ProjectedStatsPer400PA(),
		Speed:     14,
		Positions: map[string]float64{"1B": 1},
		Icons:     []string{"HR", "S"},
	})
	require.NoError(t, err)
	assert.Zero(t, res.Total%10)
	assert.GreaterOrEqual(t, res.Total, 10)
	assert.Greater(t, res.Breakdown[SLG], 0.0)
}
